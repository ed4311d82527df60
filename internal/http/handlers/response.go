// Package handlers implements the JSON API of the depicts backend.
//
// Handlers stay thin: they parse QIDs and payloads, call a service, and map
// service sentinels to a status plus a stable error code. All errors use the
// ErrorResponse envelope; 5xx responses are also logged with the
// request-scoped logger.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/http/middleware"
	"github.com/tbourn/depicts-backend/internal/services"
	"github.com/tbourn/depicts-backend/internal/utils"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	// Echo of X-Request-ID
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go)
	Code string `json:"code" example:"not_found"`
	// Human-readable message
	Message string `json:"message" example:"depicts item not found"`
}

func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail lets the router write the same envelope for 404/405 fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) { c.JSON(status, body) }

func noContent(c *gin.Context) { c.Status(http.StatusNoContent) }

// serviceError maps a service sentinel to status and code. Anything
// unrecognised is an internal error.
func serviceError(c *gin.Context, err error) {
	var (
		status = http.StatusInternalServerError
		code   = ErrCodeInternal
		msg    string
	)
	switch {
	case errors.Is(err, services.ErrArtworkNotFound),
		errors.Is(err, services.ErrDepictsNotFound),
		errors.Is(err, services.ErrHumanNotFound),
		errors.Is(err, services.ErrLanguageNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrQueryNotFound):
		status, code = http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, services.ErrDuplicateEdit):
		status, code = http.StatusConflict, ErrCodeDuplicateEdit
	case errors.Is(err, services.ErrDuplicateItem),
		errors.Is(err, services.ErrDuplicateLanguage),
		errors.Is(err, services.ErrDuplicateUser):
		status, code = http.StatusConflict, ErrCodeConflict
	case errors.Is(err, services.ErrItemInUse):
		status, code = http.StatusConflict, ErrCodeItemInUse
	case errors.Is(err, services.ErrAmbiguousLanguage):
		status, code = http.StatusConflict, ErrCodeAmbiguous
	case errors.Is(err, services.ErrInvalidItem),
		errors.Is(err, services.ErrInvalidEdit),
		errors.Is(err, services.ErrInvalidUser):
		status, code = http.StatusBadRequest, ErrCodeBadRequest
	}
	if status == http.StatusInternalServerError {
		msg = err.Error()
	} else {
		// Keep only the sentinel text of an errors.Join chain so store
		// details stay out of client messages.
		msg, _, _ = strings.Cut(err.Error(), "\n")
	}
	fail(c, status, code, msg)
}

// qidParam parses a path parameter holding "Q123" or "123". It writes the
// 400 response itself and reports false on failure.
func qidParam(c *gin.Context, name string) (int64, bool) {
	id, err := domain.ParseQID(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidQID, name+" must look like Q123")
		return 0, false
	}
	return id, true
}

// Pagination describes the page returned by list endpoints.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func clampPagination(c *gin.Context) (page, pageSize int) {
	return utils.ClampPage(
		utils.AtoiDefault(c.Query("page"), 1),
		utils.AtoiDefault(c.Query("page_size"), defaultPageSize),
		defaultPageSize, maxPageSize,
	)
}

func newPagination(page, pageSize int, total int64) Pagination {
	tp := utils.TotalPages(total, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: tp,
		HasNext:    page < tp,
	}
}
