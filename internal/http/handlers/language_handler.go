// Language and user HTTP handlers.
//
//   - POST /languages   GET /languages   GET /languages/{code}
//   - POST /users       GET /users/{username}
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// CreateLanguage godoc
// @ID          createLanguage
// @Summary     Register a Wikimedia language
// @Tags        Languages
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateLanguageRequest  true  "Language"
// @Success     201   {object}  handlers.LanguageResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409   {object}  handlers.ErrorResponse  "Language already exists"
// @Router      /languages [post]
func (h *Handlers) CreateLanguage(c *gin.Context) {
	var req CreateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "qid, wikimedia_language_code and en_label are required")
		return
	}
	id, err := domain.ParseQID(req.QID)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidQID, "qid must look like Q123")
		return
	}
	l := &domain.Language{ItemID: id, WikimediaLanguageCode: req.Code, EnLabel: req.EnLabel}
	if err := h.languages.Create(c.Request.Context(), l); err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, toLanguage(l))
}

// ListLanguages godoc
// @ID          listLanguages
// @Summary     List languages ordered by English label
// @Tags        Languages
// @Produce     json
// @Success     200  {array}   handlers.LanguageResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /languages [get]
func (h *Handlers) ListLanguages(c *gin.Context) {
	ls, err := h.languages.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	out := make([]LanguageResponse, 0, len(ls))
	for i := range ls {
		out = append(out, toLanguage(&ls[i]))
	}
	ok(c, http.StatusOK, out)
}

// GetLanguage godoc
// @ID          getLanguage
// @Summary     Read the language with a Wikimedia code
// @Description Exactly one language must carry the code; several matches yield 409.
// @Tags        Languages
// @Produce     json
// @Param       code  path      string  true  "Wikimedia language code"  example(de)
// @Success     200   {object}  handlers.LanguageResponse
// @Failure     404   {object}  handlers.ErrorResponse  "Not found"
// @Failure     409   {object}  handlers.ErrorResponse  "Ambiguous code"
// @Router      /languages/{code} [get]
func (h *Handlers) GetLanguage(c *gin.Context) {
	l, err := h.languages.ByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, toLanguage(l))
}

// EnsureUser godoc
// @ID          ensureUser
// @Summary     Register a user on first sight
// @Description Returns 201 when the user was created and 200 when it already existed.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.EnsureUserRequest  true  "User"
// @Success     200   {object}  handlers.UserResponse
// @Success     201   {object}  handlers.UserResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409   {object}  handlers.ErrorResponse  "Username taken by another id"
// @Router      /users [post]
func (h *Handlers) EnsureUser(c *gin.Context) {
	var req EnsureUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "positive id and username required")
		return
	}
	u, created, err := h.users.Ensure(c.Request.Context(), req.ID, req.Username)
	if err != nil {
		serviceError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, toUser(u))
}

// GetUser godoc
// @ID          getUser
// @Summary     Read a user and their Wikidata user page link
// @Tags        Users
// @Produce     json
// @Param       username  path      string  true  "Username"  example(Jane Doe)
// @Success     200       {object}  handlers.UserResponse
// @Failure     404       {object}  handlers.ErrorResponse  "Not found"
// @Router      /users/{username} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, toUser(u))
}
