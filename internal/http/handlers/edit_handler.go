// Edit and query-log HTTP handlers.
//
//   - POST /edits                      (record, user from X-Wiki-User)
//   - GET  /edits                      (list, paginated, weak ETag)
//   - GET  /users/{username}/edits     (list for one user)
//   - GET  /artworks/{qid}/edits       (list for one artwork)
//   - GET  /queries, GET /queries/{id} (SPARQL call log)
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/http/middleware"
	"github.com/tbourn/depicts-backend/internal/repo"
	"github.com/tbourn/depicts-backend/internal/services"
)

// RecordEdit godoc
// @ID          recordEdit
// @Summary     Record a depicts statement added to an artwork
// @Description Both items must be cached. The same user, artwork and depicts triple can be recorded once.
// @Tags        Edits
// @Accept      json
// @Produce     json
// @Param       X-Wiki-User  header    string  true  "Acting Wikidata username"  example(Jane Doe)
// @Param       body         body      handlers.RecordEditRequest  true  "Edit"
// @Success     201          {object}  handlers.EditResponse
// @Failure     400          {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401          {object}  handlers.ErrorResponse  "No acting user"
// @Failure     404          {object}  handlers.ErrorResponse  "Artwork or depicts item not cached"
// @Failure     409          {object}  handlers.ErrorResponse  "Edit already recorded"
// @Router      /edits [post]
func (h *Handlers) RecordEdit(c *gin.Context) {
	user := middleware.Username(c)
	if user == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "X-Wiki-User header required")
		return
	}
	var req RecordEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "artwork and depicts are required")
		return
	}
	artworkID, err1 := domain.ParseQID(req.Artwork)
	depictsID, err2 := domain.ParseQID(req.Depicts)
	if err := errors.Join(err1, err2); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidQID, "artwork and depicts must look like Q123")
		return
	}

	e, err := h.edits.Record(c.Request.Context(), user, artworkID, depictsID, req.LastRevID)
	switch {
	case err == nil:
		middleware.ObserveEdit("created")
	case errors.Is(err, services.ErrDuplicateEdit):
		middleware.ObserveEdit("duplicate")
	default:
		middleware.ObserveEdit("rejected")
	}
	if err != nil {
		serviceError(c, err)
		return
	}
	middleware.LoggerFrom(c).Info().
		Str("artwork", e.ArtworkQID()).
		Str("depicts", e.DepictsQID()).
		Msg("edit recorded")
	ok(c, http.StatusCreated, toEdit(e))
}

// ListEdits godoc
// @ID          listEdits
// @Summary     List edits, newest first
// @Description Supports a weak ETag via If-None-Match and may return 304.
// @Tags        Edits
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Param       username       query   string  false  "Only edits by this user"
// @Param       artwork        query   string  false  "Only edits on this artwork"  example(Q12418)
// @Param       depicts        query   string  false  "Only edits adding this item"  example(Q144)
// @Param       page           query   int     false  "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListEditsResponse
// @Header      200  {string}  ETag  "Weak ETag for the current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad filter"
// @Router      /edits [get]
func (h *Handlers) ListEdits(c *gin.Context) {
	f := repo.EditFilter{Username: c.Query("username")}
	for name, dst := range map[string]*int64{"artwork": &f.ArtworkID, "depicts": &f.DepictsID} {
		if v := c.Query(name); v != "" {
			id, err := domain.ParseQID(v)
			if err != nil {
				fail(c, http.StatusBadRequest, ErrCodeInvalidQID, name+" must look like Q123")
				return
			}
			*dst = id
		}
	}
	h.listEdits(c, f)
}

// ListUserEdits godoc
// @ID          listUserEdits
// @Summary     List the edits of one user, newest first
// @Tags        Edits
// @Produce     json
// @Param       username   path   string  true   "Username"  example(Jane Doe)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListEditsResponse
// @Success     304  {string}  string  "Not Modified"
// @Router      /users/{username}/edits [get]
func (h *Handlers) ListUserEdits(c *gin.Context) {
	h.listEdits(c, repo.EditFilter{Username: c.Param("username")})
}

// ListArtworkEdits godoc
// @ID          listArtworkEdits
// @Summary     List the edits made on one artwork, newest first
// @Tags        Edits
// @Produce     json
// @Param       qid        path   string  true   "Artwork id"  example(Q12418)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListEditsResponse
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid QID"
// @Router      /artworks/{qid}/edits [get]
func (h *Handlers) ListArtworkEdits(c *gin.Context) {
	id, valid := qidParam(c, "qid")
	if !valid {
		return
	}
	h.listEdits(c, repo.EditFilter{ArtworkID: id})
}

// listEdits serves one page of edits matching f. The ETag covers the filter,
// the row count and the newest timestamp, so any insert or delete changes it.
func (h *Handlers) listEdits(c *gin.Context, f repo.EditFilter) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if count, newest, err := h.edits.Stats(ctx, f); err == nil {
		var ts int64
		if newest != nil {
			ts = newest.UnixMilli()
		}
		// Usernames are free text; hashing keeps the tag a valid quoted string.
		etag := fmt.Sprintf(`W/"edits:%016x:%d:%d:%d:%d:%d:%d"`,
			xxhash.Sum64String(f.Username), f.ArtworkID, f.DepictsID, page, pageSize, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.edits.ListPage(ctx, f, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	out := make([]EditResponse, 0, len(items))
	for i := range items {
		out = append(out, toEdit(&items[i]))
	}
	ok(c, http.StatusOK, ListEditsResponse{Edits: out, Pagination: newPagination(page, pageSize, total)})
}

// ListQueries godoc
// @ID          listQueries
// @Summary     List logged SPARQL calls, newest first
// @Tags        Queries
// @Produce     json
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListQueriesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /queries [get]
func (h *Handlers) ListQueries(c *gin.Context) {
	page, pageSize := clampPagination(c)
	qs, total, err := h.queries.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	out := make([]QueryResponse, 0, len(qs))
	for i := range qs {
		out = append(out, toQuery(&qs[i]))
	}
	ok(c, http.StatusOK, ListQueriesResponse{Queries: out, Pagination: newPagination(page, pageSize, total)})
}

// GetQuery godoc
// @ID          getQuery
// @Summary     Read one logged SPARQL call with duration and template
// @Tags        Queries
// @Produce     json
// @Param       id   path      int  true  "Query log id"  minimum(1)
// @Success     200  {object}  handlers.QueryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /queries/{id} [get]
func (h *Handlers) GetQuery(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return
	}
	q, err := h.queries.Get(c.Request.Context(), uint(id))
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, toQuery(q))
}
