// Depicts HTTP handlers.
//
//   - POST   /depicts                   (create)
//   - GET    /depicts?q=term&limit=n    (ranked label lookup)
//   - GET    /depicts/{qid}             (read)
//   - PUT    /depicts/{qid}             (update mutable fields)
//   - PUT    /depicts/{qid}/alt_labels  (replace alt labels)
//   - DELETE /depicts/{qid}             (delete with alt labels)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/utils"
)

// CreateDepicts godoc
// @ID          createDepicts
// @Summary     Cache a depicts item
// @Tags        Depicts
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateDepictsRequest  true  "Depicts item"
// @Success     201   {object}  handlers.DepictsResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409   {object}  handlers.ErrorResponse  "Item already exists"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /depicts [post]
func (h *Handlers) CreateDepicts(c *gin.Context) {
	var req CreateDepictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	id, err := domain.ParseQID(req.QID)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidQID, "qid must look like Q123")
		return
	}
	d := &domain.DepictsItem{
		ItemID:      id,
		Label:       req.Label,
		Description: req.Description,
		Commons:     req.Commons,
		Entity:      req.Entity,
	}
	d.SetAltLabels(req.AltLabels...)

	if err := h.items.CreateDepicts(c.Request.Context(), d); err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, toDepicts(d))
}

// LookupDepicts godoc
// @ID          lookupDepicts
// @Summary     Find depicts items by label
// @Description Case-insensitive substring match over labels and alt labels, ranked by token overlap then usage count.
// @Tags        Depicts
// @Produce     json
// @Param       q      query     string  true   "Search term"  example(dog)
// @Param       limit  query     int     false  "Maximum results"  minimum(1)
// @Success     200    {object}  handlers.LookupDepictsResponse
// @Failure     400    {object}  handlers.ErrorResponse  "Missing term"
// @Failure     500    {object}  handlers.ErrorResponse  "Internal error"
// @Router      /depicts [get]
func (h *Handlers) LookupDepicts(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter q is required")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), h.maxLookup)
	if limit < 1 || limit > h.maxLookup {
		limit = h.maxLookup
	}

	ms, err := h.items.LookupDepicts(c.Request.Context(), term, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeLookupFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, LookupDepictsResponse{Query: term, Results: toMatches(ms)})
}

// GetDepicts godoc
// @ID          getDepicts
// @Summary     Read a depicts item
// @Tags        Depicts
// @Produce     json
// @Param       qid  path      string  true  "Item id"  example(Q144)
// @Success     200  {object}  handlers.DepictsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid QID"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /depicts/{qid} [get]
func (h *Handlers) GetDepicts(c *gin.Context) {
	id, valid := qidParam(c, "qid")
	if !valid {
		return
	}
	d, err := h.items.GetDepicts(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, toDepicts(d))
}

// UpdateDepicts godoc
// @ID          updateDepicts
// @Summary     Update a depicts item
// @Description Overwrites the fields present in the body; the item id never changes.
// @Tags        Depicts
// @Accept      json
// @Produce     json
// @Param       qid   path      string  true  "Item id"  example(Q144)
// @Param       body  body      handlers.UpdateDepictsRequest  true  "Fields to change"
// @Success     200   {object}  handlers.DepictsResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404   {object}  handlers.ErrorResponse  "Not found"
// @Router      /depicts/{qid} [put]
func (h *Handlers) UpdateDepicts(c *gin.Context) {
	id, valid := qidParam(c, "qid")
	if !valid {
		return
	}
	var req UpdateDepictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ctx := c.Request.Context()
	d, err := h.items.GetDepicts(ctx, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if req.Label != nil {
		d.Label = *req.Label
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Commons != nil {
		d.Commons = *req.Commons
	}
	if req.Count != nil {
		d.Count = *req.Count
	}
	if req.Entity != nil {
		d.Entity = req.Entity
	}
	if err := h.items.UpdateDepicts(ctx, d); err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, toDepicts(d))
}

// ReplaceAltLabels godoc
// @ID          replaceAltLabels
// @Summary     Replace the alt labels of a depicts item
// @Tags        Depicts
// @Accept      json
// @Produce     json
// @Param       qid   path      string  true  "Item id"  example(Q144)
// @Param       body  body      handlers.AltLabelsRequest  true  "New alt labels"
// @Success     200   {object}  handlers.DepictsResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404   {object}  handlers.ErrorResponse  "Not found"
// @Router      /depicts/{qid}/alt_labels [put]
func (h *Handlers) ReplaceAltLabels(c *gin.Context) {
	id, valid := qidParam(c, "qid")
	if !valid {
		return
	}
	var req AltLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "alt_labels array required")
		return
	}

	ctx := c.Request.Context()
	if err := h.items.SetAltLabels(ctx, id, req.AltLabels); err != nil {
		serviceError(c, err)
		return
	}
	d, err := h.items.GetDepicts(ctx, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, toDepicts(d))
}

// DeleteDepicts godoc
// @ID          deleteDepicts
// @Summary     Delete a depicts item and its alt labels
// @Tags        Depicts
// @Param       qid  path  string  true  "Item id"  example(Q144)
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Referenced by edits"
// @Router      /depicts/{qid} [delete]
func (h *Handlers) DeleteDepicts(c *gin.Context) {
	id, valid := qidParam(c, "qid")
	if !valid {
		return
	}
	if err := h.items.DeleteDepicts(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}
