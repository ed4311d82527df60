// Artwork and human HTTP handlers.
//
//   - POST   /artworks        GET /artworks/{qid}   DELETE /artworks/{qid}
//   - POST   /humans          GET /humans/{qid}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// CreateArtwork godoc
// @ID          createArtwork
// @Summary     Cache an artwork
// @Tags        Artworks
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateArtworkRequest  true  "Artwork"
// @Success     201   {object}  handlers.ArtworkResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409   {object}  handlers.ErrorResponse  "Item already exists"
// @Router      /artworks [post]
func (h *Handlers) CreateArtwork(c *gin.Context) {
	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	id, err := domain.ParseQID(req.QID)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidQID, "qid must look like Q123")
		return
	}
	a := &domain.ArtworkItem{ItemID: id, Label: req.Label, Entity: req.Entity}
	if err := h.items.CreateArtwork(c.Request.Context(), a); err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, toArtwork(a))
}

// GetArtwork godoc
// @ID          getArtwork
// @Summary     Read an artwork
// @Tags        Artworks
// @Produce     json
// @Param       qid  path      string  true  "Item id"  example(Q12418)
// @Success     200  {object}  handlers.ArtworkResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /artworks/{qid} [get]
func (h *Handlers) GetArtwork(c *gin.Context) {
	id, valid := qidParam(c, "qid")
	if !valid {
		return
	}
	a, err := h.items.GetArtwork(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, toArtwork(a))
}

// DeleteArtwork godoc
// @ID          deleteArtwork
// @Summary     Delete an artwork no edit references
// @Tags        Artworks
// @Param       qid  path  string  true  "Item id"  example(Q12418)
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Referenced by edits"
// @Router      /artworks/{qid} [delete]
func (h *Handlers) DeleteArtwork(c *gin.Context) {
	id, valid := qidParam(c, "qid")
	if !valid {
		return
	}
	if err := h.items.DeleteArtwork(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}

// CreateHuman godoc
// @ID          createHuman
// @Summary     Cache a human with birth and death years
// @Tags        Humans
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateHumanRequest  true  "Human"
// @Success     201   {object}  handlers.HumanResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409   {object}  handlers.ErrorResponse  "Item already exists"
// @Router      /humans [post]
func (h *Handlers) CreateHuman(c *gin.Context) {
	var req CreateHumanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "qid, year_of_birth and year_of_death are required")
		return
	}
	id, err := domain.ParseQID(req.QID)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidQID, "qid must look like Q123")
		return
	}
	hu := &domain.HumanItem{ItemID: id, YearOfBirth: req.YearOfBirth, YearOfDeath: req.YearOfDeath}
	if err := h.items.CreateHuman(c.Request.Context(), hu); err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, toHuman(hu))
}

// GetHuman godoc
// @ID          getHuman
// @Summary     Read a human and the derived age at death
// @Tags        Humans
// @Produce     json
// @Param       qid  path      string  true  "Item id"  example(Q762)
// @Success     200  {object}  handlers.HumanResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /humans/{qid} [get]
func (h *Handlers) GetHuman(c *gin.Context) {
	id, valid := qidParam(c, "qid")
	if !valid {
		return
	}
	hu, err := h.items.GetHuman(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, toHuman(hu))
}
