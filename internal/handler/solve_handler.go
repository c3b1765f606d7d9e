package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marinai/marinai-backend/internal/middleware"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/marinai/marinai-backend/internal/response"
	"github.com/marinai/marinai-backend/internal/service"
	"github.com/marinai/marinai-backend/internal/validator"
	"github.com/rs/zerolog"
)

// SolveHandler serves whole exam sets and their images.
type SolveHandler struct {
	solve solver
	media imageOpener
	log   zerolog.Logger
}

// NewSolveHandler creates a new SolveHandler.
func NewSolveHandler(solve solver, media imageOpener, log zerolog.Logger) *SolveHandler {
	return &SolveHandler{
		solve: solve,
		media: media,
		log:   log.With().Str("component", "solve_handler").Logger(),
	}
}

// Retrieve godoc
// GET /api/solve?examtype=&year=&license=&level=&round=
// Returns every question of one exam set. Signed-in users also get a new odapset_id.
func (h *SolveHandler) Retrieve(c *gin.Context) {
	var q model.SolveQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	resp, err := h.solve.RetrieveOneInning(c.Request.Context(), q, middleware.GetUser(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamSetNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Retrieve exam set failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Image godoc
// GET /api/solve/img/*path
// Streams an exam-set image relative to the media root.
func (h *SolveHandler) Image(c *gin.Context) {
	img, err := h.media.Open(c.Param("path"))
	if err != nil {
		c.Header("Cache-Control", "no-store")
		switch {
		case errors.Is(err, service.ErrPathForbidden):
			response.Fail(c, http.StatusForbidden, response.ErrPathForbidden)
		case errors.Is(err, service.ErrImageNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrImageNotFound)
		default:
			h.log.Error().Err(err).Msg("Open image failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	defer img.File.Close()

	c.Header("Content-Type", img.ContentType)
	if rs, ok := img.File.(io.ReadSeeker); ok {
		http.ServeContent(c.Writer, c.Request, img.Info.Name(), img.Info.ModTime(), rs)
		return
	}
	c.DataFromReader(http.StatusOK, img.Info.Size(), img.ContentType, img.File, nil)
}
