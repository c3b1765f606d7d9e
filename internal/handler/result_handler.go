package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marinai/marinai-backend/internal/middleware"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/marinai/marinai-backend/internal/response"
	"github.com/marinai/marinai-backend/internal/service"
	"github.com/marinai/marinai-backend/internal/validator"
	"github.com/rs/zerolog"
)

// ResultHandler records answers and reports scores.
type ResultHandler struct {
	results resultRecorder
	log     zerolog.Logger
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(results resultRecorder, log zerolog.Logger) *ResultHandler {
	return &ResultHandler{results: results, log: log.With().Str("component", "result_handler").Logger()}
}

// Save godoc
// POST /api/results/save
// Records a single answer inside an attempt set owned by the caller.
func (h *ResultHandler) Save(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SaveOneRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	answer, err := h.results.SaveOne(c.Request.Context(), user.ID, req)
	if err != nil {
		h.fail(c, err, response.ErrResultSetNotFound)
		return
	}

	response.Success(c, http.StatusCreated, answer)
}

// SaveMany godoc
// POST /api/results/savemany
// Records a whole session and returns its score report.
func (h *ResultHandler) SaveMany(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitManyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	report, err := h.results.SubmitMany(c.Request.Context(), user.ID, req)
	if err != nil {
		h.fail(c, err, response.ErrResultSetNotFound)
		return
	}

	response.Success(c, http.StatusCreated, report)
}

// Hide godoc
// DELETE /api/results/:id
// Removes an answer from the caller's review list.
func (h *ResultHandler) Hide(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.results.Hide(c.Request.Context(), user.ID, id); err != nil {
		h.fail(c, err, response.ErrResultNotFound)
		return
	}

	response.NoContent(c)
}

// Detail godoc
// GET /api/results/:id
// Returns an attempt set with its answered questions.
func (h *ResultHandler) Detail(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	detail, err := h.results.Detail(c.Request.Context(), user.ID, id)
	if err != nil {
		h.fail(c, err, response.ErrResultSetNotFound)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func (h *ResultHandler) fail(c *gin.Context, err error, notFound response.ErrCode) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrAnonymous):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Result request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
