package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marinai/marinai-backend/internal/grading"
	"github.com/marinai/marinai-backend/internal/middleware"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/marinai/marinai-backend/internal/response"
	"github.com/marinai/marinai-backend/internal/validator"
	"github.com/rs/zerolog"
)

// CBTHandler serves randomized mixed-practice sessions.
type CBTHandler struct {
	cbt cbtGenerator
	log zerolog.Logger
}

// NewCBTHandler creates a new CBTHandler.
func NewCBTHandler(cbt cbtGenerator, log zerolog.Logger) *CBTHandler {
	return &CBTHandler{cbt: cbt, log: log.With().Str("component", "cbt_handler").Logger()}
}

// Generate godoc
// GET /api/cbt?license=&level=&subjects=항해&subjects=법규
// Samples 25 distinct questions for each requested subject.
func (h *CBTHandler) Generate(c *gin.Context) {
	var q model.CBTQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	resp, err := h.cbt.Generate(c.Request.Context(), q, middleware.GetUser(c))
	if err != nil {
		if errors.Is(err, grading.ErrUnknownSubject) || errors.Is(err, grading.ErrInsufficientPool) {
			response.Fail(c, http.StatusNotFound, response.ErrInvalidSelection)
			return
		}
		h.log.Error().Err(err).Msg("Generate CBT session failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
