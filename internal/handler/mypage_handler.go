package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marinai/marinai-backend/internal/export"
	"github.com/marinai/marinai-backend/internal/middleware"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/marinai/marinai-backend/internal/response"
	"github.com/marinai/marinai-backend/internal/validator"
	"github.com/rs/zerolog"
)

// MyPageHandler serves the signed-in user's history and review list.
type MyPageHandler struct {
	results resultRecorder
	log     zerolog.Logger
}

// NewMyPageHandler creates a new MyPageHandler.
func NewMyPageHandler(results resultRecorder, log zerolog.Logger) *MyPageHandler {
	return &MyPageHandler{results: results, log: log.With().Str("component", "mypage_handler").Logger()}
}

// Odaps godoc
// GET /api/mypage/odaps
// Returns the latest wrong answer per question with its miss count.
func (h *MyPageHandler) Odaps(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	entries, err := h.results.ReviewList(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", user.ID).Msg("Review list failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, entries)
}

// ExamResults godoc
// GET /api/mypage/exam_results
func (h *MyPageHandler) ExamResults(c *gin.Context) {
	h.history(c, model.ExamTypeReal)
}

// CBTResults godoc
// GET /api/mypage/cbt_results
func (h *MyPageHandler) CBTResults(c *gin.Context) {
	h.history(c, model.ExamTypeCBT)
}

// PracticeResults godoc
// GET /api/mypage/practice_results
func (h *MyPageHandler) PracticeResults(c *gin.Context) {
	h.history(c, model.ExamTypePractice)
}

// ExportResults godoc
// GET /api/mypage/results.xlsx?mode=exam
// Downloads the score history of one mode as a spreadsheet.
func (h *MyPageHandler) ExportResults(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var q model.HistoryExportQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	reports, err := h.results.History(c.Request.Context(), user.ID, q.Mode)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", user.ID).Str("mode", string(q.Mode)).Msg("History failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	data, err := export.History(reports)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", user.ID).Msg("History export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := fmt.Sprintf("results_%s_%s.xlsx", q.Mode, time.Now().Format("20060102"))
	response.Attachment(c, filename, export.XLSXContentType, data)
}

func (h *MyPageHandler) history(c *gin.Context, mode model.ExamType) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	reports, err := h.results.History(c.Request.Context(), user.ID, mode)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", user.ID).Str("mode", string(mode)).Msg("History failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if reports == nil {
		reports = []model.ScoreReport{}
	}

	response.Success(c, http.StatusOK, reports)
}
