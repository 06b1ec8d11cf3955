package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eremean89/poetry/internal/middleware"
	"github.com/eremean89/poetry/internal/repositories"
	"github.com/eremean89/poetry/internal/services"
	"github.com/eremean89/poetry/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	authoringService services.QuizAuthoringService
	takingService    services.QuizTakingService
	exportService    services.QuizExportService
}

func NewQuizHandler(
	authoringService services.QuizAuthoringService,
	takingService services.QuizTakingService,
	exportService services.QuizExportService,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:      NewBaseHandler(logger),
		authoringService: authoringService,
		takingService:    takingService,
		exportService:    exportService,
	}
}

// ===== AUTHORING (admin) =====

// GetQuizForAuthoring returns the quiz in its editable draft shape
func (h *QuizHandler) GetQuizForAuthoring(c *gin.Context) {
	poetID := h.parseIDParam(c, "poet_id")
	if poetID == 0 {
		return
	}

	quiz, err := h.authoringService.GetForAuthoring(c.Request.Context(), middleware.GetPrincipal(c), poetID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// SaveQuiz replaces the poet's quiz question set
func (h *QuizHandler) SaveQuiz(c *gin.Context) {
	poetID := h.parseIDParam(c, "poet_id")
	if poetID == 0 {
		return
	}

	var req services.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Saving quiz", "poet_id", poetID, "question_count", len(req.Questions))

	quiz, err := h.authoringService.Save(c.Request.Context(), middleware.GetPrincipal(c), poetID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// ExportQuiz streams the quiz as an xlsx workbook
func (h *QuizHandler) ExportQuiz(c *gin.Context) {
	poetID := h.parseIDParam(c, "poet_id")
	if poetID == 0 {
		return
	}

	data, err := h.exportService.ExportQuiz(c.Request.Context(), middleware.GetPrincipal(c), poetID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz-poet-%d.xlsx", poetID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== TAKING =====

// GetQuizForTaking returns the sanitized question set
func (h *QuizHandler) GetQuizForTaking(c *gin.Context) {
	poetID := h.parseIDParam(c, "poet_id")
	if poetID == 0 {
		return
	}

	quiz, err := h.takingService.GetForTaking(c.Request.Context(), middleware.GetPrincipal(c), poetID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// SubmitQuiz grades a submission and returns the per-question report
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	poetID := h.parseIDParam(c, "poet_id")
	if poetID == 0 {
		return
	}

	var req services.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Grading quiz submission", "poet_id", poetID, "answer_count", len(req.Answers))

	report, err := h.takingService.Submit(c.Request.Context(), middleware.GetPrincipal(c), poetID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetHistory returns the caller's past quiz results, newest first
func (h *QuizHandler) GetHistory(c *gin.Context) {
	filters := repositories.ResultFilters{
		Limit:  parseQueryInt(c, "limit", 20),
		Offset: parseQueryInt(c, "offset", 0),
	}
	if quizIDStr := c.Query("quiz_id"); quizIDStr != "" {
		if quizID, err := strconv.ParseUint(quizIDStr, 10, 32); err == nil {
			id := uint(quizID)
			filters.QuizID = &id
		}
	}

	history, err := h.takingService.GetHistory(c.Request.Context(), middleware.GetPrincipal(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func parseQueryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}
