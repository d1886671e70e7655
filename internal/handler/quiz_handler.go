package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/response"
)

type quizService interface {
	ListPublic(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error)
	MyQuizzes(ctx context.Context, actor service.Actor) ([]models.Quiz, error)
	Get(ctx context.Context, actor service.Actor, id string) (*models.Quiz, error)
	Create(ctx context.Context, actor service.Actor, req service.CreateQuizRequest) (*models.Quiz, error)
	Update(ctx context.Context, actor service.Actor, id string, req service.UpdateQuizRequest) (*models.Quiz, error)
	Delete(ctx context.Context, actor service.Actor, id string) error
	Submit(ctx context.Context, actor service.Actor, id string, req service.SubmitQuizRequest) (*models.SubmissionResult, error)
	History(ctx context.Context, actor service.Actor, limit int) ([]models.QuizResult, error)
	Leaderboard(ctx context.Context, actor service.Actor, id string, limit int) ([]models.LeaderboardEntry, error)
	Stats(ctx context.Context, actor service.Actor, id string) (*models.QuizStats, error)
}

// QuizHandler exposes quiz authoring, taking and scoring.
type QuizHandler struct {
	service quizService
}

// NewQuizHandler constructs the handler.
func NewQuizHandler(svc quizService) *QuizHandler {
	return &QuizHandler{service: svc}
}

// List godoc
// @Summary List public quizzes
// @Tags Quizzes
// @Produce json
// @Param search query string false "Title or description substring"
// @Param category query string false "Category, or all"
// @Param difficulty query string false "Easy, Medium, Hard or all"
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {array} models.Quiz
// @Failure 400 {object} response.ErrorBody
// @Router /quizzes [get]
func (h *QuizHandler) List(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	filter := models.QuizFilter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Limit:      limit,
	}
	quizzes, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quizzes)
}

// Get godoc
// @Summary Get quiz without answers
// @Tags Quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} response.ErrorBody
// @Router /quizzes/{id} [get]
func (h *QuizHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Quiz"))
		return
	}
	actor, _ := actorFromContext(c)
	quiz, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz)
}

// Create godoc
// @Summary Create quiz
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateQuizRequest true "Quiz"
// @Success 201 {object} models.Quiz
// @Failure 400 {object} response.ErrorBody
// @Router /quizzes [post]
func (h *QuizHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	quiz, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, quiz)
}

// Update godoc
// @Summary Update quiz
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Param payload body service.UpdateQuizRequest true "Fields to change"
// @Success 200 {object} models.Quiz
// @Failure 403 {object} response.ErrorBody
// @Router /quizzes/{id} [put]
func (h *QuizHandler) Update(c *gin.Context) {
	actor, id, ok := quizTarget(c)
	if !ok {
		return
	}
	var req service.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	quiz, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz)
}

// Delete godoc
// @Summary Delete quiz and its results
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} response.MessageBody
// @Failure 403 {object} response.ErrorBody
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) Delete(c *gin.Context) {
	actor, id, ok := quizTarget(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Quiz deleted successfully")
}

// Submit godoc
// @Summary Submit answers
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Param payload body service.SubmitQuizRequest true "Answers"
// @Success 201 {object} models.SubmissionResult
// @Failure 400 {object} response.ErrorBody
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) Submit(c *gin.Context) {
	actor, id, ok := quizTarget(c)
	if !ok {
		return
	}
	var req service.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.Submit(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// MyQuizzes godoc
// @Summary List own quizzes with answers
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Quiz
// @Router /quizzes/user/my-quizzes [get]
func (h *QuizHandler) MyQuizzes(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	quizzes, err := h.service.MyQuizzes(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quizzes)
}

// History godoc
// @Summary Own submission history
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {array} models.QuizResult
// @Router /quizzes/user/history [get]
func (h *QuizHandler) History(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	results, err := h.service.History(c.Request.Context(), actor, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Leaderboard godoc
// @Summary Quiz leaderboard
// @Tags Quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {array} models.LeaderboardEntry
// @Router /quizzes/{id}/leaderboard [get]
func (h *QuizHandler) Leaderboard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Quiz"))
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	actor, _ := actorFromContext(c)
	entries, err := h.service.Leaderboard(c.Request.Context(), actor, id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Stats godoc
// @Summary Quiz statistics
// @Tags Quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} models.QuizStats
// @Router /quizzes/{id}/stats [get]
func (h *QuizHandler) Stats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Quiz"))
		return
	}
	actor, _ := actorFromContext(c)
	stats, err := h.service.Stats(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

func quizTarget(c *gin.Context) (service.Actor, string, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return actor, "", false
	}
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Quiz"))
		return actor, "", false
	}
	return actor, id, true
}

// queryLimit parses ?limit=; zero means the service default.
func queryLimit(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive integer"))
		return 0, false
	}
	return limit, true
}
