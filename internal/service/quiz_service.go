package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/models"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

const (
	defaultQuizListLimit    = 50
	defaultHistoryLimit     = 20
	defaultLeaderboardLimit = 10
	maxListLimit            = 100
)

type quizRepository interface {
	ListPublic(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error)
	ListByCreator(ctx context.Context, userID string) ([]models.Quiz, error)
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, quiz *models.Quiz) error
	RecordResult(ctx context.Context, result *models.QuizResult) error
	Leaderboard(ctx context.Context, quizID string, limit int) ([]models.LeaderboardEntry, error)
	History(ctx context.Context, userID string, limit int) ([]models.QuizResult, error)
	ResultStats(ctx context.Context, quizID string) (*models.QuizStats, error)
}

// CreateQuizRequest is the payload for a new quiz.
type CreateQuizRequest struct {
	Title       string            `json:"title" validate:"required,min=3,max=100"`
	Description string            `json:"description" validate:"max=500"`
	Questions   []models.Question `json:"questions" validate:"required,min=1,dive"`
	TimeLimit   *int              `json:"timeLimit" validate:"omitempty,min=0,max=180"`
	Category    string            `json:"category" validate:"max=50"`
	Difficulty  string            `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	IsPublic    *bool             `json:"isPublic"`
	Tags        []string          `json:"tags" validate:"max=10,dive,max=30"`
}

// UpdateQuizRequest changes quiz metadata; questions cannot be edited.
type UpdateQuizRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	Difficulty  *string  `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
	IsPublic    *bool    `json:"isPublic"`
	TimeLimit   *int     `json:"timeLimit" validate:"omitempty,min=0,max=180"`
}

// SubmitQuizRequest carries one answer index per question.
type SubmitQuizRequest struct {
	Answers   []int `json:"answers" validate:"required"`
	TimeTaken int   `json:"timeTaken" validate:"gte=0"`
}

// QuizService manages quizzes and grades submissions.
type QuizService struct {
	repo      quizRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuizService constructs a QuizService.
func NewQuizService(repo quizRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &QuizService{repo: repo, metrics: metrics, validator: validate, logger: logger}
}

// ListPublic returns public quizzes with the answer key removed.
func (s *QuizService) ListPublic(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}
	if strings.EqualFold(filter.Difficulty, "all") {
		filter.Difficulty = ""
	}
	filter.Limit = clampLimit(filter.Limit, defaultQuizListLimit)

	quizzes, err := s.repo.ListPublic(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list quizzes")
	}
	for i := range quizzes {
		quizzes[i] = quizzes[i].WithoutAnswers()
	}
	return quizzes, nil
}

// MyQuizzes returns the caller's quizzes including answers.
func (s *QuizService) MyQuizzes(ctx context.Context, actor Actor) ([]models.Quiz, error) {
	quizzes, err := s.repo.ListByCreator(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list quizzes")
	}
	return quizzes, nil
}

// Get returns a quiz without answers. Private quizzes are only visible to
// their creator and administrators.
func (s *QuizService) Get(ctx context.Context, actor Actor, id string) (*models.Quiz, error) {
	quiz, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	stripped := quiz.WithoutAnswers()
	return &stripped, nil
}

// Create stores a new quiz owned by actor.
func (s *QuizService) Create(ctx context.Context, actor Actor, req CreateQuizRequest) (*models.Quiz, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   actor.ID,
		CreatorName: actor.Name,
		Questions:   req.Questions,
		Category:    strings.TrimSpace(req.Category),
		Difficulty:  models.QuizDifficulty(req.Difficulty),
		IsPublic:    true,
		Tags:        normalizeTags(req.Tags),
	}
	if quiz.Category == "" {
		quiz.Category = models.DefaultQuizCategory
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = models.DifficultyMedium
	}
	if req.IsPublic != nil {
		quiz.IsPublic = *req.IsPublic
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = *req.TimeLimit
	}

	if err := s.repo.Create(ctx, quiz); err != nil {
		return nil, appErrors.Internal(err, "failed to create quiz")
	}
	return quiz, nil
}

// Update applies metadata changes for the creator or an administrator.
func (s *QuizService) Update(ctx context.Context, actor Actor, id string, req UpdateQuizRequest) (*models.Quiz, error) {
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	quiz, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(quiz.CreatedBy) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to update this quiz")
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		quiz.Category = strings.TrimSpace(*req.Category)
		if quiz.Category == "" {
			quiz.Category = models.DefaultQuizCategory
		}
	}
	if req.Difficulty != nil {
		quiz.Difficulty = models.QuizDifficulty(*req.Difficulty)
	}
	if req.Tags != nil {
		quiz.Tags = normalizeTags(req.Tags)
	}
	if req.IsPublic != nil {
		quiz.IsPublic = *req.IsPublic
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = *req.TimeLimit
	}

	if err := s.repo.Update(ctx, quiz); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Quiz not found")
		}
		return nil, appErrors.Internal(err, "failed to update quiz")
	}
	return quiz, nil
}

// Delete removes a quiz and its results.
func (s *QuizService) Delete(ctx context.Context, actor Actor, id string) error {
	quiz, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(quiz.CreatedBy) {
		return appErrors.Clone(appErrors.ErrForbidden, "Not authorized to delete this quiz")
	}
	if err := s.repo.Delete(ctx, quiz); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Quiz not found")
		}
		return appErrors.Internal(err, "failed to delete quiz")
	}
	return nil
}

// Submit grades the answers and records an immutable result.
func (s *QuizService) Submit(ctx context.Context, actor Actor, id string, req SubmitQuizRequest) (*models.SubmissionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	quiz, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	total := len(quiz.Questions)
	if total == 0 {
		return nil, invalid("quiz has no questions")
	}
	if len(req.Answers) != total {
		return nil, invalid(fmt.Sprintf("answers must contain exactly %d entries", total))
	}
	for i, a := range req.Answers {
		if a < 0 || a > 3 {
			return nil, invalid(fmt.Sprintf("answers[%d] must be between 0 and 3", i))
		}
	}

	outcomes, score := gradeAnswers(quiz.Questions, req.Answers)
	percentage := roundTo2(float64(score) / float64(total) * 100)

	answers := make([]int64, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = int64(a)
	}
	result := &models.QuizResult{
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		UserID:         actor.ID,
		Username:       actor.Name,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Answers:        answers,
		TimeTaken:      req.TimeTaken,
	}
	if err := s.repo.RecordResult(ctx, result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Quiz not found")
		}
		return nil, appErrors.Internal(err, "failed to record result")
	}
	s.metrics.QuizSubmitted(result.Passed())

	return &models.SubmissionResult{
		ResultID:       result.ID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Grade:          Grade(percentage),
		Passed:         result.Passed(),
		Results:        outcomes,
	}, nil
}

// History returns the caller's most recent results.
func (s *QuizService) History(ctx context.Context, actor Actor, limit int) ([]models.QuizResult, error) {
	results, err := s.repo.History(ctx, actor.ID, clampLimit(limit, defaultHistoryLimit))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load history")
	}
	return results, nil
}

// Leaderboard returns the top results of a quiz.
func (s *QuizService) Leaderboard(ctx context.Context, actor Actor, id string, limit int) ([]models.LeaderboardEntry, error) {
	if _, err := s.visible(ctx, actor, id); err != nil {
		return nil, err
	}
	entries, err := s.repo.Leaderboard(ctx, id, clampLimit(limit, defaultLeaderboardLimit))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load leaderboard")
	}
	return entries, nil
}

// Stats summarises every attempt of a quiz. Attempts and the running average
// come from the quiz row; the extremes and pass rate from stored results.
func (s *QuizService) Stats(ctx context.Context, actor Actor, id string) (*models.QuizStats, error) {
	quiz, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.ResultStats(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load quiz stats")
	}
	stats.TotalAttempts = quiz.Attempts
	stats.AverageScore = roundTo2(quiz.AverageScore)
	stats.PassRate = roundTo2(stats.PassRate)
	return stats, nil
}

func (s *QuizService) find(ctx context.Context, id string) (*models.Quiz, error) {
	quiz, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Quiz not found")
		}
		return nil, appErrors.Internal(err, "failed to load quiz")
	}
	return quiz, nil
}

func (s *QuizService) visible(ctx context.Context, actor Actor, id string) (*models.Quiz, error) {
	quiz, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublic && !actor.Owns(quiz.CreatedBy) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Quiz not found")
	}
	return quiz, nil
}

func gradeAnswers(questions models.Questions, answers []int) ([]models.QuestionOutcome, int) {
	outcomes := make([]models.QuestionOutcome, len(questions))
	score := 0
	for i, q := range questions {
		correct := -1
		if q.CorrectAnswer != nil {
			correct = *q.CorrectAnswer
		}
		ok := answers[i] == correct
		if ok {
			score++
		}
		outcomes[i] = models.QuestionOutcome{
			Question:      q.Question,
			UserAnswer:    answers[i],
			CorrectAnswer: correct,
			IsCorrect:     ok,
		}
	}
	return outcomes, score
}

// Grade maps a percentage to a letter grade.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	}
	return "F"
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
