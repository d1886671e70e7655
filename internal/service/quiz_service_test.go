package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portal-api/internal/models"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

type mockQuizRepo struct {
	quizzes  map[string]*models.Quiz
	filter   models.QuizFilter
	created  *models.Quiz
	deleted  *models.Quiz
	recorded *models.QuizResult
	limit    int
	stats    models.QuizStats
}

func (m *mockQuizRepo) ListPublic(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error) {
	m.filter = filter
	out := []models.Quiz{}
	for _, q := range m.quizzes {
		if q.IsPublic {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *mockQuizRepo) ListByCreator(ctx context.Context, userID string) ([]models.Quiz, error) {
	out := []models.Quiz{}
	for _, q := range m.quizzes {
		if q.CreatedBy == userID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *mockQuizRepo) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	if q, ok := m.quizzes[id]; ok {
		clone := *q
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockQuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	quiz.ID = "q-new"
	m.created = quiz
	return nil
}

func (m *mockQuizRepo) Update(ctx context.Context, quiz *models.Quiz) error {
	m.quizzes[quiz.ID] = quiz
	return nil
}

func (m *mockQuizRepo) Delete(ctx context.Context, quiz *models.Quiz) error {
	m.deleted = quiz
	return nil
}

func (m *mockQuizRepo) RecordResult(ctx context.Context, result *models.QuizResult) error {
	result.ID = "r-new"
	m.recorded = result
	return nil
}

func (m *mockQuizRepo) Leaderboard(ctx context.Context, quizID string, limit int) ([]models.LeaderboardEntry, error) {
	m.limit = limit
	return []models.LeaderboardEntry{}, nil
}

func (m *mockQuizRepo) History(ctx context.Context, userID string, limit int) ([]models.QuizResult, error) {
	m.limit = limit
	return []models.QuizResult{}, nil
}

func (m *mockQuizRepo) ResultStats(ctx context.Context, quizID string) (*models.QuizStats, error) {
	stats := m.stats
	return &stats, nil
}

func intPtr(v int) *int { return &v }

func sampleQuestions(answers ...int) models.Questions {
	qs := make(models.Questions, len(answers))
	for i, a := range answers {
		qs[i] = models.Question{Question: "Q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: intPtr(a)}
	}
	return qs
}

func newQuizFixture() *mockQuizRepo {
	return &mockQuizRepo{quizzes: map[string]*models.Quiz{
		"pub":  {ID: "pub", Title: "Go", CreatedBy: "owner", IsPublic: true, Questions: sampleQuestions(0, 1, 2), Attempts: 3, AverageScore: 1.6666},
		"priv": {ID: "priv", Title: "Secret", CreatedBy: "owner", IsPublic: false, Questions: sampleQuestions(3)},
	}}
}

func TestGrade(t *testing.T) {
	cases := map[float64]string{100: "A", 90: "A", 89.99: "B", 80: "B", 70: "C", 60: "D", 59.99: "F", 0: "F"}
	for pct, want := range cases {
		assert.Equal(t, want, Grade(pct), "percentage %v", pct)
	}
}

func TestQuizServiceListPublicStripsAnswers(t *testing.T) {
	repo := newQuizFixture()
	svc := NewQuizService(repo, nil, nil, nil)

	quizzes, err := svc.ListPublic(context.Background(), models.QuizFilter{Category: "all", Difficulty: "All"})
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	for _, q := range quizzes[0].Questions {
		assert.Nil(t, q.CorrectAnswer)
	}
	assert.Empty(t, repo.filter.Category)
	assert.Empty(t, repo.filter.Difficulty)
	assert.Equal(t, 50, repo.filter.Limit)
}

func TestQuizServiceGetPrivateVisibility(t *testing.T) {
	svc := NewQuizService(newQuizFixture(), nil, nil, nil)

	_, err := svc.Get(context.Background(), Actor{}, "priv")
	assert.Equal(t, appErrors.ErrNotFound.Code, appCode(err))

	quiz, err := svc.Get(context.Background(), Actor{ID: "owner", Role: models.RoleUser}, "priv")
	require.NoError(t, err)
	assert.Nil(t, quiz.Questions[0].CorrectAnswer)

	_, err = svc.Get(context.Background(), Actor{ID: "a1", Role: models.RoleAdmin}, "priv")
	require.NoError(t, err)
}

func TestQuizServiceCreateDefaults(t *testing.T) {
	repo := newQuizFixture()
	svc := NewQuizService(repo, nil, nil, nil)

	quiz, err := svc.Create(context.Background(), Actor{ID: "u1", Name: "Ana"}, CreateQuizRequest{
		Title:     "Basics",
		Questions: sampleQuestions(1),
		Tags:      []string{"go", "Go", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultQuizCategory, quiz.Category)
	assert.Equal(t, models.DifficultyMedium, quiz.Difficulty)
	assert.True(t, quiz.IsPublic)
	assert.Equal(t, "Ana", quiz.CreatorName)
	assert.Equal(t, []string{"go"}, []string(quiz.Tags))
}

func TestQuizServiceCreateValidation(t *testing.T) {
	svc := NewQuizService(newQuizFixture(), nil, nil, nil)
	actor := Actor{ID: "u1"}

	_, err := svc.Create(context.Background(), actor, CreateQuizRequest{Title: "Go", Questions: sampleQuestions(1)})
	assert.Equal(t, "title must be at least 3 characters", appErrors.FromError(err).Message)

	bad := sampleQuestions(1)
	bad[0].Options = []string{"a", "b"}
	_, err = svc.Create(context.Background(), actor, CreateQuizRequest{Title: "Basics", Questions: bad})
	assert.Equal(t, "questions[0].options must have exactly 4 items", appErrors.FromError(err).Message)

	bad = sampleQuestions(1)
	bad[0].CorrectAnswer = intPtr(4)
	_, err = svc.Create(context.Background(), actor, CreateQuizRequest{Title: "Basics", Questions: bad})
	assert.Equal(t, "questions[0].correctAnswer must be less than or equal to 3", appErrors.FromError(err).Message)

	_, err = svc.Create(context.Background(), actor, CreateQuizRequest{Title: "Basics", Questions: sampleQuestions(1), TimeLimit: intPtr(181)})
	assert.Equal(t, "timeLimit must be less than or equal to 180", appErrors.FromError(err).Message)
}

func TestQuizServiceSubmit(t *testing.T) {
	repo := newQuizFixture()
	svc := NewQuizService(repo, nil, nil, nil)

	res, err := svc.Submit(context.Background(), Actor{ID: "u1", Name: "Ana"}, "pub", SubmitQuizRequest{Answers: []int{0, 1, 3}, TimeTaken: 42})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, 66.67, res.Percentage)
	assert.Equal(t, "D", res.Grade)
	assert.True(t, res.Passed)
	require.Len(t, res.Results, 3)
	assert.False(t, res.Results[2].IsCorrect)
	assert.Equal(t, 2, res.Results[2].CorrectAnswer)

	require.NotNil(t, repo.recorded)
	assert.Equal(t, "Ana", repo.recorded.Username)
	assert.Equal(t, []int64{0, 1, 3}, []int64(repo.recorded.Answers))
	assert.Equal(t, "r-new", res.ResultID)
}

func TestQuizServiceSubmitValidation(t *testing.T) {
	svc := NewQuizService(newQuizFixture(), nil, nil, nil)
	actor := Actor{ID: "u1"}

	_, err := svc.Submit(context.Background(), actor, "pub", SubmitQuizRequest{Answers: []int{0, 1}})
	assert.Equal(t, "answers must contain exactly 3 entries", appErrors.FromError(err).Message)

	_, err = svc.Submit(context.Background(), actor, "pub", SubmitQuizRequest{Answers: []int{0, 1, 4}})
	assert.Equal(t, "answers[2] must be between 0 and 3", appErrors.FromError(err).Message)

	_, err = svc.Submit(context.Background(), actor, "pub", SubmitQuizRequest{})
	assert.Equal(t, "answers is required", appErrors.FromError(err).Message)

	_, err = svc.Submit(context.Background(), actor, "priv", SubmitQuizRequest{Answers: []int{3}})
	assert.Equal(t, appErrors.ErrNotFound.Code, appCode(err))
}

func TestQuizServiceUpdateAndDeleteOwnership(t *testing.T) {
	repo := newQuizFixture()
	svc := NewQuizService(repo, nil, nil, nil)

	_, err := svc.Update(context.Background(), Actor{ID: "intruder", Role: models.RoleUser}, "pub", UpdateQuizRequest{Title: strPtr("Hacked")})
	assert.Equal(t, appErrors.ErrForbidden.Code, appCode(err))

	public := false
	quiz, err := svc.Update(context.Background(), Actor{ID: "owner"}, "pub", UpdateQuizRequest{IsPublic: &public, Difficulty: strPtr("Hard")})
	require.NoError(t, err)
	assert.False(t, quiz.IsPublic)
	assert.Equal(t, models.DifficultyHard, quiz.Difficulty)
	assert.Equal(t, "Go", quiz.Title)

	assert.Equal(t, appErrors.ErrForbidden.Code, appCode(svc.Delete(context.Background(), Actor{ID: "intruder"}, "priv")))
	require.NoError(t, svc.Delete(context.Background(), Actor{ID: "a1", Role: models.RoleAdmin}, "priv"))
	assert.Equal(t, "priv", repo.deleted.ID)
}

func TestQuizServiceLimitsAndStats(t *testing.T) {
	repo := newQuizFixture()
	repo.stats = models.QuizStats{TotalAttempts: 2, AverageScore: 1, HighestScore: 3, LowestScore: 0, PassRate: 33.333}
	svc := NewQuizService(repo, nil, nil, nil)

	_, err := svc.History(context.Background(), Actor{ID: "u1"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.limit)

	_, err = svc.Leaderboard(context.Background(), Actor{}, "pub", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.limit)

	_, err = svc.Leaderboard(context.Background(), Actor{}, "pub", 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.limit)

	stats, err := svc.Stats(context.Background(), Actor{}, "pub")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalAttempts)
	assert.Equal(t, 1.67, stats.AverageScore)
	assert.Equal(t, 3, stats.HighestScore)
	assert.Equal(t, 33.33, stats.PassRate)
}
