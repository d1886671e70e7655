package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
)

// QuizDifficulty is one of Easy, Medium or Hard.
type QuizDifficulty string

const (
	DifficultyEasy   QuizDifficulty = "Easy"
	DifficultyMedium QuizDifficulty = "Medium"
	DifficultyHard   QuizDifficulty = "Hard"
)

// DefaultQuizCategory is used when a quiz is created without a category.
const DefaultQuizCategory = "General"

// PassPercentage is the minimum percentage counted as a pass.
const PassPercentage = 60.0

// Question has exactly four options; CorrectAnswer is hidden from non-owners.
type Question struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty" validate:"required,min=0,max=3"`
}

// Questions is stored as a JSONB array.
type Questions []Question

// Value implements driver.Valuer.
func (q Questions) Value() (driver.Value, error) {
	if q == nil {
		return []byte("[]"), nil
	}
	return jsonValue(q)
}

// Scan implements sql.Scanner.
func (q *Questions) Scan(src interface{}) error { return scanJSON(src, q) }

// Quiz is a set of multiple-choice questions with running attempt statistics.
type Quiz struct {
	ID           string         `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`
	CreatedBy    string         `db:"created_by" json:"createdBy"`
	CreatorName  string         `db:"creator_name" json:"creatorName"`
	Questions    Questions      `db:"questions" json:"questions"`
	TimeLimit    int            `db:"time_limit" json:"timeLimit"`
	Attempts     int            `db:"attempts" json:"attempts"`
	AverageScore float64        `db:"average_score" json:"averageScore"`
	Category     string         `db:"category" json:"category"`
	Difficulty   QuizDifficulty `db:"difficulty" json:"difficulty"`
	IsPublic     bool           `db:"is_public" json:"isPublic"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

// WithoutAnswers returns a copy safe to show to quiz takers.
func (q Quiz) WithoutAnswers() Quiz {
	stripped := make(Questions, len(q.Questions))
	for i, question := range q.Questions {
		stripped[i] = Question{Question: question.Question, Options: question.Options}
	}
	q.Questions = stripped
	return q
}

// QuizFilter narrows the public quiz listing.
type QuizFilter struct {
	Search     string
	Category   string
	Difficulty string
	Limit      int
}

// QuizResult is an immutable record of one submission.
type QuizResult struct {
	ID             string        `db:"id" json:"id"`
	QuizID         string        `db:"quiz_id" json:"quizId"`
	QuizTitle      string        `db:"quiz_title" json:"quizTitle"`
	QuizCategory   string        `db:"quiz_category" json:"quizCategory,omitempty"`
	UserID         string        `db:"user_id" json:"userId"`
	Username       string        `db:"username" json:"username"`
	Score          int           `db:"score" json:"score"`
	TotalQuestions int           `db:"total_questions" json:"totalQuestions"`
	Percentage     float64       `db:"percentage" json:"percentage"`
	Answers        pq.Int64Array `db:"answers" json:"answers"`
	TimeTaken      int           `db:"time_taken" json:"timeTaken"`
	CompletedAt    time.Time     `db:"completed_at" json:"completedAt"`
}

// Passed reports whether the result meets PassPercentage.
func (r QuizResult) Passed() bool {
	return r.Percentage >= PassPercentage
}

// LeaderboardEntry is a single ranked result.
type LeaderboardEntry struct {
	Username    string    `db:"username" json:"username"`
	Score       int       `db:"score" json:"score"`
	Percentage  float64   `db:"percentage" json:"percentage"`
	CompletedAt time.Time `db:"completed_at" json:"completedAt"`
}

// QuizStats aggregates every result of a quiz.
type QuizStats struct {
	TotalAttempts int     `db:"total_attempts" json:"totalAttempts"`
	AverageScore  float64 `db:"average_score" json:"averageScore"`
	HighestScore  int     `db:"highest_score" json:"highestScore"`
	LowestScore   int     `db:"lowest_score" json:"lowestScore"`
	PassRate      float64 `db:"pass_rate" json:"passRate"`
}

// QuestionOutcome reports one graded answer.
type QuestionOutcome struct {
	Question      string `json:"question"`
	UserAnswer    int    `json:"userAnswer"`
	CorrectAnswer int    `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// SubmissionResult is returned to the quiz taker after grading.
type SubmissionResult struct {
	ResultID       string            `json:"resultId"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"totalQuestions"`
	Percentage     float64           `json:"percentage"`
	Grade          string            `json:"grade"`
	Passed         bool              `json:"passed"`
	Results        []QuestionOutcome `json:"results"`
}
