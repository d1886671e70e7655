package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/portal-api/internal/models"
)

const (
	quizColumns   = `id, title, description, created_by, creator_name, questions, time_limit, attempts, average_score, category, difficulty, is_public, tags, created_at, updated_at`
	resultColumns = `id, quiz_id, quiz_title, user_id, username, score, total_questions, percentage, answers, time_taken, completed_at`
)

// recordAttemptQuery folds a new score into the running average in a single
// statement so concurrent submissions cannot lose updates.
const recordAttemptQuery = `UPDATE quizzes SET attempts = attempts + 1, average_score = (average_score * attempts + $2) / (attempts + 1), updated_at = $3 WHERE id = $1`

// QuizRepository persists quizzes and their immutable results.
type QuizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository constructs the repository.
func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// ListPublic returns public quizzes newest first.
func (r *QuizRepository) ListPublic(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error) {
	conditions := []string{"is_public = TRUE"}
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		conditions = append(conditions, fmt.Sprintf("difficulty = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d OR LOWER(array_to_string(tags, ' ')) LIKE $%d)", len(args), len(args), len(args)))
	}

	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	quizzes := []models.Quiz{}
	if err := r.db.SelectContext(ctx, &quizzes, query, args...); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

// ListByCreator returns every quiz owned by userID.
func (r *QuizRepository) ListByCreator(ctx context.Context, userID string) ([]models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE created_by = $1 ORDER BY created_at DESC`
	quizzes := []models.Quiz{}
	if err := r.db.SelectContext(ctx, &quizzes, query, userID); err != nil {
		return nil, fmt.Errorf("list quizzes by creator: %w", err)
	}
	return quizzes, nil
}

// FindByID returns a quiz including its answer key.
func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`
	var quiz models.Quiz
	if err := r.db.GetContext(ctx, &quiz, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	return &quiz, nil
}

// Create inserts the quiz and bumps the creator's quizzes_created.
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) (err error) {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	if quiz.Tags == nil {
		quiz.Tags = []string{}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin quiz transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO quizzes (` + quizColumns + `) VALUES (:id, :title, :description, :created_by, :creator_name, :questions, :time_limit, :attempts, :average_score, :category, :difficulty, :is_public, :tags, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insert, quiz); err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `UPDATE users SET quizzes_created = quizzes_created + 1 WHERE id = $1`, quiz.CreatedBy); err != nil {
		return fmt.Errorf("increment quizzes created: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit quiz: %w", err)
	}
	return nil
}

// Update writes the editable metadata. Questions are immutable once results exist.
func (r *QuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	quiz.UpdatedAt = time.Now().UTC()
	if quiz.Tags == nil {
		quiz.Tags = []string{}
	}
	const query = `UPDATE quizzes SET title = :title, description = :description, category = :category, difficulty = :difficulty, tags = :tags, is_public = :is_public, time_limit = :time_limit, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, quiz)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	return expectAffected(result, "update quiz")
}

// Delete removes the quiz with its results and decrements the creator's counter.
func (r *QuizRepository) Delete(ctx context.Context, quiz *models.Quiz) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin quiz delete transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM quiz_results WHERE quiz_id = $1`, quiz.ID); err != nil {
		return fmt.Errorf("delete quiz results: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, quiz.ID)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if err = expectAffected(result, "delete quiz"); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE users SET quizzes_created = GREATEST(quizzes_created - 1, 0) WHERE id = $1`, quiz.CreatedBy); err != nil {
		return fmt.Errorf("decrement quizzes created: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit quiz delete: %w", err)
	}
	return nil
}

// RecordResult inserts the result, folds its score into the quiz average and
// bumps the taker's quizzes_taken, all in one transaction.
func (r *QuizRepository) RecordResult(ctx context.Context, result *models.QuizResult) (err error) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	result.CompletedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin quiz result transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO quiz_results (` + resultColumns + `) VALUES (:id, :quiz_id, :quiz_title, :user_id, :username, :score, :total_questions, :percentage, :answers, :time_taken, :completed_at)`
	if _, err = tx.NamedExecContext(ctx, insert, result); err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	updated, err := tx.ExecContext(ctx, recordAttemptQuery, result.QuizID, result.Score, now)
	if err != nil {
		return fmt.Errorf("record quiz attempt: %w", err)
	}
	if err = expectAffected(updated, "record quiz attempt"); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE users SET quizzes_taken = quizzes_taken + 1 WHERE id = $1`, result.UserID); err != nil {
		return fmt.Errorf("increment quizzes taken: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit quiz result: %w", err)
	}
	return nil
}

// Leaderboard ranks results by score, earliest completion first on ties.
func (r *QuizRepository) Leaderboard(ctx context.Context, quizID string, limit int) ([]models.LeaderboardEntry, error) {
	const query = `SELECT username, score, percentage, completed_at FROM quiz_results WHERE quiz_id = $1 ORDER BY score DESC, completed_at ASC LIMIT $2`
	entries := []models.LeaderboardEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, quizID, limit); err != nil {
		return nil, fmt.Errorf("quiz leaderboard: %w", err)
	}
	return entries, nil
}

// History returns a user's most recent results with the quiz category.
func (r *QuizRepository) History(ctx context.Context, userID string, limit int) ([]models.QuizResult, error) {
	const query = `SELECT r.id, r.quiz_id, r.quiz_title, COALESCE(q.category, '') AS quiz_category, r.user_id, r.username, r.score, r.total_questions, r.percentage, r.answers, r.time_taken, r.completed_at
FROM quiz_results r LEFT JOIN quizzes q ON q.id = r.quiz_id
WHERE r.user_id = $1 ORDER BY r.completed_at DESC LIMIT $2`
	results := []models.QuizResult{}
	if err := r.db.SelectContext(ctx, &results, query, userID, limit); err != nil {
		return nil, fmt.Errorf("quiz history: %w", err)
	}
	return results, nil
}

// ResultStats aggregates the stored results of a quiz.
func (r *QuizRepository) ResultStats(ctx context.Context, quizID string) (*models.QuizStats, error) {
	const query = `SELECT COUNT(*) AS total_attempts,
COALESCE(AVG(score), 0) AS average_score,
COALESCE(MAX(score), 0) AS highest_score,
COALESCE(MIN(score), 0) AS lowest_score,
COALESCE(ROUND(100.0 * COUNT(*) FILTER (WHERE percentage >= $2) / NULLIF(COUNT(*), 0), 2), 0) AS pass_rate
FROM quiz_results WHERE quiz_id = $1`
	var stats models.QuizStats
	if err := r.db.GetContext(ctx, &stats, query, quizID, models.PassPercentage); err != nil {
		return nil, fmt.Errorf("quiz result stats: %w", err)
	}
	return &stats, nil
}
