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

const jobColumns = `id, title, description, requirements, location, salary, job_type, experience_level, posted_by, company_name, company_logo, positions, deadline, is_active, application_count, created_at, updated_at`

// JobRepository persists job postings.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs the repository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// ListActive returns open postings newest first.
func (r *JobRepository) ListActive(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	conditions := []string{"is_active = TRUE"}
	var args []interface{}

	if filter.JobType != "" {
		args = append(args, filter.JobType)
		conditions = append(conditions, fmt.Sprintf("job_type = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+strings.ToLower(filter.Location)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(location) LIKE $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d OR LOWER(company_name) LIKE $%d)", len(args), len(args), len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`
	jobs := []models.Job{}
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// ListByRecruiter returns every posting of a recruiter, open or closed.
func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE posted_by = $1 ORDER BY created_at DESC`
	jobs := []models.Job{}
	if err := r.db.SelectContext(ctx, &jobs, query, recruiterID); err != nil {
		return nil, fmt.Errorf("list recruiter jobs: %w", err)
	}
	return jobs, nil
}

// FindByID returns a single posting.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

// Create inserts a posting.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.IsActive = true

	const query = `INSERT INTO jobs (` + jobColumns + `) VALUES (:id, :title, :description, :requirements, :location, :salary, :job_type, :experience_level, :posted_by, :company_name, :company_logo, :positions, :deadline, :is_active, :application_count, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Update writes the editable posting columns.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	const query = `UPDATE jobs SET title = :title, description = :description, requirements = :requirements, location = :location, salary = :salary, job_type = :job_type, experience_level = :experience_level, positions = :positions, deadline = :deadline, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, job)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return expectAffected(result, "update job")
}

// Deactivate closes a posting; applications are kept.
func (r *JobRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET is_active = FALSE, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate job: %w", err)
	}
	return expectAffected(result, "deactivate job")
}
