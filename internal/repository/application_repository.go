package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/workflow"
)

const applicationDetailSelect = `SELECT a.id, a.job_id, a.applicant_id, a.applicant_name, a.applicant_email, a.applicant_resume, a.applicant_skills, a.cover_letter, a.status, a.created_at, a.updated_at,
j.title AS job_title, j.posted_by AS job_posted_by, j.company_name, j.location AS job_location, j.job_type
FROM applications a JOIN jobs j ON j.id = a.job_id`

// ApplicationRepository persists job applications and keeps the job's
// application_count in step with them.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs the repository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts the application and increments the job's counter. A second
// application to the same job yields ErrDuplicate.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (err error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	app.Status = workflow.ApplicationPending
	if app.ApplicantSkills == nil {
		app.ApplicantSkills = []string{}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin application transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO applications (id, job_id, applicant_id, applicant_name, applicant_email, applicant_resume, applicant_skills, cover_letter, status, created_at, updated_at)
VALUES (:id, :job_id, :applicant_id, :applicant_name, :applicant_email, :applicant_resume, :applicant_skills, :cover_letter, :status, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insert, app); err != nil {
		if isUniqueViolation(err) {
			err = ErrDuplicate
			return err
		}
		return fmt.Errorf("insert application: %w", err)
	}
	result, err := tx.ExecContext(ctx, `UPDATE jobs SET application_count = application_count + 1 WHERE id = $1 AND is_active = TRUE`, app.JobID)
	if err != nil {
		return fmt.Errorf("increment application count: %w", err)
	}
	if err = expectAffected(result, "increment application count"); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit application: %w", err)
	}
	return nil
}

// FindByID returns the application joined with its job.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	var detail models.ApplicationDetail
	if err := r.db.GetContext(ctx, &detail, applicationDetailSelect+` WHERE a.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &detail, nil
}

// ListByApplicant returns a student's applications newest first.
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.ApplicationDetail, error) {
	details := []models.ApplicationDetail{}
	if err := r.db.SelectContext(ctx, &details, applicationDetailSelect+` WHERE a.applicant_id = $1 ORDER BY a.created_at DESC`, applicantID); err != nil {
		return nil, fmt.Errorf("list applications by applicant: %w", err)
	}
	return details, nil
}

// ListByJob returns the applications received by a job newest first.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]models.ApplicationDetail, error) {
	details := []models.ApplicationDetail{}
	if err := r.db.SelectContext(ctx, &details, applicationDetailSelect+` WHERE a.job_id = $1 ORDER BY a.created_at DESC`, jobID); err != nil {
		return nil, fmt.Errorf("list applications by job: %w", err)
	}
	return details, nil
}

// UpdateStatus moves an application from → to only while it is still in from.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to workflow.ApplicationStatus) error {
	const query = `UPDATE applications SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	result, err := r.db.ExecContext(ctx, query, id, from, to, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if err := expectAffected(result, "update application status"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStatusConflict
		}
		return err
	}
	return nil
}

// Withdraw deletes a pending application and decrements the job's counter.
func (r *ApplicationRepository) Withdraw(ctx context.Context, id, applicantID string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin withdraw transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var jobID string
	const remove = `DELETE FROM applications WHERE id = $1 AND applicant_id = $2 AND status = $3 RETURNING job_id`
	err = tx.GetContext(ctx, &jobID, remove, id, applicantID, workflow.ApplicationPending)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrStatusConflict
		return err
	}
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `UPDATE jobs SET application_count = GREATEST(application_count - 1, 0) WHERE id = $1`, jobID); err != nil {
		return fmt.Errorf("decrement application count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit withdraw: %w", err)
	}
	return nil
}
