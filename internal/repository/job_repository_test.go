package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/workflow"
)

func TestListActiveJobsFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "requirements", "location", "salary", "job_type", "experience_level", "posted_by", "company_name", "company_logo", "positions", "deadline", "is_active", "application_count", "created_at", "updated_at"}).
		AddRow("j1", "Go Engineer", "Build APIs", "", "Berlin", "", "Full-time", "Mid", "r1", "Acme", "", 1, nil, true, 0, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs WHERE is_active = TRUE AND job_type = $1 AND LOWER(location) LIKE $2 AND (LOWER(title) LIKE $3 OR LOWER(description) LIKE $3 OR LOWER(company_name) LIKE $3) ORDER BY created_at DESC")).
		WithArgs("Full-time", "%berlin%", "%go%").
		WillReturnRows(rows)

	jobs, err := repo.ListActive(context.Background(), models.JobFilter{JobType: "Full-time", Location: "Berlin", Search: "Go"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobFullTime, jobs[0].JobType)
	assert.Nil(t, jobs[0].Deadline)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateJob(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE jobs SET is_active = FALSE, updated_at = $2 WHERE id = $1")).
		WithArgs("j1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "j1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationIncrementsCount(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE jobs SET application_count = application_count + 1 WHERE id = $1 AND is_active = TRUE")).
		WithArgs("j1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := &models.Application{JobID: "j1", ApplicantID: "s1", ApplicantName: "Sam", ApplicantEmail: "s@example.com", ApplicantResume: "resumes/s1/cv.pdf"}
	require.NoError(t, repo.Create(context.Background(), app))
	assert.Equal(t, workflow.ApplicationPending, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Application{JobID: "j1", ApplicantID: "s1"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusTerminal(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2")).
		WithArgs("a1", "pending", "accepted", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "a1", workflow.ApplicationPending, workflow.ApplicationAccepted)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestWithdrawApplication(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM applications WHERE id = $1 AND applicant_id = $2 AND status = $3 RETURNING job_id")).
		WithArgs("a1", "s1", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"job_id"}).AddRow("j1"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE jobs SET application_count = GREATEST(application_count - 1, 0) WHERE id = $1")).
		WithArgs("j1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Withdraw(context.Background(), "a1", "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawDecidedApplication(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM applications")).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Withdraw(context.Background(), "a1", "s1"), ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
