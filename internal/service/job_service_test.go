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

type mockJobRepo struct {
	jobs        map[string]*models.Job
	filter      models.JobFilter
	created     *models.Job
	deactivated string
}

func (m *mockJobRepo) ListActive(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	m.filter = filter
	return []models.Job{}, nil
}

func (m *mockJobRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error) {
	return []models.Job{}, nil
}

func (m *mockJobRepo) FindByID(ctx context.Context, id string) (*models.Job, error) {
	if j, ok := m.jobs[id]; ok {
		clone := *j
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockJobRepo) Create(ctx context.Context, job *models.Job) error {
	job.ID = "j-new"
	job.IsActive = true
	m.created = job
	return nil
}

func (m *mockJobRepo) Update(ctx context.Context, job *models.Job) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) Deactivate(ctx context.Context, id string) error {
	m.deactivated = id
	return nil
}

func validJobRequest() CreateJobRequest {
	return CreateJobRequest{Title: "Backend Engineer", Description: "Build APIs", Location: "Remote", JobType: "Full-time"}
}

func TestJobServiceCreateCompanyFallback(t *testing.T) {
	users := staticUsers{
		"r1": {ID: "r1", Name: "Rita", Role: models.RoleRecruiter},
		"r2": {ID: "r2", Name: "Rob", Role: models.RoleRecruiter, CompanyName: "Acme", CompanyLogo: "/uploads/company-logos/r2/logo.png"},
	}
	svc := NewJobService(&mockJobRepo{}, users, nil, nil)

	job, err := svc.Create(context.Background(), Actor{ID: "r1", Role: models.RoleRecruiter}, validJobRequest())
	require.NoError(t, err)
	assert.Equal(t, "Rita", job.CompanyName)
	assert.Equal(t, 1, job.Positions)
	assert.Equal(t, "r1", job.PostedBy)

	job, err = svc.Create(context.Background(), Actor{ID: "r2", Role: models.RoleRecruiter}, validJobRequest())
	require.NoError(t, err)
	assert.Equal(t, "Acme", job.CompanyName)
	assert.Equal(t, "/uploads/company-logos/r2/logo.png", job.CompanyLogo)
}

func TestJobServiceCreateValidation(t *testing.T) {
	svc := NewJobService(&mockJobRepo{}, staticUsers{}, nil, nil)

	req := validJobRequest()
	req.JobType = "Freelance"
	_, err := svc.Create(context.Background(), Actor{ID: "r1"}, req)
	assert.Equal(t, "jobType must be one of: Full-time, Part-time, Contract, Internship, Remote", appErrors.FromError(err).Message)

	req = validJobRequest()
	req.Title = "  "
	_, err = svc.Create(context.Background(), Actor{ID: "r1"}, req)
	assert.Equal(t, "title is required", appErrors.FromError(err).Message)
}

func TestJobServiceUpdateAndDeleteOwnership(t *testing.T) {
	repo := &mockJobRepo{jobs: map[string]*models.Job{"j1": {ID: "j1", Title: "Old", PostedBy: "r1", IsActive: true}}}
	svc := NewJobService(repo, staticUsers{}, nil, nil)

	_, err := svc.Update(context.Background(), Actor{ID: "r2", Role: models.RoleRecruiter}, "j1", UpdateJobRequest{Title: strPtr("New")})
	assert.Equal(t, appErrors.ErrForbidden.Code, appCode(err))

	job, err := svc.Update(context.Background(), Actor{ID: "r1", Role: models.RoleRecruiter}, "j1", UpdateJobRequest{Title: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", job.Title)
	assert.True(t, job.IsActive)

	assert.Equal(t, appErrors.ErrForbidden.Code, appCode(svc.Delete(context.Background(), Actor{ID: "r2", Role: models.RoleRecruiter}, "j1")))
	require.NoError(t, svc.Delete(context.Background(), Actor{ID: "a1", Role: models.RoleAdmin}, "j1"))
	assert.Equal(t, "j1", repo.deactivated)

	assert.Equal(t, appErrors.ErrNotFound.Code, appCode(svc.Delete(context.Background(), Actor{ID: "r1"}, "missing")))
}

func TestJobServiceListFilter(t *testing.T) {
	repo := &mockJobRepo{}
	svc := NewJobService(repo, staticUsers{}, nil, nil)

	_, err := svc.List(context.Background(), models.JobFilter{JobType: "all", Location: " Berlin ", Search: "go"})
	require.NoError(t, err)
	assert.Empty(t, repo.filter.JobType)
	assert.Equal(t, "Berlin", repo.filter.Location)
	assert.Equal(t, "go", repo.filter.Search)
}
