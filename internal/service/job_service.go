package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/models"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

type jobRepository interface {
	ListActive(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	Deactivate(ctx context.Context, id string) error
}

// CreateJobRequest is the recruiter payload for a new posting.
type CreateJobRequest struct {
	Title           string     `json:"title" validate:"required,max=100"`
	Description     string     `json:"description" validate:"required,max=5000"`
	Requirements    string     `json:"requirements" validate:"max=5000"`
	Location        string     `json:"location" validate:"required,max=100"`
	Salary          string     `json:"salary" validate:"max=100"`
	JobType         string     `json:"jobType" validate:"required,oneof=Full-time Part-time Contract Internship Remote"`
	ExperienceLevel string     `json:"experienceLevel" validate:"max=50"`
	Positions       *int       `json:"positions" validate:"omitempty,min=1"`
	Deadline        *time.Time `json:"deadline"`
}

// UpdateJobRequest changes only the fields that are present.
type UpdateJobRequest struct {
	Title           *string    `json:"title" validate:"omitempty,min=1,max=100"`
	Description     *string    `json:"description" validate:"omitempty,min=1,max=5000"`
	Requirements    *string    `json:"requirements" validate:"omitempty,max=5000"`
	Location        *string    `json:"location" validate:"omitempty,min=1,max=100"`
	Salary          *string    `json:"salary" validate:"omitempty,max=100"`
	JobType         *string    `json:"jobType" validate:"omitempty,oneof=Full-time Part-time Contract Internship Remote"`
	ExperienceLevel *string    `json:"experienceLevel" validate:"omitempty,max=50"`
	Positions       *int       `json:"positions" validate:"omitempty,min=1"`
	Deadline        *time.Time `json:"deadline"`
	IsActive        *bool      `json:"isActive"`
}

// JobService manages recruiter postings.
type JobService struct {
	repo      jobRepository
	users     userLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJobService constructs a JobService.
func NewJobService(repo jobRepository, users userLookup, validate *validator.Validate, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &JobService{repo: repo, users: users, validator: validate, logger: logger}
}

// List returns open postings.
func (s *JobService) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	filter.Location = strings.TrimSpace(filter.Location)
	filter.Search = strings.TrimSpace(filter.Search)
	if strings.EqualFold(filter.JobType, "all") {
		filter.JobType = ""
	}
	jobs, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list jobs")
	}
	return jobs, nil
}

// MyJobs returns every posting of the calling recruiter.
func (s *JobService) MyJobs(ctx context.Context, actor Actor) ([]models.Job, error) {
	jobs, err := s.repo.ListByRecruiter(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list jobs")
	}
	return jobs, nil
}

// Get returns a posting.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return nil, appErrors.Internal(err, "failed to load job")
	}
	return job, nil
}

// Create publishes a posting with the recruiter's company details.
func (s *JobService) Create(ctx context.Context, actor Actor, req CreateJobRequest) (*models.Job, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	recruiter, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrTokenInvalid, "user no longer exists")
		}
		return nil, appErrors.Internal(err, "failed to load recruiter")
	}
	company := recruiter.CompanyName
	if company == "" {
		company = recruiter.Name
	}

	positions := 1
	if req.Positions != nil {
		positions = *req.Positions
	}
	job := &models.Job{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Location:        req.Location,
		Salary:          req.Salary,
		JobType:         models.JobType(req.JobType),
		ExperienceLevel: req.ExperienceLevel,
		PostedBy:        recruiter.ID,
		CompanyName:     company,
		CompanyLogo:     recruiter.CompanyLogo,
		Positions:       positions,
		Deadline:        req.Deadline,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Internal(err, "failed to create job")
	}
	return job, nil
}

// Update edits a posting for its recruiter or an administrator.
func (s *JobService) Update(ctx context.Context, actor Actor, id string, req UpdateJobRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(job.PostedBy) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to update this job")
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Location != nil {
		job.Location = strings.TrimSpace(*req.Location)
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.JobType != nil {
		job.JobType = models.JobType(*req.JobType)
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Positions != nil {
		job.Positions = *req.Positions
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return nil, appErrors.Internal(err, "failed to update job")
	}
	return job, nil
}

// Delete closes a posting; it stays visible to its recruiter.
func (s *JobService) Delete(ctx context.Context, actor Actor, id string) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(job.PostedBy) {
		return appErrors.Clone(appErrors.ErrForbidden, "Not authorized to delete this job")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return appErrors.Internal(err, "failed to delete job")
	}
	return nil
}
