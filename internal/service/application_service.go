package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/repository"
	"github.com/noah-isme/portal-api/internal/workflow"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/storage"
)

// FilesPathPrefix is where signed download links are served.
const FilesPathPrefix = "/files"

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id string) (*models.ApplicationDetail, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.ApplicationDetail, error)
	ListByJob(ctx context.Context, jobID string) ([]models.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id string, from, to workflow.ApplicationStatus) error
	Withdraw(ctx context.Context, id, applicantID string) error
}

type jobLookup interface {
	FindByID(ctx context.Context, id string) (*models.Job, error)
}

type fileOpener interface {
	Open(ref string) (io.ReadSeekCloser, error)
}

// ApplyRequest is a student's application to a job.
type ApplyRequest struct {
	JobID       string `json:"jobId" validate:"required,uuid"`
	CoverLetter string `json:"coverLetter" validate:"max=5000"`
}

// UpdateApplicationStatusRequest is the recruiter's decision.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// ResumeLink is a short-lived download URL for an applicant's resume.
type ResumeLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ApplicationService handles job applications and their decisions.
type ApplicationService struct {
	repo      applicationRepository
	jobs      jobLookup
	users     userLookup
	files     fileOpener
	signer    *storage.SignedURLSigner
	audit     auditRecorder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// ApplicationDeps groups the collaborators of ApplicationService.
type ApplicationDeps struct {
	Repo    applicationRepository
	Jobs    jobLookup
	Users   userLookup
	Files   fileOpener
	Signer  *storage.SignedURLSigner
	Audit   auditRecorder
	Metrics *MetricsService
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(deps ApplicationDeps, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ApplicationService{
		repo:      deps.Repo,
		jobs:      deps.Jobs,
		users:     deps.Users,
		files:     deps.Files,
		signer:    deps.Signer,
		audit:     deps.Audit,
		metrics:   deps.Metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Apply records a pending application with a snapshot of the student.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, req ApplyRequest) (*models.Application, error) {
	req.JobID = strings.TrimSpace(req.JobID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	job, err := s.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return nil, appErrors.Internal(err, "failed to load job")
	}
	if !job.IsActive || (job.Deadline != nil && s.now().After(*job.Deadline)) {
		return nil, invalid("This job is no longer accepting applications")
	}

	student, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrTokenInvalid, "user no longer exists")
		}
		return nil, appErrors.Internal(err, "failed to load applicant")
	}
	if student.Resume == "" {
		return nil, invalid("Please upload your resume before applying")
	}

	app := &models.Application{
		JobID:           job.ID,
		ApplicantID:     student.ID,
		ApplicantName:   student.Name,
		ApplicantEmail:  student.Email,
		ApplicantResume: student.Resume,
		ApplicantSkills: student.Skills,
		CoverLetter:     strings.TrimSpace(req.CoverLetter),
	}
	if err := s.repo.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "You have already applied to this job")
		case errors.Is(err, sql.ErrNoRows):
			return nil, invalid("This job is no longer accepting applications")
		}
		return nil, appErrors.Internal(err, "failed to submit application")
	}
	s.metrics.ApplicationEvent("created")
	return app, nil
}

// MyApplications lists the student's applications.
func (s *ApplicationService) MyApplications(ctx context.Context, actor Actor) ([]models.ApplicationDetail, error) {
	apps, err := s.repo.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list applications")
	}
	return apps, nil
}

// ForJob lists applications received by a job, for its recruiter or an administrator.
func (s *ApplicationService) ForJob(ctx context.Context, actor Actor, jobID string) ([]models.ApplicationDetail, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Job not found")
		}
		return nil, appErrors.Internal(err, "failed to load job")
	}
	if !actor.Owns(job.PostedBy) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to view these applications")
	}
	apps, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list applications")
	}
	return apps, nil
}

// Get returns an application to its applicant, the posting recruiter or an administrator.
func (s *ApplicationService) Get(ctx context.Context, actor Actor, id string) (*models.ApplicationDetail, error) {
	app, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != app.ApplicantID && !actor.Owns(app.JobPostedBy) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to view this application")
	}
	return app, nil
}

// UpdateStatus records the posting recruiter's decision on a pending application.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, id string, req UpdateApplicationStatusRequest, meta AuditMeta) (*models.ApplicationDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	to, err := workflow.ParseApplicationStatus(req.Status)
	if err != nil {
		return nil, invalid(err.Error())
	}
	app, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != app.JobPostedBy {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to update this application")
	}
	if !workflow.CanDecideApplication(app.Status, to) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "application has already been "+string(app.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, app.Status, to); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "application status changed, reload and try again")
		}
		return nil, appErrors.Internal(err, "failed to update application")
	}

	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actorID:    actor.ID,
		action:     models.AuditActionApplicationStatus,
		resource:   "application",
		resourceID: id,
		oldValues:  map[string]string{"status": string(app.Status)},
		newValues:  map[string]string{"status": string(to)},
		meta:       meta,
	})
	s.metrics.ApplicationEvent(string(to))

	app.Status = to
	app.UpdatedAt = s.now().UTC()
	return app, nil
}

// Withdraw deletes the applicant's own pending application.
func (s *ApplicationService) Withdraw(ctx context.Context, actor Actor, id string) error {
	app, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if actor.ID != app.ApplicantID {
		return appErrors.Clone(appErrors.ErrForbidden, "Not authorized to withdraw this application")
	}
	if !workflow.CanWithdraw(app.Status) {
		return appErrors.Clone(appErrors.ErrInvalidTransition, "only pending applications can be withdrawn")
	}
	if err := s.repo.Withdraw(ctx, id, actor.ID); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "only pending applications can be withdrawn")
		}
		return appErrors.Internal(err, "failed to withdraw application")
	}
	s.metrics.ApplicationEvent("withdrawn")
	return nil
}

// ResumeLink signs a download URL for the resume attached to an application.
func (s *ApplicationService) ResumeLink(ctx context.Context, actor Actor, id string) (*ResumeLink, error) {
	app, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantResume == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Resume not found")
	}
	token, expiresAt, err := s.signer.Generate(actor.ID, app.ApplicantResume)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sign resume link")
	}
	return &ResumeLink{URL: FilesPathPrefix + "/" + token, ExpiresAt: expiresAt.UTC()}, nil
}

// OpenFile verifies a signed token and opens the private file it names.
func (s *ApplicationService) OpenFile(token string) (io.ReadSeekCloser, string, error) {
	subject, ref, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, "", appErrors.Clone(appErrors.ErrForbidden, "download link has expired")
		}
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "File not found")
	}
	if !strings.HasPrefix(ref, "private/") {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "File not found")
	}
	file, err := s.files.Open(ref)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "File not found")
		}
		return nil, "", appErrors.Internal(err, "failed to open file")
	}
	s.logger.Debug("signed file served", zap.String("subject", subject), zap.String("ref", ref))
	return file, path.Base(ref), nil
}

func (s *ApplicationService) find(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Application not found")
		}
		return nil, appErrors.Internal(err, "failed to load application")
	}
	return app, nil
}
