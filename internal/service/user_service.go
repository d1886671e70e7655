package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/models"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type profileFileStore interface {
	SaveImage(kind ImageKind, ownerID string, r io.Reader) (string, error)
	SaveResume(ownerID string, r io.Reader) (string, error)
	Remove(ref string)
}

// UpdateProfileRequest carries the editable profile fields. Fields that do
// not apply to the caller's role are ignored.
type UpdateProfileRequest struct {
	Name               *string  `json:"name" form:"name" validate:"omitempty,min=1,max=100"`
	Bio                *string  `json:"bio" form:"bio" validate:"omitempty,max=500"`
	Skills             []string `json:"skills" form:"skills" validate:"omitempty,dive,max=50"`
	CompanyName        *string  `json:"companyName" form:"companyName" validate:"omitempty,max=100"`
	CompanyDescription *string  `json:"companyDescription" form:"companyDescription" validate:"omitempty,max=1000"`
}

// ProfileUploads holds the optional files sent with a profile update.
type ProfileUploads struct {
	ProfilePhoto io.Reader
	Resume       io.Reader
	CompanyLogo  io.Reader
}

// UpdateRoleRequest is the admin payload for changing a role.
type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" validate:"required,oneof=user admin student recruiter"`
}

// UserService handles profile and account administration.
type UserService struct {
	repo      userRepository
	files     profileFileStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, files profileFileStore, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &UserService{repo: repo, files: files, validator: validate, logger: logger}
}

// UpdateProfile applies the role-specific subset of req and stores uploads.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest, uploads ProfileUploads) (*models.User, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}

	if uploads.Resume != nil && user.Role != models.RoleStudent {
		return nil, invalid("only students can upload a resume")
	}
	if uploads.CompanyLogo != nil && user.Role != models.RoleRecruiter {
		return nil, invalid("only recruiters can upload a company logo")
	}
	if uploads.ProfilePhoto != nil && user.Role == models.RoleRecruiter {
		return nil, invalid("recruiters upload a company logo instead of a profile photo")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	switch user.Role {
	case models.RoleStudent:
		if req.Bio != nil {
			user.Bio = *req.Bio
		}
		if req.Skills != nil {
			user.Skills = normalizeTags(req.Skills)
		}
	case models.RoleRecruiter:
		if req.CompanyName != nil {
			user.CompanyName = strings.TrimSpace(*req.CompanyName)
		}
		if req.CompanyDescription != nil {
			user.CompanyDescription = *req.CompanyDescription
		}
	}

	var stored, replaced []string
	rollback := func() {
		for _, ref := range stored {
			s.files.Remove(ref)
		}
	}
	save := func(current *string, fn func() (string, error)) error {
		ref, err := fn()
		if err != nil {
			return err
		}
		stored = append(stored, ref)
		if *current != "" {
			replaced = append(replaced, *current)
		}
		*current = ref
		return nil
	}

	if uploads.ProfilePhoto != nil {
		if err := save(&user.ProfilePhoto, func() (string, error) {
			return s.files.SaveImage(ImageProfilePhoto, user.ID, uploads.ProfilePhoto)
		}); err != nil {
			rollback()
			return nil, err
		}
	}
	if uploads.CompanyLogo != nil {
		if err := save(&user.CompanyLogo, func() (string, error) {
			return s.files.SaveImage(ImageCompanyLogo, user.ID, uploads.CompanyLogo)
		}); err != nil {
			rollback()
			return nil, err
		}
	}
	if uploads.Resume != nil {
		if err := save(&user.Resume, func() (string, error) {
			return s.files.SaveResume(user.ID, uploads.Resume)
		}); err != nil {
			rollback()
			return nil, err
		}
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to update profile")
	}
	// Applications keep their own snapshot of the resume reference, so
	// replaced resumes stay on disk.
	for _, ref := range replaced {
		if !strings.HasPrefix(ref, "private/") {
			s.files.Remove(ref)
		}
	}
	return user, nil
}

// List returns users newest first.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list users")
	}
	return users, nil
}

// UpdateRole changes the role of a user. Only administrators reach this.
func (s *UserService) UpdateRole(ctx context.Context, actorID, targetID string, req UpdateRoleRequest, meta AuditMeta) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	if actorID == targetID && req.Role != user.Role {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "administrators cannot change their own role")
	}

	previous := user.Role
	if err := s.repo.UpdateRole(ctx, targetID, req.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to update role")
	}
	user.Role = req.Role

	recordAudit(ctx, s.repo, s.logger, auditEntry{
		actorID:    actorID,
		action:     models.AuditActionRoleChange,
		resource:   "user",
		resourceID: targetID,
		oldValues:  map[string]string{"role": string(previous)},
		newValues:  map[string]string{"role": string(req.Role)},
		meta:       meta,
	})
	return user, nil
}

// normalizeTags trims entries and drops empty or repeated ones.
func normalizeTags(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
