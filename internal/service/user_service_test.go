package service

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portal-api/internal/models"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

type mockUserRepo struct {
	users     map[string]*models.User
	updated   *models.User
	auditLogs []*models.AuditLog
	listed    models.UserFilter
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	m.updated = user
	return nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	if _, ok := m.users[id]; !ok {
		return sql.ErrNoRows
	}
	m.users[id].Role = role
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	m.listed = filter
	out := []models.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

type mockFileStore struct {
	saved     []string
	removed   []string
	err       error
	resumeErr error
}

func (m *mockFileStore) SaveImage(kind ImageKind, ownerID string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	ref := "/uploads/" + string(kind) + "/" + ownerID + "/new.png"
	m.saved = append(m.saved, ref)
	return ref, nil
}

func (m *mockFileStore) SaveResume(ownerID string, r io.Reader) (string, error) {
	if m.resumeErr != nil {
		return "", m.resumeErr
	}
	ref := "private/resumes/" + ownerID + "/new.pdf"
	m.saved = append(m.saved, ref)
	return ref, nil
}

func (m *mockFileStore) Remove(ref string) {
	m.removed = append(m.removed, ref)
}

func strPtr(s string) *string { return &s }

func TestUserServiceUpdateProfileStudent(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"s1": {ID: "s1", Name: "Old", Role: models.RoleStudent, ProfilePhoto: "/uploads/profile-photos/s1/old.png", Resume: "private/resumes/s1/old.pdf"},
	}}
	files := &mockFileStore{}
	svc := NewUserService(repo, files, nil, nil)

	user, err := svc.UpdateProfile(context.Background(), "s1", UpdateProfileRequest{
		Name:        strPtr(" New "),
		Bio:         strPtr("hello"),
		Skills:      []string{"Go", " go ", "SQL", ""},
		CompanyName: strPtr("ignored"),
	}, ProfileUploads{ProfilePhoto: strings.NewReader("img"), Resume: strings.NewReader("pdf")})
	require.NoError(t, err)

	assert.Equal(t, "New", user.Name)
	assert.Equal(t, "hello", user.Bio)
	assert.Equal(t, []string{"Go", "SQL"}, []string(user.Skills))
	assert.Empty(t, user.CompanyName)
	assert.Equal(t, "/uploads/profile-photos/s1/new.png", user.ProfilePhoto)
	assert.Equal(t, "private/resumes/s1/new.pdf", user.Resume)
	assert.Equal(t, []string{"/uploads/profile-photos/s1/old.png"}, files.removed)
}

func TestUserServiceUpdateProfileRecruiter(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"r1": {ID: "r1", Name: "Rec", Role: models.RoleRecruiter},
	}}
	svc := NewUserService(repo, &mockFileStore{}, nil, nil)

	user, err := svc.UpdateProfile(context.Background(), "r1", UpdateProfileRequest{
		CompanyName: strPtr("Acme"),
		Bio:         strPtr("ignored"),
	}, ProfileUploads{CompanyLogo: strings.NewReader("logo")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", user.CompanyName)
	assert.Empty(t, user.Bio)
	assert.Equal(t, "/uploads/company-logos/r1/new.png", user.CompanyLogo)

	_, err = svc.UpdateProfile(context.Background(), "r1", UpdateProfileRequest{}, ProfileUploads{Resume: strings.NewReader("pdf")})
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(err))
}

func TestUserServiceUpdateProfileRollsBackUploadsOnFailure(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{"s1": {ID: "s1", Role: models.RoleStudent}}}
	files := &mockFileStore{resumeErr: invalid("Only PDF files are allowed for resumes")}
	svc := NewUserService(repo, files, nil, nil)

	_, err := svc.UpdateProfile(context.Background(), "s1", UpdateProfileRequest{}, ProfileUploads{
		ProfilePhoto: strings.NewReader("img"),
		Resume:       strings.NewReader("not a pdf"),
	})
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(err))
	assert.Equal(t, []string{"/uploads/profile-photos/s1/new.png"}, files.removed)
	assert.Nil(t, repo.updated)
}

func TestUserServiceUpdateProfileValidation(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{"s1": {ID: "s1", Role: models.RoleStudent}}}
	svc := NewUserService(repo, &mockFileStore{}, nil, nil)

	_, err := svc.UpdateProfile(context.Background(), "s1", UpdateProfileRequest{Name: strPtr(" ")}, ProfileUploads{})
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(err))
	assert.Equal(t, "name must be at least 1 characters", appErrors.FromError(err).Message)

	_, err = svc.UpdateProfile(context.Background(), "missing", UpdateProfileRequest{}, ProfileUploads{})
	assert.Equal(t, appErrors.ErrNotFound.Code, appCode(err))
}

func TestUserServiceUpdateRole(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"a1": {ID: "a1", Role: models.RoleAdmin},
		"u1": {ID: "u1", Role: models.RoleUser},
	}}
	svc := NewUserService(repo, nil, nil, nil)

	user, err := svc.UpdateRole(context.Background(), "a1", "u1", UpdateRoleRequest{Role: models.RoleRecruiter}, AuditMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleRecruiter, user.Role)
	require.Len(t, repo.auditLogs, 1)
	assert.JSONEq(t, `{"role":"user"}`, string(repo.auditLogs[0].OldValues))

	_, err = svc.UpdateRole(context.Background(), "a1", "u1", UpdateRoleRequest{Role: "owner"}, AuditMeta{})
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(err))

	_, err = svc.UpdateRole(context.Background(), "a1", "a1", UpdateRoleRequest{Role: models.RoleUser}, AuditMeta{})
	assert.Equal(t, appErrors.ErrForbidden.Code, appCode(err))

	_, err = svc.UpdateRole(context.Background(), "a1", "ghost", UpdateRoleRequest{Role: models.RoleUser}, AuditMeta{})
	assert.Equal(t, appErrors.ErrNotFound.Code, appCode(err))
}
