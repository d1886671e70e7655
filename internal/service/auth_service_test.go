package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/repository"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

type mockAuthRepo struct {
	users            map[string]*models.User
	createErr        error
	findErr          error
	auditLogs        []*models.AuditLog
	lastLoginUpdated bool
}

func newMockAuthRepo(users ...*models.User) *mockAuthRepo {
	m := &mockAuthRepo{users: map[string]*models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = "user-" + user.Email
	m.users[user.ID] = user
	return nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func hashedUser(t *testing.T, id, email, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: id, Name: "Test " + id, Email: email, PasswordHash: string(hash), Role: role}
}

func newTestAuthService(repo authUserRepository) *AuthService {
	return NewAuthService(repo, nil, zap.NewNop(), nil, AuthConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test"})
}

func appCode(err error) string {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func TestAuthServiceRegister(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuthService(repo)

	resp, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Ana", Email: "Ana@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.NotEqual(t, "secret1", resp.User.PasswordHash)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionRegister, repo.auditLogs[0].Action)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newMockAuthRepo(hashedUser(t, "u1", "ana@example.com", "secret1", models.RoleUser))
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appCode(err))
	assert.Equal(t, "Email already registered", appErrors.FromError(err).Message)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newMockAuthRepo())

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "123"})
	require.Error(t, err)
	assert.Equal(t, "password must be at least 6 characters", appErrors.FromError(err).Message)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1", Role: models.RoleAdmin})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appCode(err))
	assert.Contains(t, appErrors.FromError(err).Message, "role must be one of")
}

func TestAuthServiceLogin(t *testing.T) {
	repo := newMockAuthRepo(hashedUser(t, "u1", "ana@example.com", "secret1", models.RoleStudent))
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ANA@example.com", Password: "secret1", IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, repo.lastLoginUpdated)
	require.NotNil(t, resp.User.LastLogin)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, "127.0.0.1", repo.auditLogs[0].IPAddress)
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	repo := newMockAuthRepo(hashedUser(t, "u1", "ana@example.com", "secret1", models.RoleUser))
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appCode(err))

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appCode(err))

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "secret1"})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appCode(err))
	assert.Equal(t, 401, appErrors.FromError(err).Status)
	assert.False(t, repo.lastLoginUpdated)
}

func TestValidateTokenExpiredAndInvalid(t *testing.T) {
	user := &models.User{ID: "u1", Email: "a@b.c", Role: models.RoleUser}
	svc := newTestAuthService(newMockAuthRepo(user))

	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, _, err := svc.IssueToken(user)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	assert.Equal(t, appErrors.ErrTokenExpired.Code, appCode(err))

	_, err = svc.ValidateToken("not-a-token")
	assert.Equal(t, appErrors.ErrTokenInvalid.Code, appCode(err))

	other := NewAuthService(newMockAuthRepo(), nil, nil, nil, AuthConfig{Secret: "other"})
	foreign, _, err := other.IssueToken(user)
	require.NoError(t, err)
	svc.now = time.Now
	_, err = svc.ValidateToken(foreign)
	assert.Equal(t, appErrors.ErrTokenInvalid.Code, appCode(err))
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	svc := newTestAuthService(newMockAuthRepo())
	claims := &models.JWTClaims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Equal(t, appErrors.ErrTokenInvalid.Code, appCode(err))
}

func TestAuthenticateUsesStoredRole(t *testing.T) {
	user := &models.User{ID: "u1", Email: "a@b.c", Name: "A", Role: models.RoleUser}
	repo := newMockAuthRepo(user)
	svc := newTestAuthService(repo)

	token, _, err := svc.IssueToken(user)
	require.NoError(t, err)

	user.Role = models.RoleAdmin
	claims, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	delete(repo.users, "u1")
	_, err = svc.Authenticate(context.Background(), token)
	assert.Equal(t, appErrors.ErrTokenInvalid.Code, appCode(err))
	assert.Equal(t, "user no longer exists", appErrors.FromError(err).Message)
}

func TestAuthServiceMe(t *testing.T) {
	svc := newTestAuthService(newMockAuthRepo(&models.User{ID: "u1", Name: "A"}))

	user, err := svc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "A", user.Name)

	_, err = svc.Me(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appCode(err))
}
