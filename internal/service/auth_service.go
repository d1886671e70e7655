package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/repository"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuthConfig defines configuration for token issuing.
type AuthConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// AuthService provides registration, login and token verification.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.Expiry <= 0 {
		config.Expiry = 7 * 24 * time.Hour
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, metrics: metrics, config: config, now: time.Now}
}

// Register creates an account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		s.metrics.AuthAttempt("register", false)
		return nil, validationError(err)
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.metrics.AuthAttempt("register", false)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Email already registered")
		}
		return nil, appErrors.Internal(err, "failed to create user")
	}

	token, _, err := s.IssueToken(user)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create access token")
	}

	recordAudit(ctx, s.repo, s.logger, auditEntry{
		actorID:    user.ID,
		action:     models.AuditActionRegister,
		resource:   "auth",
		resourceID: user.ID,
		newValues:  map[string]string{"role": string(user.Role)},
		meta:       AuditMeta{IP: req.IP, UserAgent: req.UserAgent},
	})
	s.metrics.AuthAttempt("register", true)

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user and returns an issued token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		s.metrics.AuthAttempt("login", false)
		return nil, validationError(err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.AuthAttempt("login", false)
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Internal(err, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.AuthAttempt("login", false)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	token, _, err := s.IssueToken(user)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create access token")
	}

	now := s.now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	recordAudit(ctx, s.repo, s.logger, auditEntry{
		actorID:    user.ID,
		action:     models.AuditActionLogin,
		resource:   "auth",
		resourceID: user.ID,
		newValues:  map[string]string{"status": "success"},
		meta:       AuditMeta{IP: req.IP, UserAgent: req.UserAgent},
	})
	s.metrics.AuthAttempt("login", true)

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Me returns the stored profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	return user, nil
}

// IssueToken signs an access token for user.
func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiry)
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and validates an access token returning the claims.
// Expired tokens are reported separately from every other failure.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Wrap(err, appErrors.ErrTokenExpired.Code, appErrors.ErrTokenExpired.Status, "Token expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrTokenInvalid.Code, appErrors.ErrTokenInvalid.Status, "Invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrTokenInvalid, "Invalid token")
	}
	return claims, nil
}

// Authenticate validates the token and confirms the principal still exists.
// The returned claims carry the stored role, so role changes apply immediately.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrTokenInvalid, "user no longer exists")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	claims.Role = user.Role
	claims.Email = user.Email
	claims.Name = user.Name
	return claims, nil
}
