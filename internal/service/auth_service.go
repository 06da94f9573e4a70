package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmcastellanos/device-access-api/internal/models"
	"github.com/jmcastellanos/device-access-api/internal/repository"
	appErrors "github.com/jmcastellanos/device-access-api/pkg/errors"
	"github.com/jmcastellanos/device-access-api/pkg/validation"
)

type authUserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByNameAndEmail(ctx context.Context, name, email string) (*models.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateRefreshToken(ctx context.Context, id int64, token string) error
}

type tokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService provides login, registration and token use cases.
type AuthService struct {
	repo      authUserRepository
	tokens    tokenDenylist
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, tokens tokenDenylist, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &AuthService{repo: repo, tokens: tokens, validator: validate, logger: logger, config: config}
}

// Login authenticates a user by name, email and password, and returns a new login
// token. A fresh refresh token is stored on the user, overwriting the prior one;
// previously issued login tokens stay valid until they expire or are revoked.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Validation(http.StatusBadRequest, validation.Messages(err))
	}

	user, err := s.repo.FindByNameAndEmail(ctx, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.ErrInvalidCredentials
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Label, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", appErrors.ErrWrongPassword
	}

	loginToken, err := s.generateLoginToken(user)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Label, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Label, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	if err := s.repo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Label, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	return loginToken, nil
}

// Refresh exchanges a stored refresh token for a new login token. The refresh
// token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, req models.RefreshRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Validation(http.StatusBadRequest, validation.Messages(err))
	}

	user, err := s.repo.FindByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.ErrInvalidToken
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Label, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	loginToken, err := s.generateLoginToken(user)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Label, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	return loginToken, nil
}

// Register creates a user after validating the payload, including the password
// confirmation and email uniqueness. The returned record never carries the hash.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(http.StatusUnprocessableEntity, validation.Messages(err))
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, emailTakenError()
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Clone(appErrors.ErrServer, "")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrServer, "")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTakenError()
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrServer, "")
	}

	return user, nil
}

// Logout revokes exactly the token that authenticated this request. Other
// outstanding tokens for the same user remain valid.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Label, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	return nil
}

// UserInfo returns the public projection of the authenticated user.
func (s *AuthService) UserInfo(ctx context.Context, userID int64) (*models.UserInfo, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUnauthorized
		}
		s.logger.Error("failed to load user info", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrInternal, "")
	}
	info := user.Info()
	return &info, nil
}

// ValidateToken parses and validates a login token, rejecting revoked ones.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.ErrUnauthorized
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("failed to check token revocation", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrInternal, "")
	}
	if revoked {
		return nil, appErrors.ErrUnauthorized
	}

	return claims, nil
}

func (s *AuthService) generateLoginToken(user *models.User) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// generateRefreshToken returns a 60-character opaque token.
func generateRefreshToken() (string, error) {
	buf := make([]byte, 45)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func emailTakenError() *appErrors.Error {
	return appErrors.Validation(http.StatusUnprocessableEntity, map[string][]string{
		"email": {"The email has already been taken."},
	})
}
