package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmcastellanos/device-access-api/internal/models"
	"github.com/jmcastellanos/device-access-api/internal/service"
	"github.com/jmcastellanos/device-access-api/pkg/validation"
)

type singleUserRepo struct {
	user         *models.User
	refreshToken string
}

func (r *singleUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, sql.ErrNoRows
}

func (r *singleUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, sql.ErrNoRows
}

func (r *singleUserRepo) FindByNameAndEmail(ctx context.Context, name, email string) (*models.User, error) {
	if r.user != nil && r.user.Name == name && r.user.Email == email {
		return r.user, nil
	}
	return nil, sql.ErrNoRows
}

func (r *singleUserRepo) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	if r.user != nil && r.refreshToken == token {
		return r.user, nil
	}
	return nil, sql.ErrNoRows
}

func (r *singleUserRepo) Create(ctx context.Context, user *models.User) error {
	r.user = user
	return nil
}

func (r *singleUserRepo) UpdateRefreshToken(ctx context.Context, id int64, token string) error {
	r.refreshToken = token
	return nil
}

type memoryDenylist struct {
	revoked map[string]bool
}

func (d *memoryDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	d.revoked[jti] = true
	return nil
}

func (d *memoryDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return d.revoked[jti], nil
}

func newAuthRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &singleUserRepo{user: &models.User{ID: 1, Name: "Alice", Email: "alice@example.com", PasswordHash: string(hash)}}

	svc := service.NewAuthService(repo, &memoryDenylist{revoked: make(map[string]bool)}, validation.New(), zap.NewNop(), service.AuthConfig{
		Secret:     "secret",
		Expiration: time.Hour,
		Issuer:     "device-access-api",
	})

	router := gin.New()
	router.GET("/protected", Auth(svc), func(c *gin.Context) {
		claims := c.MustGet(ContextUserKey).(*models.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return router, svc
}

func login(t *testing.T, svc *service.AuthService) string {
	t.Helper()
	token, err := svc.Login(context.Background(), models.LoginRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router, svc := newAuthRouter(t)
	token := login(t, svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":1}`, w.Body.String())
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRevokedToken(t *testing.T) {
	router, svc := newAuthRouter(t)
	token := login(t, svc)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), claims))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
