package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmcastellanos/device-access-api/internal/middleware"
	"github.com/jmcastellanos/device-access-api/internal/models"
	"github.com/jmcastellanos/device-access-api/internal/service"
	"github.com/jmcastellanos/device-access-api/pkg/validation"
)

type authRepoStub struct {
	users  map[int64]*models.User
	tokens map[int64]string
}

func newAuthRepoStub(users ...*models.User) *authRepoStub {
	stub := &authRepoStub{users: make(map[int64]*models.User), tokens: make(map[int64]string)}
	for _, u := range users {
		stub.users[u.ID] = u
	}
	return stub
}

func (s *authRepoStub) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) FindByNameAndEmail(ctx context.Context, name, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Name == name && u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	for id, stored := range s.tokens {
		if stored == token {
			return s.users[id], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) Create(ctx context.Context, user *models.User) error {
	user.ID = int64(len(s.users) + 1)
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = user
	return nil
}

func (s *authRepoStub) UpdateRefreshToken(ctx context.Context, id int64, token string) error {
	s.tokens[id] = token
	return nil
}

type denylistStub struct {
	revoked map[string]bool
}

func newDenylistStub() *denylistStub {
	return &denylistStub{revoked: make(map[string]bool)}
}

func (s *denylistStub) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	s.revoked[jti] = true
	return nil
}

func (s *denylistStub) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revoked[jti], nil
}

func newAuthHandler(t *testing.T, repo *authRepoStub) *AuthHandler {
	t.Helper()
	svc := service.NewAuthService(repo, newDenylistStub(), validation.New(), zap.NewNop(), service.AuthConfig{
		Secret:     "secret",
		Expiration: time.Hour,
		Issuer:     "device-access-api",
	})
	return NewAuthHandler(svc, service.NewMetricsService())
}

func aliceUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &models.User{ID: 1, Name: "Alice", Email: "alice@example.com", PasswordHash: string(hash), CreatedAt: time.Now().UTC()}
}

func postJSON(c *gin.Context, path string, payload interface{}) {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
}

func TestLoginHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub(aliceUser(t)))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/login", models.LoginRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})

	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["login_token"])
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub(aliceUser(t)))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/login", models.LoginRequest{Name: "Alice", Email: "alice@example.com", Password: "wrongpassword"})

	h.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials","message":"The password is incorrect."}`, w.Body.String())
}

func TestLoginHandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/login", map[string]string{"name": "Alice"})

	h.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body["error"])
	fields, ok := body["message"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestLoginHandlerMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/register", models.RegisterRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	})

	h.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "User registered successfully", body["message"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "refresh_token")
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub(aliceUser(t)))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/register", models.RegisterRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	})

	h.Register(c)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRefreshHandlerWording(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := aliceUser(t)
	repo := newAuthRepoStub(user)
	repo.tokens[user.ID] = "stored-refresh-token"
	h := newAuthHandler(t, repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/refresh-token", models.RefreshRequest{RefreshToken: "stored-refresh-token"})
	h.RefreshToken(c)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Token refreshed successfully", body["message"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	postJSON(c, "/refresh-token-login", models.RefreshRequest{RefreshToken: "stored-refresh-token"})
	h.RefreshTokenLogin(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "New login token generated successfully", body["message"])
}

func TestRefreshHandlerInvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/refresh-token", models.RefreshRequest{RefreshToken: "nope"})

	h.RefreshToken(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token","message":"The provided refresh token is invalid."}`, w.Body.String())
}

func TestUserInfoHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub(aliceUser(t)))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/user-info", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 1, Name: "Alice", Email: "alice@example.com"})

	h.UserInfo(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Alice", user["name"])
	assert.Contains(t, user, "created_at")
	assert.NotContains(t, user, "updated_at")
}

func TestUserInfoHandlerNoClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthHandler(t, newAuthRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/user-info", nil)
	c.Request = req

	h.UserInfo(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
