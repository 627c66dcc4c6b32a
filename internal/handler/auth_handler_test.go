package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"job_portal/internal/model"
	"job_portal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	user  *model.User
	token string
	err   error
}

func (s *stubAuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.user, s.token, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.user, s.token, nil
}

func setupAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAuthHandler(svc).RegisterAuthRoutes(router.Group(""))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validSignupPayload() map[string]any {
	return map[string]any{
		"email":    "alice@example.com",
		"password": "password123",
		"type":     model.TypeApplicant,
		"name":     "Alice",
	}
}

func TestSignupHandler_Created(t *testing.T) {
	svc := &stubAuthService{
		user:  &model.User{ID: 1, Type: model.TypeApplicant},
		token: "signed.jwt.token",
	}
	router := setupAuthRouter(svc)

	w := postJSON(t, router, "/auth/signup", validSignupPayload())

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp["token"])
	assert.Equal(t, model.TypeApplicant, resp["type"])
}

func TestSignupHandler_DuplicateEmail_Conflict(t *testing.T) {
	router := setupAuthRouter(&stubAuthService{err: service.ErrEmailTaken})

	w := postJSON(t, router, "/auth/signup", validSignupPayload())

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupHandler_InvalidType_BadRequest(t *testing.T) {
	router := setupAuthRouter(&stubAuthService{err: service.ErrInvalidUserType})

	payload := validSignupPayload()
	payload["type"] = "superuser"
	w := postJSON(t, router, "/auth/signup", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupHandler_MissingFields_BadRequest(t *testing.T) {
	router := setupAuthRouter(&stubAuthService{})

	w := postJSON(t, router, "/auth/signup", map[string]any{"email": "alice@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler_OK(t *testing.T) {
	svc := &stubAuthService{
		user:  &model.User{ID: 1, Type: model.TypeRecruiter},
		token: "signed.jwt.token",
	}
	router := setupAuthRouter(svc)

	w := postJSON(t, router, "/auth/login", map[string]any{
		"email":    "frank@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp["token"])
	assert.Equal(t, model.TypeRecruiter, resp["type"])
}

func TestLoginHandler_InvalidCredentials_Unauthorized(t *testing.T) {
	router := setupAuthRouter(&stubAuthService{err: service.ErrInvalidCredentials})

	w := postJSON(t, router, "/auth/login", map[string]any{
		"email":    "frank@example.com",
		"password": "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrInvalidCredentials.Error())
}
