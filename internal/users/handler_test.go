package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, signer := newTestService()
	router := gin.New()
	api := router.Group("/api")
	protected := api.Group("")
	protected.Use(middleware.Auth(signer))
	NewHandler(svc).RegisterRoutes(api, protected)
	return router
}

func postJSON(router http.Handler, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginAndData(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(router, "/api/users/register", gin.H{"name": "Ann", "email": "ann@example.com", "password": "password1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var registered struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    User   `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.Equal(t, "User created successfully", registered.Message)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = postJSON(router, "/api/users/login", gin.H{"email": "ann@example.com", "password": "password1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var loggedIn struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))

	req := httptest.NewRequest(http.MethodGet, "/api/users/data", nil)
	req.Header.Set("Authorization", loggedIn.Token)
	data := httptest.NewRecorder()
	router.ServeHTTP(data, req)
	require.Equal(t, http.StatusOK, data.Code, data.Body.String())
	assert.Contains(t, data.Body.String(), registered.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(router, "/api/users/register", gin.H{"name": "Ann", "email": "not-an-email", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_failed")
}

func TestRegisterDuplicate(t *testing.T) {
	router := newTestRouter(t)
	body := gin.H{"name": "Ann", "email": "ann@example.com", "password": "password1"}

	require.Equal(t, http.StatusCreated, postJSON(router, "/api/users/register", body).Code)
	rec := postJSON(router, "/api/users/register", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "user_exists")
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(router, "/api/users/register", gin.H{"name": "Ann", "email": "ann@example.com", "password": "password1"}).Code)

	rec := postJSON(router, "/api/users/login", gin.H{"email": "ann@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestDataRequiresToken(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/users/data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
