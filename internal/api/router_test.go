package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub-backend/internal/config"
	"userhub-backend/internal/models"
	"userhub-backend/internal/services"
	"userhub-backend/internal/store"
	"userhub-backend/internal/websocket"
)

func newTestRouter(t *testing.T) (http.Handler, *services.UserService) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := &config.Config{
		PasswordMinLength: 6,
		UsernameMinLength: 3,
		AllowedOrigins:    []string{"*"},
	}
	userSvc := services.NewUserService(st, nil)
	return NewRouter(cfg, websocket.NewHub(), userSvc, services.NewStatsService(st)), userSvc
}

func registerJane(t *testing.T, svc *services.UserService) models.User {
	t.Helper()
	user, err := svc.Register(models.UserDraft{
		Fullname: "Jane Doe",
		Email:    "jane@x.com",
		Username: "jane_d",
		Password: "secret1",
		Gender:   "female",
		Country:  "Norway",
	})
	require.NoError(t, err)
	return user
}

func TestAuthEndpointRejectsNonPOST(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "error body must be well-formed JSON")
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "Method not allowed")
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/definitely-not-here", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "error body must be well-formed JSON")
	assert.False(t, body.Success)
	assert.Equal(t, "Not found", body.Message)
}

func TestGetUserByID(t *testing.T) {
	router, svc := newTestRouter(t)
	user := registerJane(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+user.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "jane_d", got.Username)
	assert.Empty(t, got.Password)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFindUserByUsername(t *testing.T) {
	router, svc := newTestRouter(t)
	registerJane(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/?username=jane_d", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "jane@x.com", got.Email)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	user := registerJane(t, svc)

	body := strings.NewReader(`{"country":"Sweden"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+user.ID, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Sweden", got.Country)
	assert.Equal(t, "jane@x.com", got.Email)
}

func TestDeleteUserEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	user := registerJane(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+user.ID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+user.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	registerJane(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.RecentRegistrations)
	assert.Equal(t, map[string]int{"Norway": 1}, stats.UsersByCountry)
}

func TestStaticPageServed(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "registerForm")
}
