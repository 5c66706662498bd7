package story

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/middleware"
	"github.com/localherald/core/internal/pkg/jwt"
	"github.com/localherald/core/internal/store/storetest"
)

func newTestRouter(t *testing.T) (*gin.Engine, *storetest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := storetest.New()
	t.Cleanup(srv.Close)

	allow := middleware.NewAllowList([]string{"editor@localherald.test"})
	r := gin.New()
	api := r.Group("/api/v1", middleware.OptionalAuth(allow))
	NewHandler(NewService(srv.Client()), zap.NewNop()).RegisterRoutes(api, middleware.Auth(allow))
	return r, srv
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.Sign("editor@localherald.test", "sid-1", time.Hour)
	require.NoError(t, err)
	return token
}

func TestMutationsRejectedWithoutSession(t *testing.T) {
	r, srv := newTestRouter(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/v1/stories", strings.NewReader(`{"title":"T","slug":"t"}`)),
		httptest.NewRequest(http.MethodPatch, "/api/v1/stories", strings.NewReader(`{"_id":"doc-1","title":"T"}`)),
		httptest.NewRequest(http.MethodDelete, "/api/v1/stories/doc-1", nil),
	} {
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", req.Method, req.URL.Path)
	}
	assert.Zero(t, srv.MutateCalls(), "denied requests must not reach the store")
}

func TestMutationsRejectedForUnknownIdentity(t *testing.T) {
	r, srv := newTestRouter(t)

	token, err := jwt.Sign("intruder@example.com", "", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories", strings.NewReader(`{"title":"T","slug":"t"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, srv.MutateCalls())
}

func TestUpdateWithoutIDIsRejectedBeforeStore(t *testing.T) {
	r, srv := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/stories", strings.NewReader(`{"title":"New title"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, srv.MutateCalls())
}

func TestCreateRequiresTitleAndSlug(t *testing.T) {
	r, srv := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories", strings.NewReader(`{"author":"me"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, srv.MutateCalls())
}

func TestCreateStoryAsAdmin(t *testing.T) {
	r, srv := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stories",
		strings.NewReader(`{"title":"Flood warning lifted","slug":"flood-warning-lifted"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, srv.Documents("story"), 1)
}

func TestGetBySlugNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stories/no-such-story", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAllFlagIgnoredWithoutSession(t *testing.T) {
	r, srv := newTestRouter(t)
	srv.Seed(map[string]interface{}{"_type": "story", "title": "Draft", "slug": "draft"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stories?all=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"draft"`)
}
