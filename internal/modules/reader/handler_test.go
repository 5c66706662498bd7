package reader

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/modules/content/breaking"
	"github.com/localherald/core/internal/modules/content/singleton"
	"github.com/localherald/core/internal/modules/content/story"
	"github.com/localherald/core/internal/store/storetest"
)

func newReaderRouter(t *testing.T) (*gin.Engine, *storetest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := storetest.New()
	t.Cleanup(srv.Close)

	st := srv.Client()
	h := NewHandler(
		config.SiteConfig{Title: "The Local Herald"},
		story.NewService(st),
		breaking.NewService(st),
		singleton.NewService(st),
		zap.NewNop(),
	)
	r := gin.New()
	h.RegisterRoutes(r)
	return r, srv
}

func seedPublished(srv *storetest.Server, title, slug string) {
	srv.Seed(map[string]interface{}{
		"_type": "story", "title": title, "slug": slug,
		"publishedAt": time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
		"excerpt": []interface{}{map[string]interface{}{
			"_type":    "block",
			"style":    "normal",
			"children": []interface{}{map[string]interface{}{"text": "A short summary."}},
		}},
	})
}

func TestHomeRendersStoriesAndTicker(t *testing.T) {
	r, srv := newReaderRouter(t)
	seedPublished(srv, "Bridge reopens after repairs", "bridge-reopens")
	srv.Seed(map[string]interface{}{"_type": "story", "title": "Secret draft", "slug": "secret-draft"})
	srv.Seed(map[string]interface{}{"_type": "breakingNews", "title": "Schools closed tomorrow", "priority": 1, "active": true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "The Local Herald")
	assert.Contains(t, body, "Bridge reopens after repairs")
	assert.Contains(t, body, "/story/bridge-reopens")
	assert.Contains(t, body, "A short summary.")
	assert.Contains(t, body, "Schools closed tomorrow")
	assert.NotContains(t, body, "Secret draft")
}

func TestHomeUsesSiteSettingsOverride(t *testing.T) {
	r, srv := newReaderRouter(t)
	srv.Seed(map[string]interface{}{"_type": "siteSettings", "siteTitle": "Herald Online", "tagline": "News that stays local"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Herald Online")
	assert.Contains(t, w.Body.String(), "News that stays local")
}

func TestStoryPage(t *testing.T) {
	r, srv := newReaderRouter(t)
	seedPublished(srv, "Harvest festival draws crowds", "harvest-festival")

	req := httptest.NewRequest(http.MethodGet, "/story/harvest-festival", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Harvest festival draws crowds")
}

func TestStoryPageHidesDrafts(t *testing.T) {
	r, srv := newReaderRouter(t)
	srv.Seed(map[string]interface{}{"_type": "story", "title": "Draft", "slug": "draft"})

	req := httptest.NewRequest(http.MethodGet, "/story/draft", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/story/never-existed", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
