package sitemap

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

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/modules/content/story"
	"github.com/localherald/core/internal/store/storetest"
)

func TestSitemapListsSectionsAndPublishedStories(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := storetest.New()
	defer srv.Close()

	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	srv.Seed(map[string]interface{}{"_type": "story", "title": "Out", "slug": "bridge-reopens", "publishedAt": past})
	srv.Seed(map[string]interface{}{"_type": "story", "title": "Also out", "slug": "school-results", "publishedAt": past})
	srv.Seed(map[string]interface{}{"_type": "story", "title": "Scheduled", "slug": "fair-preview", "publishedAt": future})
	srv.Seed(map[string]interface{}{"_type": "story", "title": "Draft", "slug": "unfinished"})

	r := gin.New()
	site := config.SiteConfig{BaseURL: "https://localherald.test/"}
	RegisterRoutes(r.Group("/"), site, story.NewService(srv.Client()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<?xml version="1.0"`))
	for _, loc := range []string{
		"<loc>https://localherald.test</loc>",
		"<loc>https://localherald.test/obituaries</loc>",
		"<loc>https://localherald.test/doctors</loc>",
		"<loc>https://localherald.test/videos</loc>",
		"<loc>https://localherald.test/live</loc>",
		"<loc>https://localherald.test/story/bridge-reopens</loc>",
		"<loc>https://localherald.test/story/school-results</loc>",
	} {
		assert.Contains(t, body, loc)
	}
	assert.Equal(t, 7, strings.Count(body, "<url>"), "five static sections plus the two published stories")
	assert.NotContains(t, body, "fair-preview", "scheduled stories stay out until publish time")
	assert.NotContains(t, body, "unfinished", "drafts never appear")
}

func TestSitemapAliasPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := storetest.New()
	defer srv.Close()

	r := gin.New()
	site := config.SiteConfig{BaseURL: "https://localherald.test"}
	RegisterRoutes(r.Group("/"), site, story.NewService(srv.Client()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/sitemap", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "</urlset>")
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a&amp;b &lt;c&gt;", escapeXML("a&b <c>"))
}
