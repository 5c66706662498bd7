package sitemap

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/modules/content/story"
)

// staticSections are hand-maintained reader pages that always appear.
var staticSections = []string{
	"",
	"/obituaries",
	"/doctors",
	"/videos",
	"/live",
}

func RegisterRoutes(rg *gin.RouterGroup, site config.SiteConfig, stories *story.Service, log *zap.Logger) {
	render := func(c *gin.Context) {
		xml, err := build(c, site, stories)
		if err != nil {
			log.Error("build sitemap", zap.Error(err))
			c.String(500, "error generating sitemap")
			return
		}
		c.Header("Content-Type", "application/xml; charset=utf-8")
		c.String(200, xml)
	}
	rg.GET("/sitemap.xml", render)
	rg.GET("/sitemap", render)
}

type sitemapURL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

func build(c *gin.Context, site config.SiteConfig, stories *story.Service) (string, error) {
	base := strings.TrimSuffix(site.BaseURL, "/")

	urls := make([]sitemapURL, 0, 16)
	for i, section := range staticSections {
		priority := 0.6
		freq := "weekly"
		if i == 0 {
			priority = 1.0
			freq = "daily"
		}
		urls = append(urls, sitemapURL{
			Loc: base + section, LastMod: time.Now(),
			ChangeFreq: freq, Priority: priority,
		})
	}

	published, err := stories.List(c.Request.Context(), "", false, 0, false)
	if err != nil {
		return "", err
	}
	for _, st := range published {
		lastMod := st.UpdatedAt
		if lastMod.IsZero() {
			lastMod = st.CreatedAt
		}
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/story/%s", base, st.Slug),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	return renderXML(urls), nil
}

func renderXML(urls []sitemapURL) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	for _, u := range urls {
		fmt.Fprintf(&b, `  <url>
    <loc>%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, escapeXML(u.Loc), u.LastMod.Format("2006-01-02"), u.ChangeFreq, u.Priority)
	}
	b.WriteString(`</urlset>`)
	return b.String()
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
