package reader

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/modules/content/breaking"
	"github.com/localherald/core/internal/modules/content/singleton"
	"github.com/localherald/core/internal/modules/content/story"
	"github.com/localherald/core/internal/richtext"
	"github.com/localherald/core/internal/store"
)

const homeStoryCount = 20

// Handler serves the server-rendered public pages. The data comes from
// the same services the JSON API uses, so both surfaces always agree.
type Handler struct {
	site       config.SiteConfig
	stories    *story.Service
	ticker     *breaking.Service
	singletons *singleton.Service
	log        *zap.Logger
}

func NewHandler(site config.SiteConfig, stories *story.Service, ticker *breaking.Service, singletons *singleton.Service, log *zap.Logger) *Handler {
	return &Handler{
		site:       site,
		stories:    stories,
		ticker:     ticker,
		singletons: singletons,
		log:        log.Named("reader"),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.home)
	r.GET("/story/:slug", h.storyPage)
}

type pageData struct {
	Title     string
	SiteTitle string
	Tagline   string
	Ticker    []models.BreakingNewsItem
	Body      template.HTML
	Year      int
}

type homeData struct {
	Hero     *models.HeroSection
	HeroHref string
	Stories  []homeStory
}

type homeStory struct {
	models.Story
	ExcerptHTML template.HTML
}

func (h *Handler) home(c *gin.Context) {
	ctx := c.Request.Context()

	stories, err := h.stories.List(ctx, "", false, homeStoryCount, false)
	if err != nil {
		h.log.Error("home stories", zap.Error(err))
		c.String(http.StatusInternalServerError, "temporarily unavailable")
		return
	}

	data := homeData{Stories: make([]homeStory, 0, len(stories))}
	for _, st := range stories {
		data.Stories = append(data.Stories, homeStory{
			Story:       st,
			ExcerptHTML: template.HTML(richtext.RenderHTML(st.Excerpt.Document)),
		})
	}

	var hero models.HeroSection
	if err := h.singletons.Get(ctx, models.TypeHeroSection, &hero); err == nil {
		data.Hero = &hero
		switch {
		case hero.StorySlug != "":
			data.HeroHref = "/story/" + hero.StorySlug
		case hero.Link != "":
			data.HeroHref = hero.Link
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		h.log.Warn("home hero", zap.Error(err))
	}

	body, err := execute(homeBodyTmpl, data)
	if err != nil {
		h.log.Error("render home", zap.Error(err))
		c.String(http.StatusInternalServerError, "temporarily unavailable")
		return
	}
	h.renderPage(c, h.site.Title, body)
}

type storyData struct {
	Story    *models.Story
	BodyHTML template.HTML
}

func (h *Handler) storyPage(c *gin.Context) {
	st, err := h.stories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.String(http.StatusNotFound, "story not found")
			return
		}
		h.log.Error("story page", zap.String("slug", c.Param("slug")), zap.Error(err))
		c.String(http.StatusInternalServerError, "temporarily unavailable")
		return
	}
	if !st.Published(time.Now()) {
		c.String(http.StatusNotFound, "story not found")
		return
	}

	body, err := execute(storyBodyTmpl, storyData{
		Story:    st,
		BodyHTML: template.HTML(richtext.RenderHTML(st.Body.Document)),
	})
	if err != nil {
		h.log.Error("render story", zap.Error(err))
		c.String(http.StatusInternalServerError, "temporarily unavailable")
		return
	}
	h.renderPage(c, st.Title+" | "+h.site.Title, body)
}

func (h *Handler) renderPage(c *gin.Context, title string, body template.HTML) {
	ticker, err := h.ticker.List(c.Request.Context(), false)
	if err != nil {
		h.log.Warn("ticker", zap.Error(err))
		ticker = nil
	}

	page := pageData{
		Title:     title,
		SiteTitle: h.site.Title,
		Ticker:    ticker,
		Body:      body,
		Year:      time.Now().Year(),
	}

	var settings models.SiteSettings
	if err := h.singletons.Get(c.Request.Context(), models.TypeSiteSettings, &settings); err == nil {
		if settings.SiteTitle != "" {
			page.SiteTitle = settings.SiteTitle
		}
		page.Tagline = settings.Tagline
	}

	out, err := execute(pageTmpl, page)
	if err != nil {
		h.log.Error("render page", zap.Error(err))
		c.String(http.StatusInternalServerError, "temporarily unavailable")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, string(out))
}

func execute(t *template.Template, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
