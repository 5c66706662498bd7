package singleton

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/pkg/response"
	"github.com/localherald/core/internal/store"
)

type HeroSectionDTO struct {
	Headline    *string          `json:"headline,omitempty"`
	Subheadline *string          `json:"subheadline,omitempty"`
	Image       *models.ImageRef `json:"image,omitempty"`
	Link        *string          `json:"link,omitempty"`
	StorySlug   *string          `json:"storySlug,omitempty"`
}

type LatestNewsDTO struct {
	Title *string  `json:"title,omitempty"`
	Items []string `json:"items,omitempty"`
}

type SiteSettingsDTO struct {
	SiteTitle    *string          `json:"siteTitle,omitempty"`
	Tagline      *string          `json:"tagline,omitempty"`
	Logo         *models.ImageRef `json:"logo,omitempty"`
	ContactEmail *string          `json:"contactEmail,omitempty"`
	ContactPhone *string          `json:"contactPhone,omitempty"`
	FacebookURL  *string          `json:"facebookUrl,omitempty"`
	YouTubeURL   *string          `json:"youtubeUrl,omitempty"`
	LiveChannel  *string          `json:"liveChannelId,omitempty"`
}

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log.Named("singleton")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/hero-section", h.getTyped(models.TypeHeroSection, func() interface{} { return &models.HeroSection{} }))
	rg.PUT("/hero-section", auth, h.putTyped(models.TypeHeroSection, func() (interface{}, interface{}) {
		return &HeroSectionDTO{}, &models.HeroSection{}
	}))

	rg.GET("/latest-news", h.getTyped(models.TypeLatestNews, func() interface{} { return &models.LatestNews{} }))
	rg.PUT("/latest-news", auth, h.putTyped(models.TypeLatestNews, func() (interface{}, interface{}) {
		return &LatestNewsDTO{}, &models.LatestNews{}
	}))

	rg.GET("/site-settings", h.getTyped(models.TypeSiteSettings, func() interface{} { return &models.SiteSettings{} }))
	rg.PUT("/site-settings", auth, h.putTyped(models.TypeSiteSettings, func() (interface{}, interface{}) {
		return &SiteSettingsDTO{}, &models.SiteSettings{}
	}))
}

func (h *Handler) getTyped(docType string, alloc func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := alloc()
		if err := h.svc.Get(c.Request.Context(), docType, out); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.NotFound(c)
				return
			}
			h.log.Error("get singleton", zap.String("type", docType), zap.Error(err))
			response.InternalError(c)
			return
		}
		response.OK(c, out)
	}
}

func (h *Handler) putTyped(docType string, alloc func() (dto interface{}, out interface{})) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, out := alloc()
		if err := c.ShouldBindJSON(dto); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		fields, err := dtoFields(dto)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if len(fields) == 0 {
			response.BadRequest(c, "empty payload")
			return
		}
		if err := h.svc.Upsert(c.Request.Context(), docType, fields, out); err != nil {
			h.log.Error("upsert singleton", zap.String("type", docType), zap.Error(err))
			response.InternalError(c)
			return
		}
		response.OK(c, out)
	}
}

// dtoFields flattens a DTO into the field map to set. Unset pointer
// fields drop out via omitempty, so a partial PUT leaves the rest of
// the document alone.
func dtoFields(dto interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(dto)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
