package story

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/middleware"
	"github.com/localherald/core/internal/pkg/response"
	"github.com/localherald/core/internal/store"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log.Named("story")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/stories")
	{
		g.GET("", h.List)
		g.GET("/:slug", h.GetBySlug)
		g.POST("", auth, h.Create)
		g.PATCH("", auth, h.Update)
		g.DELETE("/:id", auth, h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	featured := c.Query("featured") == "true"
	includeAll := c.Query("all") == "true" && middleware.IsAuthenticated(c)

	stories, err := h.svc.List(c.Request.Context(), c.Query("category"), featured, limit, includeAll)
	if err != nil {
		h.log.Error("list stories", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, stories)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	st, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c)
			return
		}
		h.log.Error("get story", zap.String("slug", c.Param("slug")), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, st)
}

func (h *Handler) Create(c *gin.Context) {
	var dto CreateStoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errDuplicateSlug) {
			response.UnprocessableEntity(c, "slug already in use")
			return
		}
		h.log.Error("create story", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, created)
}

func (h *Handler) Update(c *gin.Context) {
	var dto UpdateStoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.ID == "" {
		response.BadRequest(c, "_id is required")
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errDuplicateSlug):
			response.UnprocessableEntity(c, "slug already in use")
		case errors.Is(err, store.ErrNotFound):
			response.NotFound(c)
		default:
			h.log.Error("update story", zap.String("id", dto.ID), zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "_id is required")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c)
			return
		}
		h.log.Error("delete story", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.NoContent(c)
}
