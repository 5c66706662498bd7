package categorynews

import (
	"errors"

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
	return &Handler{svc: svc, log: log.Named("categorynews")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/category-news")
	{
		g.GET("", h.List)
		g.POST("", auth, h.Create)
		g.PATCH("", auth, h.Update)
		g.DELETE("/:id", auth, h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	kind := c.Query("kind")
	if kind == "" {
		response.BadRequest(c, "kind is required")
		return
	}
	includeAll := c.Query("all") == "true" && middleware.IsAuthenticated(c)
	items, err := h.svc.ListByKind(c.Request.Context(), kind, includeAll)
	if err != nil {
		if errors.Is(err, errInvalidKind) {
			response.BadRequest(c, "unknown kind")
			return
		}
		h.log.Error("list category news", zap.String("kind", kind), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

func (h *Handler) Create(c *gin.Context) {
	var dto CreateItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errInvalidKind) {
			response.BadRequest(c, "unknown kind")
			return
		}
		h.log.Error("create category news", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, created)
}

func (h *Handler) Update(c *gin.Context) {
	var dto UpdateItemDTO
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
		case errors.Is(err, errInvalidKind):
			response.BadRequest(c, "unknown kind")
		case errors.Is(err, store.ErrNotFound):
			response.NotFound(c)
		default:
			h.log.Error("update category news", zap.String("id", dto.ID), zap.Error(err))
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
		h.log.Error("delete category news", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.NoContent(c)
}
