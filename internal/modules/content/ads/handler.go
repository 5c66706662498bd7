package ads

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
	return &Handler{svc: svc, log: log.Named("ads")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/ads")
	{
		g.GET("", h.List)
		g.POST("", auth, h.Create)
		g.PATCH("", auth, h.Update)
		g.DELETE("/:id", auth, h.Delete)
	}
}

// List serves reader traffic by slot. The admin table passes all=true
// instead and gets the unfiltered set.
func (h *Handler) List(c *gin.Context) {
	if c.Query("all") == "true" && middleware.IsAuthenticated(c) {
		items, err := h.svc.ListAll(c.Request.Context())
		if err != nil {
			h.log.Error("list ads", zap.Error(err))
			response.InternalError(c)
			return
		}
		response.OK(c, items)
		return
	}

	position := c.Query("position")
	if position == "" {
		response.BadRequest(c, "position is required")
		return
	}
	items, err := h.svc.ListByPosition(c.Request.Context(), position)
	if err != nil {
		if errors.Is(err, errInvalidPosition) {
			response.BadRequest(c, "unknown position")
			return
		}
		h.log.Error("list ads", zap.String("position", position), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

func (h *Handler) Create(c *gin.Context) {
	var dto CreateAdDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errInvalidPosition) {
			response.BadRequest(c, "unknown position")
			return
		}
		h.log.Error("create ad", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, created)
}

func (h *Handler) Update(c *gin.Context) {
	var dto UpdateAdDTO
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
		case errors.Is(err, errInvalidPosition):
			response.BadRequest(c, "unknown position")
		case errors.Is(err, store.ErrNotFound):
			response.NotFound(c)
		default:
			h.log.Error("update ad", zap.String("id", dto.ID), zap.Error(err))
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
		h.log.Error("delete ad", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.NoContent(c)
}
