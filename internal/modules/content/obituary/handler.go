package obituary

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
	return &Handler{svc: svc, log: log.Named("obituary")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/obituaries")
	{
		g.GET("", h.List)
		g.POST("", auth, h.Create)
		g.PATCH("", auth, h.Update)
		g.DELETE("/:id", auth, h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	includeAll := c.Query("all") == "true" && middleware.IsAuthenticated(c)
	obits, err := h.svc.List(c.Request.Context(), includeAll)
	if err != nil {
		h.log.Error("list obituaries", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, obits)
}

func (h *Handler) Create(c *gin.Context) {
	var dto CreateObituaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		h.log.Error("create obituary", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, created)
}

func (h *Handler) Update(c *gin.Context) {
	var dto UpdateObituaryDTO
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
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c)
			return
		}
		h.log.Error("update obituary", zap.String("id", dto.ID), zap.Error(err))
		response.InternalError(c)
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
		h.log.Error("delete obituary", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.NoContent(c)
}
