package live

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/pkg/response"
)

type Handler struct {
	svc     *Service
	ttlSecs int
	log     *zap.Logger
}

func NewHandler(svc *Service, ttlSecs int, log *zap.Logger) *Handler {
	return &Handler{svc: svc, ttlSecs: ttlSecs, log: log.Named("live")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live-status", h.status)
}

func (h *Handler) status(c *gin.Context) {
	channelID := c.Query("channelId")
	if channelID == "" {
		response.BadRequest(c, "channelId is required")
		return
	}

	st, err := h.svc.Check(c.Request.Context(), channelID)
	if err != nil {
		h.log.Error("live status", zap.String("channel", channelID), zap.Error(err))
		response.InternalError(c)
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=60", h.ttlSecs))
	response.OK(c, st)
}
