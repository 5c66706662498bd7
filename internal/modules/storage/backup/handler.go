package backup

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log.Named("backup")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/backup", auth, h.run)
}

// run triggers a backup synchronously; the admin panel shows the result
// inline.
func (h *Handler) run(c *gin.Context) {
	result, err := h.svc.Run(c.Request.Context())
	if err != nil {
		h.log.Error("manual backup", zap.Error(err))
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.OK(c, result)
}
