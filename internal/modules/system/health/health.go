package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/localherald/core/internal/pkg/cron"
	"github.com/localherald/core/internal/pkg/redis"
	"github.com/localherald/core/internal/pkg/response"
	"github.com/localherald/core/internal/store"
)

var startedAt = time.Now()

func RegisterRoutes(rg *gin.RouterGroup, st *store.Client, rdb *redis.Client, sched *cron.Scheduler, authMW gin.HandlerFunc) {
	rg.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		storeOK := st.Ping(ctx) == nil
		redisOK := rdb == nil || rdb.Ping(ctx) == nil

		status := "ok"
		code := http.StatusOK
		if !storeOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":        status,
			"store":         storeOK,
			"redis":         redisOK,
			"uptimeSeconds": int64(time.Since(startedAt).Seconds()),
		})
	})

	cronGroup := rg.Group("/health/cron", authMW)
	{
		cronGroup.GET("", func(c *gin.Context) {
			items := sched.List()
			byName := make(map[string]cron.ListItem, len(items))
			for _, item := range items {
				byName[item.Name] = item
			}
			response.OK(c, byName)
		})

		cronGroup.POST("/run/:name", func(c *gin.Context) {
			if err := sched.Run(c.Request.Context(), c.Param("name")); err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, gin.H{"message": "job triggered"})
		})
	}
}
