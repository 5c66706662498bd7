package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/localherald/core/internal/middleware"
	authmod "github.com/localherald/core/internal/modules/auth"
	"github.com/localherald/core/internal/modules/content/ads"
	"github.com/localherald/core/internal/modules/content/breaking"
	"github.com/localherald/core/internal/modules/content/categorynews"
	"github.com/localherald/core/internal/modules/content/doctor"
	"github.com/localherald/core/internal/modules/content/obituary"
	"github.com/localherald/core/internal/modules/content/singleton"
	"github.com/localherald/core/internal/modules/content/story"
	"github.com/localherald/core/internal/modules/content/video"
	"github.com/localherald/core/internal/modules/live"
	"github.com/localherald/core/internal/modules/reader"
	"github.com/localherald/core/internal/modules/storage/backup"
	"github.com/localherald/core/internal/modules/storage/file"
	"github.com/localherald/core/internal/modules/syndication/sitemap"
	"github.com/localherald/core/internal/modules/system/health"
	"github.com/localherald/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	log := a.logger

	allowList := middleware.NewAllowList(a.cfg.Auth.AdminEmails)
	authMW := middleware.Auth(allowList)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	var rawRedis *goredis.Client
	if a.rdb != nil {
		rawRedis = a.rdb.Raw()
	}

	// Shared services
	storySvc := story.NewService(a.st)
	breakingSvc := breaking.NewService(a.st)
	singletonSvc := singleton.NewService(a.st)

	// Root-level reader surface
	root := r.Group("")
	reader.NewHandler(a.cfg.Site, storySvc, breakingSvc, singletonSvc, log).RegisterRoutes(root)
	sitemap.RegisterRoutes(root, a.cfg.Site, storySvc, log)

	// Versioned API
	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(allowList))
	api.Use(middleware.RateLimit(rawRedis))
	api.Use(middleware.HTTPCache(rawRedis, middleware.HTTPCacheOptions{
		TTL:     15 * time.Second,
		Disable: a.cfg.IsDev(),
		SkipPaths: []string{
			apiPrefix + "/auth*",
			apiPrefix + "/live-status",
		},
	}))
	api.Use(middleware.InvalidateOnWrite(rawRedis, log))

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	health.RegisterRoutes(api, a.st, a.rdb, a.sched, authMW)
	authmod.NewHandler(a.cfg.Auth, allowList, log).RegisterRoutes(api, authMW)

	// Content categories
	story.NewHandler(storySvc, log).RegisterRoutes(api, authMW)
	breaking.NewHandler(breakingSvc, log).RegisterRoutes(api, authMW)
	ads.NewHandler(ads.NewService(a.st), log).RegisterRoutes(api, authMW)
	doctor.NewHandler(doctor.NewService(a.st), log).RegisterRoutes(api, authMW)
	obituary.NewHandler(obituary.NewService(a.st), log).RegisterRoutes(api, authMW)
	categorynews.NewHandler(categorynews.NewService(a.st), log).RegisterRoutes(api, authMW)
	video.NewHandler(video.NewService(a.st), log).RegisterRoutes(api, authMW)
	singleton.NewHandler(singletonSvc, log).RegisterRoutes(api, authMW)

	// Assets and operations
	file.NewHandler(a.st, a.cfg.Upload, log).RegisterRoutes(api, authMW)
	live.NewHandler(live.NewService(a.cfg.Live, a.rdb), a.cfg.Live.CacheTTLSeconds, log).RegisterRoutes(api)
	backup.NewHandler(backup.NewService(a.st, a.cfg.Backup, log), log).RegisterRoutes(api, authMW)
}
