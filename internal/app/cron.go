package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/modules/storage/backup"
	pkgcron "github.com/localherald/core/internal/pkg/cron"
	"github.com/localherald/core/internal/store"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, st *store.Client, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("cron")

	if cfg.Backup.Enable {
		interval := time.Duration(cfg.Backup.IntervalHours) * time.Hour
		backupSvc := backup.NewService(st, cfg.Backup, logger)

		sched.Register(pkgcron.Job{
			Name:        "content_backup",
			Description: "export all content documents to S3",
			Interval:    interval,
			Fn: func(ctx context.Context) error {
				result, err := backupSvc.Run(ctx)
				if err != nil {
					cronLogger.Warn("scheduled backup failed", zap.Error(err))
					return err
				}
				cronLogger.Info("scheduled backup done",
					zap.Int("documents", result.Documents),
					zap.Int("bytes", result.SizeBytes))
				return nil
			},
		})
	}
}
