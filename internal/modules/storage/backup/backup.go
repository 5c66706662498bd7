package backup

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
)

// exportTypes is every document type the export covers.
var exportTypes = []string{
	models.TypeStory,
	models.TypeBreakingNews,
	models.TypeAd,
	models.TypeDoctor,
	models.TypeObituary,
	models.TypeCategoryNews,
	models.TypeVideo,
	models.TypeHeroSection,
	models.TypeLatestNews,
	models.TypeSiteSettings,
}

// Service exports the full content set as gzipped NDJSON and ships it
// to S3. The store stays the source of truth; backups are a safety net
// against accidental bulk deletion there.
type Service struct {
	st  *store.Client
	cfg config.BackupConfig
	log *zap.Logger
}

func NewService(st *store.Client, cfg config.BackupConfig, log *zap.Logger) *Service {
	return &Service{st: st, cfg: cfg, log: log.Named("backup")}
}

// Result summarizes one completed backup run.
type Result struct {
	ObjectURL string `json:"objectUrl"`
	Documents int    `json:"documents"`
	SizeBytes int    `json:"sizeBytes"`
}

// Run exports every document and uploads one archive.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if !s.cfg.Enable {
		return nil, errors.New("backup is not enabled")
	}

	archive, count, err := s.export(ctx)
	if err != nil {
		return nil, err
	}

	uploader, err := newS3Uploader(s.cfg.S3)
	if err != nil {
		return nil, err
	}

	key := objectKey(s.cfg.S3.Prefix, time.Now().UTC())
	objectURL, err := uploader.Upload(ctx, key, archive, "application/gzip")
	if err != nil {
		return nil, err
	}

	s.log.Info("backup uploaded",
		zap.String("key", key),
		zap.Int("documents", count),
		zap.Int("bytes", len(archive)))
	return &Result{ObjectURL: objectURL, Documents: count, SizeBytes: len(archive)}, nil
}

// export writes one NDJSON line per document, all types concatenated,
// then gzips the stream.
func (s *Service) export(ctx context.Context) ([]byte, int, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := json.NewEncoder(gz)

	count := 0
	for _, docType := range exportTypes {
		var docs []json.RawMessage
		err := s.st.FetchInto(ctx,
			`*[_type == $type] | order(_createdAt asc)`,
			map[string]interface{}{"type": docType},
			&docs)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, 0, fmt.Errorf("backup: export %s: %w", docType, err)
		}
		for _, doc := range docs {
			if err := enc.Encode(doc); err != nil {
				return nil, 0, fmt.Errorf("backup: encode %s: %w", docType, err)
			}
			count++
		}
	}

	if err := gz.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), count, nil
}

func objectKey(prefix string, now time.Time) string {
	name := fmt.Sprintf("content-%s.ndjson.gz", now.Format("20060102-150405"))
	if prefix == "" {
		return "backups/" + name
	}
	return normalizeObjectKey(prefix + "/" + name)
}
