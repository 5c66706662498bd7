package backup

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/store/storetest"
)

func TestRunExportsAllDocumentsToS3(t *testing.T) {
	srv := storetest.New()
	defer srv.Close()
	srv.Seed(map[string]interface{}{"_type": "story", "title": "One", "slug": "one"})
	srv.Seed(map[string]interface{}{"_type": "story", "title": "Two", "slug": "two"})
	srv.Seed(map[string]interface{}{"_type": "breakingNews", "title": "Road closed"})

	var (
		gotPath string
		gotAuth string
		gotBody []byte
	)
	s3 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer s3.Close()

	svc := NewService(srv.Client(), config.BackupConfig{
		Enable: true,
		S3: config.S3Options{
			Endpoint:        s3.URL,
			Bucket:          "lh-backups",
			Region:          "us-east-1",
			AccessKeyID:     "AKIATEST",
			SecretAccessKey: "secret",
		},
	}, zap.NewNop())

	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Documents)
	assert.Equal(t, len(gotBody), res.SizeBytes)
	assert.True(t, strings.HasPrefix(gotPath, "/lh-backups/backups/content-"))
	assert.True(t, strings.HasSuffix(gotPath, ".ndjson.gz"))
	assert.Contains(t, gotAuth, "AWS4-HMAC-SHA256 Credential=AKIATEST/")
	assert.Contains(t, gotAuth, "SignedHeaders=content-length;content-type;host;x-amz-content-sha256;x-amz-date")
	assert.Contains(t, res.ObjectURL, "/lh-backups/backups/content-")

	gz, err := gzip.NewReader(strings.NewReader(string(gotBody)))
	require.NoError(t, err)
	var titles []string
	sc := bufio.NewScanner(gz)
	for sc.Scan() {
		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &doc))
		if title, ok := doc["title"].(string); ok {
			titles = append(titles, title)
		}
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []string{"One", "Two"}, titles)
}

func TestRunDisabled(t *testing.T) {
	srv := storetest.New()
	defer srv.Close()

	svc := NewService(srv.Client(), config.BackupConfig{}, zap.NewNop())
	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enabled")
}

func TestRunIncompleteS3Config(t *testing.T) {
	srv := storetest.New()
	defer srv.Close()

	svc := NewService(srv.Client(), config.BackupConfig{
		Enable: true,
		S3:     config.S3Options{Bucket: "lh-backups"},
	}, zap.NewNop())
	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete s3 config")
}

func TestObjectKey(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "backups/content-20260314-093000.ndjson.gz", objectKey("", at))
	assert.Equal(t, "daily/content-20260314-093000.ndjson.gz", objectKey("/daily/", at))
}

func TestUploaderTargets(t *testing.T) {
	u, err := newS3Uploader(config.S3Options{
		Bucket: "lh-backups", Region: "us-east-1",
		AccessKeyID: "k", SecretAccessKey: "s",
	})
	require.NoError(t, err)
	requestURL, canonicalURI, host, err := u.buildTarget("backups/a b.gz")
	require.NoError(t, err)
	assert.Equal(t, "lh-backups.s3.us-east-1.amazonaws.com", host)
	assert.Equal(t, "/backups/a%20b.gz", canonicalURI)
	assert.Equal(t, "https://lh-backups.s3.us-east-1.amazonaws.com/backups/a%20b.gz", requestURL)

	u, err = newS3Uploader(config.S3Options{
		Endpoint: "https://minio.internal:9000", Bucket: "lh-backups", Region: "us-east-1",
		AccessKeyID: "k", SecretAccessKey: "s", CustomDomain: "https://cdn.localherald.test/",
	})
	require.NoError(t, err)
	_, canonicalURI, host, err = u.buildTarget("backups/x.gz")
	require.NoError(t, err)
	assert.Equal(t, "minio.internal:9000", host)
	assert.Equal(t, "/lh-backups/backups/x.gz", canonicalURI)
	assert.Equal(t, "https://cdn.localherald.test/backups/x.gz", u.publicURL("backups/x.gz"))
}
