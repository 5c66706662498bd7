package file

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/middleware"
	"github.com/localherald/core/internal/pkg/jwt"
	"github.com/localherald/core/internal/store/storetest"
)

func newUploadRouter(t *testing.T, maxMB int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := storetest.New()
	t.Cleanup(srv.Close)

	allow := middleware.NewAllowList([]string{"editor@localherald.test"})
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(srv.Client(), config.UploadConfig{MaxSizeMB: maxMB}, zap.NewNop()).
		RegisterRoutes(api, middleware.Auth(allow))
	return r
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doUpload(t *testing.T, r *gin.Engine, target, filename string, content []byte, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	if authed {
		token, err := jwt.Sign("editor@localherald.test", "", time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	r := newUploadRouter(t, 10)

	w := doUpload(t, r, "/api/v1/upload?type=image", "portrait.jpg", []byte("jpegdata"), true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID   string `json:"id"`
		URL  string `json:"url"`
		Name string `json:"name"`
		Size int64  `json:"size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.URL)
	assert.Equal(t, "portrait.jpg", resp.Name)
	assert.Equal(t, int64(len("jpegdata")), resp.Size)
}

func TestUploadRequiresSession(t *testing.T) {
	r := newUploadRouter(t, 10)
	w := doUpload(t, r, "/api/v1/upload", "notes.pdf", []byte("pdf"), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadRejectsNonImageForImageKind(t *testing.T) {
	r := newUploadRouter(t, 10)
	w := doUpload(t, r, "/api/v1/upload?type=image", "notes.pdf", []byte("pdf"), true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsUnknownKind(t *testing.T) {
	r := newUploadRouter(t, 10)
	w := doUpload(t, r, "/api/v1/upload?type=archive", "a.zip", []byte("zip"), true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadStripsPathComponents(t *testing.T) {
	r := newUploadRouter(t, 10)
	w := doUpload(t, r, "/api/v1/upload", "../../etc/passwd", []byte("x"), true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"passwd"`)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "a.png", safeName("dir/a.png"))
	assert.Equal(t, "a.png", safeName(`c:\tmp\a.png`))
	assert.Equal(t, "", safeName(".."))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", detectContentType("a.bin", "image/png", nil))
	assert.Equal(t, "image/jpeg", detectContentType("a.jpg", "", nil))
	assert.Equal(t, "text/plain; charset=utf-8", detectContentType("a", "", []byte("hello")))
	assert.Equal(t, "application/octet-stream", detectContentType("a", "", nil))
}
