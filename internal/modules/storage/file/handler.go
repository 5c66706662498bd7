package file

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/pkg/response"
	"github.com/localherald/core/internal/store"
)

// Handler proxies multipart uploads into the content store's asset
// endpoint. Nothing is written to local disk.
type Handler struct {
	st  *store.Client
	cfg config.UploadConfig
	log *zap.Logger
}

func NewHandler(st *store.Client, cfg config.UploadConfig, log *zap.Logger) *Handler {
	return &Handler{st: st, cfg: cfg, log: log.Named("upload")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/upload", auth, h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	kind := store.AssetFile
	switch c.Query("type") {
	case "", "file":
	case "image":
		kind = store.AssetImage
	default:
		response.BadRequest(c, "type must be image or file")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	name := safeName(fileHeader.Filename)
	if name == "" {
		response.BadRequest(c, "invalid filename")
		return
	}
	if kind == store.AssetImage && !isImageFilename(name) {
		response.BadRequest(c, "unsupported image format")
		return
	}
	maxBytes := int64(h.cfg.MaxSizeMB) << 20
	if fileHeader.Size > maxBytes {
		response.BadRequest(c, fmt.Sprintf("file exceeds %d MB", h.cfg.MaxSizeMB))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.log.Error("open upload", zap.Error(err))
		response.InternalError(c)
		return
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	head = head[:n]
	contentType := detectContentType(name, fileHeader.Header.Get("Content-Type"), head)
	body := io.MultiReader(bytes.NewReader(head), f)

	asset, err := h.st.UploadAsset(c.Request.Context(), kind, name, contentType, body)
	if err != nil {
		h.log.Error("store upload", zap.String("filename", name), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{
		"id":   asset.ID,
		"url":  asset.URL,
		"name": name,
		"size": asset.Size,
	})
}
