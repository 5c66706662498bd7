package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Asset is the descriptor returned by the store's binary asset API.
type Asset struct {
	ID   string `json:"_id"`
	URL  string `json:"url"`
	Path string `json:"path,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// AssetKind selects the asset ingestion pipeline.
type AssetKind string

const (
	AssetImage AssetKind = "images"
	AssetFile  AssetKind = "files"
)

// UploadAsset streams a binary payload to the store's asset API. The store
// either fully ingests the asset or errors outright, so no partial-upload
// cleanup is needed here.
func (c *Client) UploadAsset(ctx context.Context, kind AssetKind, filename, contentType string, r io.Reader) (*Asset, error) {
	if kind != AssetImage && kind != AssetFile {
		return nil, fmt.Errorf("store: unknown asset kind %q", kind)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetQueryParam("filename", filename).
		SetBody(r).
		Post(fmt.Sprintf("/%s/assets/%s/%s", c.apiVersion, kind, c.dataset))
	if err != nil {
		return nil, fmt.Errorf("store: upload asset: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError("upload", resp)
	}

	var body struct {
		Document Asset `json:"document"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("store: decode asset response: %w", err)
	}
	if body.Document.ID == "" {
		return nil, fmt.Errorf("store: asset response missing id")
	}
	return &body.Document, nil
}
