package models

import (
	"encoding/json"
	"time"

	"github.com/localherald/core/internal/richtext"
)

// Document type names as persisted in the external content store.
const (
	TypeStory        = "story"
	TypeBreakingNews = "breakingNews"
	TypeAd           = "advertisement"
	TypeDoctor       = "doctor"
	TypeObituary     = "obituary"
	TypeCategoryNews = "categoryNews"
	TypeVideo        = "videoGallery"
	TypeHeroSection  = "heroSection"
	TypeLatestNews   = "latestNews"
	TypeSiteSettings = "siteSettings"
)

// Base is the common shape of every store document.
type Base struct {
	ID        string    `json:"_id,omitempty"`
	Type      string    `json:"_type"`
	CreatedAt time.Time `json:"_createdAt,omitempty"`
	UpdatedAt time.Time `json:"_updatedAt,omitempty"`
}

// ImageRef references an uploaded asset.
type ImageRef struct {
	URL     string `json:"url,omitempty"`
	AssetID string `json:"assetId,omitempty"`
	Alt     string `json:"alt,omitempty"`
}

// RichText is the canonical rich-content representation. Some legacy
// documents stored an HTML string instead of block form; decoding
// tolerates that, writes always emit block form.
type RichText struct {
	richtext.Document
}

func (r *RichText) UnmarshalJSON(data []byte) error {
	doc, err := richtext.Decode(data)
	if err != nil {
		return err
	}
	r.Document = doc
	return nil
}

func (r RichText) MarshalJSON() ([]byte, error) {
	if r.Document == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Document)
}
