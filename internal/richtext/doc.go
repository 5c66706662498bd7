// Package richtext holds the portable rich-content document model shared
// by story bodies and excerpts, plus the image-insertion upload flow.
package richtext

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Block types understood by the model.
const (
	BlockText  = "block"
	BlockImage = "image"
	BlockHTML  = "html"
)

// Span is a run of text inside a text block.
type Span struct {
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// Block is one unit of a rich-content document.
type Block struct {
	Key   string `json:"_key,omitempty"`
	Type  string `json:"_type"`
	Style string `json:"style,omitempty"`
	Spans []Span `json:"children,omitempty"`

	// image block
	URL     string `json:"url,omitempty"`
	AssetID string `json:"assetId,omitempty"`
	Alt     string `json:"alt,omitempty"`

	// html block, used for legacy HTML-string content
	HTML string `json:"html,omitempty"`
}

// Document is an ordered list of blocks.
type Document []Block

// NewKey returns a fresh block/span key.
func NewKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// TextBlock builds a plain paragraph from a string.
func TextBlock(text string) Block {
	return Block{
		Key:   NewKey(),
		Type:  BlockText,
		Style: "normal",
		Spans: []Span{{Key: NewKey(), Text: text}},
	}
}

// HTMLBlock wraps a raw HTML string, used when decoding legacy excerpts.
func HTMLBlock(html string) Block {
	return Block{Key: NewKey(), Type: BlockHTML, HTML: html}
}

// ImageBlock builds an embedded-image block from an asset descriptor.
func ImageBlock(url, assetID, alt string) Block {
	return Block{Key: NewKey(), Type: BlockImage, URL: url, AssetID: assetID, Alt: alt}
}

// PlainText flattens all text spans, used for search previews and tests.
func (d Document) PlainText() string {
	var b strings.Builder
	for _, blk := range d {
		if blk.Type != BlockText {
			continue
		}
		for _, s := range blk.Spans {
			b.WriteString(s.Text)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// Decode accepts either the canonical block-array form or a legacy HTML
// string and always yields block form. Writes must emit block form only.
func Decode(raw json.RawMessage) (Document, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var html string
		if err := json.Unmarshal(raw, &html); err != nil {
			return nil, err
		}
		if strings.TrimSpace(html) == "" {
			return nil, nil
		}
		return Document{HTMLBlock(html)}, nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
