package models

import "time"

// Story categories shown on the reader surface.
const (
	StoryCategoryLocal         = "local"
	StoryCategoryNational      = "national"
	StoryCategorySports        = "sports"
	StoryCategoryHealth        = "health"
	StoryCategoryEntertainment = "entertainment"
	StoryCategoryOpinion       = "opinion"
)

// Story is a published article. Slug uniqueness is relied on by
// lookup-by-slug and enforced at create/update time by the story service.
type Story struct {
	Base
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Author      string     `json:"author,omitempty"`
	MainImage   *ImageRef  `json:"mainImage,omitempty"`
	Excerpt     RichText   `json:"excerpt,omitempty"`
	Body        RichText   `json:"body,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Featured    bool       `json:"featured,omitempty"`
	Category    string     `json:"category,omitempty"`
}

// Published reports whether the story should appear on public surfaces.
func (s *Story) Published(now time.Time) bool {
	return s.PublishedAt != nil && !s.PublishedAt.After(now)
}
