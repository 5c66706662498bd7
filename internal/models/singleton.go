package models

// Singleton documents: effectively one per type, first match wins on the
// read side. Saves go through upsert (patch first match, else create).

// HeroSection is the large lead block at the top of the home page.
type HeroSection struct {
	Base
	Headline    string    `json:"headline"`
	Subheadline string    `json:"subheadline,omitempty"`
	Image       *ImageRef `json:"image,omitempty"`
	Link        string    `json:"link,omitempty"`
	StorySlug   string    `json:"storySlug,omitempty"`
}

// LatestNews is the curated latest-news strip beside the hero.
type LatestNews struct {
	Base
	Title string   `json:"title,omitempty"`
	Items []string `json:"items,omitempty"` // story slugs, in display order
}

// SiteSettings holds site-wide presentation settings.
type SiteSettings struct {
	Base
	SiteTitle    string    `json:"siteTitle,omitempty"`
	Tagline      string    `json:"tagline,omitempty"`
	Logo         *ImageRef `json:"logo,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	FacebookURL  string    `json:"facebookUrl,omitempty"`
	YouTubeURL   string    `json:"youtubeUrl,omitempty"`
	LiveChannel  string    `json:"liveChannelId,omitempty"`
}
