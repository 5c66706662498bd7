package models

import "time"

// BreakingNewsItem feeds the ticker. Priority 1 is shown first; an item
// is visible while active (or unset) and not past ExpiresAt.
type BreakingNewsItem struct {
	Base
	Title     string     `json:"title"`
	Link      string     `json:"link,omitempty"`
	Active    *bool      `json:"active,omitempty"`
	Priority  int        `json:"priority,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Visible reports ticker visibility at the given instant.
func (b *BreakingNewsItem) Visible(now time.Time) bool {
	if b.Active != nil && !*b.Active {
		return false
	}
	if b.ExpiresAt != nil && b.ExpiresAt.Before(now) {
		return false
	}
	return true
}

// Ad position slots on the reader surface.
const (
	AdPositionTop     = "top"
	AdPositionSidebar = "sidebar"
	AdPositionInline  = "inline"
	AdPositionFooter  = "footer"
)

// Advertisement occupies one fixed slot, optionally inside a date window.
type Advertisement struct {
	Base
	Title     string     `json:"title"`
	Position  string     `json:"position"`
	Image     *ImageRef  `json:"image,omitempty"`
	VideoURL  string     `json:"videoUrl,omitempty"`
	Link      string     `json:"link,omitempty"`
	Active    *bool      `json:"active,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Visible reports whether the ad runs at the given instant: active AND
// today within [start, end], open-ended when either bound is unset.
func (a *Advertisement) Visible(now time.Time) bool {
	if a.Active != nil && !*a.Active {
		return false
	}
	if a.StartDate != nil && a.StartDate.After(now) {
		return false
	}
	if a.EndDate != nil && a.EndDate.Before(now) {
		return false
	}
	return true
}

// Doctor appears in the doctors-on-call widget.
type Doctor struct {
	Base
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Hospital       string `json:"hospital,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Availability   string `json:"availability,omitempty"`
	Order          int    `json:"order,omitempty"`
	Active         *bool  `json:"active,omitempty"`
}

// Obituary is a death notice.
type Obituary struct {
	Base
	Name           string     `json:"name"`
	Photo          *ImageRef  `json:"photo,omitempty"`
	Age            int        `json:"age,omitempty"`
	Place          string     `json:"place,omitempty"`
	DateOfDeath    *time.Time `json:"dateOfDeath,omitempty"`
	FuneralDetails string     `json:"funeralDetails,omitempty"`
	Active         *bool      `json:"active,omitempty"`
}

// CategoryNews kinds; one widget strip per kind.
const (
	CategoryNewsNational      = "national"
	CategoryNewsEntertainment = "entertainment"
	CategoryNewsHealth        = "health"
	CategoryNewsSports        = "sports"
	CategoryNewsLocal         = "local"
)

// CategoryNews is a short item inside one of the category widget strips.
type CategoryNews struct {
	Base
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	Image       *ImageRef  `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Order       int        `json:"order,omitempty"`
	Active      *bool      `json:"active,omitempty"`
}

// VideoGalleryItem is an external video shown in the gallery.
type VideoGalleryItem struct {
	Base
	Title     string    `json:"title"`
	VideoURL  string    `json:"videoUrl"`
	Thumbnail *ImageRef `json:"thumbnail,omitempty"`
	Order     int       `json:"order,omitempty"`
	Active    *bool     `json:"active,omitempty"`
}

// IsActive treats an unset flag as visible, matching the store's older
// documents that predate the flag.
func IsActive(active *bool) bool {
	return active == nil || *active
}
