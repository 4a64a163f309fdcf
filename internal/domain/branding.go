package domain

import "time"

// Branding is the app-settings document. It is loaded and saved
// wholesale as one nested object, never field by field.
type Branding struct {
	ID        int          `json:"id"`
	SiteTitle string       `json:"site_title"`
	Tagline   string       `json:"tagline"`
	Menu      []MenuLabel  `json:"menu"`
	Contacts  []ContactRow `json:"contacts"`
	FAQ       []FAQEntry   `json:"faq"`
	Slides    []Slide      `json:"slides"`
	Features  []Feature    `json:"features"`
	Carousels []Carousel   `json:"carousels"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type MenuLabel struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type ContactRow struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Slide struct {
	ImageURL string `json:"image_url"`
	Heading  string `json:"heading"`
	Subtext  string `json:"subtext"`
	LinkURL  string `json:"link_url"`
}

type Feature struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Carousel struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}
