package models

import "time"

// Plan represents a service tier sold on the pricing page. Prices are kept
// in minor units (paise); Price is the preformatted display string.
type Plan struct {
	ID           string   `json:"id,omitempty"`
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Price        string   `json:"price"`
	PriceInr     int      `json:"price_inr"`
	DeliveryDays int      `json:"delivery_days"`
	Features     []string `json:"features"`
	Popular      bool     `json:"popular"`
}

// IsPaid reports whether checkout applies to this plan.
func (p Plan) IsPaid() bool {
	return p.PriceInr > 0
}

// Testimonial is a customer quote shown on the home page.
type Testimonial struct {
	ID       string `json:"id,omitempty"`
	Author   string `json:"author"`
	Role     string `json:"role"`
	Quote    string `json:"quote"`
	Rating   int    `json:"rating"`
	Approved bool   `json:"approved"`
}

// PortfolioProject is a public portfolio entry.
type PortfolioProject struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags,omitempty"`
	LiveURL     string   `json:"live_url,omitempty"`
	CoverImage  string   `json:"cover_image,omitempty"`
	Published   bool     `json:"published"`
	DisplayRank int      `json:"display_rank,omitempty"`
}

// BlogPost is a blog article; Content is only populated on single-post reads.
type BlogPost struct {
	ID          string     `json:"id,omitempty"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Published   bool       `json:"published"`
	LikeCount   int        `json:"like_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// BlogComment is a visitor comment awaiting or past moderation.
type BlogComment struct {
	ID        string    `json:"id,omitempty"`
	BlogSlug  string    `json:"blog_slug"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email,omitempty"`
	Content   string    `json:"content"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CaseStudy is a long-form client story.
type CaseStudy struct {
	ID        string   `json:"id,omitempty"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Client    string   `json:"client"`
	Summary   string   `json:"summary"`
	Body      string   `json:"body,omitempty"`
	Results   []string `json:"results,omitempty"`
	Published bool     `json:"published"`
}

// Project is an internal delivery project tracked in the admin dashboard.
type Project struct {
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name"`
	ClientName string     `json:"client_name"`
	Status     string     `json:"status"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}
