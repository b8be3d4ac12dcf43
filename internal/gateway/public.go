package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

// Source tags where a public read was served from. Fallback reads are a
// degraded-but-working render, and callers must be able to tell them apart
// from live data.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Result is a public read together with its source tag.
type Result[T any] struct {
	Data   T
	Source Source
}

func live[T any](data T) Result[T] {
	return Result[T]{Data: data, Source: SourceLive}
}

func fallback[T any](data T) Result[T] {
	return Result[T]{Data: data, Source: SourceFallback}
}

// Plans lists the public pricing plans, serving the static list when the
// backend is unreachable.
func (c *Client) Plans(ctx context.Context) Result[[]models.Plan] {
	plans, err := DoJSON[[]models.Plan](ctx, c, Request{Method: http.MethodGet, Endpoint: "/api/public/plans"})
	if err != nil {
		log.Printf("[gateway] plans: live fetch failed, serving fallback: %v", err)
		return fallback(FallbackPlans())
	}
	return live(plans)
}

// PlanBySlug resolves one plan, preferring live data and falling back to the
// static list. Unknown slugs are an error from either source.
func (c *Client) PlanBySlug(ctx context.Context, slug string) (models.Plan, Source, error) {
	result := c.Plans(ctx)
	for _, p := range result.Data {
		if p.Slug == slug {
			return p, result.Source, nil
		}
	}
	return models.Plan{}, result.Source, fmt.Errorf("plan %q not found", slug)
}

// Testimonials lists approved testimonials with a static fallback.
func (c *Client) Testimonials(ctx context.Context) Result[[]models.Testimonial] {
	items, err := DoJSON[[]models.Testimonial](ctx, c, Request{Method: http.MethodGet, Endpoint: "/api/public/testimonials"})
	if err != nil {
		log.Printf("[gateway] testimonials: live fetch failed, serving fallback: %v", err)
		return fallback(FallbackTestimonials())
	}
	return live(items)
}

// Portfolio lists published portfolio projects with a static fallback.
func (c *Client) Portfolio(ctx context.Context) Result[[]models.PortfolioProject] {
	items, err := DoJSON[[]models.PortfolioProject](ctx, c, Request{Method: http.MethodGet, Endpoint: "/api/public/portfolio"})
	if err != nil {
		log.Printf("[gateway] portfolio: live fetch failed, serving fallback: %v", err)
		return fallback(FallbackPortfolio())
	}
	return live(items)
}

// Blogs lists published blog posts with a static fallback.
func (c *Client) Blogs(ctx context.Context) Result[[]models.BlogPost] {
	items, err := DoJSON[[]models.BlogPost](ctx, c, Request{Method: http.MethodGet, Endpoint: "/api/public/blogs"})
	if err != nil {
		log.Printf("[gateway] blogs: live fetch failed, serving fallback: %v", err)
		return fallback(FallbackBlogs())
	}
	return live(items)
}

// BlogBySlug fetches one post; on backend failure the static list is
// searched before giving up.
func (c *Client) BlogBySlug(ctx context.Context, slug string) (models.BlogPost, Source, error) {
	post, err := DoJSON[models.BlogPost](ctx, c, Request{Method: http.MethodGet, Endpoint: "/api/public/blogs/" + slug})
	if err == nil {
		return post, SourceLive, nil
	}

	log.Printf("[gateway] blog %s: live fetch failed, trying fallback: %v", slug, err)
	for _, p := range FallbackBlogs() {
		if p.Slug == slug {
			return p, SourceFallback, nil
		}
	}
	return models.BlogPost{}, SourceFallback, err
}

// CaseStudies lists published case studies with a static fallback.
func (c *Client) CaseStudies(ctx context.Context) Result[[]models.CaseStudy] {
	items, err := DoJSON[[]models.CaseStudy](ctx, c, Request{Method: http.MethodGet, Endpoint: "/api/public/case-studies"})
	if err != nil {
		log.Printf("[gateway] case studies: live fetch failed, serving fallback: %v", err)
		return fallback(FallbackCaseStudies())
	}
	return live(items)
}

// CaseStudyBySlug fetches one case study with the same fallback rule as
// BlogBySlug.
func (c *Client) CaseStudyBySlug(ctx context.Context, slug string) (models.CaseStudy, Source, error) {
	cs, err := DoJSON[models.CaseStudy](ctx, c, Request{Method: http.MethodGet, Endpoint: "/api/public/case-studies/" + slug})
	if err == nil {
		return cs, SourceLive, nil
	}

	log.Printf("[gateway] case study %s: live fetch failed, trying fallback: %v", slug, err)
	for _, item := range FallbackCaseStudies() {
		if item.Slug == slug {
			return item, SourceFallback, nil
		}
	}
	return models.CaseStudy{}, SourceFallback, err
}

// LikeBlog toggles the visitor's like on a post and reports the resulting
// liked state. Attribution is the anonymous visitor id, not a session.
func (c *Client) LikeBlog(ctx context.Context, slug, visitorID string) (bool, error) {
	resp, err := DoJSON[struct {
		Liked bool `json:"liked"`
	}](ctx, c, Request{
		Method:   http.MethodPost,
		Endpoint: "/api/public/blogs/" + slug + "/like",
		Body:     map[string]string{"user_id": visitorID},
	})
	if err != nil {
		return false, err
	}
	return resp.Liked, nil
}

// CommentInput is a visitor comment submission.
type CommentInput struct {
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email,omitempty"`
	Content   string `json:"content"`
}

// CommentOnBlog submits a comment for moderation.
func (c *Client) CommentOnBlog(ctx context.Context, slug string, comment CommentInput) error {
	_, err := c.Do(ctx, Request{
		Method:   http.MethodPost,
		Endpoint: "/api/public/blogs/" + slug + "/comments",
		Body:     comment,
	})
	return err
}

// SubmitServiceRequest creates a lead from the contact or pricing form.
func (c *Client) SubmitServiceRequest(ctx context.Context, req models.ServiceRequest) (models.ServiceRequest, error) {
	return DoJSON[models.ServiceRequest](ctx, c, Request{
		Method:   http.MethodPost,
		Endpoint: "/api/service-requests",
		Body:     req,
	})
}
