package admin

import (
	"context"
	"net/http"

	"github.com/pixelcraftlabs/site-gateway/internal/gateway"
	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

// Per-resource constructors. The dashboard treats every kind identically;
// only the record type and the admin path differ.

func NewBlogController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.BlogPost] {
	return NewController(c, "blogs", func(b models.BlogPost) string { return b.ID }, s, n)
}

func NewCaseStudyController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.CaseStudy] {
	return NewController(c, "case-studies", func(cs models.CaseStudy) string { return cs.ID }, s, n)
}

func NewTestimonialController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.Testimonial] {
	return NewController(c, "testimonials", func(t models.Testimonial) string { return t.ID }, s, n)
}

func NewPortfolioController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.PortfolioProject] {
	return NewController(c, "portfolio", func(p models.PortfolioProject) string { return p.ID }, s, n)
}

func NewRequestController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.ServiceRequest] {
	return NewController(c, "requests", func(r models.ServiceRequest) string { return r.ID }, s, n)
}

func NewProjectController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.Project] {
	return NewController(c, "projects", func(p models.Project) string { return p.ID }, s, n)
}

func NewTaskController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.Task] {
	return NewController(c, "tasks", func(t models.Task) string { return t.ID }, s, n)
}

func NewPlanController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.Plan] {
	return NewController(c, "plans", func(p models.Plan) string { return p.ID }, s, n)
}

func NewPaymentController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.PaymentRecord] {
	return NewController(c, "payments", func(p models.PaymentRecord) string { return p.ID }, s, n)
}

func NewCommentController(c *gateway.Client, s SessionSource, n Notifier) *Controller[models.BlogComment] {
	return NewController(c, "blog-comments", func(b models.BlogComment) string { return b.ID }, s, n)
}

// Metrics fetches the dashboard counters. Like Load, a missing session is a
// silent pre-auth state and returns zero metrics.
func Metrics(ctx context.Context, c *gateway.Client, sessions SessionSource) (models.DashboardMetrics, error) {
	sess := sessions.CurrentSession(ctx)
	if sess == nil {
		return models.DashboardMetrics{}, nil
	}
	return gateway.DoJSON[models.DashboardMetrics](ctx, c, gateway.Request{
		Method:   http.MethodGet,
		Endpoint: "/api/admin/metrics",
		Token:    sess.AccessToken,
	})
}
