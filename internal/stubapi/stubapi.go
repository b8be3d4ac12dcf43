// Package stubapi is an in-memory stand-in for the hosted backend, used by
// package tests and the local development command. It mirrors the REST
// surface the gateway client consumes; it is tooling, not a production
// server.
package stubapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pixelcraftlabs/site-gateway/internal/gateway"
	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

// Options configure the stub's behavior knobs that tests need to flip.
type Options struct {
	// AdminToken is the bearer value /api/check-admin accepts as admin.
	AdminToken string

	// RazorpayConfigured is echoed on created orders; false simulates a
	// backend with no payment gateway set up.
	RazorpayConfigured bool

	// RejectVerification makes /api/payments/verify fail, simulating a
	// signature mismatch.
	RejectVerification bool
}

// RequestRecord is one observed request, for assertions like "no privileged
// call fired".
type RequestRecord struct {
	Method string
	Path   string
	Bearer string
}

// Server holds the stub's in-memory state.
type Server struct {
	opts Options

	mu           sync.Mutex
	plans        []models.Plan
	testimonials []models.Testimonial
	portfolio    []models.PortfolioProject
	blogs        []models.BlogPost
	caseStudies  []models.CaseStudy

	likes    map[string]map[string]bool // blog slug -> visitor id -> liked
	comments []models.BlogComment

	requests []models.ServiceRequest

	orders        map[string]models.PaymentOrder // idempotency key -> order
	verifications []models.PaymentVerification

	adminData map[string][]map[string]any
	nextID    int

	observed []RequestRecord
}

// New creates a stub seeded with the gateway's static fallback content, so
// the same fixtures serve both fallback rendering and live-path tests.
func New(opts Options) *Server {
	s := &Server{
		opts:         opts,
		plans:        gateway.FallbackPlans(),
		testimonials: gateway.FallbackTestimonials(),
		portfolio:    gateway.FallbackPortfolio(),
		blogs:        gateway.FallbackBlogs(),
		caseStudies:  gateway.FallbackCaseStudies(),
		likes:        map[string]map[string]bool{},
		orders:       map[string]models.PaymentOrder{},
		adminData:    map[string][]map[string]any{},
	}
	for _, resource := range []string{
		"requests", "projects", "tasks", "payments", "plans",
		"testimonials", "portfolio", "blogs", "case-studies", "blog-comments",
	} {
		s.adminData[resource] = []map[string]any{}
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.recorder)

	r.Get("/api/public/plans", s.listPlans)
	r.Get("/api/public/testimonials", s.listTestimonials)
	r.Get("/api/public/portfolio", s.listPortfolio)
	r.Get("/api/public/blogs", s.listBlogs)
	r.Get("/api/public/blogs/{slug}", s.getBlog)
	r.Post("/api/public/blogs/{slug}/like", s.likeBlog)
	r.Post("/api/public/blogs/{slug}/comments", s.commentBlog)
	r.Get("/api/public/case-studies", s.listCaseStudies)
	r.Get("/api/public/case-studies/{slug}", s.getCaseStudy)

	r.Post("/api/service-requests", s.createServiceRequest)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/api/check-admin", s.checkAdmin)
		r.Post("/api/payments/create-order", s.createOrder)
		r.Post("/api/payments/verify", s.verifyPayment)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(s.requireAdmin)
		r.Get("/api/admin/metrics", s.adminMetrics)
		r.Get("/api/admin/{resource}", s.adminList)
		r.Post("/api/admin/{resource}", s.adminCreate)
		r.Patch("/api/admin/{resource}/{id}", s.adminUpdate)
		r.Delete("/api/admin/{resource}/{id}", s.adminDelete)
	})

	return r
}

// Observed returns a copy of the request log.
func (s *Server) Observed() []RequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RequestRecord, len(s.observed))
	copy(out, s.observed)
	return out
}

// CountRequests counts observed requests whose path starts with prefix.
func (s *Server) CountRequests(prefix string) int {
	n := 0
	for _, rec := range s.Observed() {
		if strings.HasPrefix(rec.Path, prefix) {
			n++
		}
	}
	return n
}

// Verifications returns the verify payloads received so far.
func (s *Server) Verifications() []models.PaymentVerification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PaymentVerification, len(s.verifications))
	copy(out, s.verifications)
	return out
}

// ServiceRequests returns the leads created so far.
func (s *Server) ServiceRequests() []models.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ServiceRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// middleware

func (s *Server) recorder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.observed = append(s.observed, RequestRecord{
			Method: r.Method,
			Path:   r.URL.Path,
			Bearer: bearerToken(r),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bearerToken(r) == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bearerToken(r) != s.opts.AdminToken {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}

// public handlers

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.plans)
}

func (s *Server) listTestimonials(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.testimonials)
}

func (s *Server) listPortfolio(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.portfolio)
}

func (s *Server) listBlogs(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.blogs)
}

func (s *Server) getBlog(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blogs {
		if b.Slug == slug {
			writeJSON(w, b)
			return
		}
	}
	writeError(w, http.StatusNotFound, "blog not found")
}

func (s *Server) likeBlog(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likes[slug] == nil {
		s.likes[slug] = map[string]bool{}
	}
	liked := !s.likes[slug][body.UserID]
	s.likes[slug][body.UserID] = liked
	writeJSON(w, map[string]bool{"liked": liked})
}

func (s *Server) commentBlog(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var body struct {
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if body.UserName == "" || body.Content == "" {
		writeError(w, http.StatusBadRequest, "user_name and content are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.comments = append(s.comments, models.BlogComment{
		ID:       fmt.Sprintf("comment-%d", s.nextID),
		BlogSlug: slug,
		UserName: body.UserName,
		Content:  body.Content,
	})
	writeJSON(w, map[string]bool{"ok": true})
}

func (s *Server) listCaseStudies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.caseStudies)
}

func (s *Server) getCaseStudy(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cs := range s.caseStudies {
		if cs.Slug == slug {
			writeJSON(w, cs)
			return
		}
	}
	writeError(w, http.StatusNotFound, "case study not found")
}

func (s *Server) createServiceRequest(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "name, email and message are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	req.ID = fmt.Sprintf("req-%d", s.nextID)
	req.Status = models.ServiceRequestNew
	s.requests = append(s.requests, req)
	writeJSON(w, req)
}

// payment handlers

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("Idempotency-Key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Idempotency-Key header is required")
		return
	}

	var body struct {
		PlanSlug string `json:"plan_slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PlanSlug == "" {
		writeError(w, http.StatusBadRequest, "plan_slug is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if order, ok := s.orders[key]; ok {
		writeJSON(w, order)
		return
	}

	var plan *models.Plan
	for i := range s.plans {
		if s.plans[i].Slug == body.PlanSlug {
			plan = &s.plans[i]
			break
		}
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	if !plan.IsPaid() {
		writeError(w, http.StatusBadRequest, "free plan does not require checkout")
		return
	}

	s.nextID++
	order := models.PaymentOrder{
		Amount:             plan.PriceInr,
		Currency:           "INR",
		RazorpayKeyID:      "rzp_test_stub",
		RazorpayOrderID:    fmt.Sprintf("order_%d", s.nextID),
		RazorpayConfigured: s.opts.RazorpayConfigured,
	}
	s.orders[key] = order
	writeJSON(w, order)
}

func (s *Server) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var v models.PaymentVerification
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if v.RazorpayOrderID == "" || v.RazorpayPaymentID == "" || v.RazorpaySignature == "" {
		writeError(w, http.StatusBadRequest, "order id, payment id and signature are required")
		return
	}
	if s.opts.RejectVerification {
		writeError(w, http.StatusBadRequest, "signature verification failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifications = append(s.verifications, v)
	writeJSON(w, map[string]bool{"verified": true})
}

func (s *Server) checkAdmin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{"isAdmin": bearerToken(r) == s.opts.AdminToken})
}

// admin handlers: one generic in-memory collection per resource

func (s *Server) adminList(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.adminData[resource]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}
	writeJSON(w, records)
}

func (s *Server) adminCreate(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.adminData[resource]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}
	s.nextID++
	record["id"] = fmt.Sprintf("%s-%d", resource, s.nextID)
	s.adminData[resource] = append(records, record)
	writeJSON(w, record)
}

func (s *Server) adminUpdate(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.adminData[resource] {
		if record["id"] == id {
			for k, v := range patch {
				if k != "id" {
					record[k] = v
				}
			}
			writeJSON(w, record)
			return
		}
	}
	writeError(w, http.StatusNotFound, "record not found")
}

func (s *Server) adminDelete(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.adminData[resource]
	for i, record := range records {
		if record["id"] == id {
			s.adminData[resource] = append(records[:i], records[i+1:]...)
			writeJSON(w, map[string]bool{"ok": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "record not found")
}

func (s *Server) adminMetrics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	published := 0
	for _, b := range s.blogs {
		if b.Published {
			published++
		}
	}
	writeJSON(w, models.DashboardMetrics{
		OpenRequests:   len(s.requests),
		ActiveProjects: len(s.adminData["projects"]),
		PaymentsTotal:  len(s.verifications),
		PublishedPosts: published,
	})
}

// helpers

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[stubapi] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
