package gateway

import "github.com/pixelcraftlabs/site-gateway/internal/models"

// Static fallback content served when the backend is unreachable. Each
// function returns a fresh slice so callers can never mutate the canonical
// copy under a later render.

// FallbackPlans is the hardcoded pricing table.
func FallbackPlans() []models.Plan {
	return []models.Plan{
		{
			Slug:         "starter",
			Name:         "Starter",
			Price:        "₹4,999",
			PriceInr:     499900,
			DeliveryDays: 7,
			Features: []string{
				"Single-page site",
				"Mobile responsive",
				"Contact form",
				"1 revision round",
			},
		},
		{
			Slug:         "growth",
			Name:         "Growth",
			Price:        "₹9,999",
			PriceInr:     999900,
			DeliveryDays: 14,
			Popular:      true,
			Features: []string{
				"Up to 6 pages",
				"Blog setup",
				"Basic SEO",
				"3 revision rounds",
			},
		},
		{
			Slug:         "scale",
			Name:         "Scale",
			Price:        "₹24,999",
			PriceInr:     2499900,
			DeliveryDays: 30,
			Features: []string{
				"Custom web application",
				"Admin dashboard",
				"Payment integration",
				"Priority support",
			},
		},
		{
			Slug:         "consult",
			Name:         "Consultation",
			Price:        "Free",
			PriceInr:     0,
			DeliveryDays: 1,
			Features: []string{
				"30-minute discovery call",
				"Scope and budget estimate",
			},
		},
	}
}

// FallbackTestimonials is the hardcoded home-page quote list.
func FallbackTestimonials() []models.Testimonial {
	return []models.Testimonial{
		{
			Author:   "Asha Verma",
			Role:     "Founder, Leaf & Ladle",
			Quote:    "The new site doubled our table bookings within a month.",
			Rating:   5,
			Approved: true,
		},
		{
			Author:   "Rohan Mehta",
			Role:     "Director, Mehta Exports",
			Quote:    "Clear communication and delivery ahead of schedule.",
			Rating:   5,
			Approved: true,
		},
		{
			Author:   "Priya Nair",
			Role:     "Owner, Studio Priya",
			Quote:    "They handled everything from copy to checkout. Painless.",
			Rating:   4,
			Approved: true,
		},
	}
}

// FallbackPortfolio is the hardcoded portfolio grid.
func FallbackPortfolio() []models.PortfolioProject {
	return []models.PortfolioProject{
		{
			Title:     "Leaf & Ladle",
			Summary:   "Restaurant site with online reservations and menus.",
			Tags:      []string{"hospitality", "booking"},
			Published: true,
		},
		{
			Title:     "Mehta Exports",
			Summary:   "Catalogue site with a multilingual enquiry pipeline.",
			Tags:      []string{"b2b", "catalogue"},
			Published: true,
		},
		{
			Title:     "Studio Priya",
			Summary:   "Portfolio and storefront for a design studio.",
			Tags:      []string{"ecommerce"},
			Published: true,
		},
	}
}

// FallbackBlogs is the hardcoded article list. Content bodies are present so
// single-post reads also survive a backend outage.
func FallbackBlogs() []models.BlogPost {
	return []models.BlogPost{
		{
			Slug:      "why-your-business-needs-a-website",
			Title:     "Why Your Business Needs a Website in 2026",
			Excerpt:   "Most buyers check you out online before they ever call.",
			Content:   "Most buyers check you out online before they ever call. A website is the one channel you own outright...",
			Tags:      []string{"business"},
			Published: true,
		},
		{
			Slug:      "choosing-the-right-plan",
			Title:     "Choosing the Right Plan for Your Project",
			Excerpt:   "Starter, Growth, or Scale — what actually fits your stage.",
			Content:   "Starter, Growth, or Scale — what actually fits your stage depends on how much of the sales journey happens on the site...",
			Tags:      []string{"pricing"},
			Published: true,
		},
	}
}

// FallbackCaseStudies is the hardcoded case-study list.
func FallbackCaseStudies() []models.CaseStudy {
	return []models.CaseStudy{
		{
			Slug:      "leaf-and-ladle-bookings",
			Title:     "Doubling Bookings for Leaf & Ladle",
			Client:    "Leaf & Ladle",
			Summary:   "A reservation-first redesign for a Pune restaurant.",
			Body:      "Leaf & Ladle came to us with a brochure site and a phone line...",
			Results:   []string{"2x table bookings", "38% less phone traffic"},
			Published: true,
		},
	}
}
