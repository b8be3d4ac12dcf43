// Command sitecli exercises the gateway client against a configured backend
// from the terminal: public reads, blog interactions, lead submission, and
// the admin check.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pixelcraftlabs/site-gateway/internal/config"
	"github.com/pixelcraftlabs/site-gateway/internal/gateway"
	"github.com/pixelcraftlabs/site-gateway/internal/identity"
	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(
		"../.env",
		".env",
	)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	client := gateway.New(cfg.APIBaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "plans":
		result := client.Plans(ctx)
		fmt.Printf("source: %s\n", result.Source)
		for _, p := range result.Data {
			fmt.Printf("  %-10s %-14s %d days\n", p.Slug, p.Price, p.DeliveryDays)
		}

	case "testimonials":
		result := client.Testimonials(ctx)
		fmt.Printf("source: %s\n", result.Source)
		for _, tm := range result.Data {
			fmt.Printf("  %s (%s): %s\n", tm.Author, tm.Role, tm.Quote)
		}

	case "blogs":
		result := client.Blogs(ctx)
		fmt.Printf("source: %s\n", result.Source)
		for _, b := range result.Data {
			fmt.Printf("  %-40s %s\n", b.Slug, b.Title)
		}

	case "blog":
		if len(os.Args) < 3 {
			log.Fatalf("usage: sitecli blog <slug>")
		}
		post, source, err := client.BlogBySlug(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("failed to fetch blog: %v", err)
		}
		fmt.Printf("source: %s\n%s\n\n%s\n", source, post.Title, post.Content)

	case "like":
		if len(os.Args) < 3 {
			log.Fatalf("usage: sitecli like <slug>")
		}
		store, err := identity.DefaultStore()
		if err != nil {
			log.Fatalf("failed to open identity store: %v", err)
		}
		ident, err := store.Ensure()
		if err != nil {
			log.Fatalf("failed to establish identity: %v", err)
		}
		liked, err := client.LikeBlog(ctx, os.Args[2], ident.ID)
		if err != nil {
			log.Fatalf("failed to like blog: %v", err)
		}
		fmt.Printf("liked: %v\n", liked)

	case "comment":
		if len(os.Args) < 5 {
			log.Fatalf("usage: sitecli comment <slug> <name> <content...>")
		}
		input := gateway.CommentInput{
			UserName: os.Args[3],
			Content:  strings.Join(os.Args[4:], " "),
		}
		if err := client.CommentOnBlog(ctx, os.Args[2], input); err != nil {
			log.Fatalf("failed to submit comment: %v", err)
		}
		fmt.Println("comment submitted for moderation")

	case "submit":
		if len(os.Args) < 5 {
			log.Fatalf("usage: sitecli submit <name> <email> <message...>")
		}
		req := models.ServiceRequest{
			Name:    os.Args[2],
			Email:   os.Args[3],
			Message: strings.Join(os.Args[4:], " "),
		}
		created, err := client.SubmitServiceRequest(ctx, req)
		if err != nil {
			log.Fatalf("failed to submit request: %v", err)
		}
		fmt.Printf("submitted request %s\n", created.ID)

	case "check-admin":
		if len(os.Args) < 3 {
			log.Fatalf("usage: sitecli check-admin <token>")
		}
		isAdmin, err := client.CheckAdmin(ctx, os.Args[2])
		if err != nil {
			// Fail-closed, same as the session provider.
			log.Printf("admin check failed: %v", err)
			isAdmin = false
		}
		fmt.Printf("isAdmin: %v\n", isAdmin)

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: sitecli <command>

commands:
  plans                              list pricing plans
  testimonials                       list testimonials
  blogs                              list blog posts
  blog <slug>                        show one blog post
  like <slug>                        toggle a like as the local anonymous identity
  comment <slug> <name> <content>    submit a blog comment for moderation
  submit <name> <email> <message>    submit a service request
  check-admin <token>                check admin status for a bearer token`)
}
