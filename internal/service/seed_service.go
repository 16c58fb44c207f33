package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maeartistry/internal/db"
	"github.com/maeartistry/internal/sitecontent"
	"github.com/maeartistry/internal/store"
)

// SeedReport counts what a seed run inserted and what already existed.
type SeedReport struct {
	CategoriesCreated int
	CategoriesSkipped int
	ServicesCreated   int
	ServicesSkipped   int
	PostsCreated      int
	PostsSkipped      int
	PortfolioCreated  int
	PortfolioSkipped  int
}

// Seeder fills an empty project with the starter rows. Every step checks for
// an existing row first, so running it twice inserts nothing the second time.
type Seeder struct {
	repo       store.Repository
	categories *CategoryService
	catalog    *CatalogService
	site       *sitecontent.Site
}

// NewSeeder creates a Seeder.
func NewSeeder(repo store.Repository, site *sitecontent.Site) *Seeder {
	return &Seeder{
		repo:       repo,
		categories: NewCategoryService(repo),
		catalog:    NewCatalogService(repo, nil, site.Brand.WhatsApp),
		site:       site,
	}
}

// SeedCategories are the starter categories with their swatch colours.
var SeedCategories = []CategoryInput{
	{Name: "Bridal", Description: "Wedding day and pre-wedding looks", Color: "#b76e79"},
	{Name: "Party", Description: "Dinners, birthdays and events", Color: "#d4a373"},
	{Name: "Editorial", Description: "Magazine, campaign and creative work", Color: "#2f2a2b"},
	{Name: "Class", Description: "Personal and group makeup lessons", Color: "#8e9aaf"},
}

// SeedPosts are the starter blog posts.
var SeedPosts = []ContentInput{
	{
		Title:       "10 Essential Bridal Makeup Tips for Your Perfect Wedding Day",
		Description: "How to prepare your skin, plan your trial and keep your makeup fresh from ceremony to reception.",
		Body:        "## Start your skincare early\n\nBegin a simple routine at least six weeks before the wedding.\n\n## Book a trial\n\nBring photos of looks you love and wear a top close to your dress neckline.",
		Type:        string(db.ContentTypeBlog),
		Status:      string(db.ContentStatusPublished),
		Tags:        []string{"bridal", "tips"},
		Keywords:    []string{"bridal makeup", "wedding makeup malaysia"},
	},
	{
		Title:       "Soft Glam vs Full Glam: Which Is Right for Your Event?",
		Description: "A quick guide to choosing the right level of glam for dinners, engagements and photoshoots.",
		Body:        "Soft glam keeps skin luminous and lashes light. Full glam adds sculpted contour, bold lashes and a defined lip.",
		Type:        string(db.ContentTypeBlog),
		Status:      string(db.ContentStatusPublished),
		Tags:        []string{"party", "guide"},
		Keywords:    []string{"soft glam", "party makeup"},
	},
}

// Run executes every seed step in order and stops at the first error.
func (s *Seeder) Run(ctx context.Context) (SeedReport, error) {
	var report SeedReport
	steps := []struct {
		name string
		run  func(context.Context, *SeedReport) error
	}{
		{name: "categories", run: s.seedCategories},
		{name: "services", run: s.seedServices},
		{name: "posts", run: s.seedPosts},
		{name: "portfolio", run: s.seedPortfolio},
	}
	for _, step := range steps {
		if err := step.run(ctx, &report); err != nil {
			return report, fmt.Errorf("seed %s: %w", step.name, err)
		}
		slog.Debug("seed step finished", "step", step.name)
	}
	return report, nil
}

func (s *Seeder) seedCategories(ctx context.Context, report *SeedReport) error {
	for _, input := range SeedCategories {
		_, created, err := s.categories.Ensure(ctx, input)
		if err != nil {
			return err
		}
		if created {
			report.CategoriesCreated++
		} else {
			report.CategoriesSkipped++
		}
	}
	return nil
}

func (s *Seeder) seedServices(ctx context.Context, report *SeedReport) error {
	for i, item := range s.site.Services {
		created, err := s.catalog.Ensure(ctx, ServiceInput{
			Title:       item.Title,
			Category:    item.Category,
			Description: item.Description,
			Duration:    item.Duration,
			Price:       item.Price,
			Features:    item.Features,
			Status:      string(db.ContentStatusPublished),
			SortOrder:   i + 1,
		})
		if err != nil {
			return err
		}
		if created {
			report.ServicesCreated++
		} else {
			report.ServicesSkipped++
		}
	}
	return nil
}

func (s *Seeder) seedPosts(ctx context.Context, report *SeedReport) error {
	for _, input := range SeedPosts {
		created, err := s.ensureContent(ctx, input)
		if err != nil {
			return err
		}
		if created {
			report.PostsCreated++
		} else {
			report.PostsSkipped++
		}
	}
	return nil
}

func (s *Seeder) seedPortfolio(ctx context.Context, report *SeedReport) error {
	for _, item := range s.site.Portfolio {
		created, err := s.ensureContent(ctx, ContentInput{
			Title:    item.Title,
			Type:     string(db.ContentTypePortfolio),
			Status:   string(db.ContentStatusPublished),
			FilePath: item.Image,
			Tags:     []string{item.Category},
		})
		if err != nil {
			return err
		}
		if created {
			report.PortfolioCreated++
		} else {
			report.PortfolioSkipped++
		}
	}
	return nil
}

// ensureContent inserts input unless a row of the same type and title exists.
func (s *Seeder) ensureContent(ctx context.Context, input ContentInput) (bool, error) {
	contentType, ok := db.ParseContentType(input.Type)
	if !ok {
		return false, ErrContentTypeInvalid
	}
	existing, err := s.repo.ListContent(ctx, store.ContentFilter{Type: contentType})
	if err != nil {
		return false, err
	}
	title := strings.TrimSpace(input.Title)
	for _, row := range existing {
		if strings.EqualFold(strings.TrimSpace(row.Title), title) {
			return false, nil
		}
	}

	item, err := buildContent(db.Content{}, input)
	if err != nil {
		return false, err
	}
	if err := s.repo.InsertContent(ctx, &item); err != nil {
		return false, err
	}
	return true, nil
}
