package db

import (
	"errors"
	"math"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestContentVariantsFollowType(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		content Content
		check   func(t *testing.T, v any)
	}{
		{
			name: "blog",
			content: Content{
				ID:        "b1",
				Title:     "10 Essential Bridal Makeup Tips for Your Perfect Wedding Day",
				Type:      ContentTypeBlog,
				Body:      "# Tips",
				CreatedAt: created,
			},
			check: func(t *testing.T, v any) {
				post, ok := v.(BlogPost)
				if !ok {
					t.Fatalf("expected BlogPost, got %T", v)
				}
				if post.Slug != "10-essential-bridal-makeup-tips-for-your-perfect-wedding-day" {
					t.Fatalf("unexpected slug %q", post.Slug)
				}
				if !post.PublishedAt.Equal(created) {
					t.Fatalf("expected published at %v, got %v", created, post.PublishedAt)
				}
			},
		},
		{
			name: "portfolio",
			content: Content{
				Title:    "Garden Bride",
				Type:     ContentTypePortfolio,
				FilePath: "portfolio/garden.webp",
				Tags:     datatypes.JSONSlice[string]{"bridal", "outdoor"},
			},
			check: func(t *testing.T, v any) {
				item, ok := v.(PortfolioImage)
				if !ok {
					t.Fatalf("expected PortfolioImage, got %T", v)
				}
				if item.Category != "bridal" {
					t.Fatalf("expected first tag as category, got %q", item.Category)
				}
			},
		},
		{
			name:    "partner logo",
			content: Content{Title: "Studio Lumiere", Type: ContentTypePartner, Link: "https://lumiere.example"},
			check: func(t *testing.T, v any) {
				logo, ok := v.(LogoAsset)
				if !ok {
					t.Fatalf("expected LogoAsset, got %T", v)
				}
				if logo.Kind != ContentTypePartner || logo.Link == "" {
					t.Fatalf("unexpected logo %+v", logo)
				}
			},
		},
		{
			name:    "unknown",
			content: Content{Title: "??", Type: "banner"},
			check: func(t *testing.T, v any) {
				if v != nil {
					t.Fatalf("expected nil variant, got %T", v)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.content.Variant())
		})
	}
}

func TestTypedAccessorRejectsOtherTypes(t *testing.T) {
	c := Content{Title: "Logo", Type: ContentTypeFeatured}
	if _, ok := c.AsBlogPost(); ok {
		t.Fatal("featured row must not convert to a blog post")
	}
	if _, ok := c.AsLogo(); !ok {
		t.Fatal("featured row should convert to a logo")
	}
}

func TestContentValidate(t *testing.T) {
	c := Content{Title: "Draft", Type: ContentTypeBlog}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid row, got %v", err)
	}
	if c.Status != ContentStatusDraft {
		t.Fatalf("expected default status draft, got %s", c.Status)
	}

	bad := Content{Title: "", Type: "banner"}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("expected ErrInvalidRow, got %v", err)
	}
}

func TestStampKeepsExistingID(t *testing.T) {
	now := time.Now().UTC()
	c := Content{ID: "fixed"}
	c.Stamp(now)
	if c.ID != "fixed" || !c.CreatedAt.Equal(now) {
		t.Fatalf("unexpected stamp result %+v", c)
	}

	var fresh Content
	fresh.Stamp(now)
	if fresh.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestParseContentType(t *testing.T) {
	if got, ok := ParseContentType(" Portfolio "); !ok || got != ContentTypePortfolio {
		t.Fatalf("expected portfolio, got %q (%v)", got, ok)
	}
	if _, ok := ParseContentType("banner"); ok {
		t.Fatal("expected banner to be rejected")
	}
}

func TestServiceAndProjectAmountBounds(t *testing.T) {
	ok := Service{Title: "Bridal Makeup", Category: "Bridal", Price: 99999999.99, Status: ContentStatusPublished}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected max price to be valid, got %v", err)
	}
	for _, price := range []float64{-1, 1e20, math.Inf(1)} {
		svc := Service{Title: "Bridal Makeup", Category: "Bridal", Price: price, Status: ContentStatusPublished}
		if err := svc.Validate(); !errors.Is(err, ErrInvalidRow) {
			t.Fatalf("price %v: expected ErrInvalidRow, got %v", price, err)
		}
	}

	project := Project{Name: "Wedding", Status: ProjectStatusPlanning, Budget: 1e13}
	if err := project.Validate(); !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("expected oversized budget to be rejected, got %v", err)
	}
}
