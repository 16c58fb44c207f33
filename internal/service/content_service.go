package service

import (
	"context"
	"errors"
	"strings"

	"github.com/maeartistry/internal/db"
	"github.com/maeartistry/internal/format"
	"github.com/maeartistry/internal/store"
	"gorm.io/datatypes"
)

var (
	ErrContentNotFound    = errors.New("content not found")
	ErrContentTypeInvalid = errors.New("content type is invalid")
	ErrContentInvalid     = errors.New("content is invalid")
)

// ContentService serves blog posts, portfolio items and logos from the
// shared content table.
type ContentService struct {
	repo store.Repository
}

// ContentInput represents fields accepted when creating or updating content.
type ContentInput struct {
	Title       string
	Description string
	Body        string
	Type        string
	Status      string
	FilePath    string
	Link        string
	Tags        []string
	Keywords    []string
}

// NewContentService creates a ContentService instance.
func NewContentService(repo store.Repository) *ContentService {
	return &ContentService{repo: repo}
}

// List returns raw rows matching the filter.
func (s *ContentService) List(ctx context.Context, filter store.ContentFilter) ([]db.Content, error) {
	return s.repo.ListContent(ctx, filter)
}

// ListBlogPosts returns published posts, newest first.
func (s *ContentService) ListBlogPosts(ctx context.Context, limit int) ([]db.BlogPost, error) {
	rows, err := s.repo.ListContent(ctx, store.ContentFilter{
		Type:   db.ContentTypeBlog,
		Status: db.ContentStatusPublished,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	posts := make([]db.BlogPost, 0, len(rows))
	for _, row := range rows {
		if post, ok := row.AsBlogPost(); ok {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// GetBlogPostBySlug finds a published post whose title slugifies to slug.
// Slugs are derived, not stored, so this scans the published posts.
func (s *ContentService) GetBlogPostBySlug(ctx context.Context, slug string) (*db.BlogPost, error) {
	want := format.Slugify(slug)
	if want == "" {
		return nil, ErrContentNotFound
	}

	posts, err := s.ListBlogPosts(ctx, 0)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == want {
			return &posts[i], nil
		}
	}
	return nil, ErrContentNotFound
}

// ListPortfolio returns published portfolio images, optionally limited to one category.
func (s *ContentService) ListPortfolio(ctx context.Context, category string, limit int) ([]db.PortfolioImage, error) {
	rows, err := s.repo.ListContent(ctx, store.ContentFilter{
		Type:   db.ContentTypePortfolio,
		Status: db.ContentStatusPublished,
		Tag:    strings.ToLower(strings.TrimSpace(category)),
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]db.PortfolioImage, 0, len(rows))
	for _, row := range rows {
		if item, ok := row.AsPortfolioImage(); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// ListLogos returns published featured and partner logos. An empty kind
// returns both, featured first.
func (s *ContentService) ListLogos(ctx context.Context, kind db.ContentType) ([]db.LogoAsset, error) {
	kinds := []db.ContentType{db.ContentTypeFeatured, db.ContentTypePartner}
	if kind != "" {
		if kind != db.ContentTypeFeatured && kind != db.ContentTypePartner {
			return nil, ErrContentTypeInvalid
		}
		kinds = []db.ContentType{kind}
	}

	logos := []db.LogoAsset{}
	for _, k := range kinds {
		rows, err := s.repo.ListContent(ctx, store.ContentFilter{Type: k, Status: db.ContentStatusPublished})
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if logo, ok := row.AsLogo(); ok {
				logos = append(logos, logo)
			}
		}
	}
	return logos, nil
}

// Get fetches a content row by id.
func (s *ContentService) Get(ctx context.Context, id string) (*db.Content, error) {
	item, err := s.repo.GetContent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return item, nil
}

// Create inserts a new content row.
func (s *ContentService) Create(ctx context.Context, input ContentInput) (*db.Content, error) {
	item, err := buildContent(db.Content{}, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.InsertContent(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing content row.
func (s *ContentService) Update(ctx context.Context, id string, input ContentInput) (*db.Content, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item, err := buildContent(*existing, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContent(ctx, &item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Delete removes a content row.
func (s *ContentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteContent(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrContentNotFound
		}
		return err
	}
	return nil
}

func buildContent(base db.Content, input ContentInput) (db.Content, error) {
	contentType, ok := db.ParseContentType(input.Type)
	if !ok {
		return base, ErrContentTypeInvalid
	}

	base.Title = strings.TrimSpace(input.Title)
	base.Description = strings.TrimSpace(input.Description)
	base.Body = strings.TrimSpace(input.Body)
	base.Type = contentType
	base.Status = db.ContentStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	base.FilePath = strings.TrimSpace(input.FilePath)
	base.Link = strings.TrimSpace(input.Link)
	base.Tags = datatypes.JSONSlice[string](normalizeTags(input.Tags))
	base.Keywords = datatypes.JSONSlice[string](normalizeTags(input.Keywords))

	if err := base.Validate(); err != nil {
		return base, errors.Join(ErrContentInvalid, err)
	}
	return base, nil
}

// normalizeTags lowercases, trims and de-duplicates while keeping order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
