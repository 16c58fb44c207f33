package db

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentType 区分 content 表中不同用途的行。
type ContentType string

const (
	ContentTypeBlog      ContentType = "blog"
	ContentTypePortfolio ContentType = "portfolio"
	ContentTypeFeatured  ContentType = "featured"
	ContentTypePartner   ContentType = "partner"
	ContentTypeImage     ContentType = "image"
)

// ContentStatus 表示内容的发布状态。
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// ContentTypes lists every type value the content table accepts.
var ContentTypes = []ContentType{
	ContentTypeBlog,
	ContentTypePortfolio,
	ContentTypeFeatured,
	ContentTypePartner,
	ContentTypeImage,
}

// ParseContentType normalizes raw input and reports whether it is a known type.
func ParseContentType(raw string) (ContentType, bool) {
	value := ContentType(strings.ToLower(strings.TrimSpace(raw)))
	for _, t := range ContentTypes {
		if t == value {
			return value, true
		}
	}
	return value, false
}

// Content mirrors a row of the hosted content table. Blog posts, portfolio
// images and logo assets share it through the Type discriminator.
type Content struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	Title       string                      `gorm:"not null" json:"title" validate:"required"`
	Description string                      `json:"description"`
	Body        string                      `gorm:"column:content;type:text" json:"content"`
	Type        ContentType                 `gorm:"size:20;index" json:"type" validate:"oneof=blog portfolio featured partner image"`
	Status      ContentStatus               `gorm:"size:20;index" json:"status" validate:"oneof=draft published"`
	FilePath    string                      `json:"file_path"`
	Link        string                      `json:"link"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Keywords    datatypes.JSONSlice[string] `json:"keywords"`
	CreatedAt   time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName 与托管库中的表名保持一致。
func (Content) TableName() string {
	return "content"
}

// BeforeCreate assigns an id and timestamps when the caller left them empty.
func (c *Content) BeforeCreate(*gorm.DB) error {
	c.Stamp(time.Now().UTC())
	return nil
}

// Stamp fills missing id and timestamps. The hosted client path calls it
// directly because no gorm hook runs there.
func (c *Content) Stamp(now time.Time) {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// Validate checks the fields the site relies on before a row is written.
func (c *Content) Validate() error {
	if c.Status == "" {
		c.Status = ContentStatusDraft
	}
	if err := validate.Struct(c); err != nil {
		return errors.Join(ErrInvalidRow, err)
	}
	return nil
}

// IsPublished reports whether the row is visible on the public site.
func (c Content) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

// Slug derives the public URL slug from the title.
func (c Content) Slug() string {
	return slug.Make(c.Title)
}

// BlogPost is the blog view of a content row.
type BlogPost struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverPath   string
	Tags        []string
	Keywords    []string
	PublishedAt time.Time
}

// PortfolioImage is a single portfolio entry. Category is the first tag.
type PortfolioImage struct {
	ID          string
	Title       string
	Description string
	ImagePath   string
	Category    string
	Tags        []string
}

// LogoAsset 用于 “Featured On” 与合作伙伴 Logo 展示。
type LogoAsset struct {
	ID        string
	Name      string
	ImagePath string
	Kind      ContentType
	Link      string
}

// ImageAsset is a loose media row with no page of its own.
type ImageAsset struct {
	ID    string
	Title string
	Path  string
}

// AsBlogPost returns the blog view when the row is a blog post.
func (c Content) AsBlogPost() (BlogPost, bool) {
	if c.Type != ContentTypeBlog {
		return BlogPost{}, false
	}
	return BlogPost{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug(),
		Excerpt:     c.Description,
		Body:        c.Body,
		CoverPath:   c.FilePath,
		Tags:        []string(c.Tags),
		Keywords:    []string(c.Keywords),
		PublishedAt: c.CreatedAt,
	}, true
}

// AsPortfolioImage returns the portfolio view when the row is a portfolio item.
func (c Content) AsPortfolioImage() (PortfolioImage, bool) {
	if c.Type != ContentTypePortfolio {
		return PortfolioImage{}, false
	}
	category := ""
	if len(c.Tags) > 0 {
		category = c.Tags[0]
	}
	return PortfolioImage{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImagePath:   c.FilePath,
		Category:    category,
		Tags:        []string(c.Tags),
	}, true
}

// AsLogo returns the logo view for featured and partner rows.
func (c Content) AsLogo() (LogoAsset, bool) {
	if c.Type != ContentTypeFeatured && c.Type != ContentTypePartner {
		return LogoAsset{}, false
	}
	return LogoAsset{
		ID:        c.ID,
		Name:      c.Title,
		ImagePath: c.FilePath,
		Kind:      c.Type,
		Link:      c.Link,
	}, true
}

// AsImage returns the bare image view.
func (c Content) AsImage() (ImageAsset, bool) {
	if c.Type != ContentTypeImage {
		return ImageAsset{}, false
	}
	return ImageAsset{ID: c.ID, Title: c.Title, Path: c.FilePath}, true
}

// Variant returns the typed view matching the row's discriminator, or nil
// for an unknown type.
func (c Content) Variant() any {
	switch c.Type {
	case ContentTypeBlog:
		post, _ := c.AsBlogPost()
		return post
	case ContentTypePortfolio:
		item, _ := c.AsPortfolioImage()
		return item
	case ContentTypeFeatured, ContentTypePartner:
		logo, _ := c.AsLogo()
		return logo
	case ContentTypeImage:
		img, _ := c.AsImage()
		return img
	default:
		return nil
	}
}
