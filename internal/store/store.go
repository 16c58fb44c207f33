// Package store wraps the hosted database behind a small CRUD surface.
// Nothing here retries, caches or batches; errors from the backing client
// are returned to the caller as-is.
package store

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/maeartistry/internal/db"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// Table names of the hosted database.
const (
	TableContent    = "content"
	TableCategories = "categories"
	TableServices   = "services"
	TableProjects   = "projects"
)

// Tables lists the tables the health check counts.
var Tables = []string{TableContent, TableCategories, TableServices, TableProjects}

// ContentFilter narrows content listings. Zero values disable a filter.
type ContentFilter struct {
	Type   db.ContentType
	Status db.ContentStatus
	Tag    string
	Limit  int
}

// ServiceFilter narrows service listings.
type ServiceFilter struct {
	Status   db.ContentStatus
	Category string
}

// Repository is the data-access surface used by the services.
type Repository interface {
	ListContent(ctx context.Context, filter ContentFilter) ([]db.Content, error)
	GetContent(ctx context.Context, id string) (*db.Content, error)
	InsertContent(ctx context.Context, c *db.Content) error
	UpdateContent(ctx context.Context, c *db.Content) error
	DeleteContent(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]db.Category, error)
	InsertCategory(ctx context.Context, c *db.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListServices(ctx context.Context, filter ServiceFilter) ([]db.Service, error)
	InsertService(ctx context.Context, s *db.Service) error
	UpdateService(ctx context.Context, s *db.Service) error
	DeleteService(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]db.Project, error)
	InsertProject(ctx context.Context, p *db.Project) error
	UpdateProject(ctx context.Context, p *db.Project) error
	DeleteProject(ctx context.Context, id string) error

	Count(ctx context.Context, table string) (int64, error)
}

// Object describes a stored file.
type Object struct {
	Name      string
	Size      int64
	UpdatedAt time.Time
}

// BucketInfo describes the bucket itself.
type BucketInfo struct {
	ID     string
	Name   string
	Public bool
}

// Bucket is the file storage surface used for uploads and the image scripts.
type Bucket interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
	List(ctx context.Context, prefix string) ([]Object, error)
	Info(ctx context.Context) (BucketInfo, error)
	PublicURL(path string) string
}
