package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/maeartistry/internal/db"
	"github.com/maeartistry/internal/format"
	"github.com/maeartistry/internal/sitecontent"
	"github.com/maeartistry/internal/store"
	"github.com/maeartistry/internal/whatsapp"
	"gorm.io/datatypes"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInvalid  = errors.New("service is invalid")
)

// CatalogService serves the pricing catalog.
type CatalogService struct {
	repo     store.Repository
	fallback []sitecontent.Service
	number   string
}

// ServiceInput represents fields accepted when creating or updating a service.
type ServiceInput struct {
	Title       string
	Category    string
	Description string
	Duration    string
	Price       float64
	Features    []string
	Status      string
	SortOrder   int
}

// ServiceView is a catalog entry ready for display.
type ServiceView struct {
	db.Service
	Slug       string
	PriceLabel string
	Booking    whatsapp.Link
}

// ServiceGroup groups published services by category, keeping catalog order.
type ServiceGroup struct {
	Category string
	Services []ServiceView
}

// Catalog is the published catalog plus whether it came from the fallback copy.
type Catalog struct {
	Groups   []ServiceGroup
	Fallback bool
}

// NewCatalogService creates a CatalogService. fallback is shown when the
// hosted catalog cannot be loaded; number is the WhatsApp booking line.
func NewCatalogService(repo store.Repository, fallback []sitecontent.Service, number string) *CatalogService {
	return &CatalogService{repo: repo, fallback: fallback, number: number}
}

// ListPublished returns published services grouped by category. When the
// store fails the bundled catalog is returned and Fallback is set.
func (s *CatalogService) ListPublished(ctx context.Context) (Catalog, error) {
	rows, err := s.repo.ListServices(ctx, store.ServiceFilter{Status: db.ContentStatusPublished})
	if err != nil {
		if len(s.fallback) == 0 {
			return Catalog{}, err
		}
		slog.Warn("service catalog unavailable, using bundled copy", "error", err)
		return Catalog{Groups: s.group(fallbackRows(s.fallback)), Fallback: true}, nil
	}
	if len(rows) == 0 && len(s.fallback) > 0 {
		return Catalog{Groups: s.group(fallbackRows(s.fallback)), Fallback: true}, nil
	}
	return Catalog{Groups: s.group(rows)}, nil
}

// FindPublished returns the published service whose title slugifies to slug.
func (s *CatalogService) FindPublished(ctx context.Context, slug string) (*ServiceView, error) {
	catalog, err := s.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	want := format.Slugify(slug)
	for _, group := range catalog.Groups {
		for i := range group.Services {
			if group.Services[i].Slug == want {
				return &group.Services[i], nil
			}
		}
	}
	return nil, ErrServiceNotFound
}

// List returns every service for the admin panel.
func (s *CatalogService) List(ctx context.Context) ([]db.Service, error) {
	return s.repo.ListServices(ctx, store.ServiceFilter{})
}

// Create inserts a service.
func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*db.Service, error) {
	svc, err := buildService(db.Service{}, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.InsertService(ctx, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// Update replaces the editable fields of a service.
func (s *CatalogService) Update(ctx context.Context, id string, input ServiceInput) (*db.Service, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	svc, err := buildService(*existing, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateService(ctx, &svc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// get finds a service by id. The repository has no single-row lookup for
// services, so it scans the full catalog.
func (s *CatalogService) get(ctx context.Context, id string) (*db.Service, error) {
	rows, err := s.repo.ListServices(ctx, store.ServiceFilter{})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i], nil
		}
	}
	return nil, ErrServiceNotFound
}

// Delete removes a service.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return nil
}

// Ensure inserts the service unless one with the same title exists.
func (s *CatalogService) Ensure(ctx context.Context, input ServiceInput) (bool, error) {
	existing, err := s.repo.ListServices(ctx, store.ServiceFilter{})
	if err != nil {
		return false, err
	}
	title := strings.TrimSpace(input.Title)
	for _, svc := range existing {
		if strings.EqualFold(strings.TrimSpace(svc.Title), title) {
			return false, nil
		}
	}
	if _, err := s.Create(ctx, input); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CatalogService) group(rows []db.Service) []ServiceGroup {
	var groups []ServiceGroup
	index := make(map[string]int)
	for _, row := range rows {
		view := s.view(row)
		key := strings.ToLower(strings.TrimSpace(row.Category))
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, ServiceGroup{Category: row.Category})
		}
		groups[pos].Services = append(groups[pos].Services, view)
	}
	return groups
}

func (s *CatalogService) view(row db.Service) ServiceView {
	price := format.FormatRinggit(row.Price)
	return ServiceView{
		Service:    row,
		Slug:       format.Slugify(row.Title),
		PriceLabel: price,
		Booking:    whatsapp.ServiceLink(s.number, row.Title, price, row.Category),
	}
}

func fallbackRows(items []sitecontent.Service) []db.Service {
	rows := make([]db.Service, 0, len(items))
	for i, item := range items {
		rows = append(rows, db.Service{
			Title:       item.Title,
			Category:    item.Category,
			Description: item.Description,
			Duration:    item.Duration,
			Price:       item.Price,
			Features:    datatypes.JSONSlice[string](item.Features),
			Status:      db.ContentStatusPublished,
			SortOrder:   i + 1,
		})
	}
	return rows
}

func buildService(base db.Service, input ServiceInput) (db.Service, error) {
	base.Title = strings.TrimSpace(input.Title)
	base.Category = strings.ToLower(strings.TrimSpace(input.Category))
	base.Description = strings.TrimSpace(input.Description)
	base.Duration = strings.TrimSpace(input.Duration)
	base.Price = input.Price
	base.Features = datatypes.JSONSlice[string](trimAll(input.Features))
	base.Status = db.ContentStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	base.SortOrder = input.SortOrder

	if err := base.Validate(); err != nil {
		return base, errors.Join(ErrServiceInvalid, err)
	}
	return base, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
