package service

import (
	"context"
	"errors"
	"strings"

	"github.com/maeartistry/internal/db"
	"github.com/maeartistry/internal/store"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameMissing = errors.New("category name is required")
)

// CategoryService manages the category lookup table.
type CategoryService struct {
	repo store.Repository
}

// CategoryInput represents fields accepted when creating a category.
type CategoryInput struct {
	Name        string
	Description string
	Color       string
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(repo store.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]db.Category, error) {
	return s.repo.ListCategories(ctx)
}

// Ensure 仅在同名分类（忽略大小写）不存在时插入，返回现有或新建的分类以及是否新建。
func (s *CategoryService) Ensure(ctx context.Context, input CategoryInput) (db.Category, bool, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return db.Category{}, false, ErrCategoryNameMissing
	}

	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return db.Category{}, false, err
	}
	for _, c := range existing {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return c, false, nil
		}
	}

	category := db.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Color:       strings.TrimSpace(input.Color),
	}
	if err := category.Validate(); err != nil {
		return db.Category{}, false, err
	}
	if err := s.repo.InsertCategory(ctx, &category); err != nil {
		return db.Category{}, false, err
	}
	return category, true, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
