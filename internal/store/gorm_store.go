package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maeartistry/internal/db"
	"gorm.io/gorm"
)

// GormStore serves the Repository from a gorm connection: the sqlite mirror
// in development and tests, or the hosted Postgres when connected directly.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{db: gdb}
}

// DB exposes the underlying connection.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) ListContent(ctx context.Context, filter ContentFilter) ([]db.Content, error) {
	query := s.db.WithContext(ctx).Model(&db.Content{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where("tags LIKE ?", "%\""+tag+"\"%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	items := []db.Content{}
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) GetContent(ctx context.Context, id string) (*db.Content, error) {
	var item db.Content
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &item, nil
}

func (s *GormStore) InsertContent(ctx context.Context, c *db.Content) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *GormStore) UpdateContent(ctx context.Context, c *db.Content) error {
	c.UpdatedAt = time.Now().UTC()
	return s.save(ctx, c)
}

func (s *GormStore) DeleteContent(ctx context.Context, id string) error {
	return s.delete(ctx, &db.Content{}, id)
}

func (s *GormStore) ListCategories(ctx context.Context) ([]db.Category, error) {
	items := []db.Category{}
	if err := s.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) InsertCategory(ctx context.Context, c *db.Category) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *GormStore) DeleteCategory(ctx context.Context, id string) error {
	return s.delete(ctx, &db.Category{}, id)
}

func (s *GormStore) ListServices(ctx context.Context, filter ServiceFilter) ([]db.Service, error) {
	query := s.db.WithContext(ctx).Model(&db.Service{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	items := []db.Service{}
	if err := query.Order("sort_order asc").Order("title asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) InsertService(ctx context.Context, svc *db.Service) error {
	return s.db.WithContext(ctx).Create(svc).Error
}

func (s *GormStore) UpdateService(ctx context.Context, svc *db.Service) error {
	svc.UpdatedAt = time.Now().UTC()
	return s.save(ctx, svc)
}

func (s *GormStore) DeleteService(ctx context.Context, id string) error {
	return s.delete(ctx, &db.Service{}, id)
}

func (s *GormStore) ListProjects(ctx context.Context) ([]db.Project, error) {
	items := []db.Project{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) InsertProject(ctx context.Context, p *db.Project) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *GormStore) UpdateProject(ctx context.Context, p *db.Project) error {
	p.UpdatedAt = time.Now().UTC()
	return s.save(ctx, p)
}

func (s *GormStore) DeleteProject(ctx context.Context, id string) error {
	return s.delete(ctx, &db.Project{}, id)
}

func (s *GormStore) Count(ctx context.Context, table string) (int64, error) {
	if !knownTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int64
	if err := s.db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// save 只更新已存在的行，不改动 created_at，也不会像 gorm Save 那样在缺失时插入。
func (s *GormStore) save(ctx context.Context, value any) error {
	result := s.db.WithContext(ctx).Model(value).Select("*").Omit("id", "created_at").Updates(value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) delete(ctx context.Context, model any, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func knownTable(table string) bool {
	for _, t := range Tables {
		if t == table {
			return true
		}
	}
	return false
}
