package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maeartistry/internal/db"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds the hosted project credentials.
type SupabaseConfig struct {
	URL string
	Key string
}

// NewSupabaseClient creates the hosted SDK client shared by the store and the bucket.
func NewSupabaseClient(cfg SupabaseConfig) (*supabase.Client, error) {
	url := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	key := strings.TrimSpace(cfg.Key)
	if url == "" || key == "" {
		return nil, errors.New("supabase url and key are required")
	}
	return supabase.NewClient(url, key, nil)
}

// SupabaseStore implements Repository on the hosted PostgREST API.
type SupabaseStore struct {
	client *supabase.Client
	now    func() time.Time
}

// NewSupabaseStore wraps an SDK client.
func NewSupabaseStore(client *supabase.Client) *SupabaseStore {
	return &SupabaseStore{client: client, now: func() time.Time { return time.Now().UTC() }}
}

var newestFirst = &postgrest.OrderOpts{Ascending: false}

func (s *SupabaseStore) ListContent(ctx context.Context, filter ContentFilter) ([]db.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := s.client.From(TableContent).Select("*", "", false)
	if filter.Type != "" {
		query = query.Eq("type", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Eq("status", string(filter.Status))
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Contains("tags", []string{tag})
	}
	query = query.Order("created_at", newestFirst)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	items := []db.Content{}
	if _, err := query.ExecuteTo(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SupabaseStore) GetContent(ctx context.Context, id string) (*db.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var items []db.Content
	if _, err := s.client.From(TableContent).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

func (s *SupabaseStore) InsertContent(ctx context.Context, c *db.Content) error {
	c.Stamp(s.now())
	return s.insert(ctx, TableContent, c)
}

func (s *SupabaseStore) UpdateContent(ctx context.Context, c *db.Content) error {
	c.UpdatedAt = s.now()
	return s.update(ctx, TableContent, c.ID, c)
}

func (s *SupabaseStore) DeleteContent(ctx context.Context, id string) error {
	return s.delete(ctx, TableContent, id)
}

func (s *SupabaseStore) ListCategories(ctx context.Context) ([]db.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := []db.Category{}
	if _, err := s.client.From(TableCategories).Select("*", "", false).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SupabaseStore) InsertCategory(ctx context.Context, c *db.Category) error {
	c.Stamp(s.now())
	return s.insert(ctx, TableCategories, c)
}

func (s *SupabaseStore) DeleteCategory(ctx context.Context, id string) error {
	return s.delete(ctx, TableCategories, id)
}

func (s *SupabaseStore) ListServices(ctx context.Context, filter ServiceFilter) ([]db.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := s.client.From(TableServices).Select("*", "", false)
	if filter.Status != "" {
		query = query.Eq("status", string(filter.Status))
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Eq("category", category)
	}

	items := []db.Service{}
	if _, err := query.Order("sort_order", &postgrest.OrderOpts{Ascending: true}).ExecuteTo(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SupabaseStore) InsertService(ctx context.Context, svc *db.Service) error {
	svc.Stamp(s.now())
	return s.insert(ctx, TableServices, svc)
}

func (s *SupabaseStore) UpdateService(ctx context.Context, svc *db.Service) error {
	svc.UpdatedAt = s.now()
	return s.update(ctx, TableServices, svc.ID, svc)
}

func (s *SupabaseStore) DeleteService(ctx context.Context, id string) error {
	return s.delete(ctx, TableServices, id)
}

func (s *SupabaseStore) ListProjects(ctx context.Context) ([]db.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := []db.Project{}
	if _, err := s.client.From(TableProjects).Select("*", "", false).
		Order("created_at", newestFirst).
		ExecuteTo(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SupabaseStore) InsertProject(ctx context.Context, p *db.Project) error {
	p.Stamp(s.now())
	return s.insert(ctx, TableProjects, p)
}

func (s *SupabaseStore) UpdateProject(ctx context.Context, p *db.Project) error {
	p.UpdatedAt = s.now()
	return s.update(ctx, TableProjects, p.ID, p)
}

func (s *SupabaseStore) DeleteProject(ctx context.Context, id string) error {
	return s.delete(ctx, TableProjects, id)
}

// Count 使用 PostgREST 的 exact 计数，仅请求表头不取数据。
func (s *SupabaseStore) Count(ctx context.Context, table string) (int64, error) {
	if !knownTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	_, count, err := s.client.From(table).Select("id", "exact", true).Execute()
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SupabaseStore) insert(ctx context.Context, table string, row any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, _, err := s.client.From(table).Insert(row, false, "", "minimal", "").Execute()
	return err
}

func (s *SupabaseStore) update(ctx context.Context, table, id string, row any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	patch, err := patchPayload(row)
	if err != nil {
		return err
	}
	var touched []map[string]any
	if _, err := s.client.From(table).Update(patch, "representation", "").Eq("id", id).ExecuteTo(&touched); err != nil {
		return err
	}
	if len(touched) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SupabaseStore) delete(ctx context.Context, table, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var removed []map[string]any
	if _, err := s.client.From(table).Delete("representation", "").Eq("id", id).ExecuteTo(&removed); err != nil {
		return err
	}
	if len(removed) == 0 {
		return ErrNotFound
	}
	return nil
}

// patchPayload drops the columns an update must never overwrite.
func patchPayload(row any) (map[string]any, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	patch := map[string]any{}
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, err
	}
	delete(patch, "id")
	delete(patch, "created_at")
	return patch, nil
}
