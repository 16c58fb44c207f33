package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// SupabaseBucket stores files in a hosted storage bucket.
type SupabaseBucket struct {
	client *supabase.Client
	name   string
}

// NewSupabaseBucket binds a bucket name to an SDK client.
func NewSupabaseBucket(client *supabase.Client, name string) *SupabaseBucket {
	return &SupabaseBucket{client: client, name: name}
}

func (b *SupabaseBucket) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	upsert := true
	opts := storage_go.FileOptions{Upsert: &upsert}
	if contentType != "" {
		opts.ContentType = &contentType
	}
	if _, err := b.client.Storage.UploadFile(b.name, clean, r, opts); err != nil {
		return "", err
	}
	return b.PublicURL(clean), nil
}

func (b *SupabaseBucket) List(ctx context.Context, prefix string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := b.client.Storage.ListFiles(b.name, strings.Trim(prefix, "/"), storage_go.FileSearchOptions{Limit: 1000})
	if err != nil {
		return nil, err
	}

	objects := make([]Object, 0, len(files))
	for _, f := range files {
		obj := Object{Name: f.Name, Size: metadataSize(f.Metadata)}
		if ts, err := time.Parse(time.RFC3339, f.UpdatedAt); err == nil {
			obj.UpdatedAt = ts
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (b *SupabaseBucket) Info(ctx context.Context) (BucketInfo, error) {
	if err := ctx.Err(); err != nil {
		return BucketInfo{}, err
	}
	bucket, err := b.client.Storage.GetBucket(b.name)
	if err != nil {
		return BucketInfo{}, err
	}
	return BucketInfo{ID: bucket.Id, Name: bucket.Name, Public: bucket.Public}, nil
}

func (b *SupabaseBucket) PublicURL(objectPath string) string {
	return b.client.Storage.GetPublicUrl(b.name, strings.TrimLeft(objectPath, "/")).SignedURL
}

func metadataSize(meta any) int64 {
	m, ok := meta.(map[string]any)
	if !ok {
		return 0
	}
	if size, ok := m["size"].(float64); ok {
		return int64(size)
	}
	return 0
}

// LocalBucket stores files on disk below dir and serves them from urlPath.
type LocalBucket struct {
	dir     string
	urlPath string
}

// NewLocalBucket creates a LocalBucket.
func NewLocalBucket(dir, urlPath string) *LocalBucket {
	return &LocalBucket{dir: dir, urlPath: "/" + strings.Trim(urlPath, "/")}
}

func (b *LocalBucket) Upload(ctx context.Context, objectPath string, r io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	target := filepath.Join(b.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return b.PublicURL(clean), nil
}

func (b *LocalBucket) List(ctx context.Context, prefix string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root := filepath.Join(b.dir, filepath.FromSlash(strings.Trim(prefix, "/")))
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Object{}, nil
		}
		return nil, err
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		obj := Object{Name: entry.Name(), UpdatedAt: info.ModTime()}
		if !entry.IsDir() {
			obj.Size = info.Size()
		}
		objects = append(objects, obj)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })
	return objects, nil
}

func (b *LocalBucket) Info(ctx context.Context) (BucketInfo, error) {
	if err := ctx.Err(); err != nil {
		return BucketInfo{}, err
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return BucketInfo{}, err
	}
	name := filepath.Base(b.dir)
	return BucketInfo{ID: name, Name: name, Public: true}, nil
}

func (b *LocalBucket) PublicURL(objectPath string) string {
	return path.Join(b.urlPath, strings.TrimLeft(objectPath, "/"))
}

func cleanObjectPath(p string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(p))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("invalid object path %q", p)
	}
	return clean, nil
}
