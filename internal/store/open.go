package store

import (
	"github.com/maeartistry/internal/config"
	"github.com/maeartistry/internal/db"
)

// Open 根据配置选择存储后端。托管库使用 Supabase 的表与存储桶，
// 其余驱动使用本地 gorm 镜像与本地上传目录。
func Open(cfg config.AppConfig) (Repository, Bucket, error) {
	switch cfg.StoreDriver {
	case config.StoreSupabase:
		client, err := NewSupabaseClient(SupabaseConfig{URL: cfg.SupabaseURL, Key: cfg.SupabaseKey()})
		if err != nil {
			return nil, nil, err
		}
		return NewSupabaseStore(client), NewSupabaseBucket(client, cfg.SupabaseBucket), nil
	case config.StorePostgres:
		gdb, err := db.Open(db.DriverPostgres, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return NewGormStore(gdb), NewLocalBucket(cfg.UploadDir, cfg.UploadURLPath), nil
	default:
		gdb, err := db.Open(db.DriverSQLite, cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return NewGormStore(gdb), NewLocalBucket(cfg.UploadDir, cfg.UploadURLPath), nil
	}
}
