package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreSupabase = "supabase"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// DefaultSessionSecret is only fit for local development; Validate reports it
// as missing.
const DefaultSessionSecret = "maeartistry-dev-secret"

// AppConfig 汇总运行服务与脚本所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	GinMode           string
	LogLevel          string
	SessionSecret     string
	SiteBaseURL       string
	PublicDir         string
	UploadDir         string
	UploadURLPath     string
	StoreDriver       string
	DatabasePath      string
	DatabaseURL       string
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseService   string
	SupabaseBucket    string
	AdminUsername     string
	AdminPasswordHash string
	CORSOrigins       []string
	WhatsAppNumber    string
}

// DotenvFiles are loaded in order; earlier files win because godotenv never
// overrides a variable that is already set.
var DotenvFiles = []string{".env.local", ".env"}

// LoadDotenv loads the dotenv files that exist and ignores the rest.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = DotenvFiles
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := env("PORT", "8080")
	listenAddr := env("LISTEN_ADDR", fmt.Sprintf(":%s", port))

	supabaseURL := env("VITE_SUPABASE_URL", "")
	driver := strings.ToLower(env("STORE_DRIVER", ""))
	if driver == "" {
		driver = StoreSQLite
		if supabaseURL != "" {
			driver = StoreSupabase
		}
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		GinMode:           env("GIN_MODE", "release"),
		LogLevel:          env("LOG_LEVEL", "info"),
		SessionSecret:     env("SESSION_SECRET", DefaultSessionSecret),
		SiteBaseURL:       strings.TrimRight(env("SITE_BASE_URL", "https://maemakeup.my"), "/"),
		PublicDir:         env("PUBLIC_DIR", "web/static"),
		UploadDir:         env("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath:     env("UPLOAD_URL_PATH", "/static/uploads"),
		StoreDriver:       driver,
		DatabasePath:      env("DATABASE_PATH", "maeartistry.db"),
		DatabaseURL:       env("SUPABASE_DB_URL", ""),
		SupabaseURL:       supabaseURL,
		SupabaseAnonKey:   env("VITE_SUPABASE_ANON_KEY", ""),
		SupabaseService:   env("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseBucket:    env("SUPABASE_BUCKET", "images"),
		AdminUsername:     env("ADMIN_USERNAME", "mae"),
		AdminPasswordHash: env("ADMIN_PASSWORD_HASH", ""),
		CORSOrigins:       splitList(env("CORS_ORIGINS", "")),
		WhatsAppNumber:    env("WHATSAPP_NUMBER", "60122681879"),
	}
}

// SupabaseKey returns the key the process should use: the service role key
// when present (scripts, admin writes), otherwise the anon key.
func (c AppConfig) SupabaseKey() string {
	if c.SupabaseService != "" {
		return c.SupabaseService
	}
	return c.SupabaseAnonKey
}

// Validate lists the environment variables that are required for the chosen
// store but missing. A session secret left at the development default counts
// as missing.
func Validate(c AppConfig) []string {
	var missing []string
	switch c.StoreDriver {
	case StoreSupabase:
		if c.SupabaseURL == "" {
			missing = append(missing, "VITE_SUPABASE_URL")
		}
		if c.SupabaseAnonKey == "" {
			missing = append(missing, "VITE_SUPABASE_ANON_KEY")
		}
		if c.SupabaseService == "" {
			missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			missing = append(missing, "SUPABASE_DB_URL")
		}
	case StoreSQLite:
	default:
		missing = append(missing, "STORE_DRIVER")
	}
	if c.AdminPasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD_HASH")
	}
	if c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret {
		missing = append(missing, "SESSION_SECRET")
	}
	return missing
}

func env(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
