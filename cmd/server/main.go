package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/maeartistry/internal/config"
	"github.com/maeartistry/internal/handler"
	"github.com/maeartistry/internal/logging"
	"github.com/maeartistry/internal/router"
	"github.com/maeartistry/internal/sitecontent"
	"github.com/maeartistry/internal/store"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		slog.Error("failed to load dotenv", "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	logger := logging.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	if missing := config.Validate(cfg); len(missing) > 0 {
		logger.Warn("missing environment variables", "keys", missing)
	}
	if cfg.GinMode == gin.ReleaseMode && cfg.SessionSecret == config.DefaultSessionSecret {
		logger.Error("SESSION_SECRET must be set in release mode")
		os.Exit(1)
	}

	// 初始化存储
	repo, bucket, err := store.Open(cfg)
	if err != nil {
		logger.Error("failed to initialize store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	site, err := sitecontent.Load()
	if err != nil {
		logger.Error("failed to load site content", "error", err)
		os.Exit(1)
	}

	api := handler.NewAPI(handler.Options{
		Repo:           repo,
		Bucket:         bucket,
		Site:           site,
		WhatsAppNumber: cfg.WhatsAppNumber,
		SiteBaseURL:    cfg.SiteBaseURL,
		Admin: handler.AdminCredentials{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
		},
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		CORSOrigins:   cfg.CORSOrigins,
		TemplateGlob:  "web/template/*.html",
		StaticDir:     cfg.PublicDir,
		UploadDir:     cfg.UploadDir,
		UploadURLPath: cfg.UploadURLPath,
		Logger:        logger,
	})

	logger.Info("server listening", "addr", cfg.ListenAddr, "store", cfg.StoreDriver)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}
