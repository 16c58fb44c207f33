package router

import (
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/maeartistry/internal/format"
	"github.com/maeartistry/internal/handler"
)

const sessionName = "mae_session"

// Options 控制路由层的外围配置。
type Options struct {
	SessionSecret string
	CORSOrigins   []string
	TemplateGlob  string
	StaticDir     string
	UploadDir     string
	UploadURLPath string
	// LoginEvery and LoginBurst bound admin login attempts per client IP.
	LoginEvery time.Duration
	LoginBurst int
	Logger     *slog.Logger
}

// TemplateFuncs are available to every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"ringgit": format.FormatRinggit,
		"slug":    format.Slugify,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2 Jan 2006")
		},
		"join": strings.Join,
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LoginEvery <= 0 {
		opts.LoginEvery = 12 * time.Second
	}
	if opts.LoginBurst <= 0 {
		opts.LoginBurst = 5
	}

	r := gin.New()
	r.Use(requestLogger(opts.Logger), gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))

	if opts.TemplateGlob != "" {
		r.SetFuncMap(TemplateFuncs())
		r.LoadHTMLGlob(opts.TemplateGlob)
	}

	// 静态文件服务
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	if opts.UploadDir != "" && opts.UploadURLPath != "" && !strings.HasPrefix(opts.UploadURLPath, "/static") {
		r.Static(opts.UploadURLPath, opts.UploadDir)
	}

	handler.Register(r, api, handler.RouteMiddleware{
		PublicAPI: []gin.HandlerFunc{corsMiddleware(opts.CORSOrigins)},
		Login:     []gin.HandlerFunc{rateLimit(newIPLimiter(opts.LoginEvery, opts.LoginBurst))},
	})

	return r
}
