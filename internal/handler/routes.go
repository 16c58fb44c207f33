package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteMiddleware lets the router attach middleware to specific route groups.
type RouteMiddleware struct {
	// PublicAPI runs on /api, typically CORS.
	PublicAPI []gin.HandlerFunc
	// Login runs on POST /admin/login, typically a rate limiter.
	Login []gin.HandlerFunc
}

// Register 挂载全部页面、公开 API 与后台路由。
func Register(r *gin.Engine, api *API, mw RouteMiddleware) {
	r.GET("/healthz", api.HealthCheck)
	r.GET("/sitemap.xml", api.Sitemap)
	r.GET("/robots.txt", api.Robots)

	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/services", api.ShowServices)
	r.GET("/portfolio", api.ShowPortfolio)
	r.GET("/blog", api.ShowBlog)
	r.GET("/blog/:slug", api.ShowBlogPost)
	r.GET("/contact", api.ShowContact)
	r.POST("/contact", api.SubmitContact)
	r.GET("/book/:service", api.BookService)

	public := r.Group("/api", mw.PublicAPI...)
	{
		public.GET("/content", api.ListPublicContent)
		public.GET("/logos", api.ListPublicLogos)
		public.GET("/services", api.ListPublicServices)
		public.GET("/categories", api.ListPublicCategories)
		public.GET("/whatsapp-link", api.WhatsAppLink)
		public.GET("/image-format", api.ImageFormat)
		public.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
	}

	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", append(append([]gin.HandlerFunc{}, mw.Login...), api.Login)...)
		admin.GET("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("", api.ShowDashboard)

			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/content", api.ListContent)
				adminAPI.GET("/content/:id", api.GetContent)
				adminAPI.POST("/content", api.CreateContent)
				adminAPI.PUT("/content/:id", api.UpdateContent)
				adminAPI.DELETE("/content/:id", api.DeleteContent)

				adminAPI.GET("/categories", api.ListCategories)
				adminAPI.POST("/categories", api.CreateCategory)
				adminAPI.DELETE("/categories/:id", api.DeleteCategory)

				adminAPI.GET("/services", api.ListServices)
				adminAPI.POST("/services", api.CreateService)
				adminAPI.PUT("/services/:id", api.UpdateService)
				adminAPI.DELETE("/services/:id", api.DeleteService)

				adminAPI.GET("/projects", api.ListProjects)
				adminAPI.POST("/projects", api.CreateProject)
				adminAPI.PUT("/projects/:id", api.UpdateProject)
				adminAPI.DELETE("/projects/:id", api.DeleteProject)

				adminAPI.POST("/upload", api.UploadImage)
				adminAPI.GET("/system", api.SystemStatus)
			}
		}
	}

	r.NoRoute(api.NotFound)
}
