package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maeartistry/internal/sitemap"
)

// Sitemap serves sitemap.xml built from the static routes and published posts.
// Posts that fail to load are left out rather than failing the whole file.
func (a *API) Sitemap(c *gin.Context) {
	posts, err := a.content.ListBlogPosts(c.Request.Context(), 0)
	if err != nil {
		slog.Warn("sitemap without posts", "error", err)
	}

	entries := make([]sitemap.Post, 0, len(posts))
	for _, post := range posts {
		entries = append(entries, sitemap.Post{Slug: post.Slug, UpdatedAt: post.PublishedAt})
	}

	body, err := sitemap.Generate(a.baseURL, sitemap.Routes(entries, a.now()))
	if err != nil {
		c.String(http.StatusInternalServerError, "")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots serves robots.txt.
func (a *API) Robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", sitemap.Robots(a.baseURL))
}
