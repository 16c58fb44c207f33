package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maeartistry/internal/format"
	"github.com/maeartistry/internal/service"
	"github.com/maeartistry/internal/whatsapp"
)

const (
	homePortfolioLimit = 6
	homePostLimit      = 3
	loadFailedNotice   = "Some content could not be loaded right now. Please try again shortly."
)

// portfolioFilter is one button of the portfolio category bar.
type portfolioFilter struct {
	Slug   string
	Label  string
	Active bool
}

// ShowHome renders the landing page: hero, logo strip, portfolio teaser,
// latest posts and testimonials.
func (a *API) ShowHome(c *gin.Context) {
	ctx := c.Request.Context()
	payload := gin.H{
		"title":        a.site.Brand.Name,
		"hero":         a.site.Hero,
		"testimonials": a.site.Testimonials,
		"canonical":    "/",
	}

	var failed bool
	logos, err := a.content.ListLogos(ctx, "")
	if err != nil {
		failed = true
		slog.Warn("load logos failed", "error", err)
	}
	portfolio, err := a.content.ListPortfolio(ctx, "", homePortfolioLimit)
	if err != nil {
		failed = true
		slog.Warn("load portfolio failed", "error", err)
	}
	posts, err := a.content.ListBlogPosts(ctx, homePostLimit)
	if err != nil {
		failed = true
		slog.Warn("load posts failed", "error", err)
	}

	payload["logos"] = logos
	payload["portfolio"] = portfolio
	payload["fallbackPortfolio"] = a.site.Portfolio
	payload["posts"] = posts
	if failed {
		payload["notice"] = loadFailedNotice
	}

	a.renderHTML(c, http.StatusOK, "home.html", payload)
}

// ShowAbout renders the about page with the career timeline.
func (a *API) ShowAbout(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"title":        "About",
		"timeline":     a.site.Timeline,
		"testimonials": a.site.Testimonials,
		"canonical":    "/about",
	})
}

// ShowServices renders the pricing catalog grouped by category.
func (a *API) ShowServices(c *gin.Context) {
	catalog, err := a.catalog.ListPublished(c.Request.Context())
	if err != nil {
		slog.Error("load services failed", "error", err)
		a.renderHTML(c, http.StatusOK, "services.html", gin.H{
			"title":     "Services",
			"notice":    loadFailedNotice,
			"canonical": "/services",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "services.html", gin.H{
		"title":     "Services",
		"groups":    catalog.Groups,
		"fallback":  catalog.Fallback,
		"canonical": "/services",
	})
}

// ShowPortfolio renders the portfolio grid, optionally filtered by ?category=.
func (a *API) ShowPortfolio(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	payload := gin.H{
		"title":     "Portfolio",
		"category":  category,
		"filters":   a.portfolioFilters(category),
		"canonical": "/portfolio",
	}

	items, err := a.content.ListPortfolio(c.Request.Context(), category, 0)
	if err != nil {
		slog.Warn("load portfolio failed", "error", err)
		payload["notice"] = loadFailedNotice
		payload["fallbackPortfolio"] = a.site.Portfolio
	}
	payload["items"] = items

	a.renderHTML(c, http.StatusOK, "portfolio.html", payload)
}

// ShowBlog renders the blog index.
func (a *API) ShowBlog(c *gin.Context) {
	payload := gin.H{
		"title":     "Blog",
		"canonical": "/blog",
	}
	posts, err := a.content.ListBlogPosts(c.Request.Context(), 0)
	if err != nil {
		slog.Warn("load posts failed", "error", err)
		payload["notice"] = loadFailedNotice
	}
	payload["posts"] = posts

	a.renderHTML(c, http.StatusOK, "blog.html", payload)
}

// ShowBlogPost renders a single post by slug.
func (a *API) ShowBlogPost(c *gin.Context) {
	slug := c.Param("slug")
	post, err := a.content.GetBlogPostBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
				"title": "Post not found",
			})
			return
		}
		slog.Error("load post failed", "slug", slug, "error", err)
		a.renderHTML(c, http.StatusInternalServerError, "not_found.html", gin.H{
			"title":  "Blog",
			"notice": loadFailedNotice,
		})
		return
	}

	body, err := renderMarkdown(post.Body)
	if err != nil {
		slog.Error("render post failed", "slug", slug, "error", err)
		a.renderHTML(c, http.StatusInternalServerError, "not_found.html", gin.H{
			"title":  post.Title,
			"notice": "This post could not be displayed.",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "post.html", gin.H{
		"title":           post.Title,
		"post":            post,
		"body":            body,
		"canonical":       "/blog/" + post.Slug,
		"metaType":        "article",
		"metaDescription": post.Excerpt,
		"metaKeywords":    post.Keywords,
	})
}

// ShowContact renders the contact page with one quick link per category.
func (a *API) ShowContact(c *gin.Context) {
	links := make([]gin.H, 0, len(whatsapp.Categories()))
	for _, category := range whatsapp.Categories() {
		links = append(links, gin.H{
			"category": category,
			"link":     whatsapp.CategoryLink(a.number, category),
		})
	}

	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title":      "Contact",
		"categories": links,
		"canonical":  "/contact",
	})
}

type contactForm struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Date     string `form:"date"`
	Message  string `form:"message" binding:"max=1000"`
}

// SubmitContact turns the contact form into a WhatsApp deep link and
// redirects the visitor to it.
func (a *API) SubmitContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderHTML(c, http.StatusBadRequest, "contact.html", gin.H{
			"title":  "Contact",
			"notice": "Please keep your message under 1000 characters.",
		})
		return
	}

	link := whatsapp.EnquiryLink(a.number, whatsapp.Enquiry{
		Name:     form.Name,
		Category: form.Category,
		Date:     form.Date,
		Note:     form.Message,
	})
	c.Redirect(http.StatusSeeOther, link.URL)
}

// BookService redirects to the WhatsApp booking link of a catalog service.
func (a *API) BookService(c *gin.Context) {
	view, err := a.catalog.FindPublished(c.Request.Context(), c.Param("service"))
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
				"title": "Service not found",
			})
			return
		}
		slog.Error("find service failed", "error", err)
		c.Redirect(http.StatusSeeOther, whatsapp.GeneralLink(a.number).URL)
		return
	}
	c.Redirect(http.StatusSeeOther, view.Booking.URL)
}

// NotFound renders the shared 404 page.
func (a *API) NotFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
		"title": "Page not found",
	})
}

// portfolioFilters 以内置作品集的分类顺序生成筛选按钮。
func (a *API) portfolioFilters(active string) []portfolioFilter {
	filters := []portfolioFilter{{Slug: "", Label: "All", Active: active == ""}}
	seen := map[string]bool{}
	for _, item := range a.site.Portfolio {
		slug := format.Slugify(item.Category)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		filters = append(filters, portfolioFilter{
			Slug:   slug,
			Label:  strings.ToUpper(slug[:1]) + slug[1:],
			Active: active == slug,
		})
	}
	return filters
}
