package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maeartistry/internal/service"
	"github.com/maeartistry/internal/sitecontent"
	"github.com/maeartistry/internal/store"
	"github.com/maeartistry/internal/whatsapp"
)

// AdminCredentials is the single back-office account. PasswordHash is a bcrypt hash.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// Options carries what NewAPI needs to build the handler set.
type Options struct {
	Repo           store.Repository
	Bucket         store.Bucket
	Site           *sitecontent.Site
	WhatsAppNumber string
	SiteBaseURL    string
	Admin          AdminCredentials
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	content    *service.ContentService
	categories *service.CategoryService
	catalog    *service.CatalogService
	projects   *service.ProjectService
	health     *service.HealthService
	bucket     store.Bucket
	site       *sitecontent.Site
	number     string
	baseURL    string
	admin      AdminCredentials
	now        func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	site := opts.Site
	if site == nil {
		site = sitecontent.MustLoad()
	}
	number := opts.WhatsAppNumber
	if number == "" {
		number = site.Brand.WhatsApp
	}

	return &API{
		content:    service.NewContentService(opts.Repo),
		categories: service.NewCategoryService(opts.Repo),
		catalog:    service.NewCatalogService(opts.Repo, site.Services, number),
		projects:   service.NewProjectService(opts.Repo),
		health:     service.NewHealthService(opts.Repo, opts.Bucket),
		bucket:     opts.Bucket,
		site:       site,
		number:     number,
		baseURL:    opts.SiteBaseURL,
		admin:      opts.Admin,
		now:        time.Now,
	}
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = a.site.Brand
	}
	if _, exists := payload["tokens"]; !exists {
		payload["tokens"] = a.site.Tokens
	}
	if _, exists := payload["contactLink"]; !exists {
		payload["contactLink"] = whatsapp.GeneralLink(a.number)
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = a.now().Year()
	}
	payload["showIntro"] = a.showIntro(c)

	c.HTML(status, template, payload)
}
