package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maeartistry/internal/db"
	"github.com/maeartistry/internal/format"
	"github.com/maeartistry/internal/imageformat"
	"github.com/maeartistry/internal/service"
	"github.com/maeartistry/internal/store"
	"github.com/maeartistry/internal/whatsapp"
)

const maxContentLimit = 100

// ListPublicContent returns published content rows, filtered by ?type=, ?tag= and ?limit=.
func (a *API) ListPublicContent(c *gin.Context) {
	filter := store.ContentFilter{
		Status: db.ContentStatusPublished,
		Tag:    strings.ToLower(strings.TrimSpace(c.Query("tag"))),
		Limit:  parsePositiveInt(c.Query("limit"), 0),
	}
	if filter.Limit > maxContentLimit {
		filter.Limit = maxContentLimit
	}
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		contentType, ok := db.ParseContentType(raw)
		if !ok {
			respondError(c, http.StatusBadRequest, "unknown content type")
			return
		}
		filter.Type = contentType
	}

	items, err := a.content.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusBadGateway, "failed to load content")
		return
	}

	variants := make([]any, 0, len(items))
	for _, item := range items {
		if v := item.Variant(); v != nil {
			variants = append(variants, v)
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "variants": variants})
}

// ListPublicLogos returns the featured and partner logo strip.
func (a *API) ListPublicLogos(c *gin.Context) {
	kind := db.ContentType(strings.ToLower(strings.TrimSpace(c.Query("kind"))))
	logos, err := a.content.ListLogos(c.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, service.ErrContentTypeInvalid) {
			respondError(c, http.StatusBadRequest, "kind must be featured or partner")
			return
		}
		respondError(c, http.StatusBadGateway, "failed to load logos")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logos})
}

// ListPublicServices returns the published catalog grouped by category.
func (a *API) ListPublicServices(c *gin.Context) {
	catalog, err := a.catalog.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusBadGateway, "failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": catalog.Groups, "fallback": catalog.Fallback})
}

// ListPublicCategories returns all categories.
func (a *API) ListPublicCategories(c *gin.Context) {
	items, err := a.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusBadGateway, "failed to load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// WhatsAppLink builds a deep link. With ?service= it is a booking message;
// a finite numeric price is formatted as Ringgit and anything else is passed
// through verbatim. Otherwise ?category= picks a category enquiry.
func (a *API) WhatsAppLink(c *gin.Context) {
	name := strings.TrimSpace(c.Query("service"))
	category := strings.TrimSpace(c.Query("category"))

	if name == "" {
		c.JSON(http.StatusOK, whatsapp.CategoryLink(a.number, category))
		return
	}

	price := strings.TrimSpace(c.Query("price"))
	if amount, err := strconv.ParseFloat(price, 64); err == nil && !math.IsInf(amount, 0) && !math.IsNaN(amount) {
		price = format.FormatRinggit(amount)
	}
	c.JSON(http.StatusOK, whatsapp.ServiceLink(a.number, name, price, category))
}

// ImageFormat reports which encoding the client should be served for ?path=,
// based on the Accept header and the formats the server can decode.
func (a *API) ImageFormat(c *gin.Context) {
	chosen := imageformat.Negotiate(c.GetHeader("Accept"), imageformat.ProbeDecoders()...)
	payload := gin.H{
		"format":   chosen,
		"mimeType": chosen.MIMEType(),
	}
	if p := strings.TrimSpace(c.Query("path")); p != "" {
		payload["path"] = imageformat.VariantPath(p, chosen)
	}

	c.Header("Vary", "Accept")
	c.JSON(http.StatusOK, payload)
}
