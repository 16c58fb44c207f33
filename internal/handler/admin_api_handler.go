package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maeartistry/internal/db"
	"github.com/maeartistry/internal/service"
	"github.com/maeartistry/internal/store"
)

type contentPayload struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Body        string   `json:"content"`
	Type        string   `json:"type" binding:"required"`
	Status      string   `json:"status"`
	FilePath    string   `json:"file_path"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
	Keywords    []string `json:"keywords"`
}

func (p contentPayload) toInput() service.ContentInput {
	return service.ContentInput{
		Title:       p.Title,
		Description: p.Description,
		Body:        p.Body,
		Type:        p.Type,
		Status:      p.Status,
		FilePath:    p.FilePath,
		Link:        p.Link,
		Tags:        p.Tags,
		Keywords:    p.Keywords,
	}
}

type categoryPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type servicePayload struct {
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Price       float64  `json:"price" binding:"gte=0"`
	Features    []string `json:"features"`
	Status      string   `json:"status"`
	SortOrder   int      `json:"sort_order"`
}

func (p servicePayload) toInput() service.ServiceInput {
	return service.ServiceInput{
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Duration:    p.Duration,
		Price:       p.Price,
		Features:    p.Features,
		Status:      p.Status,
		SortOrder:   p.SortOrder,
	}
}

type projectPayload struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	ClientName  string  `json:"client_name"`
	Budget      float64 `json:"budget" binding:"gte=0"`
}

func (p projectPayload) toInput() service.ProjectInput {
	return service.ProjectInput{
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		ClientName:  p.ClientName,
		Budget:      p.Budget,
	}
}

// ListContent returns every content row, drafts included.
func (a *API) ListContent(c *gin.Context) {
	filter := store.ContentFilter{
		Status: db.ContentStatus(strings.TrimSpace(c.Query("status"))),
		Tag:    strings.TrimSpace(c.Query("tag")),
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
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetContent returns one content row.
func (a *API) GetContent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := a.content.Get(c.Request.Context(), id)
	if err != nil {
		handleContentError(c, err, "failed to load content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateContent inserts a content row.
func (a *API) CreateContent(c *gin.Context) {
	var payload contentPayload
	if !bindJSON(c, &payload, "title and type are required") {
		return
	}
	item, err := a.content.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		handleContentError(c, err, "failed to create content")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "content created", "item": item})
}

// UpdateContent replaces the editable fields of a content row.
func (a *API) UpdateContent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload contentPayload
	if !bindJSON(c, &payload, "title and type are required") {
		return
	}
	item, err := a.content.Update(c.Request.Context(), id, payload.toInput())
	if err != nil {
		handleContentError(c, err, "failed to update content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "content updated", "item": item})
}

// DeleteContent removes a content row.
func (a *API) DeleteContent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.content.Delete(c.Request.Context(), id); err != nil {
		handleContentError(c, err, "failed to delete content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "content deleted"})
}

func handleContentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrContentNotFound):
		respondError(c, http.StatusNotFound, "content not found")
	case errors.Is(err, service.ErrContentTypeInvalid):
		respondError(c, http.StatusBadRequest, "unknown content type")
	case errors.Is(err, service.ErrContentInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusBadGateway, fallback)
	}
}

// ListCategories returns every category.
func (a *API) ListCategories(c *gin.Context) {
	a.ListPublicCategories(c)
}

// CreateCategory inserts a category unless the name already exists.
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload, "category name is required") {
		return
	}
	category, created, err := a.categories.Ensure(c.Request.Context(), service.CategoryInput{
		Name:        payload.Name,
		Description: payload.Description,
		Color:       payload.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNameMissing):
			respondError(c, http.StatusBadRequest, "category name is required")
		case errors.Is(err, db.ErrInvalidRow):
			respondError(c, http.StatusBadRequest, "color must be a hex colour")
		default:
			respondError(c, http.StatusBadGateway, "failed to create category")
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"item": category, "created": created})
}

// DeleteCategory removes a category.
func (a *API) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.categories.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
			return
		}
		respondError(c, http.StatusBadGateway, "failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// ListServices returns every service, drafts included.
func (a *API) ListServices(c *gin.Context) {
	items, err := a.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusBadGateway, "failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateService inserts a service.
func (a *API) CreateService(c *gin.Context) {
	var payload servicePayload
	if !bindJSON(c, &payload, "title and category are required") {
		return
	}
	item, err := a.catalog.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		handleServiceError(c, err, "failed to create service")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "service created", "item": item})
}

// UpdateService replaces the editable fields of a service.
func (a *API) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload servicePayload
	if !bindJSON(c, &payload, "title and category are required") {
		return
	}
	item, err := a.catalog.Update(c.Request.Context(), id, payload.toInput())
	if err != nil {
		handleServiceError(c, err, "failed to update service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service updated", "item": item})
}

// DeleteService removes a service.
func (a *API) DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.catalog.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

func handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		respondError(c, http.StatusNotFound, "service not found")
	case errors.Is(err, service.ErrServiceInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusBadGateway, fallback)
	}
}

// ListProjects returns every project.
func (a *API) ListProjects(c *gin.Context) {
	items, err := a.projects.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusBadGateway, "failed to load projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateProject inserts a project.
func (a *API) CreateProject(c *gin.Context) {
	var payload projectPayload
	if !bindJSON(c, &payload, "project name is required") {
		return
	}
	item, err := a.projects.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		handleProjectError(c, err, "failed to create project")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "project created", "item": item})
}

// UpdateProject replaces the editable fields of a project.
func (a *API) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload projectPayload
	if !bindJSON(c, &payload, "project name is required") {
		return
	}
	item, err := a.projects.Update(c.Request.Context(), id, payload.toInput())
	if err != nil {
		handleProjectError(c, err, "failed to update project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project updated", "item": item})
}

// DeleteProject removes a project.
func (a *API) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.projects.Delete(c.Request.Context(), id); err != nil {
		handleProjectError(c, err, "failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func handleProjectError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondError(c, http.StatusNotFound, "project not found")
	case errors.Is(err, service.ErrProjectInvalid):
		respondError(c, http.StatusBadRequest, "status must be planning, active, completed or cancelled")
	default:
		respondError(c, http.StatusBadGateway, fallback)
	}
}
