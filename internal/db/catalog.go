package db

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInvalidRow is joined with the validator error when a row fails checks.
var ErrInvalidRow = errors.New("invalid row")

var validate = validator.New()

// Category 是作品与服务共用的分类查找表。
type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name" validate:"required"`
	Description string    `json:"description"`
	Color       string    `gorm:"size:20" json:"color" validate:"omitempty,hexcolor"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 与托管库中的表名保持一致。
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns an id when missing.
func (c *Category) BeforeCreate(*gorm.DB) error {
	c.Stamp(time.Now().UTC())
	return nil
}

// Stamp fills the id and creation time.
func (c *Category) Stamp(now time.Time) {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}

// Validate checks required fields.
func (c *Category) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Join(ErrInvalidRow, err)
	}
	return nil
}

// Service is one entry of the pricing catalog.
type Service struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	Title       string                      `gorm:"not null" json:"title" validate:"required"`
	Category    string                      `gorm:"index" json:"category" validate:"required"`
	Description string                      `json:"description"`
	Duration    string                      `json:"duration"`
	Price       float64                     `json:"price" validate:"gte=0,lte=99999999.99"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	Status      ContentStatus               `gorm:"size:20" json:"status" validate:"oneof=draft published"`
	SortOrder   int                         `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName 与托管库中的表名保持一致。
func (Service) TableName() string {
	return "services"
}

// BeforeCreate assigns an id and timestamps.
func (s *Service) BeforeCreate(*gorm.DB) error {
	s.Stamp(time.Now().UTC())
	return nil
}

// Stamp fills missing id and timestamps.
func (s *Service) Stamp(now time.Time) {
	if strings.TrimSpace(s.ID) == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}

// Validate checks required fields and defaults the status to draft.
func (s *Service) Validate() error {
	if s.Status == "" {
		s.Status = ContentStatusDraft
	}
	if err := validate.Struct(s); err != nil {
		return errors.Join(ErrInvalidRow, err)
	}
	return nil
}

// ProjectStatus tracks an admin-side client project.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// Project 仅供后台使用，前台页面不展示。
type Project struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	Name        string        `gorm:"not null" json:"name" validate:"required"`
	Description string        `json:"description"`
	Status      ProjectStatus `gorm:"size:20" json:"status" validate:"oneof=planning active completed cancelled"`
	ClientName  string        `json:"client_name"`
	Budget      float64       `json:"budget" validate:"gte=0,lte=9999999999.99"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName 与托管库中的表名保持一致。
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns an id and timestamps.
func (p *Project) BeforeCreate(*gorm.DB) error {
	p.Stamp(time.Now().UTC())
	return nil
}

// Stamp fills missing id and timestamps.
func (p *Project) Stamp(now time.Time) {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// Validate checks required fields and defaults the status to planning.
func (p *Project) Validate() error {
	if p.Status == "" {
		p.Status = ProjectStatusPlanning
	}
	if err := validate.Struct(p); err != nil {
		return errors.Join(ErrInvalidRow, err)
	}
	return nil
}
