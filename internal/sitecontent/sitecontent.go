// Package sitecontent holds the marketing copy that ships with the binary.
package sitecontent

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

// Site is the hard-coded copy rendered around the hosted content.
type Site struct {
	Brand        Brand           `yaml:"brand"`
	Hero         Hero            `yaml:"hero"`
	Tokens       DesignTokens    `yaml:"tokens"`
	Testimonials []Testimonial   `yaml:"testimonials"`
	Timeline     []TimelineEvent `yaml:"timeline"`
	Portfolio    []PortfolioItem `yaml:"portfolio"`
	Services     []Service       `yaml:"services"`
}

type Brand struct {
	Name      string `yaml:"name"`
	Tagline   string `yaml:"tagline"`
	WhatsApp  string `yaml:"whatsapp"`
	Email     string `yaml:"email"`
	Instagram string `yaml:"instagram"`
	Location  string `yaml:"location"`
}

type Hero struct {
	Headline    string `yaml:"headline"`
	Subheadline string `yaml:"subheadline"`
	CTALabel    string `yaml:"cta_label"`
}

// DesignTokens are exposed to templates as CSS custom properties.
type DesignTokens struct {
	Primary     string `yaml:"primary"`
	Secondary   string `yaml:"secondary"`
	Accent      string `yaml:"accent"`
	FontHeading string `yaml:"font_heading"`
	FontBody    string `yaml:"font_body"`
}

type Testimonial struct {
	Name     string `yaml:"name"`
	Occasion string `yaml:"occasion"`
	Quote    string `yaml:"quote"`
}

type TimelineEvent struct {
	Year        int    `yaml:"year"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// PortfolioItem 在托管库不可用时作为作品集的占位内容。
type PortfolioItem struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Image    string `yaml:"image"`
}

// Service is the fallback pricing catalog entry.
type Service struct {
	Title       string   `yaml:"title"`
	Category    string   `yaml:"category"`
	Price       float64  `yaml:"price"`
	Duration    string   `yaml:"duration"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

var (
	loadOnce sync.Once
	loaded   *Site
	loadErr  error
)

// Load parses the embedded copy once.
func Load() (*Site, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(siteYAML)
	})
	return loaded, loadErr
}

// MustLoad is Load for process start-up.
func MustLoad() *Site {
	site, err := Load()
	if err != nil {
		panic(err)
	}
	return site
}

// Parse decodes site copy from YAML.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	if site.Brand.Name == "" {
		return nil, fmt.Errorf("parse site content: brand name is required")
	}
	return &site, nil
}
