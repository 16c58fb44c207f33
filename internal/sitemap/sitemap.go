// Package sitemap renders sitemap.xml and robots.txt for the public routes.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Route is one public path with its crawl hints.
type Route struct {
	Path       string
	ChangeFreq string
	Priority   float64
	LastMod    time.Time
}

// StaticRoutes are the marketing pages that always exist.
var StaticRoutes = []Route{
	{Path: "/", ChangeFreq: "weekly", Priority: 1.0},
	{Path: "/about", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/services", ChangeFreq: "monthly", Priority: 0.9},
	{Path: "/portfolio", ChangeFreq: "weekly", Priority: 0.9},
	{Path: "/blog", ChangeFreq: "weekly", Priority: 0.8},
	{Path: "/contact", ChangeFreq: "yearly", Priority: 0.7},
}

// Post is a published blog entry to list.
type Post struct {
	Slug      string
	UpdatedAt time.Time
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Routes merges the static pages with one route per blog post.
func Routes(posts []Post, now time.Time) []Route {
	routes := make([]Route, 0, len(StaticRoutes)+len(posts))
	for _, r := range StaticRoutes {
		r.LastMod = now
		routes = append(routes, r)
	}
	for _, p := range posts {
		if strings.TrimSpace(p.Slug) == "" {
			continue
		}
		routes = append(routes, Route{
			Path:       "/blog/" + p.Slug,
			ChangeFreq: "monthly",
			Priority:   0.6,
			LastMod:    p.UpdatedAt,
		})
	}
	return routes
}

// Generate renders the sitemap document.
func Generate(baseURL string, routes []Route) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	set := urlSet{Xmlns: xmlns, URLs: make([]urlEntry, 0, len(routes))}
	for _, r := range routes {
		entry := urlEntry{Loc: base + r.Path, ChangeFreq: r.ChangeFreq}
		if !r.LastMod.IsZero() {
			entry.LastMod = r.LastMod.UTC().Format("2006-01-02")
		}
		if r.Priority > 0 {
			entry.Priority = fmt.Sprintf("%.1f", r.Priority)
		}
		set.URLs = append(set.URLs, entry)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, err
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Robots renders robots.txt, keeping crawlers out of the admin panel.
func Robots(baseURL string) []byte {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + base + "/sitemap.xml\n")
	return []byte(b.String())
}

// WriteFiles writes sitemap.xml and robots.txt into dir.
func WriteFiles(dir, baseURL string, routes []Route) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := Generate(baseURL, routes)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "sitemap.xml"), data, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "robots.txt"), Robots(baseURL), 0o644)
}
