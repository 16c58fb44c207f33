package sitemap

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateIncludesStaticAndBlogRoutes(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	routes := Routes([]Post{
		{Slug: "bridal-trial-checklist", UpdatedAt: now.AddDate(0, -1, 0)},
		{Slug: " "},
	}, now)
	if len(routes) != len(StaticRoutes)+1 {
		t.Fatalf("expected blank slug to be skipped, got %d routes", len(routes))
	}

	data, err := Generate("https://maemakeup.my/", routes)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	var parsed urlSet
	if err := xml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("generated sitemap is not valid xml: %v", err)
	}
	if parsed.URLs[0].Loc != "https://maemakeup.my/" {
		t.Fatalf("unexpected first loc %q", parsed.URLs[0].Loc)
	}
	last := parsed.URLs[len(parsed.URLs)-1]
	if last.Loc != "https://maemakeup.my/blog/bridal-trial-checklist" || last.LastMod != "2025-05-01" {
		t.Fatalf("unexpected blog entry %+v", last)
	}
}

func TestRobotsPointsAtSitemap(t *testing.T) {
	robots := string(Robots("https://maemakeup.my"))
	if !strings.Contains(robots, "Disallow: /admin") {
		t.Fatalf("expected admin to be disallowed:\n%s", robots)
	}
	if !strings.Contains(robots, "Sitemap: https://maemakeup.my/sitemap.xml") {
		t.Fatalf("expected sitemap line:\n%s", robots)
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")
	if err := WriteFiles(dir, "https://maemakeup.my", Routes(nil, time.Now())); err != nil {
		t.Fatalf("WriteFiles returned error: %v", err)
	}
	for _, name := range []string{"sitemap.xml", "robots.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}
}
