package commands

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maeartistry/internal/format"
	"github.com/maeartistry/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// setupEnv points every command at a fresh sqlite file and upload dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("VITE_SUPABASE_URL", "")
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "mae.db"))
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("UPLOAD_URL_PATH", "/static/uploads")
	t.Setenv("SITE_BASE_URL", "https://maemakeup.my")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$placeholder")
	t.Setenv("SESSION_SECRET", "maectl-test-secret")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashPasswordFromStdin(t *testing.T) {
	out, err := run(t, "glam-secret\n", "hash-password", "--cost", "4")
	if err != nil {
		t.Fatalf("hash-password returned error: %v", err)
	}
	hash := strings.TrimSpace(out)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("glam-secret")); err != nil {
		t.Fatalf("hash does not match password: %v", err)
	}

	if _, err := run(t, "", "hash-password"); err == nil {
		t.Fatal("expected empty password to be rejected")
	}
}

func TestEnvReportsMissingKeys(t *testing.T) {
	setupEnv(t)
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	out, err := run(t, "", "env")
	if !errors.Is(err, errMissingEnv) {
		t.Fatalf("expected errMissingEnv, got %v", err)
	}
	if !strings.Contains(out, "missing: ADMIN_PASSWORD_HASH") {
		t.Fatalf("unexpected output %q", out)
	}

	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$placeholder")
	if out, err := run(t, "", "env"); err != nil || !strings.Contains(out, "all required variables are set") {
		t.Fatalf("expected clean env, got %q (%v)", out, err)
	}
}

func TestSeedThenSitemap(t *testing.T) {
	dir := setupEnv(t)

	first, err := run(t, "", "seed")
	if err != nil {
		t.Fatalf("seed returned error: %v", err)
	}
	if !strings.Contains(first, "posts:      2 created, 0 skipped") {
		t.Fatalf("unexpected first seed output %q", first)
	}
	second, err := run(t, "", "seed")
	if err != nil {
		t.Fatalf("second seed returned error: %v", err)
	}
	if !strings.Contains(second, "posts:      0 created, 2 skipped") {
		t.Fatalf("expected second seed to skip, got %q", second)
	}

	outDir := filepath.Join(dir, "public")
	if _, err := run(t, "", "sitemap", "--out", outDir); err != nil {
		t.Fatalf("sitemap returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "sitemap.xml"))
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	want := "https://maemakeup.my/blog/" + format.Slugify(service.SeedPosts[0].Title)
	if !strings.Contains(string(data), want) {
		t.Fatalf("expected %s in sitemap", want)
	}
	if _, err := os.Stat(filepath.Join(outDir, "robots.txt")); err != nil {
		t.Fatalf("expected robots.txt: %v", err)
	}
}

func TestCheckPrintsTableCounts(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "check")
	if err != nil {
		t.Fatalf("check returned error: %v", err)
	}
	for _, want := range []string{"content", "categories", "services", "projects", "bucket:uploads"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 183, G: 110, B: 121, A: 255})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestConvertImagesSkipsExisting(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writePNG(t, filepath.Join(src, "bridal", "look.png"), 40, 20)
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "", "convert-images", "--src", src, "--dst", dst, "--max-width", "10")
	if err != nil {
		t.Fatalf("convert-images returned error: %v", err)
	}
	if !strings.Contains(out, "converted 1, skipped 0, failed 0") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(dst, "bridal", "look.webp")); err != nil {
		t.Fatalf("expected webp output: %v", err)
	}

	again, err := run(t, "", "convert-images", "--src", src, "--dst", dst)
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if !strings.Contains(again, "converted 0, skipped 1, failed 0") {
		t.Fatalf("expected existing output to be skipped, got %q", again)
	}
}

func TestUploadCopiesIntoLocalBucket(t *testing.T) {
	dir := setupEnv(t)
	src := filepath.Join(dir, "incoming")
	writePNG(t, filepath.Join(src, "party.png"), 4, 4)

	out, err := run(t, "", "upload", "--dir", src, "--prefix", "portfolio")
	if err != nil {
		t.Fatalf("upload returned error: %v", err)
	}
	if !strings.Contains(out, "uploaded 1 of 1 files") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "uploads", "portfolio", "party.png")); err != nil {
		t.Fatalf("expected uploaded file: %v", err)
	}
}

func TestPgx5URL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db.example:5432/postgres":   "pgx5://u:p@db.example:5432/postgres",
		"postgresql://u:p@db.example:5432/postgres": "pgx5://u:p@db.example:5432/postgres",
		"pgx5://already": "pgx5://already",
	}
	for in, want := range tests {
		if got := pgx5URL(in); got != want {
			t.Fatalf("pgx5URL(%q) = %q, want %q", in, got, want)
		}
	}
}
