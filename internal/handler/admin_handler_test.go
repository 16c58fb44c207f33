package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/maeartistry/internal/db"
	"github.com/maeartistry/internal/service"
	"github.com/maeartistry/internal/sitecontent"
	"github.com/maeartistry/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubHTMLRender records the last template and data instead of rendering.
type stubHTMLRender struct {
	mu   sync.Mutex
	last *stubHTMLInstance
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	instance := &stubHTMLInstance{name: name, data: data}
	r.mu.Lock()
	r.last = instance
	r.mu.Unlock()
	return instance
}

func (r *stubHTMLRender) Last() (string, gin.H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return "", nil
	}
	data, _ := r.last.data.(gin.H)
	return r.last.name, data
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

const testAdminPassword = "glam-secret"

type handlerFixture struct {
	api      *API
	repo     *store.GormStore
	renderer *stubHTMLRender
	router   *gin.Engine
}

func setupHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models...); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	repo := store.NewGormStore(gdb)
	api := NewAPI(Options{
		Repo:           repo,
		Bucket:         store.NewLocalBucket(t.TempDir(), "/static/uploads"),
		Site:           sitecontent.MustLoad(),
		WhatsAppNumber: "60122681879",
		SiteBaseURL:    "https://maemakeup.my",
		Admin:          AdminCredentials{Username: "mae", PasswordHash: string(hash)},
	})
	api.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	renderer := &stubHTMLRender{}
	router := gin.New()
	router.HTMLRender = renderer
	router.Use(sessions.Sessions("mae_session", cookie.NewStore([]byte("test-secret"))))
	Register(router, api, RouteMiddleware{})

	return &handlerFixture{api: api, repo: repo, renderer: renderer, router: router}
}

func (f *handlerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func (f *handlerFixture) login(t *testing.T) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {"mae"}, "password": {testAdminPassword}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := f.do(req)
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d", recorder.Code)
	}
	return recorder.Result().Cookies()
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := setupHandlerFixture(t)

	form := url.Values{"username": {"mae"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := f.do(req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	name, data := f.renderer.Last()
	if name != "login.html" || data["error"] != invalidLoginMessage {
		t.Fatalf("expected login page with error, got %s %v", name, data)
	}
}

func TestLoginRejectedWithoutConfiguredHash(t *testing.T) {
	api := &API{admin: AdminCredentials{Username: "mae"}}
	if api.checkAdmin("mae", "") || api.checkAdmin("mae", "anything") {
		t.Fatal("expected login to be refused when no hash is configured")
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	f := setupHandlerFixture(t)

	page := f.do(httptest.NewRequest(http.MethodGet, "/admin", nil))
	if page.Code != http.StatusFound || page.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login, got %d %q", page.Code, page.Header().Get("Location"))
	}

	api := f.do(httptest.NewRequest(http.MethodGet, "/admin/api/content", nil))
	if api.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for admin api, got %d", api.Code)
	}
}

// signedSessionCookies signs a session holding user with secret from an
// unrelated engine, the way someone who knows the secret could.
func signedSessionCookies(t *testing.T, secret string, user any) []*http.Cookie {
	t.Helper()
	minter := gin.New()
	minter.Use(sessions.Sessions("mae_session", cookie.NewStore([]byte(secret))))
	minter.GET("/mint", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(adminSessionKey, user)
		if err := session.Save(); err != nil {
			t.Fatalf("save session: %v", err)
		}
		c.Status(http.StatusNoContent)
	})
	recorder := httptest.NewRecorder()
	minter.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/mint", nil))
	return recorder.Result().Cookies()
}

func TestAdminAPIRejectsSessionForOtherUser(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := signedSessionCookies(t, "test-secret", "attacker")

	req := httptest.NewRequest(http.MethodPost, "/admin/api/content", strings.NewReader(`{"title":"pwned","type":"blog","status":"published"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := f.do(withCookies(req, cookies))
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a session of another user, got %d", recorder.Code)
	}
	if n, err := f.repo.Count(t.Context(), store.TableContent); err != nil || n != 0 {
		t.Fatalf("expected no content to be written, got %d (%v)", n, err)
	}
}

func TestAdminAPIRejectedWithoutConfiguredHash(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := signedSessionCookies(t, "test-secret", "mae")

	ok := f.do(withCookies(httptest.NewRequest(http.MethodGet, "/admin/api/content", nil), cookies))
	if ok.Code != http.StatusOK {
		t.Fatalf("expected configured admin session to pass, got %d", ok.Code)
	}

	f.api.admin.PasswordHash = ""
	denied := f.do(withCookies(httptest.NewRequest(http.MethodGet, "/admin/api/content", nil), cookies))
	if denied.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no password hash is configured, got %d", denied.Code)
	}
	page := f.do(withCookies(httptest.NewRequest(http.MethodGet, "/admin", nil), cookies))
	if page.Code != http.StatusFound || page.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login, got %d", page.Code)
	}
}

func TestDashboardShowsCounts(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := f.login(t)

	if _, _, err := f.api.categories.Ensure(t.Context(), service.CategoryInput{Name: "Bridal"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}

	recorder := f.do(withCookies(httptest.NewRequest(http.MethodGet, "/admin", nil), cookies))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	name, data := f.renderer.Last()
	if name != "dashboard.html" {
		t.Fatalf("expected dashboard template, got %s", name)
	}
	counts, ok := data["counts"].(map[string]int64)
	if !ok || counts[store.TableCategories] != 1 {
		t.Fatalf("unexpected counts %v", data["counts"])
	}
}

func TestAdminContentCRUD(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := f.login(t)

	body := `{"title":"Soft Glam Guide","type":"blog","status":"published","content":"# Hello","tags":["Party"]}`
	req := httptest.NewRequest(http.MethodPost, "/admin/api/content", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	created := f.do(withCookies(req, cookies))
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", created.Code, created.Body.String())
	}

	var payload struct {
		Item db.Content `json:"item"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if payload.Item.ID == "" || len(payload.Item.Tags) != 1 || payload.Item.Tags[0] != "party" {
		t.Fatalf("unexpected created item %+v", payload.Item)
	}

	update := httptest.NewRequest(http.MethodPut, "/admin/api/content/"+payload.Item.ID,
		strings.NewReader(`{"title":"Soft Glam Guide","type":"blog","status":"draft"}`))
	update.Header.Set("Content-Type", "application/json")
	if rec := f.do(withCookies(update, cookies)); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", rec.Code, rec.Body.String())
	}

	bad := httptest.NewRequest(http.MethodPost, "/admin/api/content", strings.NewReader(`{"title":"x","type":"video"}`))
	bad.Header.Set("Content-Type", "application/json")
	if rec := f.do(withCookies(bad, cookies)); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}

	del := httptest.NewRequest(http.MethodDelete, "/admin/api/content/"+payload.Item.ID, nil)
	if rec := f.do(withCookies(del, cookies)); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}
	again := httptest.NewRequest(http.MethodDelete, "/admin/api/content/"+payload.Item.ID, nil)
	if rec := f.do(withCookies(again, cookies)); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestAdminProjectRejectsUnknownStatus(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := f.login(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/projects", strings.NewReader(`{"name":"Wedding","status":"paused"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := f.do(withCookies(req, cookies))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestAdminCategoryCreateIsIdempotent(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := f.login(t)

	for i, want := range []int{http.StatusCreated, http.StatusOK} {
		req := httptest.NewRequest(http.MethodPost, "/admin/api/categories", strings.NewReader(`{"name":"Bridal","color":"#b76e79"}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := f.do(withCookies(req, cookies))
		if recorder.Code != want {
			t.Fatalf("call %d: expected %d, got %d", i, want, recorder.Code)
		}
	}
}
