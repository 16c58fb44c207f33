package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const invalidLoginMessage = "Invalid username or password"

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Admin login",
		"site":  a.site.Brand,
	})
}

// Login checks the form against the configured admin account.
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if !a.checkAdmin(username, password) {
		slog.Warn("admin login rejected", "username", username, "ip", c.ClientIP())
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"title": "Admin login",
			"site":  a.site.Brand,
			"error": invalidLoginMessage,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(adminSessionKey, a.admin.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title": "Admin login",
			"site":  a.site.Brand,
			"error": "Could not start a session",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// checkAdmin 在未配置密码哈希时一律拒绝登录。
func (a *API) checkAdmin(username, password string) bool {
	if a.admin.PasswordHash == "" || password == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.admin.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(password)) == nil
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(adminSessionKey)
	if err := session.Save(); err != nil {
		slog.Warn("clear admin session failed", "error", err)
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板，展示各表行数。
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	counts := a.health.Counts(c.Request.Context())

	projects, err := a.projects.List(c.Request.Context())
	if err != nil {
		slog.Warn("load projects failed", "error", err)
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":    "Dashboard",
		"site":     a.site.Brand,
		"username": session.Get(adminSessionKey),
		"counts":   counts,
		"projects": projects,
	})
}

// AuthRequired 是后台认证中间件。会话中的用户必须是当前配置的管理员，
// 且未配置密码哈希时一律拒绝。API 请求返回 401，页面请求跳转到登录页。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.isAdminSession(sessions.Default(c)) {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api") {
				respondError(c, http.StatusUnauthorized, "login required")
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *API) isAdminSession(session sessions.Session) bool {
	if a.admin.PasswordHash == "" || a.admin.Username == "" {
		return false
	}
	user, ok := session.Get(adminSessionKey).(string)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(user), []byte(a.admin.Username)) == 1
}
