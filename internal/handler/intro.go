package handler

import (
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	introSeenKey    = "intro_seen"
	introContextKey = "__show_intro"
	adminSessionKey = "admin_user"
)

// showIntro 在会话的第一次页面访问时返回 true，随后写入 intro_seen，
// 同一请求内重复调用得到相同结果。
func (a *API) showIntro(c *gin.Context) bool {
	if cached, exists := c.Get(introContextKey); exists {
		if show, ok := cached.(bool); ok {
			return show
		}
	}
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return false
	}

	session := sessions.Default(c)
	show := session.Get(introSeenKey) == nil
	if show {
		session.Set(introSeenKey, true)
		if err := session.Save(); err != nil {
			slog.Warn("save intro flag failed", "error", err)
		}
	}
	c.Set(introContextKey, show)
	return show
}
