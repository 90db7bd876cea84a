package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ymatsuda/coffee-journal/internal/container"
	handlers "github.com/ymatsuda/coffee-journal/internal/interface/http"
	"github.com/ymatsuda/coffee-journal/internal/interface/middleware"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
)

// EntryModule wires the tasting-record routes.
// All routes require an authenticated session.
type EntryModule struct {
	Handler *handlers.EntryHandler
	JWT     *helpers.JWTManager
}

func NewEntryModule(h *handlers.EntryHandler, jwt *helpers.JWTManager) *EntryModule {
	return &EntryModule{Handler: h, JWT: jwt}
}

func (m *EntryModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/entries", m.Handler.Create)
		auth.GET("/entries", m.Handler.List)
		auth.GET("/entries/recent", m.Handler.Recent)
		// static segments before the wildcard so /entries/search wins
		auth.GET("/entries/search", m.Handler.Search)
		auth.GET("/entries/:id", m.Handler.Get)
	}
}
