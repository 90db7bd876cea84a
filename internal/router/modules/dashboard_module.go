package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ymatsuda/coffee-journal/internal/container"
	handlers "github.com/ymatsuda/coffee-journal/internal/interface/http"
	"github.com/ymatsuda/coffee-journal/internal/interface/middleware"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
)

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	JWT     *helpers.JWTManager
}

func NewDashboardModule(h *handlers.DashboardHandler, jwt *helpers.JWTManager) *DashboardModule {
	return &DashboardModule{Handler: h, JWT: jwt}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/dashboard", m.Handler.Summary)
	}
}
