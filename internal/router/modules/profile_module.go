package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ymatsuda/coffee-journal/internal/container"
	handlers "github.com/ymatsuda/coffee-journal/internal/interface/http"
	"github.com/ymatsuda/coffee-journal/internal/interface/middleware"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/profile", m.Handler.Get)
		auth.PUT("/profile", m.Handler.Update)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}
}
