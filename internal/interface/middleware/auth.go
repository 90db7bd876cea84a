package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ymatsuda/coffee-journal/pkg/helpers"
	"github.com/ymatsuda/coffee-journal/pkg/response"
)

// Auth validates the access token and requires an active session in Redis.
// Every page other than /auth sits behind it; an unauthenticated request gets
// a 401, the API equivalent of the redirect-to-auth rule. On success the user
// id and session attributes are set in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}

		data, err := rdb.HGetAll(c.Request.Context(), "user:session:"+claims.UserID).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", data["email"])
		c.Next()
	}
}
