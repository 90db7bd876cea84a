package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ymatsuda/coffee-journal/internal/application"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
	"github.com/ymatsuda/coffee-journal/pkg/response"
	"github.com/ymatsuda/coffee-journal/pkg/validation"
)

// authMessages maps error tags to the fixed user-facing texts the auth page
// shows. The fallback covers every untagged failure.
var authMessages = map[application.AuthCode]string{
	application.CodeInvalidCredentials: "メールアドレスまたはパスワードが正しくありません",
	application.CodeEmailUnconfirmed:   "メールアドレスの確認が完了していません",
	application.CodeDuplicateEmail:     "このメールアドレスは既に登録されています",
	application.CodeWeakPassword:       "パスワードは8文字以上で入力してください",
	application.CodeOther:              "エラーが発生しました。もう一度お試しください",
}

func authMessage(err error) string {
	return authMessages[application.CodeOf(err)]
}

type AuthHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		if application.CodeOf(err) == application.CodeDuplicateEmail {
			status = http.StatusConflict
		}
		response.Error[any](c, status, authMessage(err), nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user_id": u.ID, "email": u.Email}, "registered", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if application.CodeOf(err) == application.CodeEmailUnconfirmed {
			status = http.StatusForbidden
		}
		response.Error[any](c, status, authMessage(err), nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, res, "login successful", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Session GET /api/auth/session (auth required) answers the page-mount
// current-session query.
func (h *AuthHandler) Session(c *gin.Context) {
	data, err := h.Svc.Session(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user_id":  data["user_id"],
		"email":    data["email"],
		"nickname": data["nickname"],
	}, "session", nil)
}

// VerifyInit POST /api/auth/verify/init {email}
// Always 200 to avoid account enumeration.
func (h *AuthHandler) VerifyInit(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyInit(c.Request.Context(), req.Email); err != nil {
		response.Error[any](c, http.StatusInternalServerError, authMessage(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "verification mail sent if the address exists", nil)
}

// VerifyConfirm POST /api/auth/verify/confirm {token}
func (h *AuthHandler) VerifyConfirm(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyConfirm(c.Request.Context(), req.Token); err != nil {
		response.Error[any](c, http.StatusBadRequest, "確認リンクが無効か期限切れです", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified", nil)
}

// ResetInit POST /api/auth/reset/init {email}
// Always 200 to avoid account enumeration.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if _, err := h.Svc.ResetInit(c.Request.Context(), req.Email); err != nil {
		response.Error[any](c, http.StatusInternalServerError, authMessage(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "reset mail sent if the address exists", nil)
}

// ResetConfirm POST /api/auth/reset/confirm {token, new_password}
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetConfirm(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error[any](c, http.StatusBadRequest, authMessage(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}
