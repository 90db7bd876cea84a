package handlers

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ymatsuda/coffee-journal/internal/application"
	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	"github.com/ymatsuda/coffee-journal/pkg/response"
	"github.com/ymatsuda/coffee-journal/pkg/validation"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Nickname      string   `json:"nickname" binding:"required"`
	Bio           string   `json:"bio"`
	FavoriteTypes []string `json:"favorite_types"`
}

// validate checks the limits the profile form enforces client-side.
func (r *updateProfileRequest) validate() map[string]string {
	details := map[string]string{}
	if utf8.RuneCountInString(r.Nickname) > entity.NicknameMaxLen {
		details["nickname"] = fmt.Sprintf("must be at most %d characters long", entity.NicknameMaxLen)
	}
	if utf8.RuneCountInString(r.Bio) > entity.BioMaxLen {
		details["bio"] = fmt.Sprintf("must be at most %d characters long", entity.BioMaxLen)
	}
	for _, ft := range r.FavoriteTypes {
		if !entity.KnownFavoriteType(ft) {
			details["favorite_types"] = fmt.Sprintf("unknown type %q", ft)
			break
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "プロフィールが見つかりません", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// Update PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if details := req.validate(); details != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), application.UpdateProfileInput{
		Nickname:      req.Nickname,
		Bio:           req.Bio,
		FavoriteTypes: req.FavoriteTypes,
	})
	if err != nil {
		h.Logger.WithError(err).Error("profile update failed")
		response.Error[any](c, http.StatusInternalServerError, "プロフィールの更新に失敗しました", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "profile updated", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart, field "avatar")
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to read avatar", nil)
		return
	}
	defer func() { _ = f.Close() }()

	p, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString("userID"), application.PhotoUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	})
	if err != nil {
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Error[any](c, http.StatusInternalServerError, "画像のアップロードに失敗しました", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "avatar updated", nil)
}
