package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymatsuda/coffee-journal/internal/application"
	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
)

type stubProfileRepo struct {
	profile *entity.Profile
	updated *entity.Profile
}

func (s *stubProfileRepo) GetByUserID(_ context.Context, _ string) (*entity.Profile, error) {
	return s.profile, nil
}

func (s *stubProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	s.updated = p
	return nil
}

func newProfileTestRouter(repo *stubProfileRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	h := NewProfileHandler(&application.ProfileService{Profiles: repo, Logger: logger}, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "u1") })
	r.PUT("/api/profile", h.Update)
	return r
}

func putProfile(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestProfileUpdateValid(t *testing.T) {
	repo := &stubProfileRepo{profile: &entity.Profile{UserID: "u1", Nickname: "taro"}}
	r := newProfileTestRouter(repo)

	w := putProfile(t, r, `{"nickname":"太郎","bio":"毎朝ドリップ","favorite_types":["ドリップ","エスプレッソ"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "太郎", repo.updated.Nickname)
	assert.Equal(t, []string{"ドリップ", "エスプレッソ"}, repo.updated.FavoriteTypes)
}

func TestProfileUpdateNicknameTooLong(t *testing.T) {
	repo := &stubProfileRepo{profile: &entity.Profile{UserID: "u1"}}
	r := newProfileTestRouter(repo)

	long := strings.Repeat("あ", entity.NicknameMaxLen+1)
	w := putProfile(t, r, `{"nickname":"`+long+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.updated)
}

func TestProfileUpdateBioTooLong(t *testing.T) {
	repo := &stubProfileRepo{profile: &entity.Profile{UserID: "u1"}}
	r := newProfileTestRouter(repo)

	long := strings.Repeat("コ", entity.BioMaxLen+1)
	w := putProfile(t, r, `{"nickname":"太郎","bio":"`+long+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.updated)
}

func TestProfileUpdateUnknownFavoriteType(t *testing.T) {
	repo := &stubProfileRepo{profile: &entity.Profile{UserID: "u1"}}
	r := newProfileTestRouter(repo)

	w := putProfile(t, r, `{"nickname":"太郎","favorite_types":["紅茶"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.updated)
}
