package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymatsuda/coffee-journal/internal/aggregate"
	"github.com/ymatsuda/coffee-journal/internal/application"
	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	"github.com/ymatsuda/coffee-journal/internal/infrastructure/postgres"
	"github.com/ymatsuda/coffee-journal/pkg/validation"
)

type stubEntryRepo struct {
	entries []entity.Entry
}

func (s *stubEntryRepo) Create(_ context.Context, e *entity.Entry) error {
	s.entries = append(s.entries, *e)
	return nil
}

func (s *stubEntryRepo) ListByUser(_ context.Context, userID string) ([]entity.Entry, error) {
	var out []entity.Entry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubEntryRepo) RecentByUser(ctx context.Context, userID string, limit int) ([]entity.Entry, error) {
	all, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *stubEntryRepo) GetByID(_ context.Context, userID, id string) (*entity.Entry, error) {
	for _, e := range s.entries {
		if e.UserID == userID && e.ID == id {
			return &e, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func newEntryTestRouter(repo *stubEntryRepo, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	logger := logrus.New()
	h := NewEntryHandler(&application.EntryService{Entries: repo, Logger: logger}, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	r.POST("/api/entries", h.Create)
	r.GET("/api/entries", h.List)
	r.GET("/api/entries/recent", h.Recent)
	r.GET("/api/entries/:id", h.Get)
	return r
}

func seedEntries() *stubEntryRepo {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return &stubEntryRepo{entries: []entity.Entry{
		{ID: "e1", UserID: "u1", BeanName: "エチオピア イルガチェフェ", Origin: "エチオピア", BrewMethod: "ハンドドリップ", Sourness: 5, Sweetness: 4, Bitterness: 2, Richness: 3, Rating: 5, CreatedAt: base},
		{ID: "e2", UserID: "u1", BeanName: "ブラジル サントス", Origin: "ブラジル", BrewMethod: "エスプレッソ", Sourness: 2, Sweetness: 3, Bitterness: 4, Richness: 5, Rating: 3, CreatedAt: base.AddDate(0, 0, -1)},
		{ID: "e3", UserID: "u2", BeanName: "ケニア AA", Origin: "ケニア", BrewMethod: "ハンドドリップ", Sourness: 5, Sweetness: 3, Bitterness: 2, Richness: 3, Rating: 5, CreatedAt: base},
	}}
}

type listEnvelope struct {
	Success bool                   `json:"success"`
	Data    application.ListResult `json:"data"`
}

func TestEntryListScopedToOwner(t *testing.T) {
	r := newEntryTestRouter(seedEntries(), "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Data.Total)
	for _, e := range env.Data.Entries {
		assert.Equal(t, "u1", e.UserID)
	}
	assert.Equal(t, []string{"エチオピア", "ブラジル"}, env.Data.Origins)
}

func TestEntryListFilterQuery(t *testing.T) {
	r := newEntryTestRouter(seedEntries(), "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/entries?origin=ブラジル&min_rating=3", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data.Entries, 1)
	assert.Equal(t, "e2", env.Data.Entries[0].ID)
	// total and options always describe the unfiltered base set
	assert.Equal(t, 2, env.Data.Total)
}

func TestEntryListSortByRating(t *testing.T) {
	r := newEntryTestRouter(seedEntries(), "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/entries?sort="+string(aggregate.SortByRating), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data.Entries, 2)
	assert.Equal(t, "e1", env.Data.Entries[0].ID)
	assert.Equal(t, "e2", env.Data.Entries[1].ID)
}

func postEntryForm(t *testing.T, r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func entryForm() url.Values {
	return url.Values{
		"bean_name":  {"ケニア AA"},
		"origin":     {"ケニア"},
		"sourness":   {"5"},
		"sweetness":  {"3"},
		"bitterness": {"2"},
		"richness":   {"3"},
		"rating":     {"5"},
	}
}

func TestEntryCreateAcceptsKnownRoastLevel(t *testing.T) {
	repo := seedEntries()
	r := newEntryTestRouter(repo, "u1")

	form := entryForm()
	form.Set("roast_level", entity.RoastLight)
	w := postEntryForm(t, r, form)

	require.Equal(t, http.StatusCreated, w.Code)
	created := repo.entries[len(repo.entries)-1]
	assert.Equal(t, entity.RoastLight, created.RoastLevel)
	assert.Equal(t, "u1", created.UserID)
}

func TestEntryCreateRejectsUnknownRoastLevel(t *testing.T) {
	repo := seedEntries()
	r := newEntryTestRouter(repo, "u1")
	before := len(repo.entries)

	form := entryForm()
	form.Set("roast_level", "極深煎り")
	w := postEntryForm(t, r, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, repo.entries, before)
}

func TestEntryListCarriesFormVocabularies(t *testing.T) {
	r := newEntryTestRouter(seedEntries(), "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, entity.RoastLevels, env.Data.RoastLevels)
	assert.Equal(t, entity.FlavorNoteVocabulary, env.Data.FlavorNotes)
}

func TestEntryGetNotFoundForOtherUser(t *testing.T) {
	r := newEntryTestRouter(seedEntries(), "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/entries/e3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
