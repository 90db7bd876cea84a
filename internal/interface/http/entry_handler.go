package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ymatsuda/coffee-journal/internal/aggregate"
	"github.com/ymatsuda/coffee-journal/internal/application"
	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	"github.com/ymatsuda/coffee-journal/pkg/response"
	"github.com/ymatsuda/coffee-journal/pkg/validation"
)

const recentEntriesLimit = 5

type EntryHandler struct {
	Svc    *application.EntryService
	Logger *logrus.Logger
}

func NewEntryHandler(svc *application.EntryService, logger *logrus.Logger) *EntryHandler {
	return &EntryHandler{Svc: svc, Logger: logger}
}

type createEntryRequest struct {
	BeanName   string   `form:"bean_name" binding:"required"`
	Origin     string   `form:"origin"`
	RoastLevel string   `form:"roast_level" binding:"omitempty,roast"`
	Shop       string   `form:"shop"`
	BrewMethod string   `form:"brew_method"`
	MadeByUser bool     `form:"made_by_user"`
	GrindSize  string   `form:"grind_size"`
	Sourness   int      `form:"sourness" binding:"required,gte=1,lte=5"`
	Sweetness  int      `form:"sweetness" binding:"required,gte=1,lte=5"`
	Bitterness int      `form:"bitterness" binding:"required,gte=1,lte=5"`
	Richness   int      `form:"richness" binding:"required,gte=1,lte=5"`
	FlavorNote []string `form:"flavor_notes"`
	Rating     int      `form:"rating" binding:"required,gte=1,lte=5"`
	Memo       string   `form:"memo"`
}

// Create POST /api/entries (multipart). Photos upload before the insert; the
// two steps are sequential, not transactional.
func (h *EntryHandler) Create(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	e := &entity.Entry{
		UserID:     c.GetString("userID"),
		BeanName:   req.BeanName,
		Origin:     req.Origin,
		RoastLevel: req.RoastLevel,
		Shop:       req.Shop,
		BrewMethod: req.BrewMethod,
		MadeByUser: req.MadeByUser,
		Sourness:   req.Sourness,
		Sweetness:  req.Sweetness,
		Bitterness: req.Bitterness,
		Richness:   req.Richness,
		FlavorNote: req.FlavorNote,
		Rating:     req.Rating,
		Memo:       req.Memo,
	}
	// grind size only makes sense for self-brewed entries
	if req.MadeByUser {
		e.GrindSize = req.GrindSize
	}

	var photos []application.PhotoUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["photos"] {
			f, err := fh.Open()
			if err != nil {
				response.Error[any](c, http.StatusBadRequest, "failed to read photo", nil)
				return
			}
			defer func() { _ = f.Close() }()
			photos = append(photos, application.PhotoUpload{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
			})
		}
	}

	if err := h.Svc.Create(c.Request.Context(), e, photos); err != nil {
		h.Logger.WithError(err).Error("entry create failed")
		response.Error[any](c, http.StatusInternalServerError, "記録の保存に失敗しました", nil)
		return
	}
	response.Success(c, http.StatusCreated, e, "entry recorded", nil)
}

// List GET /api/entries with filter/sort query parameters. The filter always
// runs against the freshly fetched base set.
func (h *EntryHandler) List(c *gin.Context) {
	minRating, _ := strconv.Atoi(c.DefaultQuery("min_rating", "0"))
	f := aggregate.Filter{
		Keyword:    c.Query("keyword"),
		Origin:     c.Query("origin"),
		RoastLevel: c.Query("roast_level"),
		BrewMethod: c.Query("brew_method"),
		MinRating:  minRating,
		Sort:       aggregate.SortMode(c.DefaultQuery("sort", string(aggregate.SortByDate))),
	}

	res, err := h.Svc.List(c.Request.Context(), c.GetString("userID"), f)
	if err != nil {
		h.Logger.WithError(err).Error("entry list failed")
		response.Error[any](c, http.StatusInternalServerError, "記録の取得に失敗しました", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "entries", nil)
}

// Recent GET /api/entries/recent backs the home page.
func (h *EntryHandler) Recent(c *gin.Context) {
	entries, err := h.Svc.Recent(c.Request.Context(), c.GetString("userID"), recentEntriesLimit)
	if err != nil {
		h.Logger.WithError(err).Error("recent entries failed")
		response.Error[any](c, http.StatusInternalServerError, "記録の取得に失敗しました", nil)
		return
	}
	response.Success(c, http.StatusOK, entries, "recent entries", nil)
}

// Get GET /api/entries/:id
func (h *EntryHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "記録が見つかりません", nil)
		return
	}
	response.Success(c, http.StatusOK, e, "entry", nil)
}

// Search GET /api/entries/search?q= queries the Elasticsearch index.
func (h *EntryHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), c.GetString("userID"), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("entry search failed")
		response.Error[any](c, http.StatusInternalServerError, "検索に失敗しました", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
