package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ymatsuda/coffee-journal/internal/aggregate"
	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	repo "github.com/ymatsuda/coffee-journal/internal/domain/repository"
	"github.com/ymatsuda/coffee-journal/internal/infrastructure/postgres"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
)

var ErrEntryNotFound = errors.New("entry not found")

// EntryService implements the record/list/detail pages and keeps the
// secondary Elasticsearch index in sync, best-effort.
type EntryService struct {
	Entries        repo.EntryRepository
	GCS            *storage.Client
	GCSBucket      string
	Logger         *logrus.Logger
	ES             *elasticsearch.Client
	ESEntriesIndex string
}

// PhotoUpload is one photo from the record-entry form.
type PhotoUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// ListResult is the entries page payload: the filtered subset, the
// filter-choice options derived from the unfiltered base set, and the fixed
// vocabularies the record form offers.
type ListResult struct {
	Entries     []entity.Entry `json:"entries"`
	Total       int            `json:"total"`
	Origins     []string       `json:"origins"`
	BrewMethods []string       `json:"brew_methods"`
	RoastLevels []string       `json:"roast_levels"`
	FlavorNotes []string       `json:"flavor_note_options"`
}

// Create uploads the photos first, then inserts the record. The upload must
// resolve to URLs before the insert begins; a failure in between leaves an
// orphaned blob, which is accepted.
func (s *EntryService) Create(ctx context.Context, e *entity.Entry, photos []PhotoUpload) error {
	for _, ph := range photos {
		url, err := s.uploadPhoto(ctx, e.UserID, ph)
		if err != nil {
			return err
		}
		e.PhotoURLs = append(e.PhotoURLs, url)
	}
	if e.PhotoURLs == nil {
		e.PhotoURLs = []string{}
	}
	if e.FlavorNote == nil {
		e.FlavorNote = []string{}
	}
	if err := s.Entries.Create(ctx, e); err != nil {
		return err
	}
	s.indexEntry(ctx, e)
	return nil
}

// List applies the filter pipeline to the freshly fetched base set. The base
// set is re-read every call, so filters never cascade onto a previous result.
func (s *EntryService) List(ctx context.Context, userID string, f aggregate.Filter) (*ListResult, error) {
	base, err := s.Entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	origins, methods := aggregate.Options(base)
	return &ListResult{
		Entries:     f.Apply(base),
		Total:       len(base),
		Origins:     origins,
		BrewMethods: methods,
		RoastLevels: entity.RoastLevels,
		FlavorNotes: entity.FlavorNoteVocabulary,
	}, nil
}

func (s *EntryService) Recent(ctx context.Context, userID string, limit int) ([]entity.Entry, error) {
	return s.Entries.RecentByUser(ctx, userID, limit)
}

func (s *EntryService) Get(ctx context.Context, userID, id string) (*entity.Entry, error) {
	e, err := s.Entries.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *EntryService) uploadPhoto(ctx context.Context, userID string, ph PhotoUpload) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("blob storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(ph.Filename))
	objectPath := filepath.ToSlash(filepath.Join("photos", userID, uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, ph.ContentType, ph.Reader)
}

func (s *EntryService) indexEntry(ctx context.Context, e *entity.Entry) {
	if s.ES == nil || s.ESEntriesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          e.ID,
		"user_id":     e.UserID,
		"bean_name":   e.BeanName,
		"origin":      e.Origin,
		"roast_level": e.RoastLevel,
		"brew_method": e.BrewMethod,
		"memo":        e.Memo,
		"rating":      e.Rating,
		"created_at":  e.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESEntriesIndex, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("entry_id", e.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("entry_id", e.ID).Warn("es index response error")
	}
}

// Search runs a keyword query against the entries index, owner-scoped.
func (s *EntryService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESEntriesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"bean_name^2", "origin", "brew_method", "memo"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESEntriesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
