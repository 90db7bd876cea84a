// Package aggregate derives the list and dashboard views from a user's
// in-memory entry collection. Everything here is a pure function over a
// slice fetched in full by the caller; filters always run against the
// unfiltered base set, never against a previous result.
package aggregate

import (
	"sort"
	"strings"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
)

// SortMode selects the final ordering of a filtered list.
type SortMode string

const (
	SortByDate   SortMode = "date"   // creation time descending (default)
	SortByRating SortMode = "rating" // rating descending, ties keep base order
)

// Filter holds the list-page filter parameters. Zero values match everything,
// so the zero Filter returns the base set unchanged.
type Filter struct {
	Keyword    string
	Origin     string
	RoastLevel string
	BrewMethod string
	MinRating  int
	Sort       SortMode
}

func (f Filter) matches(e *entity.Entry) bool {
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		kw = strings.ToLower(kw)
		if !strings.Contains(strings.ToLower(e.BeanName), kw) &&
			!strings.Contains(strings.ToLower(e.Origin), kw) {
			return false
		}
	}
	if f.Origin != "" && e.Origin != f.Origin {
		return false
	}
	if f.RoastLevel != "" && e.RoastLevel != f.RoastLevel {
		return false
	}
	if f.BrewMethod != "" && e.BrewMethod != f.BrewMethod {
		return false
	}
	if f.MinRating > 0 && e.Rating < f.MinRating {
		return false
	}
	return true
}

// Apply filters entries conjunctively and sorts the result. The input slice
// is not modified; relative order of equally-ranked entries is preserved.
func (f Filter) Apply(entries []entity.Entry) []entity.Entry {
	out := make([]entity.Entry, 0, len(entries))
	for i := range entries {
		if f.matches(&entries[i]) {
			out = append(out, entries[i])
		}
	}
	switch f.Sort {
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// Options returns the distinct non-empty origin and brew-method values of the
// base set, each in first-encountered order. The list page uses them to
// populate its filter choices, recomputed whenever the base set changes.
func Options(entries []entity.Entry) (origins, brewMethods []string) {
	seenOrigin := make(map[string]bool, len(entries))
	seenMethod := make(map[string]bool, len(entries))
	for i := range entries {
		if o := entries[i].Origin; o != "" && !seenOrigin[o] {
			seenOrigin[o] = true
			origins = append(origins, o)
		}
		if m := entries[i].BrewMethod; m != "" && !seenMethod[m] {
			seenMethod[m] = true
			brewMethods = append(brewMethods, m)
		}
	}
	return origins, brewMethods
}
