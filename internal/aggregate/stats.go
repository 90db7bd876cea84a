package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
)

// MinEntriesForAnalysis is the entry count below which the dashboard shows a
// placeholder instead of the detailed charts.
const MinEntriesForAnalysis = 3

// Bucket is one labeled count in a histogram.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TasteAverages holds the mean of each taste attribute across all entries.
type TasteAverages struct {
	Sourness   float64 `json:"sourness"`
	Sweetness  float64 `json:"sweetness"`
	Bitterness float64 `json:"bitterness"`
	Richness   float64 `json:"richness"`
}

// Analysis holds the detailed chart data, only built once the collection
// reaches MinEntriesForAnalysis.
type Analysis struct {
	RoastHistogram   []Bucket `json:"roast_histogram"`   // five levels + other, sums to total
	RatingHistogram  []Bucket `json:"rating_histogram"`  // ratings 1..5, out-of-range dropped
	MonthlyHistogram []Bucket `json:"monthly_histogram"` // last six calendar months, oldest first
	TopBrewMethods   []Bucket `json:"top_brew_methods"`  // at most five, by count descending
}

// Summary is the dashboard view of a user's entry collection.
type Summary struct {
	Total          int           `json:"total"`
	AverageRating  float64       `json:"average_rating"` // one decimal, 0 when empty
	TopBrewMethod  string        `json:"top_brew_method"`
	TopOrigin      string        `json:"top_origin"`
	ThisMonthCount int           `json:"this_month_count"`
	TasteAverages  TasteAverages `json:"taste_averages"`
	Analysis       *Analysis     `json:"analysis,omitempty"`
}

// BuildSummary computes every dashboard figure in one pass over entries.
// now supplies the wall clock for the current-month count and the monthly
// histogram labels. Empty input yields zeroed averages, never NaN.
func BuildSummary(entries []entity.Entry, now time.Time) Summary {
	s := Summary{Total: len(entries)}

	var ratingSum, sour, sweet, bitter, rich int
	for i := range entries {
		e := &entries[i]
		ratingSum += e.Rating
		sour += e.Sourness
		sweet += e.Sweetness
		bitter += e.Bitterness
		rich += e.Richness
		if e.CreatedAt.Month() == now.Month() && e.CreatedAt.Year() == now.Year() {
			s.ThisMonthCount++
		}
	}
	if s.Total > 0 {
		n := float64(s.Total)
		s.AverageRating = round1(float64(ratingSum) / n)
		s.TasteAverages = TasteAverages{
			Sourness:   round1(float64(sour) / n),
			Sweetness:  round1(float64(sweet) / n),
			Bitterness: round1(float64(bitter) / n),
			Richness:   round1(float64(rich) / n),
		}
	}

	s.TopBrewMethod = mostFrequent(entries, func(e *entity.Entry) string { return e.BrewMethod })
	s.TopOrigin = mostFrequent(entries, func(e *entity.Entry) string { return e.Origin })

	if s.Total >= MinEntriesForAnalysis {
		s.Analysis = BuildAnalysis(entries, now)
	}
	return s
}

// BuildAnalysis computes the detailed chart histograms. Callers normally gate
// it behind MinEntriesForAnalysis via BuildSummary, but the computation itself
// is defined for any input.
func BuildAnalysis(entries []entity.Entry, now time.Time) *Analysis {
	a := &Analysis{
		RoastHistogram:   roastHistogram(entries),
		RatingHistogram:  ratingHistogram(entries),
		MonthlyHistogram: monthlyHistogram(entries, now),
		TopBrewMethods:   topN(groupCount(entries, func(e *entity.Entry) string { return e.BrewMethod }), 5),
	}
	return a
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// groupCount groups entries by a key, skipping empty keys, preserving
// first-encountered order. Ties in any later "most frequent" pick therefore
// resolve to the key seen first, making the tie-break deterministic.
func groupCount(entries []entity.Entry, key func(*entity.Entry) string) []Bucket {
	idx := make(map[string]int, len(entries))
	var groups []Bucket
	for i := range entries {
		k := key(&entries[i])
		if k == "" {
			continue
		}
		if j, ok := idx[k]; ok {
			groups[j].Count++
			continue
		}
		idx[k] = len(groups)
		groups = append(groups, Bucket{Label: k, Count: 1})
	}
	return groups
}

func mostFrequent(entries []entity.Entry, key func(*entity.Entry) string) string {
	best := ""
	bestCount := 0
	for _, g := range groupCount(entries, key) {
		if g.Count > bestCount {
			best, bestCount = g.Label, g.Count
		}
	}
	return best
}

func topN(groups []Bucket, n int) []Bucket {
	sorted := make([]Bucket, len(groups))
	copy(sorted, groups)
	// stable keeps first-encountered order within equal counts
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// roastHistogram assigns every entry to exactly one of six buckets: the five
// known roast levels plus an "other" bucket for anything unrecognized,
// including an absent level. Bucket counts always sum to len(entries).
func roastHistogram(entries []entity.Entry) []Bucket {
	buckets := make([]Bucket, 0, len(entity.RoastLevels)+1)
	idx := make(map[string]int, len(entity.RoastLevels))
	for _, lvl := range entity.RoastLevels {
		idx[lvl] = len(buckets)
		buckets = append(buckets, Bucket{Label: lvl})
	}
	other := len(buckets)
	buckets = append(buckets, Bucket{Label: entity.RoastOther})

	for i := range entries {
		if j, ok := idx[entries[i].RoastLevel]; ok {
			buckets[j].Count++
		} else {
			buckets[other].Count++
		}
	}
	return buckets
}

// ratingHistogram counts entries per integer rating 1..5. A rating outside
// the stored constraint is silently excluded rather than failing.
func ratingHistogram(entries []entity.Entry) []Bucket {
	buckets := []Bucket{{Label: "1"}, {Label: "2"}, {Label: "3"}, {Label: "4"}, {Label: "5"}}
	for i := range entries {
		r := entries[i].Rating
		if r < entity.RatingMin || r > entity.RatingMax {
			continue
		}
		buckets[r-1].Count++
	}
	return buckets
}

// monthlyHistogram buckets entries into the last six calendar months ending
// at now, labeled by short month name, oldest first. Matching is by label
// alone, so a month name collides across years; that ambiguity is accepted.
func monthlyHistogram(entries []entity.Entry, now time.Time) []Bucket {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	buckets := make([]Bucket, 0, 6)
	idx := make(map[string]int, 6)
	for i := 5; i >= 0; i-- {
		label := first.AddDate(0, -i, 0).Format("Jan")
		idx[label] = len(buckets)
		buckets = append(buckets, Bucket{Label: label})
	}
	for i := range entries {
		if j, ok := idx[entries[i].CreatedAt.Format("Jan")]; ok {
			buckets[j].Count++
		}
	}
	return buckets
}
