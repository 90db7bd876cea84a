package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func baseEntries() []entity.Entry {
	return []entity.Entry{
		{ID: "1", BeanName: "Yirgacheffe", Origin: "エチオピア", RoastLevel: entity.RoastLight, BrewMethod: "ハンドドリップ", Rating: 5, CreatedAt: day("2024-03-01")},
		{ID: "2", BeanName: "Huila Supremo", Origin: "コロンビア", RoastLevel: entity.RoastMedium, BrewMethod: "フレンチプレス", Rating: 3, CreatedAt: day("2024-02-01")},
		{ID: "3", BeanName: "Guji Natural", Origin: "エチオピア", RoastLevel: entity.RoastLight, BrewMethod: "ハンドドリップ", Rating: 4, CreatedAt: day("2024-01-15")},
		{ID: "4", BeanName: "Mandheling", Origin: "インドネシア", RoastLevel: entity.RoastDark, BrewMethod: "エスプレッソ", Rating: 5, CreatedAt: day("2024-01-01")},
	}
}

func ids(entries []entity.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestApply_EmptyFilterReturnsBaseSetInDateOrder(t *testing.T) {
	base := baseEntries()
	got := Filter{}.Apply(base)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestApply_ResultIsAlwaysSubset(t *testing.T) {
	base := baseEntries()
	filters := []Filter{
		{},
		{Keyword: "yirga"},
		{Origin: "エチオピア"},
		{RoastLevel: entity.RoastLight},
		{BrewMethod: "ハンドドリップ"},
		{MinRating: 4},
		{Keyword: "a", Origin: "エチオピア", MinRating: 4, Sort: SortByRating},
	}
	inBase := make(map[string]bool, len(base))
	for _, e := range base {
		inBase[e.ID] = true
	}
	for _, f := range filters {
		for _, e := range f.Apply(base) {
			assert.True(t, inBase[e.ID])
		}
	}
}

func TestApply_KeywordIsCaseInsensitiveOverBeanAndOrigin(t *testing.T) {
	base := baseEntries()

	got := Filter{Keyword: "YIRGA"}.Apply(base)
	assert.Equal(t, []string{"1"}, ids(got))

	// origin matches too
	got = Filter{Keyword: "エチオピア"}.Apply(base)
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestApply_OriginEquality(t *testing.T) {
	got := Filter{Origin: "エチオピア"}.Apply(baseEntries())
	assert.Equal(t, []string{"1", "3"}, ids(got), "exactly the two matching entries, base order preserved")
}

func TestApply_MinRatingThreshold(t *testing.T) {
	base := baseEntries()

	got := Filter{MinRating: 4}.Apply(base)
	assert.Equal(t, []string{"1", "3", "4"}, ids(got))

	// threshold 0 matches all
	got = Filter{MinRating: 0}.Apply(base)
	assert.Len(t, got, len(base))
}

func TestApply_FiltersComposeConjunctively(t *testing.T) {
	got := Filter{Origin: "エチオピア", MinRating: 5, BrewMethod: "ハンドドリップ"}.Apply(baseEntries())
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApply_RatingSortIsStable(t *testing.T) {
	entries := []entity.Entry{
		{ID: "jan", Rating: 5, CreatedAt: day("2024-01-01")},
		{ID: "feb", Rating: 3, CreatedAt: day("2024-02-01")},
		{ID: "mar", Rating: 5, CreatedAt: day("2024-03-01")},
	}
	got := Filter{Sort: SortByRating}.Apply(entries)
	assert.Equal(t, []string{"jan", "mar", "feb"}, ids(got), "ties keep original relative order")
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	base := baseEntries()
	_ = Filter{Sort: SortByRating, MinRating: 1}.Apply(base)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(base))
}

func TestOptions_DistinctNonEmptyFirstEncountered(t *testing.T) {
	entries := baseEntries()
	entries = append(entries, entity.Entry{ID: "5", BeanName: "Blend", CreatedAt: day("2023-12-01")}) // no origin, no method

	origins, methods := Options(entries)
	require.Equal(t, []string{"エチオピア", "コロンビア", "インドネシア"}, origins)
	require.Equal(t, []string{"ハンドドリップ", "フレンチプレス", "エスプレッソ"}, methods)
}

func TestOptions_EmptyBaseSet(t *testing.T) {
	origins, methods := Options(nil)
	assert.Empty(t, origins)
	assert.Empty(t, methods)
}
