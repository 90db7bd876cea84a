package entity

import "time"

// Roast levels form a fixed five-step vocabulary. Anything else an entry
// carries (including an empty value) falls into RoastOther on aggregation.
const (
	RoastLight       = "浅煎り"
	RoastMediumLight = "中浅煎り"
	RoastMedium      = "中煎り"
	RoastMediumDark  = "中深煎り"
	RoastDark        = "深煎り"

	RoastOther = "その他"
)

// RoastLevels lists the known roast levels in ascending roast order.
var RoastLevels = []string{RoastLight, RoastMediumLight, RoastMedium, RoastMediumDark, RoastDark}

// FlavorNoteVocabulary is the suggested tag set for flavor notes.
// Entries may carry free-text tags beyond this list.
var FlavorNoteVocabulary = []string{
	"チョコレート", "ナッツ", "フルーティー", "フローラル", "キャラメル",
	"スパイス", "シトラス", "ベリー", "ハニー", "スモーキー",
}

// RatingMin and RatingMax bound the overall rating and the four taste attributes.
const (
	RatingMin = 1
	RatingMax = 5
)

// Entry is one coffee-tasting record owned by a single user.
// Entries are created once and read by the list/detail/dashboard views;
// the current surface never edits or deletes them.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BeanName   string    `json:"bean_name"`
	Origin     string    `json:"origin,omitempty"`
	RoastLevel string    `json:"roast_level,omitempty"`
	Shop       string    `json:"shop,omitempty"`
	BrewMethod string    `json:"brew_method,omitempty"`
	MadeByUser bool      `json:"made_by_user"`
	GrindSize  string    `json:"grind_size,omitempty"` // meaningful only when MadeByUser
	Sourness   int       `json:"sourness"`
	Sweetness  int       `json:"sweetness"`
	Bitterness int       `json:"bitterness"`
	Richness   int       `json:"richness"`
	FlavorNote []string  `json:"flavor_notes"`
	Rating     int       `json:"rating"`
	Memo       string    `json:"memo,omitempty"`
	PhotoURLs  []string  `json:"photo_urls"`
	CreatedAt  time.Time `json:"created_at"`
}

// KnownRoastLevel reports whether s is one of the five fixed roast levels.
func KnownRoastLevel(s string) bool {
	for _, r := range RoastLevels {
		if r == s {
			return true
		}
	}
	return false
}
