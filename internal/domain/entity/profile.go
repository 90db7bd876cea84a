package entity

import "time"

// FavoriteTypeVocabulary is the fixed choice set for favorite coffee types.
var FavoriteTypeVocabulary = []string{
	"エスプレッソ", "ドリップ", "カフェラテ", "カプチーノ", "アメリカーノ", "水出し",
}

const (
	NicknameMaxLen = 20
	BioMaxLen      = 100
)

// Profile holds the public-facing attributes of a user. One row per
// identity, created automatically on registration with a defaulted
// nickname and mutated only by the profile page.
type Profile struct {
	UserID        string    `json:"user_id"`
	Nickname      string    `json:"nickname"`
	Bio           string    `json:"bio"`
	FavoriteTypes []string  `json:"favorite_types"`
	AvatarURL     string    `json:"avatar_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// KnownFavoriteType reports whether s is in the fixed choice set.
func KnownFavoriteType(s string) bool {
	for _, t := range FavoriteTypeVocabulary {
		if t == s {
			return true
		}
	}
	return false
}

// Complete reports whether the profile passed first-time setup.
// Login uses this to decide between home and the profile-setup page.
func (p *Profile) Complete() bool {
	return p.Bio != "" && len(p.FavoriteTypes) > 0
}
