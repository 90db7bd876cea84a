package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ymatsuda/coffee-journal/config"
	"github.com/ymatsuda/coffee-journal/pkg/helpers"
)

// Seeds a demo account plus a handful of tasting records so the dashboard
// has something to chart on a fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, is_verified)
		VALUES ($1, $2, true)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	if _, err := db.Exec(`
		UPDATE profiles
		SET nickname = $2, bio = $3, favorite_types = $4, updated_at = now()
		WHERE user_id = $1
	`, userID, "コーヒー好きの太郎", "毎朝ハンドドリップで淹れています", "{浅煎り,シングルオリジン}"); err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}

	type seedEntry struct {
		bean       string
		origin     string
		roast      string
		brew       string
		madeByUser bool
		grind      string
		sour       int
		sweet      int
		bitter     int
		rich       int
		flavors    string
		rating     int
		memo       string
		ago        string // interval subtracted from now()
	}
	entries := []seedEntry{
		{"エチオピア イルガチェフェ", "エチオピア", "浅煎り", "ハンドドリップ", true, "中細挽き", 5, 4, 2, 3, "{フルーティー,フローラル}", 5, "ベリーのような酸味。朝に最高。", "2 days"},
		{"グアテマラ アンティグア", "グアテマラ", "中煎り", "フレンチプレス", true, "粗挽き", 3, 4, 3, 4, "{チョコレート,ナッツ}", 4, "バランスが良い。", "10 days"},
		{"ブラジル サントス", "ブラジル", "中深煎り", "エスプレッソ", false, "", 2, 3, 4, 5, "{チョコレート}", 3, "カフェで飲んだ一杯。", "40 days"},
		{"ケニア AA", "ケニア", "浅煎り", "ハンドドリップ", true, "中細挽き", 5, 3, 2, 3, "{フルーティー,シトラス}", 5, "カシスの風味が強い。", "70 days"},
		{"コロンビア スプレモ", "コロンビア", "中煎り", "ハンドドリップ", true, "中挽き", 3, 4, 3, 3, "{ナッツ,キャラメル}", 4, "", "100 days"},
	}
	for _, e := range entries {
		if _, err := db.Exec(`
			INSERT INTO entries
				(user_id, bean_name, origin, roast_level, shop, brew_method, made_by_user, grind_size,
				 sourness, sweetness, bitterness, richness, flavor_notes, rating, memo, photo_urls, created_at)
			VALUES ($1, $2, $3, $4, '', $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, '{}', now() - $15::interval)
		`, userID, e.bean, e.origin, e.roast, e.brew, e.madeByUser, e.grind,
			e.sour, e.sweet, e.bitter, e.rich, e.flavors, e.rating, e.memo, e.ago); err != nil {
			log.Fatalf("failed to seed entry %q: %v", e.bean, err)
		}
	}
	fmt.Printf("seeded %d entries\n", len(entries))
}
