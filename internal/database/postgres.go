package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"reelpick/internal/config"
)

func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(100) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
			media_type VARCHAR(10) NOT NULL DEFAULT 'both',
			selected_genres INTEGER[] NOT NULL DEFAULT '{}',
			year_min INTEGER NOT NULL DEFAULT 0,
			year_max INTEGER NOT NULL DEFAULT 0,
			duration_min INTEGER NOT NULL DEFAULT 0,
			duration_max INTEGER NOT NULL DEFAULT 0,
			min_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			emotional_tone VARCHAR(20) NOT NULL DEFAULT '',
			language_preference VARCHAR(10) NOT NULL DEFAULT '',
			popularity_level VARCHAR(20) NOT NULL DEFAULT '',
			age_rating VARCHAR(20) NOT NULL DEFAULT '',
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_interactions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			content_id INTEGER NOT NULL,
			media_type VARCHAR(10) NOT NULL,
			interaction_type VARCHAR(20) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user_type ON user_interactions(user_id, interaction_type)`,
		`CREATE TABLE IF NOT EXISTS recommendation_rules (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			weight DOUBLE PRECISION NOT NULL DEFAULT 1.0,
			rule_type VARCHAR(50) NOT NULL,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tone_genre_mappings (
			id SERIAL PRIMARY KEY,
			tone VARCHAR(20) NOT NULL,
			genre_id INTEGER NOT NULL,
			UNIQUE(tone, genre_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_recommendation_snapshots (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			content_id INTEGER NOT NULL,
			media_type VARCHAR(10) NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			generated_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, content_id, media_type)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_user_id ON user_recommendation_snapshots(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_score ON user_recommendation_snapshots(score DESC)`,
		// Seed default scoring weights if none exist
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Genre Overlap', 50, 'genre_match'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'genre_match')`,
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Rating Quality', 20, 'rating'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'rating')`,
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Popularity Band', 10, 'popularity'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'popularity')`,
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Recency Bonus', 5, 'recency'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'recency')`,
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Language Match', 5, 'language_match'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'language_match')`,
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Tone Match', 8, 'tone_match'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'tone_match')`,
		// Seed the tone-to-genre heuristic if the table is empty
		`INSERT INTO tone_genre_mappings (tone, genre_id)
		 SELECT t.tone, t.genre_id FROM (VALUES
			('light', 35), ('light', 10749), ('light', 10751),
			('uplifting', 35), ('uplifting', 16), ('uplifting', 10751), ('uplifting', 10402),
			('dark', 80), ('dark', 18), ('dark', 9648),
			('intense', 53), ('intense', 27), ('intense', 28), ('intense', 10752)
		 ) AS t(tone, genre_id)
		 WHERE NOT EXISTS (SELECT 1 FROM tone_genre_mappings)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
