package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"reelpick/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user.
func (r *UserRepository) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(`
		INSERT INTO users (username, email) VALUES ($1, $2)
		RETURNING id, username, email, created_at
	`, req.Username, req.Email).Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUser returns a user by ID.
func (r *UserRepository) GetUser(id int) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(`
		SELECT id, username, email, created_at FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertPreference creates or updates the stored preference profile.
func (r *UserRepository) UpsertPreference(userID int, req models.SetPreferenceRequest) (*models.UserPreference, error) {
	var pref models.UserPreference
	var genres pq.Int64Array
	err := r.db.QueryRow(`
		INSERT INTO user_preferences (
			user_id, media_type, selected_genres, year_min, year_max,
			duration_min, duration_max, min_rating, emotional_tone,
			language_preference, popularity_level, age_rating, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			media_type = EXCLUDED.media_type,
			selected_genres = EXCLUDED.selected_genres,
			year_min = EXCLUDED.year_min,
			year_max = EXCLUDED.year_max,
			duration_min = EXCLUDED.duration_min,
			duration_max = EXCLUDED.duration_max,
			min_rating = EXCLUDED.min_rating,
			emotional_tone = EXCLUDED.emotional_tone,
			language_preference = EXCLUDED.language_preference,
			popularity_level = EXCLUDED.popularity_level,
			age_rating = EXCLUDED.age_rating,
			updated_at = NOW()
		RETURNING id, user_id, media_type, selected_genres, year_min, year_max,
			duration_min, duration_max, min_rating, emotional_tone,
			language_preference, popularity_level, age_rating, updated_at
	`, userID, string(req.MediaType), intArray(req.SelectedGenres),
		req.YearMin, req.YearMax, req.DurationMin, req.DurationMax,
		req.MinRating, req.EmotionalTone, req.LanguagePreference,
		req.PopularityLevel, req.AgeRating,
	).Scan(
		&pref.ID, &pref.UserID, &pref.MediaType, &genres,
		&pref.YearMin, &pref.YearMax, &pref.DurationMin, &pref.DurationMax,
		&pref.MinRating, &pref.EmotionalTone, &pref.LanguagePreference,
		&pref.PopularityLevel, &pref.AgeRating, &pref.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}
	pref.SelectedGenres = intSlice(genres)
	return &pref, nil
}

// GetPreference returns the stored preference profile.
func (r *UserRepository) GetPreference(userID int) (*models.UserPreference, error) {
	var pref models.UserPreference
	var genres pq.Int64Array
	err := r.db.QueryRow(`
		SELECT id, user_id, media_type, selected_genres, year_min, year_max,
			duration_min, duration_max, min_rating, emotional_tone,
			language_preference, popularity_level, age_rating, updated_at
		FROM user_preferences WHERE user_id = $1
	`, userID).Scan(
		&pref.ID, &pref.UserID, &pref.MediaType, &genres,
		&pref.YearMin, &pref.YearMax, &pref.DurationMin, &pref.DurationMax,
		&pref.MinRating, &pref.EmotionalTone, &pref.LanguagePreference,
		&pref.PopularityLevel, &pref.AgeRating, &pref.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	pref.SelectedGenres = intSlice(genres)
	return &pref, nil
}

// CreateInteraction records a user interaction.
func (r *UserRepository) CreateInteraction(userID int, req models.CreateInteractionRequest) (*models.UserInteraction, error) {
	var inter models.UserInteraction
	err := r.db.QueryRow(`
		INSERT INTO user_interactions (user_id, content_id, media_type, interaction_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, content_id, media_type, interaction_type, created_at
	`, userID, req.ContentID, string(req.MediaType), req.InteractionType).Scan(
		&inter.ID, &inter.UserID, &inter.ContentID, &inter.MediaType,
		&inter.InteractionType, &inter.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create interaction: %w", err)
	}
	return &inter, nil
}

// GetInteractions returns the latest interactions for a user.
func (r *UserRepository) GetInteractions(userID, limit int) ([]models.UserInteraction, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, content_id, media_type, interaction_type, created_at
		FROM user_interactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var interactions []models.UserInteraction
	for rows.Next() {
		var inter models.UserInteraction
		if err := rows.Scan(&inter.ID, &inter.UserID, &inter.ContentID,
			&inter.MediaType, &inter.InteractionType, &inter.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interactions = append(interactions, inter)
	}
	return interactions, rows.Err()
}

// GetWatchedContent returns the exclusion set of everything the user has
// already watched.
func (r *UserRepository) GetWatchedContent(userID int) ([]models.ContentKey, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT content_id, media_type
		FROM user_interactions
		WHERE user_id = $1 AND interaction_type = 'watched'
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watched content: %w", err)
	}
	defer rows.Close()

	var keys []models.ContentKey
	for rows.Next() {
		var key models.ContentKey
		if err := rows.Scan(&key.ID, &key.MediaType); err != nil {
			return nil, fmt.Errorf("failed to scan watched content: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func intArray(values []int) pq.Int64Array {
	arr := make(pq.Int64Array, len(values))
	for i, v := range values {
		arr[i] = int64(v)
	}
	return arr
}

func intSlice(arr pq.Int64Array) []int {
	values := make([]int, len(arr))
	for i, v := range arr {
		values[i] = int(v)
	}
	return values
}
