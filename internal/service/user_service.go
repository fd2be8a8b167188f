package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"reelpick/internal/models"
	"reelpick/internal/repository"
)

const prefCacheTTL = 10 * time.Minute

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	repo  *repository.UserRepository
	redis *redis.Client
}

func NewUserService(repo *repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{repo: repo, redis: rdb}
}

func (s *UserService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	return s.repo.CreateUser(req)
}

func (s *UserService) GetUser(id int) (*models.User, error) {
	user, err := s.repo.GetUser(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetPreference(userID int, req models.SetPreferenceRequest) (*models.UserPreference, error) {
	if _, err := s.repo.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if len(req.SelectedGenres) == 0 {
		return nil, fmt.Errorf("at least one genre must be selected")
	}
	if req.MediaType == "" {
		req.MediaType = models.MediaTypeBoth
	}
	if req.MediaType != models.MediaTypeMovie && req.MediaType != models.MediaTypeSeries && req.MediaType != models.MediaTypeBoth {
		return nil, fmt.Errorf("invalid media type: %s", req.MediaType)
	}

	pref, err := s.repo.UpsertPreference(userID, req)
	if err != nil {
		return nil, err
	}

	// Stale preferences would keep serving old recommendations.
	s.delCache(fmt.Sprintf("user:pref:%d", userID))
	s.invalidateRecommendations(userID)

	return pref, nil
}

func (s *UserService) GetPreference(userID int) (*models.UserPreference, error) {
	cacheKey := fmt.Sprintf("user:pref:%d", userID)
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var pref models.UserPreference
		if json.Unmarshal([]byte(cached), &pref) == nil {
			return &pref, nil
		}
	}

	pref, err := s.repo.GetPreference(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No stored row means "no constraints yet"
			return &models.UserPreference{
				UserID:         userID,
				MediaType:      models.MediaTypeBoth,
				SelectedGenres: []int{},
			}, nil
		}
		return nil, err
	}

	if data, err := json.Marshal(pref); err == nil {
		s.setCache(cacheKey, string(data), prefCacheTTL)
	}

	return pref, nil
}

func (s *UserService) RecordInteraction(userID int, req models.CreateInteractionRequest) (*models.UserInteraction, error) {
	if !models.ValidInteractionTypes[req.InteractionType] {
		return nil, fmt.Errorf("invalid interaction type: %s", req.InteractionType)
	}
	if req.ContentID <= 0 {
		return nil, fmt.Errorf("invalid content ID")
	}
	if req.MediaType != models.MediaTypeMovie && req.MediaType != models.MediaTypeSeries {
		return nil, fmt.Errorf("invalid media type: %s", req.MediaType)
	}

	if _, err := s.repo.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	inter, err := s.repo.CreateInteraction(userID, req)
	if err != nil {
		return nil, err
	}

	// A new watched item changes the exclusion set.
	if req.InteractionType == "watched" {
		s.invalidateRecommendations(userID)
	}

	return inter, nil
}

func (s *UserService) GetInteractions(userID, limit int) ([]models.UserInteraction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.GetInteractions(userID, limit)
}

// Redis helpers

func (s *UserService) getFromCache(key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(context.Background(), key).Result()
}

func (s *UserService) setCache(key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *UserService) delCache(key string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(context.Background(), key).Err(); err != nil {
		slog.Error("failed to delete cache", "key", key, "error", err)
	}
}

func (s *UserService) invalidateRecommendations(userID int) {
	if s.redis == nil {
		return
	}
	ctx := context.Background()
	pattern := fmt.Sprintf("recommendations:%d:*", userID)
	iter := s.redis.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.redis.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Error("failed to invalidate recommendations", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Error("failed to scan recommendation cache", "user_id", userID, "error", err)
	}
}
