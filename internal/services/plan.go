package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"mockmate-backend/internal/models"
)

const planKeyPrefix = "plan:"

// ProfileFinder is the read access the plan service needs. Satisfied by
// repository.UserRepo.
type ProfileFinder interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
}

// PlanService answers subscription capability checks. Billing is owned by an
// external provider; this service only reads the plan stored on the user
// profile and caches it in Redis so every summary request does not hit Mongo
// for the same lookup.
type PlanService struct {
	users ProfileFinder
	redis *redis.Client
	ttl   time.Duration
}

func NewPlanService(users ProfileFinder, redisClient *redis.Client, ttl time.Duration) *PlanService {
	return &PlanService{users: users, redis: redisClient, ttl: ttl}
}

// HasProAccess reports whether the user's plan unlocks pro features. Redis
// failures degrade to a direct profile lookup.
func (s *PlanService) HasProAccess(ctx context.Context, userID string) (bool, error) {
	key := planKeyPrefix + userID

	// Anything other than a hit (miss or cache outage) falls through to the
	// profile lookup.
	if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
		return isProPlan(cached), nil
	}

	profile, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return false, err
	}

	plan := "free"
	if profile != nil && profile.Plan != "" {
		plan = profile.Plan
	}

	// Best effort; a failed cache write is not worth failing the request.
	s.redis.Set(ctx, key, plan, s.ttl)

	return isProPlan(plan), nil
}

// AvailableExports lists the export formats the plan unlocks.
func AvailableExports(pro bool) []string {
	if pro {
		return []string{"json", "txt", "pdf"}
	}
	return []string{"json", "txt"}
}

func isProPlan(plan string) bool {
	return plan == "pro" || plan == "premium"
}
