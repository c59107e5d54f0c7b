package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mockmate-backend/internal/models"
)

// UserRepo reads user profile documents owned by the identity/billing side
// of the platform.
type UserRepo struct {
	profiles *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{profiles: db.Collection("user_profiles")}
}

// FindByUserID looks up a profile by the identity provider subject. Returns
// (nil, nil) when the user has no profile yet.
func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.profiles.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
