package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile mirrors the profile document written by the identity/billing
// side of the platform. This service only reads it for the candidate name on
// PDF reports and the subscription plan for export gating.
type UserProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"` // identity provider subject
	FirstName string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Plan      string             `bson:"plan,omitempty" json:"plan,omitempty"` // "free" | "pro" | "premium"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// DisplayName renders the candidate name for reports, falling back to "N/A"
// the way the client does for incomplete profiles.
func (u *UserProfile) DisplayName() string {
	if u == nil || u.FirstName == "" {
		return "N/A"
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsPro reports whether the profile's plan unlocks pro features such as PDF
// export.
func (u *UserProfile) IsPro() bool {
	if u == nil {
		return false
	}
	return u.Plan == "pro" || u.Plan == "premium"
}
