package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mockmate-backend/internal/models"
)

// InterviewRepo reads interview documents. This service never writes them;
// interviews are produced by the interview flow and are immutable once
// completed.
type InterviewRepo struct {
	interviews *mongo.Collection
}

func NewInterviewRepo(db *mongo.Database) *InterviewRepo {
	return &InterviewRepo{interviews: db.Collection("interviews")}
}

// FindByIDAndUser loads an interview scoped to its owner. Returns (nil, nil)
// when no document matches, so a foreign interview id is indistinguishable
// from a missing one.
func (r *InterviewRepo) FindByIDAndUser(ctx context.Context, id primitive.ObjectID, userID string) (*models.Interview, error) {
	var interview models.Interview
	err := r.interviews.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&interview)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// ListCompleted returns a page of the user's completed interviews, newest
// first, along with the total count. Questions are projected out; list views
// only need the metadata.
func (r *InterviewRepo) ListCompleted(ctx context.Context, userID string, page, limit int) ([]models.Interview, int64, error) {
	filter := bson.M{"userId": userID, "status": models.InterviewCompleted}

	total, err := r.interviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"completedAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"questions": 0})

	cursor, err := r.interviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var interviews []models.Interview
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, 0, err
	}
	return interviews, total, nil
}

// FindCompletedInRange returns the user's completed interviews inside
// [from, to], oldest first, for progress analytics.
func (r *InterviewRepo) FindCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Interview, error) {
	filter := bson.M{
		"userId":      userID,
		"status":      models.InterviewCompleted,
		"completedAt": bson.M{"$gte": from, "$lte": to},
	}

	opts := options.Find().
		SetSort(bson.M{"completedAt": 1}).
		SetProjection(bson.M{"questions": 0})

	cursor, err := r.interviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interviews []models.Interview
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}
