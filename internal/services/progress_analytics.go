package services

import (
	"context"
	"math"
	"time"

	"mockmate-backend/internal/models"
)

// InterviewRangeFinder is the read access the analytics service needs.
// Satisfied by repository.InterviewRepo.
type InterviewRangeFinder interface {
	FindCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Interview, error)
}

// ProgressAnalyticsService aggregates readiness across a user's completed
// interviews over a time range, for the progress dashboard.
type ProgressAnalyticsService struct {
	interviews InterviewRangeFinder
}

func NewProgressAnalyticsService(interviews InterviewRangeFinder) *ProgressAnalyticsService {
	return &ProgressAnalyticsService{interviews: interviews}
}

// Progress computes the cross-interview analytics for the given range.
// Unknown range values fall back to six months.
func (s *ProgressAnalyticsService) Progress(ctx context.Context, userID, timeRange string) (*models.ProgressAnalytics, error) {
	now := time.Now()
	from := now.AddDate(0, -rangeMonths(timeRange), 0)

	interviews, err := s.interviews.FindCompletedInRange(ctx, userID, from, now)
	if err != nil {
		return nil, err
	}

	analytics := &models.ProgressAnalytics{
		TimeRange:       timeRange,
		GeneratedAt:     now,
		TypeBreakdown:   []models.TypePerformance{},
		Recommendations: []string{},
	}
	analytics.OverallProgress.ScoreProgression = []models.ScorePoint{}

	if len(interviews) == 0 {
		analytics.OverallProgress.ImprovementTrend = "insufficient-data"
		analytics.Consistency = "insufficient-data"
		return analytics, nil
	}

	scores := make([]float64, 0, len(interviews))
	for _, interview := range interviews {
		score := interview.OverallScore()
		scores = append(scores, score)

		point := models.ScorePoint{
			Score:   score,
			JobRole: interview.Config.JobRole,
		}
		if interview.CompletedAt != nil {
			point.Date = *interview.CompletedAt
		}
		analytics.OverallProgress.ScoreProgression = append(analytics.OverallProgress.ScoreProgression, point)
	}

	analytics.OverallProgress.TotalInterviews = len(interviews)
	analytics.OverallProgress.AverageScore = roundTo1(mean(scores))
	analytics.OverallProgress.LatestScore = scores[len(scores)-1]
	analytics.OverallProgress.BestScore = maxScore(scores)
	analytics.OverallProgress.ImprovementTrend = improvementTrend(scores)
	analytics.Consistency = scoreConsistency(scores)
	analytics.TypeBreakdown = typeBreakdown(interviews)
	analytics.Recommendations = progressRecommendations(analytics.OverallProgress.ImprovementTrend, analytics.Consistency)

	return analytics, nil
}

func rangeMonths(timeRange string) int {
	switch timeRange {
	case "1month":
		return 1
	case "3months":
		return 3
	case "1year":
		return 12
	default: // "6months" and anything unrecognized
		return 6
	}
}

// improvementTrend compares the first and last scores in the range.
func improvementTrend(scores []float64) string {
	if len(scores) < 2 {
		return "insufficient-data"
	}
	improvement := scores[len(scores)-1] - scores[0]
	switch {
	case improvement > 10:
		return "strong-improvement"
	case improvement > 5:
		return "moderate-improvement"
	case improvement > -5:
		return "stable"
	default:
		return "declining"
	}
}

// scoreConsistency labels how tightly scores cluster around their mean.
func scoreConsistency(scores []float64) string {
	if len(scores) < 2 {
		return "insufficient-data"
	}

	m := mean(scores)
	variance := 0.0
	for _, s := range scores {
		variance += (s - m) * (s - m)
	}
	stddev := math.Sqrt(variance / float64(len(scores)))

	switch {
	case stddev < 5:
		return "very-consistent"
	case stddev < 10:
		return "consistent"
	case stddev < 15:
		return "variable"
	default:
		return "highly-variable"
	}
}

func typeBreakdown(interviews []models.Interview) []models.TypePerformance {
	type accumulator struct {
		scores []float64
	}

	byType := make(map[string]*accumulator)
	var order []string

	for _, interview := range interviews {
		interviewType := interview.Config.InterviewType
		if interviewType == "" {
			interviewType = "general"
		}
		acc, ok := byType[interviewType]
		if !ok {
			acc = &accumulator{}
			byType[interviewType] = acc
			order = append(order, interviewType)
		}
		acc.scores = append(acc.scores, interview.OverallScore())
	}

	breakdown := make([]models.TypePerformance, 0, len(order))
	for _, interviewType := range order {
		acc := byType[interviewType]
		breakdown = append(breakdown, models.TypePerformance{
			InterviewType: interviewType,
			Count:         len(acc.scores),
			AverageScore:  roundTo1(mean(acc.scores)),
		})
	}
	return breakdown
}

func progressRecommendations(trend, consistency string) []string {
	recs := []string{}
	switch trend {
	case "declining":
		recs = append(recs, "Recent scores are trending down. Revisit fundamentals before your next session.")
	case "stable", "insufficient-data":
		recs = append(recs, "Keep a regular practice cadence to build momentum.")
	default:
		recs = append(recs, "Scores are improving. Keep up the current practice routine.")
	}
	if consistency == "variable" || consistency == "highly-variable" {
		recs = append(recs, "Performance varies a lot between sessions. Prepare more behavioral examples and review weak categories.")
	}
	recs = append(recs, "Consider mock interviews for complex scenarios.")
	return recs
}

func maxScore(scores []float64) float64 {
	best := scores[0]
	for _, s := range scores[1:] {
		if s > best {
			best = s
		}
	}
	return best
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
