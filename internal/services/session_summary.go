package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mockmate-backend/internal/models"
)

// Performance band thresholds shared by metrics, category scores and the
// overall assessment.
const (
	bandExcellent = 85
	bandGood      = 75
	bandAverage   = 60
)

// expectedMinutesPerQuestion drives the time-efficiency classification.
const expectedMinutesPerQuestion = 3

// questionPreviewLen is how much of the question text report views show.
const questionPreviewLen = 100

// InterviewFinder is the read access the summary service needs. Satisfied by
// repository.InterviewRepo.
type InterviewFinder interface {
	FindByIDAndUser(ctx context.Context, id primitive.ObjectID, userID string) (*models.Interview, error)
}

// SessionSummaryService derives the session summary for a completed
// interview. All computation is local and stateless; concurrent requests
// never share data.
type SessionSummaryService struct {
	interviews InterviewFinder
}

func NewSessionSummaryService(interviews InterviewFinder) *SessionSummaryService {
	return &SessionSummaryService{interviews: interviews}
}

// Generate loads the owner-scoped interview and assembles a fresh
// SessionSummary from it.
func (s *SessionSummaryService) Generate(ctx context.Context, interviewID primitive.ObjectID, userID string) (*models.SessionSummary, error) {
	interview, err := s.interviews.FindByIDAndUser(ctx, interviewID, userID)
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, &NotFoundError{Message: "Interview not found"}
	}
	if interview.Status != models.InterviewCompleted {
		return nil, &PreconditionError{Message: "Interview must be completed to generate summary"}
	}

	return BuildSessionSummary(interview, time.Now()), nil
}

// BuildSessionSummary assembles the summary from an already-loaded completed
// interview. Split out from Generate so it can run on in-memory fixtures.
func BuildSessionSummary(interview *models.Interview, now time.Time) *models.SessionSummary {
	questions := models.NormalizeQuestions(interview.Questions)

	return &models.SessionSummary{
		SessionID:   interview.ID.Hex(),
		GeneratedAt: now,
		SessionInfo: models.SessionInfo{
			JobRole:         interview.Config.JobRole,
			ExperienceLevel: interview.Config.ExperienceLevel,
			InterviewType:   interview.Config.InterviewType,
			CompletedAt:     interview.CompletedAt,
			TotalDuration:   interview.Timing.TotalDuration,
		},
		AggregateMetrics:      CalculateAggregateMetrics(questions),
		CategoryScores:        CalculateCategoryScores(questions),
		TimeAnalysis:          AnalyzeTimeMetrics(interview, questions),
		PerformanceHighlights: IdentifyPerformanceHighlights(questions),
		OverallAssessment:     GenerateOverallAssessment(interview, questions),
	}
}

// CalculateAggregateMetrics computes session-wide counts, averages and the
// score distribution. Answered means a non-empty response that was not
// skipped; questions that are neither answered nor skipped count toward the
// total only.
func CalculateAggregateMetrics(questions []models.QuestionRecord) models.AggregateMetrics {
	var (
		skipped   int
		scores    []float64
		totalTime int
	)

	for _, q := range questions {
		if q.Skipped {
			skipped++
		}
		if !q.Answered() {
			continue
		}
		score := 0.0
		if q.Score != nil {
			score = *q.Score
		}
		scores = append(scores, score)
		if q.TimeSpent != nil {
			totalTime += *q.TimeSpent
		}
	}

	answered := len(scores)

	averageScore := 0
	if answered > 0 {
		averageScore = roundToInt(mean(scores))
	}

	completionRate := 0
	if len(questions) > 0 {
		completionRate = roundToInt(float64(answered) / float64(len(questions)) * 100)
	}

	averageResponseTime := 0
	if answered > 0 {
		averageResponseTime = roundToInt(float64(totalTime) / float64(answered))
	}

	return models.AggregateMetrics{
		TotalQuestions:      len(questions),
		AnsweredQuestions:   answered,
		SkippedQuestions:    skipped,
		AverageScore:        averageScore,
		CompletionRate:      completionRate,
		TotalResponseTime:   totalTime,
		AverageResponseTime: averageResponseTime,
		ScoreDistribution:   calculateScoreDistribution(scores),
	}
}

func calculateScoreDistribution(scores []float64) models.ScoreDistribution {
	var dist models.ScoreDistribution
	for _, score := range scores {
		switch {
		case score >= bandExcellent:
			dist.Excellent++
		case score >= bandGood:
			dist.Good++
		case score >= bandAverage:
			dist.Average++
		default:
			dist.Poor++
		}
	}
	return dist
}

// CalculateCategoryScores groups responded, scored questions by category and
// averages within each group. A question tagged with two categories counts
// once in each. The result is sorted by average score descending; ties keep
// encounter order, which is why the sort must be stable.
func CalculateCategoryScores(questions []models.QuestionRecord) []models.CategoryScore {
	type accumulator struct {
		scores []float64
		count  int
	}

	byCategory := make(map[string]*accumulator)
	var order []string

	for _, q := range questions {
		if !q.HasResponse || q.Score == nil {
			continue
		}
		for _, category := range q.Categories {
			acc, ok := byCategory[category]
			if !ok {
				acc = &accumulator{}
				byCategory[category] = acc
				order = append(order, category)
			}
			acc.scores = append(acc.scores, *q.Score)
			acc.count++
		}
	}

	categoryScores := make([]models.CategoryScore, 0, len(order))
	for _, category := range order {
		acc := byCategory[category]
		avg := roundToInt(mean(acc.scores))
		categoryScores = append(categoryScores, models.CategoryScore{
			Category:       category,
			AverageScore:   avg,
			QuestionsCount: acc.count,
			Performance:    performanceLevel(float64(avg)),
		})
	}

	sort.SliceStable(categoryScores, func(i, j int) bool {
		return categoryScores[i].AverageScore > categoryScores[j].AverageScore
	})
	return categoryScores
}

// IdentifyPerformanceHighlights picks the top and bottom three scored
// answers. A zero score is a valid score, so the filter checks for score
// presence, never truthiness.
func IdentifyPerformanceHighlights(questions []models.QuestionRecord) models.PerformanceHighlights {
	var scored []models.QuestionRecord
	for _, q := range questions {
		if q.HasResponse && q.Score != nil {
			scored = append(scored, q)
		}
	}

	highlights := models.PerformanceHighlights{
		BestAnswers:              []models.AnswerHighlight{},
		WorstAnswers:             []models.AnswerHighlight{},
		ImprovementOpportunities: []models.ImprovementOpportunity{},
	}
	if len(scored) == 0 {
		return highlights
	}

	sorted := make([]models.QuestionRecord, len(scored))
	copy(sorted, scored)
	sort.SliceStable(sorted, func(i, j int) bool {
		return *sorted[i].Score > *sorted[j].Score
	})

	n := len(sorted)
	take := 3
	if n < take {
		take = n
	}

	for _, q := range sorted[:take] {
		highlights.BestAnswers = append(highlights.BestAnswers, models.AnswerHighlight{
			Question:  truncateQuestion(q.QuestionText),
			Score:     roundToInt(*q.Score),
			TimeSpent: timeSpentOrZero(q),
			Strengths: q.Strengths,
			Category:  q.Categories[0],
		})
	}

	// Bottom of the descending sort, reversed so the worst answer comes
	// first.
	for i := n - 1; i >= n-take; i-- {
		q := sorted[i]
		highlights.WorstAnswers = append(highlights.WorstAnswers, models.AnswerHighlight{
			Question:     truncateQuestion(q.QuestionText),
			Score:        roundToInt(*q.Score),
			TimeSpent:    timeSpentOrZero(q),
			Improvements: q.Improvements,
			Category:     q.Categories[0],
		})
	}

	highlights.ImprovementOpportunities = improvementOpportunities(highlights.WorstAnswers)
	return highlights
}

// improvementOpportunities flags any category appearing at least twice among
// the worst answers. With three worst answers this threshold is the only one
// that can ever fire; the small sample is intentional.
func improvementOpportunities(worst []models.AnswerHighlight) []models.ImprovementOpportunity {
	counts := make(map[string]int)
	var order []string
	for _, answer := range worst {
		if counts[answer.Category] == 0 {
			order = append(order, answer.Category)
		}
		counts[answer.Category]++
	}

	opportunities := []models.ImprovementOpportunity{}
	for _, category := range order {
		if counts[category] < 2 {
			continue
		}
		opportunities = append(opportunities, models.ImprovementOpportunity{
			Area:       category,
			Priority:   "high",
			Suggestion: fmt.Sprintf("Focus on improving %s skills through targeted practice.", category),
		})
	}
	return opportunities
}

// AnalyzeTimeMetrics reports pacing: the fastest and slowest timed answers
// and how the session length compares to an expected three minutes per
// question.
func AnalyzeTimeMetrics(interview *models.Interview, questions []models.QuestionRecord) models.TimeAnalysis {
	var timed []models.QuestionRecord
	for _, q := range questions {
		if q.Answered() && q.TimeSpent != nil {
			timed = append(timed, q)
		}
	}

	if len(timed) == 0 {
		return models.TimeAnalysis{
			TotalTime:      interview.Timing.TotalDuration,
			AverageTime:    0,
			FastestAnswer:  nil,
			SlowestAnswer:  nil,
			TimeEfficiency: "unknown",
		}
	}

	fastest, slowest := timed[0], timed[0]
	total := 0
	for _, q := range timed {
		total += *q.TimeSpent
		if *q.TimeSpent < *fastest.TimeSpent {
			fastest = q
		}
		if *q.TimeSpent > *slowest.TimeSpent {
			slowest = q
		}
	}

	return models.TimeAnalysis{
		TotalTime:      interview.Timing.TotalDuration,
		AverageTime:    roundToInt(float64(total) / float64(len(timed))),
		FastestAnswer:  answerTiming(fastest),
		SlowestAnswer:  answerTiming(slowest),
		TimeEfficiency: timeEfficiency(interview.Timing.TotalDuration, len(questions)),
	}
}

func answerTiming(q models.QuestionRecord) *models.AnswerTiming {
	score := 0
	if q.Score != nil {
		score = roundToInt(*q.Score)
	}
	return &models.AnswerTiming{
		Time:     *q.TimeSpent,
		Question: truncateQuestion(q.QuestionText),
		Score:    score,
	}
}

func timeEfficiency(totalMinutes, questionCount int) string {
	expected := float64(questionCount * expectedMinutesPerQuestion)
	switch {
	case float64(totalMinutes) <= expected*0.8:
		return "efficient"
	case float64(totalMinutes) <= expected*1.2:
		return "moderate"
	default:
		return "slow"
	}
}

// GenerateOverallAssessment maps the interview's finalized score to a
// readiness band and a star rating. The finalized score is trusted as-is; it
// is not recomputed from per-question scores.
func GenerateOverallAssessment(interview *models.Interview, questions []models.QuestionRecord) models.OverallAssessment {
	overall := interview.OverallScore()

	readiness := "needs-improvement"
	recommendation := "Continue practicing to improve your interview skills."
	switch {
	case overall >= bandExcellent:
		readiness = "excellent"
		recommendation = "You're well-prepared for interviews in this role!"
	case overall >= bandGood:
		readiness = "good"
		recommendation = "Good performance! Focus on weak areas for improvement."
	case overall >= bandAverage:
		readiness = "average"
		recommendation = "Decent foundation. Practice more to boost confidence."
	}

	answered := 0
	for _, q := range questions {
		if q.HasResponse && q.ResponseText != "" {
			answered++
		}
	}
	completionRate := 0
	if len(questions) > 0 {
		completionRate = roundToInt(float64(answered) / float64(len(questions)) * 100)
	}

	return models.OverallAssessment{
		OverallScore:   roundToInt(overall),
		ReadinessLevel: readiness,
		Recommendation: recommendation,
		CompletionRate: completionRate,
		SessionRating:  sessionRating(overall, completionRate),
	}
}

// sessionRating blends score (70%) and completion (30%) into a 1-5 star
// rating in half-star steps.
func sessionRating(overallScore float64, completionRate int) float64 {
	rating := (overallScore*0.7 + float64(completionRate)*0.3) / 20
	rating = math.Round(rating*2) / 2
	return math.Min(5, math.Max(1, rating))
}

func performanceLevel(score float64) string {
	switch {
	case score >= bandExcellent:
		return "excellent"
	case score >= bandGood:
		return "good"
	case score >= bandAverage:
		return "average"
	default:
		return "needs-improvement"
	}
}

func truncateQuestion(text string) string {
	runes := []rune(text)
	if len(runes) > questionPreviewLen {
		runes = runes[:questionPreviewLen]
	}
	return string(runes) + "..."
}

func timeSpentOrZero(q models.QuestionRecord) int {
	if q.TimeSpent == nil {
		return 0
	}
	return *q.TimeSpent
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func roundToInt(f float64) int {
	return int(math.Round(f))
}
