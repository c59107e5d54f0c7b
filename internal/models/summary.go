package models

import "time"

// SessionSummary is the derived, read-only aggregate view over one completed
// interview. It is computed fresh on every request, never persisted, and
// feeds both the JSON API and the PDF renderer. Field names mirror the
// client-facing contract, which predates this service.
type SessionSummary struct {
	SessionID             string                `json:"sessionId"`
	GeneratedAt           time.Time             `json:"generatedAt"`
	SessionInfo           SessionInfo           `json:"sessionInfo"`
	AggregateMetrics      AggregateMetrics      `json:"aggregateMetrics"`
	CategoryScores        []CategoryScore       `json:"categoryScores"`
	TimeAnalysis          TimeAnalysis          `json:"timeAnalysis"`
	PerformanceHighlights PerformanceHighlights `json:"performanceHighlights"`
	OverallAssessment     OverallAssessment     `json:"overallAssessment"`
}

type SessionInfo struct {
	JobRole         string     `json:"jobRole"`
	ExperienceLevel string     `json:"experienceLevel"`
	InterviewType   string     `json:"interviewType"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	TotalDuration   int        `json:"totalDuration"` // minutes
}

// ScoreDistribution buckets answered-question scores into the four
// performance bands: excellent >=85, good 75-84, average 60-74, poor <60.
type ScoreDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

type AggregateMetrics struct {
	TotalQuestions      int               `json:"totalQuestions"`
	AnsweredQuestions   int               `json:"answeredQuestions"`
	SkippedQuestions    int               `json:"skippedQuestions"`
	AverageScore        int               `json:"averageScore"`
	CompletionRate      int               `json:"completionRate"`
	TotalResponseTime   int               `json:"totalResponseTime"`   // seconds
	AverageResponseTime int               `json:"averageResponseTime"` // seconds
	ScoreDistribution   ScoreDistribution `json:"scoreDistribution"`
}

type CategoryScore struct {
	Category       string `json:"category"`
	AverageScore   int    `json:"averageScore"`
	QuestionsCount int    `json:"questionsCount"`
	Performance    string `json:"performance"`
}

// AnswerTiming describes the fastest or slowest answered question.
type AnswerTiming struct {
	Time     int    `json:"time"` // seconds
	Question string `json:"question"`
	Score    int    `json:"score"`
}

type TimeAnalysis struct {
	TotalTime      int           `json:"totalTime"` // minutes
	AverageTime    int           `json:"averageTime"`
	FastestAnswer  *AnswerTiming `json:"fastestAnswer"`
	SlowestAnswer  *AnswerTiming `json:"slowestAnswer"`
	TimeEfficiency string        `json:"timeEfficiency"`
}

type AnswerHighlight struct {
	Question     string   `json:"question"`
	Score        int      `json:"score"`
	TimeSpent    int      `json:"timeSpent"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Category     string   `json:"category"`
}

type ImprovementOpportunity struct {
	Area       string `json:"area"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

type PerformanceHighlights struct {
	BestAnswers              []AnswerHighlight        `json:"bestAnswers"`
	WorstAnswers             []AnswerHighlight        `json:"worstAnswers"`
	ImprovementOpportunities []ImprovementOpportunity `json:"improvementOpportunities"`
}

// OverallAssessment blends the interview's finalized score with completion.
// OverallScore comes from results.overallScore and can legitimately disagree
// with AggregateMetrics.AverageScore, which is recomputed from per-question
// scores.
type OverallAssessment struct {
	OverallScore   int     `json:"overallScore"`
	ReadinessLevel string  `json:"readinessLevel"`
	Recommendation string  `json:"recommendation"`
	CompletionRate int     `json:"completionRate"`
	SessionRating  float64 `json:"sessionRating"`
}
