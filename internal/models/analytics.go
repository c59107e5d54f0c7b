package models

import "time"

// ReportStub is the list-view projection of a completed interview.
type ReportStub struct {
	InterviewID      string     `json:"interviewId"`
	ReportID         string     `json:"reportId"`
	JobRole          string     `json:"jobRole"`
	InterviewType    string     `json:"interviewType"`
	OverallScore     float64    `json:"overallScore"`
	Performance      string     `json:"performance,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	Duration         int        `json:"duration"` // minutes
	AvailableReports []string   `json:"availableReports"`
}

// ScorePoint is one interview's score on the progress timeline.
type ScorePoint struct {
	Date    time.Time `json:"date"`
	Score   float64   `json:"score"`
	JobRole string    `json:"jobRole"`
}

type OverallProgress struct {
	TotalInterviews  int          `json:"totalInterviews"`
	AverageScore     float64      `json:"averageScore"`
	LatestScore      float64      `json:"latestScore"`
	BestScore        float64      `json:"bestScore"`
	ImprovementTrend string       `json:"improvementTrend"`
	ScoreProgression []ScorePoint `json:"scoreProgression"`
}

// TypePerformance aggregates scores per interview type (technical,
// behavioral, ...).
type TypePerformance struct {
	InterviewType string  `json:"interviewType"`
	Count         int     `json:"count"`
	AverageScore  float64 `json:"averageScore"`
}

// ProgressAnalytics is the cross-interview progress view for one user over a
// time range.
type ProgressAnalytics struct {
	TimeRange       string            `json:"timeRange"`
	GeneratedAt     time.Time         `json:"generatedAt"`
	OverallProgress OverallProgress   `json:"overallProgress"`
	Consistency     string            `json:"consistency"`
	TypeBreakdown   []TypePerformance `json:"typeBreakdown"`
	Recommendations []string          `json:"recommendations"`
}
