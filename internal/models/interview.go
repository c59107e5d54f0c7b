package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InterviewStatus string

const (
	InterviewPending    InterviewStatus = "pending"
	InterviewInProgress InterviewStatus = "in-progress"
	InterviewCompleted  InterviewStatus = "completed"
)

type InterviewConfig struct {
	JobRole         string `bson:"jobRole" json:"jobRole"`
	ExperienceLevel string `bson:"experienceLevel" json:"experienceLevel"`
	InterviewType   string `bson:"interviewType" json:"interviewType"`
}

type InterviewTiming struct {
	// TotalDuration is the wall-clock session length in minutes.
	TotalDuration int `bson:"totalDuration" json:"totalDuration"`
}

// InterviewResults holds the score computed upstream when the interview was
// finalized. It is authoritative for the overall assessment and may include
// weighting that is not reconstructible from per-question scores.
type InterviewResults struct {
	OverallScore float64 `bson:"overallScore" json:"overallScore"`
	Performance  string  `bson:"performance,omitempty" json:"performance,omitempty"`
}

type QuestionResponse struct {
	Text        string     `bson:"text,omitempty" json:"text,omitempty"`
	SubmittedAt *time.Time `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
}

type QuestionScore struct {
	Overall float64 `bson:"overall" json:"overall"`
}

type QuestionFeedback struct {
	Strengths    []string `bson:"strengths,omitempty" json:"strengths,omitempty"`
	Improvements []string `bson:"improvements,omitempty" json:"improvements,omitempty"`
}

// QuestionDocument is the persisted question shape. Interview documents are
// written by the interview flow over many product versions, so any of the
// optional fields may be missing on older records.
type QuestionDocument struct {
	QuestionText string            `bson:"questionText" json:"questionText"`
	Response     *QuestionResponse `bson:"response,omitempty" json:"response,omitempty"`
	Skipped      bool              `bson:"skipped,omitempty" json:"skipped,omitempty"`
	Score        *QuestionScore    `bson:"score,omitempty" json:"score,omitempty"`
	TimeSpent    *int              `bson:"timeSpent,omitempty" json:"timeSpent,omitempty"`
	Categories   []string          `bson:"categories,omitempty" json:"categories,omitempty"`
	Tags         []string          `bson:"tags,omitempty" json:"tags,omitempty"`
	Feedback     *QuestionFeedback `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

type Interview struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Status      InterviewStatus    `bson:"status" json:"status"`
	Config      InterviewConfig    `bson:"config" json:"config"`
	Timing      InterviewTiming    `bson:"timing" json:"timing"`
	Results     *InterviewResults  `bson:"results,omitempty" json:"results,omitempty"`
	Questions   []QuestionDocument `bson:"questions,omitempty" json:"questions,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// OverallScore returns the finalized score, or 0 when the results block is
// missing on a legacy document.
func (i *Interview) OverallScore() float64 {
	if i.Results == nil {
		return 0
	}
	return i.Results.OverallScore
}

// QuestionRecord is the strict shape the summary calculators operate on.
// All defaulting happens in NormalizeQuestions; calculators never have to
// null-check categories or feedback.
type QuestionRecord struct {
	QuestionText string
	ResponseText string
	HasResponse  bool
	Skipped      bool
	Score        *float64
	TimeSpent    *int
	Categories   []string // never empty; falls back to tags, then "general"
	Strengths    []string
	Improvements []string
}

// Answered reports whether the question counts as answered: a non-empty
// response that was not skipped.
func (q QuestionRecord) Answered() bool {
	return q.HasResponse && q.ResponseText != "" && !q.Skipped
}

// NormalizeQuestions maps raw persisted questions into QuestionRecord values,
// filling defaults for fields that older interview documents may lack.
func NormalizeQuestions(docs []QuestionDocument) []QuestionRecord {
	records := make([]QuestionRecord, 0, len(docs))
	for _, d := range docs {
		rec := QuestionRecord{
			QuestionText: d.QuestionText,
			Skipped:      d.Skipped,
			TimeSpent:    d.TimeSpent,
			Strengths:    []string{},
			Improvements: []string{},
		}

		if d.Response != nil {
			rec.HasResponse = true
			rec.ResponseText = d.Response.Text
		}

		if d.Score != nil {
			overall := d.Score.Overall
			rec.Score = &overall
		}

		switch {
		case len(d.Categories) > 0:
			rec.Categories = d.Categories
		case len(d.Tags) > 0:
			rec.Categories = d.Tags
		default:
			rec.Categories = []string{"general"}
		}

		if d.Feedback != nil {
			if d.Feedback.Strengths != nil {
				rec.Strengths = d.Feedback.Strengths
			}
			if d.Feedback.Improvements != nil {
				rec.Improvements = d.Feedback.Improvements
			}
		}

		records = append(records, rec)
	}
	return records
}
