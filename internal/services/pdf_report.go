package services

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"mockmate-backend/internal/models"
)

const (
	pageMargin = 50.0
	sectionGap = 20.0

	barWidth  = 100.0
	barHeight = 12.0
)

type rgb struct{ r, g, b int }

// Four-band palette shared with the web client, plus greys.
var (
	colorExcellent = rgb{16, 185, 129}  // #10b981
	colorGood      = rgb{59, 130, 246}  // #3b82f6
	colorAverage   = rgb{245, 158, 11}  // #f59e0b
	colorPoor      = rgb{239, 68, 68}   // #ef4444
	colorHeading   = rgb{31, 41, 55}    // #1f2937
	colorBody      = rgb{55, 65, 81}    // #374151
	colorSubtle    = rgb{107, 114, 128} // #6b7280
	colorFaint     = rgb{156, 163, 175} // #9ca3af
	colorRule      = rgb{229, 231, 235} // #e5e7eb
	colorBarBack   = rgb{243, 244, 246} // #f3f4f6
)

// reportSection is one block of the report: a precomputed height and a draw
// function given the block's top-left corner. The layout engine owns the
// cursor and page breaks, so sections never position themselves absolutely
// and can be inspected in isolation.
type reportSection struct {
	name   string
	height float64
	draw   func(pdf *gofpdf.Fpdf, x, y float64)
}

// PDFReportService renders a SessionSummary into a paginated A4 report.
type PDFReportService struct{}

func NewPDFReportService() *PDFReportService {
	return &PDFReportService{}
}

// GenerateSessionSummaryPDF renders the full report and returns the document
// bytes. Rendering is all-or-nothing: any accumulated drawing error rejects
// the whole render.
func (s *PDFReportService) GenerateSessionSummaryPDF(summary *models.SessionSummary, profile *models.UserProfile) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Interview Session Summary", true)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	width := pageW - 2*pageMargin

	y := pageMargin
	for _, section := range buildReportSections(summary, profile, width) {
		if y+section.height > pageH-pageMargin {
			pdf.AddPage()
			y = pageMargin
		}
		section.draw(pdf, pageMargin, y)
		y += section.height + sectionGap
	}

	drawFooter(pdf, summary.GeneratedAt, pageW, pageH)

	if pdf.Err() {
		return nil, &RenderError{Err: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

// buildReportSections assembles the fixed section sequence for a summary.
func buildReportSections(summary *models.SessionSummary, profile *models.UserProfile, width float64) []reportSection {
	sections := []reportSection{
		headerSection(summary, profile, width),
		overviewSection(summary),
		breakdownSection(summary),
	}
	if len(summary.CategoryScores) > 0 {
		sections = append(sections, categorySection(summary))
	}
	sections = append(sections,
		highlightsSection(summary),
		timeAnalysisSection(summary),
		assessmentSection(summary, width),
	)
	return sections
}

func headerSection(summary *models.SessionSummary, profile *models.UserProfile, width float64) reportSection {
	info := summary.SessionInfo
	completed := "N/A"
	if info.CompletedAt != nil {
		completed = info.CompletedAt.Format("Jan 2, 2006")
	}

	return reportSection{
		name:   "header",
		height: 120,
		draw: func(pdf *gofpdf.Fpdf, x, y float64) {
			pdf.SetFont("Helvetica", "B", 24)
			setTextColor(pdf, colorHeading)
			pdf.Text(x, y+24, "Interview Session Summary")

			pdf.SetFont("Helvetica", "", 16)
			setTextColor(pdf, colorSubtle)
			pdf.Text(x, y+54, fmt.Sprintf("%s - %s", info.JobRole, info.ExperienceLevel))

			pdf.SetFont("Helvetica", "", 12)
			setTextColor(pdf, colorBody)
			pdf.Text(x, y+84, "Generated: "+summary.GeneratedAt.Format("Jan 2, 2006"))
			pdf.Text(x+250, y+84, "Candidate: "+profile.DisplayName())
			pdf.Text(x, y+99, "Interview Type: "+info.InterviewType)
			pdf.Text(x+250, y+99, "Completed: "+completed)

			pdf.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
			pdf.SetLineWidth(1)
			pdf.Line(x, y+115, x+width, y+115)
		},
	}
}

func overviewSection(summary *models.SessionSummary) reportSection {
	metrics := summary.AggregateMetrics

	return reportSection{
		name:   "overview",
		height: 95,
		draw: func(pdf *gofpdf.Fpdf, x, y float64) {
			drawSectionTitle(pdf, x, y, "Session Overview")

			pdf.SetFont("Helvetica", "", 10)
			setTextColor(pdf, colorBody)
			top := y + 35
			pdf.Text(x, top, fmt.Sprintf("Total Questions: %d", metrics.TotalQuestions))
			pdf.Text(x, top+15, fmt.Sprintf("Questions Answered: %d", metrics.AnsweredQuestions))
			pdf.Text(x, top+30, fmt.Sprintf("Questions Skipped: %d", metrics.SkippedQuestions))
			pdf.Text(x, top+45, fmt.Sprintf("Completion Rate: %d%%", metrics.CompletionRate))

			pdf.Text(x+250, top, fmt.Sprintf("Average Score: %d/100", metrics.AverageScore))
			pdf.Text(x+250, top+15, fmt.Sprintf("Total Time: %d minutes", summary.SessionInfo.TotalDuration))
			pdf.Text(x+250, top+30, fmt.Sprintf("Avg. Response Time: %ds", metrics.AverageResponseTime))
		},
	}
}

func breakdownSection(summary *models.SessionSummary) reportSection {
	metrics := summary.AggregateMetrics
	dist := metrics.ScoreDistribution

	bars := []struct {
		label string
		value int
		color rgb
	}{
		{"Excellent (85+)", dist.Excellent, colorExcellent},
		{"Good (75-84)", dist.Good, colorGood},
		{"Average (60-74)", dist.Average, colorAverage},
		{"Needs Improvement (<60)", dist.Poor, colorPoor},
	}

	return reportSection{
		name:   "performance-breakdown",
		height: 35 + float64(len(bars))*25,
		draw: func(pdf *gofpdf.Fpdf, x, y float64) {
			drawSectionTitle(pdf, x, y, "Performance Breakdown")

			barY := y + 35
			for _, bar := range bars {
				drawPerformanceBar(pdf, x, barY, bar.value, metrics.AnsweredQuestions, bar.color, bar.label)
				barY += 25
			}
		},
	}
}

// drawPerformanceBar renders one horizontal distribution bar. A zero total
// draws an empty bar rather than dividing by zero.
func drawPerformanceBar(pdf *gofpdf.Fpdf, x, y float64, value, total int, color rgb, label string) {
	pdf.SetFillColor(colorBarBack.r, colorBarBack.g, colorBarBack.b)
	pdf.Rect(x, y, barWidth, barHeight, "F")

	if total > 0 && value > 0 {
		fillWidth := barWidth * float64(value) / float64(total)
		pdf.SetFillColor(color.r, color.g, color.b)
		pdf.Rect(x, y, fillWidth, barHeight, "F")
	}

	pdf.SetFont("Helvetica", "", 10)
	setTextColor(pdf, colorBody)
	pdf.Text(x+barWidth+10, y+10, label)
	setTextColor(pdf, colorSubtle)
	pdf.Text(x+barWidth+150, y+10, fmt.Sprintf("%d", value))
}

func categorySection(summary *models.SessionSummary) reportSection {
	categories := summary.CategoryScores
	if len(categories) > 8 {
		categories = categories[:8]
	}

	return reportSection{
		name:   "category-performance",
		height: 30 + float64(len(categories))*20,
		draw: func(pdf *gofpdf.Fpdf, x, y float64) {
			drawSectionTitle(pdf, x, y, "Category Performance")

			rowY := y + 35
			pdf.SetFont("Helvetica", "", 10)
			for _, category := range categories {
				setTextColor(pdf, colorBody)
				pdf.Text(x, rowY, category.Category)
				pdf.Text(x+150, rowY, fmt.Sprintf("%d/100", category.AverageScore))

				setTextColor(pdf, performanceColor(category.Performance))
				pdf.Text(x+220, rowY, category.Performance)

				setTextColor(pdf, colorSubtle)
				pdf.Text(x+320, rowY, fmt.Sprintf("(%d questions)", category.QuestionsCount))

				rowY += 20
			}
		},
	}
}

func highlightsSection(summary *models.SessionSummary) reportSection {
	best := summary.PerformanceHighlights.BestAnswers
	if len(best) > 3 {
		best = best[:3]
	}
	worst := summary.PerformanceHighlights.WorstAnswers
	if len(worst) > 2 {
		worst = worst[:2]
	}

	height := 30.0
	if len(best) > 0 {
		height += 20 + float64(len(best))*35
	}
	if len(worst) > 0 {
		height += 25 + float64(len(worst))*35
	}

	return reportSection{
		name:   "highlights",
		height: height,
		draw: func(pdf *gofpdf.Fpdf, x, y float64) {
			drawSectionTitle(pdf, x, y, "Performance Highlights")
			cursor := y + 30

			if len(best) > 0 {
				pdf.SetFont("Helvetica", "B", 12)
				setTextColor(pdf, colorExcellent)
				pdf.Text(x, cursor+12, "Best Performing Answers")
				cursor += 20
				cursor = drawHighlightList(pdf, x, cursor, best, colorExcellent)
			}

			if len(worst) > 0 {
				cursor += 5
				pdf.SetFont("Helvetica", "B", 12)
				setTextColor(pdf, colorPoor)
				pdf.Text(x, cursor+12, "Areas for Improvement")
				cursor += 20
				drawHighlightList(pdf, x, cursor, worst, colorPoor)
			}
		},
	}
}

func drawHighlightList(pdf *gofpdf.Fpdf, x, y float64, answers []models.AnswerHighlight, scoreColor rgb) float64 {
	for i, answer := range answers {
		pdf.SetFont("Helvetica", "", 9)
		setTextColor(pdf, colorBody)
		pdf.Text(x, y+9, fmt.Sprintf("%d. %s", i+1, answer.Question))

		setTextColor(pdf, scoreColor)
		pdf.Text(x, y+21, fmt.Sprintf("Score: %d/100", answer.Score))

		setTextColor(pdf, colorSubtle)
		pdf.Text(x, y+33, fmt.Sprintf("Category: %s | Time: %ds", answer.Category, answer.TimeSpent))

		y += 35
	}
	return y
}

func timeAnalysisSection(summary *models.SessionSummary) reportSection {
	analysis := summary.TimeAnalysis

	return reportSection{
		name:   "time-analysis",
		height: 95,
		draw: func(pdf *gofpdf.Fpdf, x, y float64) {
			drawSectionTitle(pdf, x, y, "Time Analysis")

			top := y + 35
			pdf.SetFont("Helvetica", "", 10)
			setTextColor(pdf, colorBody)
			pdf.Text(x, top, fmt.Sprintf("Total Session Time: %d minutes", analysis.TotalTime))
			pdf.Text(x, top+15, fmt.Sprintf("Average Response Time: %d seconds", analysis.AverageTime))
			pdf.Text(x, top+30, "Time Efficiency: "+analysis.TimeEfficiency)

			if analysis.FastestAnswer != nil {
				setTextColor(pdf, colorBody)
				pdf.Text(x+250, top, "Fastest Response:")
				pdf.SetFont("Helvetica", "", 9)
				setTextColor(pdf, colorSubtle)
				pdf.Text(x+250, top+12, fmt.Sprintf("%ds - Score: %d/100", analysis.FastestAnswer.Time, analysis.FastestAnswer.Score))
			}

			if analysis.SlowestAnswer != nil {
				pdf.SetFont("Helvetica", "", 10)
				setTextColor(pdf, colorBody)
				pdf.Text(x+250, top+30, "Slowest Response:")
				pdf.SetFont("Helvetica", "", 9)
				setTextColor(pdf, colorSubtle)
				pdf.Text(x+250, top+42, fmt.Sprintf("%ds - Score: %d/100", analysis.SlowestAnswer.Time, analysis.SlowestAnswer.Score))
			}
		},
	}
}

func assessmentSection(summary *models.SessionSummary, width float64) reportSection {
	assessment := summary.OverallAssessment
	recommendation := assessment.Recommendation
	recLines := wrappedLineCount(recommendation, 95)

	return reportSection{
		name:   "assessment",
		height: 150 + float64(recLines)*14,
		draw: func(pdf *gofpdf.Fpdf, x, y float64) {
			drawSectionTitle(pdf, x, y, "Overall Assessment")

			top := y + 35
			pdf.SetFont("Helvetica", "B", 18)
			setTextColor(pdf, scoreColor(float64(assessment.OverallScore)))
			pdf.Text(x, top+18, fmt.Sprintf("Overall Score: %d/100", assessment.OverallScore))

			pdf.SetFont("Helvetica", "", 14)
			setTextColor(pdf, performanceColor(assessment.ReadinessLevel))
			pdf.Text(x, top+48, "Readiness Level: "+strings.ReplaceAll(assessment.ReadinessLevel, "-", " "))

			drawStarRating(pdf, x, top+62, assessment.SessionRating)

			pdf.SetFont("Helvetica", "B", 11)
			setTextColor(pdf, colorBody)
			pdf.Text(x, top+103, "Recommendation:")
			pdf.SetFont("Helvetica", "", 10)
			setTextColor(pdf, colorSubtle)
			pdf.SetXY(x, top+110)
			pdf.MultiCell(width, 14, recommendation, "", "L", false)
		},
	}
}

// drawStarRating draws exactly five star glyphs, filling floor(rating) of
// them. Core PDF fonts have no star glyph, so the stars are small vector
// polygons.
func drawStarRating(pdf *gofpdf.Fpdf, x, y float64, rating float64) {
	filled := int(math.Floor(rating))
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}

	pdf.SetFillColor(colorAverage.r, colorAverage.g, colorAverage.b)
	pdf.SetDrawColor(colorAverage.r, colorAverage.g, colorAverage.b)
	pdf.SetLineWidth(0.8)

	for i := 0; i < 5; i++ {
		cx := x + 8 + float64(i)*20
		drawStar(pdf, cx, y+8, 8, i < filled)
	}

	pdf.SetFont("Helvetica", "", 12)
	setTextColor(pdf, colorAverage)
	pdf.Text(x+110, y+13, fmt.Sprintf("Session Rating: %.1f/5", rating))
}

// drawStar draws a five-pointed star centered on (cx, cy).
func drawStar(pdf *gofpdf.Fpdf, cx, cy, outer float64, filled bool) {
	inner := outer * 0.45
	points := make([]gofpdf.PointType, 0, 10)
	for i := 0; i < 10; i++ {
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		points = append(points, gofpdf.PointType{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}

	style := "D"
	if filled {
		style = "F"
	}
	pdf.Polygon(points, style)
}

func drawFooter(pdf *gofpdf.Fpdf, generatedAt time.Time, pageW, pageH float64) {
	pdf.SetFont("Helvetica", "", 8)
	setTextColor(pdf, colorFaint)
	pdf.Text(pageMargin, pageH-70, "Generated by MockMate on "+generatedAt.Format("Jan 2, 2006"))
	pdf.Text(pageMargin, pageH-60, "This report is confidential and intended for the candidate only.")
}

func drawSectionTitle(pdf *gofpdf.Fpdf, x, y float64, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	setTextColor(pdf, colorHeading)
	pdf.Text(x, y+14, title)
}

func setTextColor(pdf *gofpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}

// performanceColor maps a band label to the palette.
func performanceColor(performance string) rgb {
	switch performance {
	case "excellent":
		return colorExcellent
	case "good":
		return colorGood
	case "average":
		return colorAverage
	case "needs-improvement":
		return colorPoor
	default:
		return colorSubtle
	}
}

// scoreColor maps a numeric score to the same palette via the shared band
// thresholds.
func scoreColor(score float64) rgb {
	switch {
	case score >= bandExcellent:
		return colorExcellent
	case score >= bandGood:
		return colorGood
	case score >= bandAverage:
		return colorAverage
	default:
		return colorPoor
	}
}

// wrappedLineCount estimates how many lines a string occupies when wrapped
// at roughly charsPerLine characters. Only used for section height
// reservation; MultiCell does the real wrapping.
func wrappedLineCount(text string, charsPerLine int) int {
	if text == "" {
		return 1
	}
	return (len(text) + charsPerLine - 1) / charsPerLine
}
