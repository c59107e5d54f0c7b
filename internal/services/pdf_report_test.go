package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"mockmate-backend/internal/models"
)

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		UserID:    "user-1",
		FirstName: "Alex",
		LastName:  "Kim",
		Plan:      "pro",
	}
}

func TestGenerateSessionSummaryPDF(t *testing.T) {
	summary := BuildSessionSummary(completedInterview(), time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))

	service := NewPDFReportService()
	pdfBytes, err := service.GenerateSessionSummaryPDF(summary, testProfile())
	if err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}

	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("Expected output to start with the PDF magic header")
	}
	if len(pdfBytes) < 1000 {
		t.Errorf("Expected a non-trivial document, got %d bytes", len(pdfBytes))
	}
}

func TestGenerateSessionSummaryPDF_EmptySession(t *testing.T) {
	interview := completedInterview()
	interview.Questions = nil
	interview.Results = nil
	summary := BuildSessionSummary(interview, time.Now())

	// No questions means zero totals everywhere; the bar chart must not
	// divide by zero.
	service := NewPDFReportService()
	pdfBytes, err := service.GenerateSessionSummaryPDF(summary, testProfile())
	if err != nil {
		t.Fatalf("Unexpected render error for empty session: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("Expected valid PDF output for empty session")
	}
}

func TestBuildReportSections(t *testing.T) {
	summary := BuildSessionSummary(completedInterview(), time.Now())

	sections := buildReportSections(summary, testProfile(), 495)
	expected := []string{
		"header",
		"overview",
		"performance-breakdown",
		"category-performance",
		"highlights",
		"time-analysis",
		"assessment",
	}
	if len(sections) != len(expected) {
		t.Fatalf("Expected %d sections, got %d", len(expected), len(sections))
	}
	for i, name := range expected {
		if sections[i].name != name {
			t.Errorf("Section %d: expected %s, got %s", i, name, sections[i].name)
		}
		if sections[i].height <= 0 {
			t.Errorf("Section %s has non-positive height %f", name, sections[i].height)
		}
	}
}

func TestBuildReportSections_NoCategories(t *testing.T) {
	interview := completedInterview()
	interview.Questions = nil
	summary := BuildSessionSummary(interview, time.Now())

	sections := buildReportSections(summary, testProfile(), 495)
	for _, section := range sections {
		if section.name == "category-performance" {
			t.Error("Expected category section to be omitted without category scores")
		}
	}
}

func TestPerformanceColor(t *testing.T) {
	tests := []struct {
		performance string
		expected    rgb
	}{
		{"excellent", colorExcellent},
		{"good", colorGood},
		{"average", colorAverage},
		{"needs-improvement", colorPoor},
		{"unknown-band", colorSubtle},
	}
	for _, tc := range tests {
		if got := performanceColor(tc.performance); got != tc.expected {
			t.Errorf("performanceColor(%s): expected %+v, got %+v", tc.performance, tc.expected, got)
		}
	}
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score    float64
		expected rgb
	}{
		{92, colorExcellent},
		{80, colorGood},
		{70, colorAverage},
		{30, colorPoor},
	}
	for _, tc := range tests {
		if got := scoreColor(tc.score); got != tc.expected {
			t.Errorf("scoreColor(%.0f): expected %+v, got %+v", tc.score, tc.expected, got)
		}
	}
}

func TestWrappedLineCount(t *testing.T) {
	tests := []struct {
		text     string
		perLine  int
		expected int
	}{
		{"", 95, 1},
		{"short", 95, 1},
		{strings.Repeat("a", 95), 95, 1},
		{strings.Repeat("a", 96), 95, 2},
		{strings.Repeat("a", 200), 95, 3},
	}
	for _, tc := range tests {
		if got := wrappedLineCount(tc.text, tc.perLine); got != tc.expected {
			t.Errorf("wrappedLineCount(len %d, %d): expected %d, got %d",
				len(tc.text), tc.perLine, tc.expected, got)
		}
	}
}
