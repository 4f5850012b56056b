package priority

import (
	"errors"
	"strings"
	"testing"
)

func TestScore_WeightTable(t *testing.T) {
	tests := []struct {
		name      string
		severity  string
		impact    string
		effort    string
		wantScore int
		wantLabel Label
	}{
		{"critical high low", "critical", "high", "low", 80, LabelStopShip},
		{"critical medium low boundary", "critical", "medium", "low", 65, LabelHigh},
		{"high high medium", "high", "high", "medium", 60, LabelMedium},
		{"medium medium low", "medium", "medium", "low", 45, LabelMedium},
		{"low low high", "low", "low", "high", 0, LabelLow},
		{"high medium low", "high", "medium", "low", 55, LabelMedium},
		{"high high low", "high", "high", "low", 70, LabelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, label, err := Score(tt.severity, tt.impact, tt.effort)
			if err != nil {
				t.Fatalf("Score error: %v", err)
			}
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if label != tt.wantLabel {
				t.Errorf("label = %s, want %s", label, tt.wantLabel)
			}
		})
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	s1, l1, err := Score("CRITICAL", "HIGH", "LOW")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	s2, l2, err := Score("critical", "high", "low")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if s1 != s2 || l1 != l2 {
		t.Errorf("case-sensitive results: (%d,%s) vs (%d,%s)", s1, l1, s2, l2)
	}
}

func TestScore_InvalidCategories(t *testing.T) {
	tests := []struct {
		name      string
		severity  string
		impact    string
		effort    string
		wantField string
	}{
		{"invalid severity", "urgent", "high", "low", "severity"},
		{"invalid impact", "critical", "huge", "low", "impact"},
		{"invalid effort", "critical", "high", "trivial", "effort"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Score(tt.severity, tt.impact, tt.effort)
			if err == nil {
				t.Fatal("expected error")
			}
			var catErr *InvalidCategoryError
			if !errors.As(err, &catErr) {
				t.Fatalf("error type = %T, want *InvalidCategoryError", err)
			}
			if catErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", catErr.Field, tt.wantField)
			}
		})
	}
}

func TestScoreIssues_SortsDescending(t *testing.T) {
	issues := []Issue{
		{Title: "Low Priority", Severity: "low", Impact: "low", Effort: "high"},
		{Title: "Critical Issue", Severity: "critical", Impact: "high", Effort: "low"},
		{Title: "Medium Issue", Severity: "medium", Impact: "medium", Effort: "medium"},
	}

	scored, err := ScoreIssues(issues)
	if err != nil {
		t.Fatalf("ScoreIssues error: %v", err)
	}

	if scored[0].Title != "Critical Issue" || scored[0].PriorityScore != 80 {
		t.Errorf("scored[0] = %q (%d), want Critical Issue (80)", scored[0].Title, scored[0].PriorityScore)
	}
	if scored[1].Title != "Medium Issue" || scored[1].PriorityScore != 35 {
		t.Errorf("scored[1] = %q (%d), want Medium Issue (35)", scored[1].Title, scored[1].PriorityScore)
	}
	if scored[2].Title != "Low Priority" || scored[2].PriorityScore != 0 {
		t.Errorf("scored[2] = %q (%d), want Low Priority (0)", scored[2].Title, scored[2].PriorityScore)
	}
}

func TestScoreIssues_StableOnTies(t *testing.T) {
	issues := []Issue{
		{Title: "First", Severity: "high", Impact: "high", Effort: "low"},
		{Title: "Second", Severity: "high", Impact: "high", Effort: "low"},
	}
	scored, err := ScoreIssues(issues)
	if err != nil {
		t.Fatalf("ScoreIssues error: %v", err)
	}
	if scored[0].Title != "First" || scored[1].Title != "Second" {
		t.Errorf("tie order not preserved: %q, %q", scored[0].Title, scored[1].Title)
	}
}

func TestScoreIssues_PreservesFields(t *testing.T) {
	issues := []Issue{
		{
			Title:       "Test Issue",
			Description: "Test description",
			Severity:    "critical",
			Impact:      "high",
			Effort:      "low",
			Fix:         "Test fix",
		},
	}
	scored, err := ScoreIssues(issues)
	if err != nil {
		t.Fatalf("ScoreIssues error: %v", err)
	}
	got := scored[0]
	if got.Title != "Test Issue" || got.Description != "Test description" || got.Fix != "Test fix" {
		t.Errorf("original fields not preserved: %+v", got)
	}
	if got.PriorityScore != 80 || got.PriorityLabel != LabelStopShip {
		t.Errorf("priority fields = (%d, %s), want (80, STOP-SHIP)", got.PriorityScore, got.PriorityLabel)
	}
}

func TestScoreIssues_Empty(t *testing.T) {
	scored, err := ScoreIssues(nil)
	if err != nil {
		t.Fatalf("ScoreIssues error: %v", err)
	}
	if len(scored) != 0 {
		t.Errorf("len = %d, want 0", len(scored))
	}
}

func TestScoreIssues_InvalidFailsWhole(t *testing.T) {
	issues := []Issue{
		{Title: "Good", Severity: "high", Impact: "high", Effort: "low"},
		{Title: "Bad", Severity: "nope", Impact: "high", Effort: "low"},
	}
	if _, err := ScoreIssues(issues); err == nil {
		t.Fatal("expected error for invalid category")
	}
}

func TestGroupBySeverity(t *testing.T) {
	issues := []Issue{
		{Title: "Stop-ship", PriorityScore: 90},
		{Title: "High 1", PriorityScore: 70},
		{Title: "High 2", PriorityScore: 65},
		{Title: "Medium", PriorityScore: 55},
		{Title: "Low", PriorityScore: 30},
	}

	g := GroupBySeverity(issues)

	if len(g.StopShip) != 1 || g.StopShip[0].Title != "Stop-ship" {
		t.Errorf("StopShip = %+v", g.StopShip)
	}
	if len(g.High) != 2 || g.High[0].Title != "High 1" || g.High[1].Title != "High 2" {
		t.Errorf("High = %+v", g.High)
	}
	if len(g.Medium) != 1 || g.Medium[0].Title != "Medium" {
		t.Errorf("Medium = %+v", g.Medium)
	}
	if len(g.Low) != 1 || g.Low[0].Title != "Low" {
		t.Errorf("Low = %+v", g.Low)
	}
}

func TestGroupBySeverity_EmptyBuckets(t *testing.T) {
	g := GroupBySeverity([]Issue{{Title: "Only High", PriorityScore: 70}})
	if len(g.StopShip) != 0 || len(g.High) != 1 || len(g.Medium) != 0 || len(g.Low) != 0 {
		t.Errorf("unexpected grouping: %+v", g)
	}
}

func TestCalculateFixTime_Buckets(t *testing.T) {
	issues := []Issue{
		{Title: "Stop-ship 1", Effort: "low", PriorityScore: 90},
		{Title: "Stop-ship 2", Effort: "low", PriorityScore: 85},
		{Title: "High priority", Effort: "medium", PriorityScore: 70},
	}

	times := CalculateFixTime(issues)

	if times.StopShip != "1.0 hours" {
		t.Errorf("StopShip = %q, want %q", times.StopShip, "1.0 hours")
	}
	if times.High != "2.5 hours" {
		t.Errorf("High = %q, want %q", times.High, "2.5 hours")
	}
	if times.Total != "3.5 hours" {
		t.Errorf("Total = %q, want %q", times.Total, "3.5 hours")
	}
}

func TestCalculateFixTime_MinutesUnderOneHour(t *testing.T) {
	issues := []Issue{
		{Title: "Quick fix", Effort: "low", PriorityScore: 70},
	}
	times := CalculateFixTime(issues)
	if !strings.Contains(times.Total, "minutes") {
		t.Errorf("Total = %q, want minutes rendering", times.Total)
	}
	if times.Total != "30 minutes" {
		t.Errorf("Total = %q, want %q", times.Total, "30 minutes")
	}
}

func TestCalculateFixTimeWith_CustomHighEffort(t *testing.T) {
	issues := []Issue{
		{Title: "Big one", Effort: "high", PriorityScore: 90},
	}
	times := CalculateFixTimeWith(issues, FixTimeConfig{HighEffortHours: 4})
	if times.StopShip != "4.0 hours" {
		t.Errorf("StopShip = %q, want %q", times.StopShip, "4.0 hours")
	}
}
