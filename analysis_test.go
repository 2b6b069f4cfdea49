package habitbank

import (
	"context"
	"testing"
)

func TestPerformanceRecommendations(t *testing.T) {
	// A declining, inconsistent habit collects both sets of lines.
	recs := performanceRecommendations(HabitInvestment{}, Performance{Trend: "declining", Consistency: 0.2})
	if len(recs) != 4 {
		t.Fatalf("got %d recommendations, want 4: %v", len(recs), recs)
	}
	if recs[0] != "Consider reducing session duration or difficulty" {
		t.Errorf("first recommendation = %q", recs[0])
	}

	// High risk with low quality gets the break-it-down advice.
	recs = performanceRecommendations(
		HabitInvestment{Risk: "high"},
		Performance{Trend: "stable", Consistency: 0.8, Quality: 2},
	)
	if len(recs) != 2 || recs[0] != "Break down into smaller, easier steps" {
		t.Errorf("high risk recommendations = %v", recs)
	}

	// A healthy habit gets none.
	recs = performanceRecommendations(
		HabitInvestment{Risk: "low"},
		Performance{Trend: "improving", Consistency: 0.9, Quality: 4},
	)
	if len(recs) != 0 {
		t.Errorf("healthy habit recommendations = %v, want none", recs)
	}
}

func TestTopPerformers(t *testing.T) {
	analyses := []HabitAnalysis{
		{HabitID: "a", CurrentROI: 10},
		{HabitID: "b", CurrentROI: 80},
		{HabitID: "c", CurrentROI: 40},
		{HabitID: "d", CurrentROI: 60},
	}

	top := topPerformers(analyses, 3)
	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	if top[0].HabitID != "b" || top[1].HabitID != "d" || top[2].HabitID != "c" {
		t.Errorf("order = %s %s %s, want b d c", top[0].HabitID, top[1].HabitID, top[2].HabitID)
	}

	// The input order is preserved.
	if analyses[0].HabitID != "a" {
		t.Error("topPerformers reordered its input")
	}
}

func TestNeedsAttention(t *testing.T) {
	analyses := []HabitAnalysis{
		{HabitID: "a", Performance: Performance{Trend: "improving"}},
		{HabitID: "b", Performance: Performance{Trend: "declining"}},
		{HabitID: "c", Performance: Performance{Trend: "stable"}},
	}
	got := needsAttention(analyses)
	if len(got) != 1 || got[0].HabitID != "b" {
		t.Errorf("needsAttention = %v, want [b]", got)
	}
}

func TestPortfolioAnalysis(t *testing.T) {
	ctx := context.Background()
	habits := []Habit{{
		ID:             "h1",
		Title:          "Morning Exercise",
		Streak:         21,
		CompletionRate: 1,
		Completions:    make([]Completion, 7),
	}}
	bank, store, _, _ := setupBank(t, "fam", habits)

	ledger := newLedger("fam", balancesOf(100, 100, 100, 100), testDay)
	ledger.Portfolio.Habits = []HabitInvestment{
		{HabitID: "h1", HabitName: "Morning Exercise", TotalInvested: P(100), Risk: "low"},
		// Deleted habit still in the portfolio.
		{HabitID: "gone", Risk: "high"},
	}
	if err := store.SaveLedger(ctx, ledger); err != nil {
		t.Fatal(err)
	}

	analysis, err := bank.PortfolioAnalysis(ctx, "fam")
	if err != nil {
		t.Fatal(err)
	}

	if len(analysis.Habits) != 2 {
		t.Fatalf("len(Habits) = %d, want 2", len(analysis.Habits))
	}
	exercise := analysis.Habits[0]
	if exercise.CurrentROI != 100 {
		t.Errorf("exercise ROI = %d, want 100", exercise.CurrentROI)
	}
	if exercise.Performance.Trend != "improving" {
		t.Errorf("exercise trend = %q, want improving", exercise.Performance.Trend)
	}
	if analysis.Habits[1].HabitName != "Unknown Habit" {
		t.Errorf("deleted habit name = %q, want Unknown Habit", analysis.Habits[1].HabitName)
	}

	m := analysis.Metrics
	if !m.TotalValue.Equal(P(400)) {
		t.Errorf("TotalValue = %s, want 400", m.TotalValue)
	}
	if m.DiversificationScore != 100 {
		t.Errorf("DiversificationScore = %d, want 100", m.DiversificationScore)
	}
	if m.RiskProfile.Low != 50 || m.RiskProfile.High != 50 {
		t.Errorf("RiskProfile = %+v, want 50/0/50", m.RiskProfile)
	}
	if len(m.TopPerformers) != 2 || m.TopPerformers[0].HabitID != "h1" {
		t.Errorf("TopPerformers = %v", m.TopPerformers)
	}

	// The canned advisor always supplies advice.
	if analysis.Advice.Summary == "" || len(analysis.Advice.Recommendations) == 0 {
		t.Errorf("advice = %+v, want canned summary and recommendations", analysis.Advice)
	}
}

func TestPortfolioAnalysisNoLedger(t *testing.T) {
	ctx := context.Background()
	bank, _, _, _ := setupBank(t, "fam", nil)
	if _, err := bank.PortfolioAnalysis(ctx, "fam"); err == nil {
		t.Fatal("expected an error for a family without a ledger")
	}
}
