package habitbank

import (
	"testing"
)

func balancesOf(energy, connection, order, growth float64) map[AccountType]Points {
	return map[AccountType]Points{
		Energy:     P(energy),
		Connection: P(connection),
		Order:      P(order),
		Growth:     P(growth),
	}
}

func TestDiversification(t *testing.T) {
	testCases := []struct {
		name     string
		balances map[AccountType]Points
		want     int
	}{
		{name: "perfectly even", balances: balancesOf(100, 100, 100, 100), want: 100},
		{name: "all in one account", balances: balancesOf(400, 0, 0, 0), want: 0},
		{name: "empty portfolio", balances: balancesOf(0, 0, 0, 0), want: 0},
		// Shares 40/20/20/20: deviations 0.15 + 3*0.05 = 0.30, score 70.
		{name: "mild skew", balances: balancesOf(400, 200, 200, 200), want: 70},
		// Shares 50/50/0/0: deviations 2*0.25 + 2*0.25 = 1.0, floored at 0.
		{name: "two accounts only", balances: balancesOf(500, 500, 0, 0), want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Diversification(tc.balances); got != tc.want {
				t.Errorf("Diversification() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestInvestmentROI(t *testing.T) {
	testCases := []struct {
		name     string
		invested float64
		habit    *Habit
		want     int
	}{
		{name: "no habit", invested: 100, habit: nil, want: 0},
		// 21-day streak at full completion rate on a normalized investment.
		{name: "mastered", invested: 100, habit: &Habit{Streak: 21, CompletionRate: 1}, want: 100},
		// (10/21) * 0.5 (default rate) * 0.5 * 100 = 11.9 -> 12.
		{name: "default completion rate", invested: 50, habit: &Habit{Streak: 10}, want: 12},
		{name: "no streak", invested: 100, habit: &Habit{CompletionRate: 1}, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inv := HabitInvestment{TotalInvested: P(tc.invested)}
			if got := InvestmentROI(inv, tc.habit); got != tc.want {
				t.Errorf("InvestmentROI() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestHabitRecommendations(t *testing.T) {
	testCases := []struct {
		completions int
		streak      int
		wantFirst   string
		wantStreak  bool
	}{
		{completions: 0, wantFirst: "Start practicing this habit to build wealth"},
		{completions: 3, wantFirst: "Complete 5 times to unlock survey bonus"},
		{completions: 8, wantFirst: "Keep going! You're building momentum"},
		{completions: 15, wantFirst: "Approaching habit mastery (21 completions)"},
		{completions: 25, wantFirst: "Habit mastered! Consider adding a new challenge"},
		{completions: 8, streak: 4, wantFirst: "Keep going! You're building momentum", wantStreak: true},
	}

	for _, tc := range testCases {
		recs := habitRecommendations(tc.completions, tc.streak)
		if len(recs) == 0 || recs[0] != tc.wantFirst {
			t.Errorf("habitRecommendations(%d, %d) = %v, want first %q", tc.completions, tc.streak, recs, tc.wantFirst)
		}
		hasStreak := len(recs) == 2
		if hasStreak != tc.wantStreak {
			t.Errorf("habitRecommendations(%d, %d) streak line = %v, want %v", tc.completions, tc.streak, hasStreak, tc.wantStreak)
		}
	}
}

func TestAnalyzeHabitPortfolio(t *testing.T) {
	habits := []Habit{
		{ID: "h1", Title: "Read 20 minutes", Completions: make([]Completion, 12)},
		{ID: "h2", Title: "Morning Exercise", Completions: make([]Completion, 7)},
		{ID: "h3", Title: "Tidy up bedroom"},
	}

	portfolio := AnalyzeHabitPortfolio(habits)
	if len(portfolio) != 3 {
		t.Fatalf("len = %d, want 3", len(portfolio))
	}

	reader := portfolio[0]
	if reader.Account != Growth || reader.Risk != "low" || reader.Performance.Trend != "improving" {
		t.Errorf("12 completions: got account %q risk %q trend %q", reader.Account, reader.Risk, reader.Performance.Trend)
	}
	if reader.ROI != 100 {
		t.Errorf("ROI = %d, want capped 100", reader.ROI)
	}
	// 12/21 of the mastery window.
	if reader.MaturityProgress != 57 {
		t.Errorf("MaturityProgress = %d, want 57", reader.MaturityProgress)
	}

	exercise := portfolio[1]
	if exercise.Risk != "medium" || exercise.ROI != 70 {
		t.Errorf("7 completions: got risk %q roi %d", exercise.Risk, exercise.ROI)
	}

	fresh := portfolio[2]
	if fresh.Risk != "high" || fresh.Performance.Trend != "developing" || fresh.ROI != 0 {
		t.Errorf("0 completions: got risk %q trend %q roi %d", fresh.Risk, fresh.Performance.Trend, fresh.ROI)
	}
}

func TestAnalyzePerformance(t *testing.T) {
	h := &Habit{}
	p := analyzePerformance(h)
	if p.Trend != "declining" || p.Consistency != 0 {
		t.Errorf("empty habit: trend %q consistency %v", p.Trend, p.Consistency)
	}

	// Three recent completions read as stable; unrated ones count as quality 3.
	h.Completions = []Completion{{Quality: 5}, {}, {Quality: 4}}
	p = analyzePerformance(h)
	if p.Trend != "stable" {
		t.Errorf("trend = %q, want stable", p.Trend)
	}
	if p.Quality != 4 {
		t.Errorf("quality = %v, want 4", p.Quality)
	}

	h.Completions = make([]Completion, 7)
	p = analyzePerformance(h)
	if p.Trend != "improving" || p.Consistency != 1 {
		t.Errorf("7 completions: trend %q consistency %v", p.Trend, p.Consistency)
	}
}

func TestMaturityProgress(t *testing.T) {
	now := testDay
	inv := HabitInvestment{
		StartDate:    now.AddDate(0, 0, -33),
		MaturityDate: now.AddDate(0, 0, 33),
	}
	if got := maturityProgress(inv, now); got != 50 {
		t.Errorf("maturityProgress = %d, want 50", got)
	}

	// Past maturity it is capped.
	inv.MaturityDate = now.AddDate(0, 0, -3)
	if got := maturityProgress(inv, now); got != 100 {
		t.Errorf("maturityProgress past maturity = %d, want 100", got)
	}

	// Legacy entries without dates report no progress.
	if got := maturityProgress(HabitInvestment{}, now); got != 0 {
		t.Errorf("maturityProgress without dates = %d, want 0", got)
	}
}

func TestUpdatePortfolio(t *testing.T) {
	l := newLedger("fam", balancesOf(100, 0, 0, 0), testDay)
	habit := &Habit{ID: "h1", Title: "Morning Exercise", Frequency: "daily", Streak: 21, CompletionRate: 1}

	l.updatePortfolio(habit, P(10), testDay)
	if len(l.Portfolio.Habits) != 1 {
		t.Fatalf("len(Habits) = %d, want 1", len(l.Portfolio.Habits))
	}
	inv := l.Portfolio.Habits[0]
	if inv.InvestmentType != "daily" {
		t.Errorf("InvestmentType = %q, want daily", inv.InvestmentType)
	}
	if want := testDay.AddDate(0, 0, 66); !inv.MaturityDate.Equal(want) {
		t.Errorf("MaturityDate = %v, want %v", inv.MaturityDate, want)
	}

	// A second deposit tops up the same investment and refreshes its ROI.
	l.updatePortfolio(habit, P(90), testDay)
	if len(l.Portfolio.Habits) != 1 {
		t.Fatalf("len(Habits) = %d, want still 1", len(l.Portfolio.Habits))
	}
	inv = l.Portfolio.Habits[0]
	if !inv.TotalInvested.Equal(P(100)) {
		t.Errorf("TotalInvested = %s, want 100", inv.TotalInvested)
	}
	if inv.ROI != 100 {
		t.Errorf("ROI = %d, want 100", inv.ROI)
	}
}

func TestProjectGrowthDefaultsWithoutActivity(t *testing.T) {
	l := newLedger("fam", balancesOf(100, 0, 0, 0), testDay)

	// No deposits in the trailing month: the 2% default applies.
	g := l.ProjectGrowth(testDay)
	if !g.OneWeek.Equal(P(115)) {
		t.Errorf("OneWeek = %s, want 115", g.OneWeek)
	}
	if !g.OneMonth.Equal(P(181)) {
		t.Errorf("OneMonth = %s, want 181", g.OneMonth)
	}
}

func TestAverageDailyGrowth(t *testing.T) {
	l := newLedger("fam", balancesOf(300, 0, 0, 0), testDay)
	account, err := l.Account(Energy)
	if err != nil {
		t.Fatal(err)
	}
	// 60 deposited over the trailing month on a 300 balance:
	// daily average 2, rate 2/300.
	account.Deposits = []Deposit{
		{Amount: P(30), Timestamp: testDay.AddDate(0, 0, -10)},
		{Amount: P(30), Timestamp: testDay.AddDate(0, 0, -2)},
		// Outside the window, ignored.
		{Amount: P(500), Timestamp: testDay.AddDate(0, 0, -40)},
	}

	got := l.averageDailyGrowth(testDay)
	want := 2.0 / 300
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("averageDailyGrowth = %v, want %v", got, want)
	}
}

func TestRiskProfile(t *testing.T) {
	profile := riskProfile([]HabitInvestment{
		{Risk: "low"}, {Risk: "low"}, {Risk: "medium"}, {Risk: "high"},
	})
	if profile.Low != 50 || profile.Medium != 25 || profile.High != 25 {
		t.Errorf("riskProfile = %+v, want 50/25/25", profile)
	}

	empty := riskProfile(nil)
	if empty.Low != 0 || empty.Medium != 0 || empty.High != 0 {
		t.Errorf("riskProfile(nil) = %+v, want zeros", empty)
	}
}

func TestInvestmentRisk(t *testing.T) {
	testCases := []struct {
		name  string
		habit Habit
		want  string
	}{
		{name: "hard difficulty", habit: Habit{Difficulty: "hard"}, want: "high"},
		{name: "long session", habit: Habit{EstimatedMinutes: 45}, want: "high"},
		{name: "medium difficulty", habit: Habit{Difficulty: "medium"}, want: "medium"},
		{name: "mid session", habit: Habit{EstimatedMinutes: 20}, want: "medium"},
		{name: "easy", habit: Habit{Difficulty: "easy", EstimatedMinutes: 5}, want: "low"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := investmentRisk(&tc.habit); got != tc.want {
				t.Errorf("investmentRisk = %q, want %q", got, tc.want)
			}
		})
	}
}
