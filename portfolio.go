package habitbank

import (
	"math"
	"time"
)

// Performance summarizes a habit's recent completion behavior.
type Performance struct {
	Trend          string    `json:"trend"` // improving, stable, declining, developing
	Consistency    float64   `json:"consistency,omitempty"`
	Quality        float64   `json:"quality,omitempty"`
	LastCompletion time.Time `json:"lastCompletion,omitzero"`
}

// HabitInvestment is the portfolio entry of one tracked habit.
type HabitInvestment struct {
	HabitID          string      `json:"habitId"`
	HabitName        string      `json:"habitName,omitempty"`
	Account          AccountType `json:"accountType"`
	InvestmentType   string      `json:"investmentType"` // daily, weekly, milestone
	TotalInvested    Points      `json:"totalInvested"`
	ROI              int         `json:"roi"`  // percent
	Risk             string      `json:"risk"` // low, medium, high
	StartDate        time.Time   `json:"startDate,omitzero"`
	MaturityDate     time.Time   `json:"maturityDate,omitzero"`
	TotalCompletions int         `json:"totalCompletions,omitempty"`
	MaturityProgress int         `json:"maturityProgress,omitempty"` // percent
	Performance      Performance `json:"performance,omitzero"`
	Recommendations  []string    `json:"recommendations,omitempty"`
}

// GrowthProjection projects the total value at three horizons.
type GrowthProjection struct {
	OneWeek     Points `json:"oneWeek"`
	OneMonth    Points `json:"oneMonth"`
	ThreeMonths Points `json:"threeMonths"`
}

// Portfolio aggregates all habit investments plus derived totals.
type Portfolio struct {
	Habits               []HabitInvestment `json:"habits"`
	DiversificationScore int               `json:"diversificationScore"`
	TotalValue           Points            `json:"totalValue"`
	ProjectedGrowth      GrowthProjection  `json:"projectedGrowth"`
}

// Diversification scores how evenly wealth is spread over the four accounts,
// from 0 (all in one account, or nothing at all) to 100 (perfectly even).
// Each account's share of the total is compared against the ideal 25%.
func Diversification(balances map[AccountType]Points) int {
	var total float64
	for _, t := range AccountTypes() {
		total += balances[t].AsFloat()
	}
	if total == 0 {
		return 0
	}

	score := 100.0
	for _, t := range AccountTypes() {
		share := balances[t].AsFloat() / total
		score -= math.Abs(share-0.25) * 100
	}
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}

// AnalyzeHabitPortfolio derives a portfolio entry per tracked habit from its
// completion history. It is used at bootstrap and on every resync.
func AnalyzeHabitPortfolio(habits []Habit) []HabitInvestment {
	portfolio := make([]HabitInvestment, 0, len(habits))
	for i := range habits {
		h := &habits[i]
		completions := len(h.Completions)

		risk := "high"
		switch {
		case completions > 10:
			risk = "low"
		case completions > 5:
			risk = "medium"
		}

		trend := "developing"
		if completions > 5 {
			trend = "improving"
		}

		account := h.AccountType()
		portfolio = append(portfolio, HabitInvestment{
			HabitID:          h.ID,
			HabitName:        h.Title,
			Account:          account,
			InvestmentType:   account.Spec().Name,
			TotalCompletions: completions,
			ROI:              min(completions*10, 100),
			Risk:             risk,
			MaturityProgress: int(math.Min(float64(completions)/21*100, 100)),
			Performance: Performance{
				Trend:          trend,
				LastCompletion: h.LastCompletion(),
			},
			Recommendations: habitRecommendations(completions, h.Streak),
		})
	}
	return portfolio
}

// habitRecommendations returns the completion-count coaching lines.
func habitRecommendations(completions, streak int) []string {
	var recs []string
	switch {
	case completions == 0:
		recs = append(recs, "Start practicing this habit to build wealth")
	case completions < 5:
		recs = append(recs, "Complete 5 times to unlock survey bonus")
	case completions < 11:
		recs = append(recs, "Keep going! You're building momentum")
	case completions < 21:
		recs = append(recs, "Approaching habit mastery (21 completions)")
	default:
		recs = append(recs, "Habit mastered! Consider adding a new challenge")
	}
	if streak > 3 {
		recs = append(recs, "Great streak! Keep the daily chain going")
	}
	return recs
}

// InvestmentROI estimates the return of a habit investment. The proportions
// are deliberate: streak against a 21-day baseline, the habit's completion
// rate (0.5 when unknown), and the invested amount normalized to 100.
// Displayed numbers must stay stable across data migrations.
func InvestmentROI(inv HabitInvestment, habit *Habit) int {
	if habit == nil {
		return 0
	}
	consistency := float64(habit.Streak) / 21
	rate := habit.CompletionRate
	if rate == 0 {
		rate = 0.5
	}
	timeValue := inv.TotalInvested.AsFloat() / 100
	return int(math.Round(consistency * rate * timeValue * 100))
}

// investmentType maps the habit frequency to an investment horizon.
func investmentType(h *Habit) string {
	switch h.Frequency {
	case "daily":
		return "daily"
	case "weekly":
		return "weekly"
	default:
		return "milestone"
	}
}

// maturityDays is the habit-type-dependent horizon after which a habit is
// considered automatic. 66 days comes from habit-formation research.
var maturityDays = map[string]int{
	"daily":     66,
	"weekly":    90,
	"milestone": 120,
}

// investmentRisk classifies a fresh investment from the habit's demands.
func investmentRisk(h *Habit) string {
	if h.Difficulty == "hard" || h.EstimatedMinutes > 30 {
		return "high"
	}
	if h.Difficulty == "medium" || h.EstimatedMinutes > 15 {
		return "medium"
	}
	return "low"
}

// analyzePerformance looks at the trailing seven completion records.
func analyzePerformance(h *Habit) Performance {
	recent := h.recentCompletions(7)
	trend := "declining"
	switch {
	case len(recent) >= 5:
		trend = "improving"
	case len(recent) >= 3:
		trend = "stable"
	}

	var quality float64
	for _, c := range recent {
		q := c.Quality
		if q == 0 {
			q = 3
		}
		quality += float64(q)
	}
	quality /= math.Max(float64(len(recent)), 1)

	return Performance{
		Trend:          trend,
		Consistency:    float64(len(recent)) / 7,
		Quality:        quality,
		LastCompletion: h.LastCompletion(),
	}
}

// maturityProgress is the share of the investment's maturity window elapsed.
func maturityProgress(inv HabitInvestment, now time.Time) int {
	if inv.StartDate.IsZero() || inv.MaturityDate.IsZero() {
		return 0
	}
	total := inv.MaturityDate.Sub(inv.StartDate).Hours() / 24
	if total <= 0 {
		return 100
	}
	passed := now.Sub(inv.StartDate).Hours() / 24
	return int(math.Min(100, math.Round(passed/total*100)))
}

// updatePortfolio registers a deposit against the habit's investment, then
// refreshes the derived totals. New habits enter the portfolio with a
// maturity date set by their investment type.
func (l *Ledger) updatePortfolio(habit *Habit, depositAmount Points, now time.Time) {
	idx := -1
	for i := range l.Portfolio.Habits {
		if l.Portfolio.Habits[i].HabitID == habit.ID {
			idx = i
			break
		}
	}

	if idx == -1 {
		kind := investmentType(habit)
		l.Portfolio.Habits = append(l.Portfolio.Habits, HabitInvestment{
			HabitID:        habit.ID,
			HabitName:      habit.Title,
			Account:        habit.AccountType(),
			InvestmentType: kind,
			TotalInvested:  depositAmount,
			Risk:           investmentRisk(habit),
			StartDate:      now,
			MaturityDate:   now.AddDate(0, 0, maturityDays[kind]),
		})
	} else {
		inv := &l.Portfolio.Habits[idx]
		inv.TotalInvested = inv.TotalInvested.Add(depositAmount)
		inv.ROI = InvestmentROI(*inv, habit)
	}

	l.Portfolio.TotalValue = l.TotalValue()
	l.Portfolio.DiversificationScore = Diversification(l.Balances())
}

// averageDailyGrowth derives a growth rate from the last 30 days of deposits
// across accounts: average daily deposit over current balance, per account
// with recent activity. Defaults to 2% daily when nothing happened.
func (l *Ledger) averageDailyGrowth(now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -30)

	var totalGrowth float64
	var active int
	for i := range l.Accounts {
		a := &l.Accounts[i]
		var recent Points
		var n int
		for _, d := range a.Deposits {
			if d.Timestamp.After(cutoff) {
				recent = recent.Add(d.Amount)
				n++
			}
		}
		if n == 0 {
			continue
		}
		dailyAvg := recent.AsFloat() / 30
		if bal := a.Balance.AsFloat(); bal > 0 {
			totalGrowth += dailyAvg / bal
		}
		active++
	}

	if active == 0 {
		return 0.02
	}
	return totalGrowth / float64(active)
}

// ProjectGrowth compounds the current total value at the trailing average
// daily growth rate over 7, 30 and 90 day horizons.
func (l *Ledger) ProjectGrowth(now time.Time) GrowthProjection {
	total := l.TotalValue().AsFloat()
	rate := l.averageDailyGrowth(now)
	at := func(days float64) Points {
		return P(math.Round(total * math.Pow(1+rate, days)))
	}
	return GrowthProjection{
		OneWeek:     at(7),
		OneMonth:    at(30),
		ThreeMonths: at(90),
	}
}

// RiskProfile is the percent distribution of investment risk classes.
type RiskProfile struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

func riskProfile(analyses []HabitInvestment) RiskProfile {
	counts := map[string]int{}
	for _, a := range analyses {
		counts[a.Risk]++
	}
	total := len(analyses)
	if total == 0 {
		total = 1
	}
	pct := func(n int) int { return int(math.Round(float64(n) / float64(total) * 100)) }
	return RiskProfile{Low: pct(counts["low"]), Medium: pct(counts["medium"]), High: pct(counts["high"])}
}
