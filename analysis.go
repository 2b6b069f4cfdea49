package habitbank

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/habitwealth/habitbank/advisor"
)

// HabitAnalysis is the analyzed view of one habit investment.
type HabitAnalysis struct {
	HabitID          string      `json:"habitId"`
	HabitName        string      `json:"habitName"`
	InvestmentType   string      `json:"investmentType"`
	CurrentROI       int         `json:"currentROI"`
	Risk             string      `json:"risk"`
	Performance      Performance `json:"performance"`
	MaturityProgress int         `json:"maturityProgress"`
	Recommendations  []string    `json:"recommendations"`
}

// PortfolioMetrics aggregates the analysis over the whole portfolio.
type PortfolioMetrics struct {
	TotalValue           Points          `json:"totalValue"`
	DiversificationScore int             `json:"diversificationScore"`
	RiskProfile          RiskProfile     `json:"riskProfile"`
	ProjectedGrowth      GrowthProjection        `json:"projectedGrowth"`
	TopPerformers        []HabitAnalysis `json:"topPerformers"`
	NeedsAttention       []HabitAnalysis `json:"needsAttention"`
}

// Analysis is the full portfolio analysis returned to callers.
type Analysis struct {
	Habits      []HabitAnalysis  `json:"habits"`
	Metrics     PortfolioMetrics `json:"metrics"`
	Advice      advisor.Advice   `json:"advice"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// PortfolioAnalysis analyzes every habit investment of the family: ROI, risk,
// recent performance, maturity progress and coaching recommendations, plus
// ranked top performers and habits needing attention. The advisory text is
// best-effort with a canned fallback.
func (b *Bank) PortfolioAnalysis(ctx context.Context, familyID string) (*Analysis, error) {
	lock := b.famLock(familyID)
	lock.Lock()
	defer lock.Unlock()

	ledger, err := b.store.Ledger(ctx, familyID)
	if err != nil {
		return nil, err
	}

	now := b.now()
	analyses := make([]HabitAnalysis, 0, len(ledger.Portfolio.Habits))
	for _, inv := range ledger.Portfolio.Habits {
		habit, err := b.store.Habit(ctx, familyID, inv.HabitID)
		if err != nil && !errors.Is(err, ErrHabitNotFound) {
			return nil, err
		}

		name := inv.HabitName
		var performance Performance
		if habit != nil {
			name = habit.Title
			performance = analyzePerformance(habit)
		} else if name == "" {
			// The habit was deleted since it entered the portfolio.
			name = "Unknown Habit"
		}

		analyses = append(analyses, HabitAnalysis{
			HabitID:          inv.HabitID,
			HabitName:        name,
			InvestmentType:   inv.InvestmentType,
			CurrentROI:       InvestmentROI(inv, habit),
			Risk:             inv.Risk,
			Performance:      performance,
			MaturityProgress: maturityProgress(inv, now),
			Recommendations:  performanceRecommendations(inv, performance),
		})
	}

	metrics := PortfolioMetrics{
		TotalValue:           ledger.TotalValue(),
		DiversificationScore: Diversification(ledger.Balances()),
		RiskProfile:          riskProfile(ledger.Portfolio.Habits),
		ProjectedGrowth:      ledger.ProjectGrowth(now),
		TopPerformers:        topPerformers(analyses, 3),
		NeedsAttention:       needsAttention(analyses),
	}

	return &Analysis{
		Habits:      analyses,
		Metrics:     metrics,
		Advice:      b.portfolioAdvice(ctx, metrics),
		LastUpdated: now,
	}, nil
}

// performanceRecommendations derives coaching lines from the investment's
// recent performance, not its raw completion count.
func performanceRecommendations(inv HabitInvestment, p Performance) []string {
	var recs []string
	if p.Trend == "declining" {
		recs = append(recs,
			"Consider reducing session duration or difficulty",
			"Try pairing with a different family member for support")
	}
	if p.Consistency < 0.5 {
		recs = append(recs,
			"Set more consistent practice times",
			"Use calendar blocking for habit time")
	}
	if inv.Risk == "high" && p.Quality < 3 {
		recs = append(recs,
			"Break down into smaller, easier steps",
			"Consider a stepping-stone habit first")
	}
	return recs
}

func topPerformers(analyses []HabitAnalysis, n int) []HabitAnalysis {
	ranked := make([]HabitAnalysis, len(analyses))
	copy(ranked, analyses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CurrentROI > ranked[j].CurrentROI
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func needsAttention(analyses []HabitAnalysis) []HabitAnalysis {
	var declining []HabitAnalysis
	for _, a := range analyses {
		if a.Performance.Trend == "declining" {
			declining = append(declining, a)
		}
	}
	return declining
}

func (b *Bank) portfolioAdvice(ctx context.Context, m PortfolioMetrics) advisor.Advice {
	brief := advisor.AdviceBrief{
		TotalValue:      m.TotalValue.AsFloat(),
		Diversification: m.DiversificationScore,
		RiskLow:         m.RiskProfile.Low,
		RiskMedium:      m.RiskProfile.Medium,
		RiskHigh:        m.RiskProfile.High,
		NeedsAttention:  len(m.NeedsAttention),
	}
	if len(m.TopPerformers) > 0 {
		brief.TopPerformer = m.TopPerformers[0].HabitName
	}

	advice, err := b.advisor.PortfolioAdvice(ctx, brief)
	if err != nil {
		advice, _ = advisor.Static{}.PortfolioAdvice(ctx, brief)
	}
	return advice
}
