// Package advisor provides the text-generation capability used to enrich
// statements and portfolio analyses. The engine always composes a real
// advisor with the static one, so that insight generation can fail without
// ever leaving a statement incomplete.
package advisor

import (
	"context"
)

// StatementBrief is the numeric summary passed to the advisor for weekly
// statement insights. Only numbers cross this boundary, never raw records.
type StatementBrief struct {
	TotalDeposits   float64
	TotalInterest   float64
	Balances        map[string]float64 // keyed by account type
	Diversification int                // percent
}

// AdviceBrief is the numeric summary passed for portfolio advice.
type AdviceBrief struct {
	TotalValue      float64
	Diversification int // percent
	RiskLow         int // percent of habits per risk class
	RiskMedium      int
	RiskHigh        int
	TopPerformer    string
	NeedsAttention  int // habits with a declining trend
}

// Advice is a short advisory summary plus actionable recommendations.
type Advice struct {
	Summary         string
	Recommendations []string
}

// Advisor produces short natural-language enrichments from numeric briefs.
type Advisor interface {
	// StatementInsights returns 3-4 one-liner insights for a weekly statement.
	StatementInsights(ctx context.Context, brief StatementBrief) ([]string, error)
	// PortfolioAdvice returns advisory text for a portfolio analysis.
	PortfolioAdvice(ctx context.Context, brief AdviceBrief) (Advice, error)
}
