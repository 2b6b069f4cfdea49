package advisor

import (
	"context"
	"log"
)

// Resilient tries the primary advisor and falls back on error. Composed with
// Static as fallback it never fails, which is what the ledger core expects.
type Resilient struct {
	Primary  Advisor
	Fallback Advisor
}

// NewResilient wraps primary with the static fallback.
func NewResilient(primary Advisor) *Resilient {
	return &Resilient{Primary: primary, Fallback: Static{}}
}

func (r *Resilient) StatementInsights(ctx context.Context, brief StatementBrief) ([]string, error) {
	insights, err := r.Primary.StatementInsights(ctx, brief)
	if err != nil {
		log.Printf("warning: advisor failed, using canned insights: %v", err)
		return r.Fallback.StatementInsights(ctx, brief)
	}
	return insights, nil
}

func (r *Resilient) PortfolioAdvice(ctx context.Context, brief AdviceBrief) (Advice, error) {
	advice, err := r.Primary.PortfolioAdvice(ctx, brief)
	if err != nil {
		log.Printf("warning: advisor failed, using canned advice: %v", err)
		return r.Fallback.PortfolioAdvice(ctx, brief)
	}
	return advice, nil
}
