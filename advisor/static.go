package advisor

import "context"

// Static is the canned advisor. It never fails, which makes it the terminal
// fallback of every advisor composition.
type Static struct{}

func (Static) StatementInsights(_ context.Context, _ StatementBrief) ([]string, error) {
	return []string{
		"Great progress this week! Your consistency is building compound growth.",
		"Consider adding a Connection habit to balance your portfolio.",
		"Keep depositing daily - small habits compound into real wealth.",
	}, nil
}

func (Static) PortfolioAdvice(_ context.Context, _ AdviceBrief) (Advice, error) {
	return Advice{
		Summary: "Your habit portfolio shows steady growth potential.",
		Recommendations: []string{
			"Maintain your top-performing habits for reliable returns",
			"Consider rebalancing declining habits with easier alternatives",
			"Your diversification score suggests adding variety to your routine",
		},
	}, nil
}
