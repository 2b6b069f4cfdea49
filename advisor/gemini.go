package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Gemini is the real advisor, backed by the Gemini API.
type Gemini struct {
	Client *genai.Client
	Model  string
}

// NewGemini creates a Gemini advisor on an existing client.
func NewGemini(client *genai.Client) *Gemini {
	return &Gemini{Client: client, Model: DefaultModel}
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from model %s", g.Model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (g *Gemini) StatementInsights(ctx context.Context, brief StatementBrief) ([]string, error) {
	var balances []string
	for _, t := range sortedKeys(brief.Balances) {
		balances = append(balances, fmt.Sprintf("%s: %.0f", t, brief.Balances[t]))
	}

	prompt := fmt.Sprintf(`Generate 3-4 brief, actionable insights for a family's habit wealth statement.

Week summary:
- Total deposits: %.0f
- Total interest earned: %.0f
- Account balances: %s
- Diversification score: %d%%

Focus on:
1. Celebrating progress
2. Identifying imbalances
3. Suggesting next actions
4. Motivating continued growth

Keep each insight to 1-2 sentences. Be specific and encouraging.`,
		brief.TotalDeposits, brief.TotalInterest, strings.Join(balances, ", "), brief.Diversification)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	insights := parseLines(text, 4)
	if len(insights) == 0 {
		return nil, fmt.Errorf("model %s returned no usable insight", g.Model)
	}
	return insights, nil
}

func (g *Gemini) PortfolioAdvice(ctx context.Context, brief AdviceBrief) (Advice, error) {
	top := brief.TopPerformer
	if top == "" {
		top = "None"
	}

	prompt := fmt.Sprintf(`Provide brief investment advice for a family habit portfolio.

Portfolio metrics:
- Total value: %.0f
- Diversification: %d%%
- Risk profile: low %d%%, medium %d%%, high %d%%
- Top performer: %s
- Needs attention: %d habits

Provide 2-3 specific recommendations in the style of a financial advisor.
Keep it encouraging and actionable.`,
		brief.TotalValue, brief.Diversification, brief.RiskLow, brief.RiskMedium, brief.RiskHigh,
		top, brief.NeedsAttention)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return Advice{}, err
	}

	lines := parseLines(text, 4)
	if len(lines) == 0 {
		return Advice{}, fmt.Errorf("model %s returned no usable advice", g.Model)
	}
	return Advice{Summary: lines[0], Recommendations: lines[1:]}, nil
}

// parseLines keeps the first max non-empty, non-heading lines of a response.
func parseLines(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
		if len(out) == max {
			break
		}
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
