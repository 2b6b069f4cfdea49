package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/habitwealth/habitbank/renderer"
)

type portfolioCmd struct {
	family string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "analyze the habit portfolio like an investment book" }
func (*portfolioCmd) Usage() string {
	return `hbk portfolio -family <id>

  Shows each habit as an investment: ROI, risk, trend and maturity progress,
  with top performers, habits needing attention and advisor recommendations.
`
}

func (p *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.family, "family", "", "Family identifier.")
}

func (p *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.family == "" {
		fmt.Fprintln(os.Stderr, "missing -family")
		return subcommands.ExitUsageError
	}

	bank, closeStore, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	analysis, err := bank.PortfolioAnalysis(ctx, p.family)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AnalysisMarkdown(analysis))
	return subcommands.ExitSuccess
}
