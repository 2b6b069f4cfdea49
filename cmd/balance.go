package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/habitwealth/habitbank/renderer"
)

type balanceCmd struct {
	family string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the family's accounts, tiers and total value" }
func (*balanceCmd) Usage() string {
	return `hbk balance -family <id>

  Shows the current balance, tier and interest rate of each account, with the
  family total and diversification score.
`
}

func (p *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.family, "family", "", "Family identifier.")
}

func (p *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.family == "" {
		fmt.Fprintln(os.Stderr, "missing -family")
		return subcommands.ExitUsageError
	}

	store, closeStore, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	ledger, err := store.Ledger(ctx, p.family)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LedgerMarkdown(ledger))
	return subcommands.ExitSuccess
}
