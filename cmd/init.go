package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/habitwealth/habitbank/renderer"
)

type initCmd struct {
	family string
	habits string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "open the family's habit bank from its completion history" }
func (*initCmd) Usage() string {
	return `hbk init -family <id> [-habits <file.jsonl>]

  Creates the family's ledger with balances seeded from the habit completion
  history, or refreshes the portfolio when the ledger already exists.
`
}

func (p *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.family, "family", "", "Family identifier.")
	f.StringVar(&p.habits, "habits", "", "Habit collection to import first (JSONL file).")
}

func (p *initCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.family == "" {
		fmt.Fprintln(os.Stderr, "missing -family")
		return subcommands.ExitUsageError
	}

	if p.habits != "" {
		if status := importHabits(ctx, p.family, p.habits); status != subcommands.ExitSuccess {
			return status
		}
	}

	bank, closeStore, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	ledger, err := bank.Bootstrap(ctx, p.family)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LedgerMarkdown(ledger))
	return subcommands.ExitSuccess
}
