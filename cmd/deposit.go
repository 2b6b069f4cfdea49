package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/habitwealth/habitbank"
)

type depositCmd struct {
	family  string
	habit   string
	user    string
	quality int
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "credit a habit completion to its wealth account" }
func (*depositCmd) Usage() string {
	return `hbk deposit -family <id> -habit <id> [-user <id>] [-quality 1..5]

  Credits a completed habit: the base amount with streak and helper bonuses,
  boosted by the account tier, plus the compound interest accrued since the
  last deposit.
`
}

func (p *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.family, "family", "", "Family identifier.")
	f.StringVar(&p.habit, "habit", "", "Habit identifier.")
	f.StringVar(&p.user, "user", "", "User who completed the habit.")
	f.IntVar(&p.quality, "quality", 0, "Completion quality in [1,5] (0 counts as 5).")
}

func (p *depositCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.family == "" || p.habit == "" {
		fmt.Fprintln(os.Stderr, "missing -family or -habit")
		return subcommands.ExitUsageError
	}

	bank, closeStore, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	receipt, err := bank.Deposit(ctx, habitbank.DepositRequest{
		FamilyID: p.family,
		HabitID:  p.habit,
		UserID:   p.user,
		Quality:  p.quality,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	spec := receipt.Account.Spec()
	fmt.Printf("%s credited %s to %s (deposit %s, interest %s)\n",
		spec.Emoji, receipt.Deposit.CreditedAmount, spec.Name,
		receipt.Deposit.Amount, receipt.Deposit.Interest())
	fmt.Printf("new balance %s, tier %s %s\n", receipt.NewBalance, receipt.Tier.Emoji, receipt.Tier.Name)
	for _, u := range receipt.UnlockedRewards {
		fmt.Printf("🎉 unlocked %s (total value crossed %d)\n", u.Name, u.Threshold)
	}
	return subcommands.ExitSuccess
}
