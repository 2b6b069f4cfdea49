package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type redeemCmd struct {
	family string
	reward string
	by     string
}

func (*redeemCmd) Name() string     { return "redeem" }
func (*redeemCmd) Synopsis() string { return "redeem a catalog reward against its account" }
func (*redeemCmd) Usage() string {
	return `hbk redeem -family <id> -reward <id> [-by <user>]

  Withdraws the reward's cost from its account. Fails without touching the
  ledger when the balance does not cover the cost.
`
}

func (p *redeemCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.family, "family", "", "Family identifier.")
	f.StringVar(&p.reward, "reward", "", "Reward identifier from the catalog.")
	f.StringVar(&p.by, "by", "", "Approving user.")
}

func (p *redeemCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.family == "" || p.reward == "" {
		fmt.Fprintln(os.Stderr, "missing -family or -reward")
		return subcommands.ExitUsageError
	}

	bank, closeStore, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	receipt, err := bank.Withdraw(ctx, p.reward, p.family, p.by)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	spec := receipt.Reward.Account.Spec()
	fmt.Printf("🎁 redeemed %s for %s from %s %s\n",
		receipt.Reward.Name, receipt.Withdrawal.Amount, spec.Emoji, spec.Name)
	fmt.Printf("new balance %s\n", receipt.NewBalance)
	return subcommands.ExitSuccess
}
