package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/habitwealth/habitbank/renderer"
)

type rewardsCmd struct{}

func (*rewardsCmd) Name() string     { return "rewards" }
func (*rewardsCmd) Synopsis() string { return "list the reward catalog" }
func (*rewardsCmd) Usage() string {
	return `hbk rewards

  Lists the rewards families can redeem, with cost and funding account.
`
}

func (*rewardsCmd) SetFlags(*flag.FlagSet) {}

func (*rewardsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := loadCatalog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CatalogMarkdown(catalog))
	return subcommands.ExitSuccess
}
