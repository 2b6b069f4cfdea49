package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

type scheduleCmd struct {
	family string
	spec   string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "run weekly statements on a cron schedule" }
func (*scheduleCmd) Usage() string {
	return `hbk schedule [-family <id>] [-cron <spec>]

  Runs in the foreground and generates statements on the given cron schedule,
  Sunday 18:00 by default. Without -family, every family in the store gets a
  statement.
`
}

func (p *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.family, "family", "", "Only generate statements for this family.")
	f.StringVar(&p.spec, "cron", "0 18 * * 0", "Cron schedule for statement generation.")
}

func (p *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bank, closeStore, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	store, closeList, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeList()

	run := func() {
		families := []string{p.family}
		if p.family == "" {
			var err error
			families, err = store.Families(ctx)
			if err != nil {
				log.Println("could not list families:", err)
				return
			}
		}
		for _, family := range families {
			statement, err := bank.WeeklyStatement(ctx, family)
			if err != nil {
				log.Printf("statement for %s failed: %v", family, err)
				continue
			}
			log.Printf("statement %s for %s: net growth %s", statement.ID, family, statement.Summary.NetGrowth)
		}
	}

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(p.spec, run); err != nil {
		fmt.Fprintf(os.Stderr, "invalid cron spec %q: %v\n", p.spec, err)
		return subcommands.ExitUsageError
	}
	c.Start()
	defer c.Stop()

	log.Printf("statement scheduler running (%s), ctrl-c to stop", p.spec)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}
	return subcommands.ExitSuccess
}
