package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/habitwealth/habitbank/fsstore"
)

type habitsCmd struct {
	family string
	file   string
}

func (*habitsCmd) Name() string     { return "habits" }
func (*habitsCmd) Synopsis() string { return "list or import the family's habit collection" }
func (*habitsCmd) Usage() string {
	return `hbk habits -family <id> [-import <file.jsonl>]

  Without -import, lists the tracked habits with streak and account. With
  -import, replaces the habit collection from a JSONL file, one habit
  document per line.
`
}

func (p *habitsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.family, "family", "", "Family identifier.")
	f.StringVar(&p.file, "import", "", "Habit collection to import (JSONL file).")
}

func (p *habitsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.family == "" {
		fmt.Fprintln(os.Stderr, "missing -family")
		return subcommands.ExitUsageError
	}

	if p.file != "" {
		return importHabits(ctx, p.family, p.file)
	}

	store, closeStore, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	habits, err := store.Habits(ctx, p.family)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for i := range habits {
		h := &habits[i]
		spec := h.AccountType().Spec()
		fmt.Printf("%-24s %s %-20s streak %-3d completions %d\n",
			h.ID, spec.Emoji, h.Title, h.Streak, len(h.Completions))
	}
	return subcommands.ExitSuccess
}

// importHabits replaces the family's habit collection from a JSONL file.
func importHabits(ctx context.Context, familyID, path string) subcommands.ExitStatus {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	habits, err := fsstore.DecodeHabits(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	store, closeStore, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if err := store.PutHabits(ctx, familyID, habits); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("imported %d habits for %s\n", len(habits), familyID)
	return subcommands.ExitSuccess
}
