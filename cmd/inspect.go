package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type inspectCmd struct {
	family string
	path   string
}

func (*inspectCmd) Name() string     { return "inspect" }
func (*inspectCmd) Synopsis() string { return "query the raw ledger document with a JSONPath" }
func (*inspectCmd) Usage() string {
	return `hbk inspect -family <id> [-path <jsonpath>]

  Prints the ledger document, or the part of it selected by a JSONPath
  expression, e.g. $.accounts[?(@.accountType=="energy")].balance
`
}

func (p *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.family, "family", "", "Family identifier.")
	f.StringVar(&p.path, "path", "$", "JSONPath expression to select a part of the document.")
}

func (p *inspectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// Round-trip through plain JSON values so jsonpath can walk the document.
	raw, err := json.Marshal(ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	val, err := jsonpath.Get(p.path, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsonpath %q: %v\n", p.path, err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(val); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
