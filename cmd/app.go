// Package cmd implements the CLI application to manage a family habit bank.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/habitwealth/habitbank"
	"github.com/habitwealth/habitbank/advisor"
	"github.com/habitwealth/habitbank/fsstore"
	"github.com/habitwealth/habitbank/sqlitestore"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "bank")
	c.Register(&balanceCmd{}, "bank")
	c.Register(&depositCmd{}, "bank")
	c.Register(&redeemCmd{}, "bank")

	c.Register(&statementCmd{}, "reports")
	c.Register(&portfolioCmd{}, "reports")
	c.Register(&scheduleCmd{}, "reports")

	c.Register(&rewardsCmd{}, "catalog")
	c.Register(&habitsCmd{}, "habits")
	c.Register(&inspectCmd{}, "habits")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeDir = flag.String("store-dir", ".habitbank", "Path to the file store folder")
var dbFile = flag.String("db", "", "Path to a SQLite database file (overrides -store-dir)")
var catalogFile = flag.String("catalog", "", "Path to a TOML reward catalog (defaults to the built-in catalog)")

// appStore is what the CLI needs from a store, on top of the engine port.
type appStore interface {
	habitbank.Store
	PutHabits(ctx context.Context, familyID string, habits []habitbank.Habit) error
	Families(ctx context.Context) ([]string, error)
}

// openStore opens the configured store: SQLite when -db is set, plain files
// otherwise. The returned close func is a no-op for the file store.
func openStore() (appStore, func() error, error) {
	if *dbFile != "" {
		s, err := sqlitestore.Open(*dbFile)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	s, err := fsstore.Open(*storeDir)
	if err != nil {
		return nil, nil, err
	}
	return s, func() error { return nil }, nil
}

// openBank wires a Bank on the configured store, catalog and advisor.
func openBank(ctx context.Context) (*habitbank.Bank, func() error, error) {
	store, closeStore, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	opts := []habitbank.Option{habitbank.WithAdvisor(newAdvisor(ctx))}
	if *catalogFile != "" {
		catalog, err := habitbank.LoadCatalog(*catalogFile)
		if err != nil {
			closeStore()
			return nil, nil, err
		}
		opts = append(opts, habitbank.WithCatalog(catalog))
	}
	return habitbank.New(store, opts...), closeStore, nil
}

// newAdvisor returns the Gemini advisor when an API key is configured, the
// canned one otherwise. Gemini failures fall back to canned text at runtime.
func newAdvisor(ctx context.Context) advisor.Advisor {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return advisor.Static{}
	}
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Println("warning, Gemini client unavailable, using canned insights:", err)
		return advisor.Static{}
	}
	return advisor.NewResilient(advisor.NewGemini(client))
}

// loadCatalog returns the catalog the bank commands would use.
func loadCatalog() (habitbank.Catalog, error) {
	if *catalogFile == "" {
		return habitbank.DefaultCatalog(), nil
	}
	return habitbank.LoadCatalog(*catalogFile)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
