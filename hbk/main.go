// Command hbk is the habit bank CLI.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/habitwealth/habitbank/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion for hbk. It returns immediately when
// the process is not running in a completion context.
func completion() {
	family := map[string]complete.Predictor{"family": predict.Nothing}
	root := &complete.Command{
		Flags: map[string]complete.Predictor{
			"store-dir": predict.Dirs("*"),
			"db":        predict.Files("*.db"),
			"catalog":   predict.Files("*.toml"),
		},
		Sub: map[string]*complete.Command{
			"init": {Flags: map[string]complete.Predictor{
				"family": predict.Nothing,
				"habits": predict.Files("*.jsonl"),
			}},
			"balance": {Flags: family},
			"deposit": {Flags: map[string]complete.Predictor{
				"family":  predict.Nothing,
				"habit":   predict.Nothing,
				"user":    predict.Nothing,
				"quality": predict.Set{"1", "2", "3", "4", "5"},
			}},
			"redeem": {Flags: map[string]complete.Predictor{
				"family": predict.Nothing,
				"reward": predict.Nothing,
				"by":     predict.Nothing,
			}},
			"statement": {Flags: family},
			"portfolio": {Flags: family},
			"schedule": {Flags: map[string]complete.Predictor{
				"family": predict.Nothing,
				"cron":   predict.Nothing,
			}},
			"rewards": {},
			"habits": {Flags: map[string]complete.Predictor{
				"family": predict.Nothing,
				"import": predict.Files("*.jsonl"),
			}},
			"inspect": {Flags: map[string]complete.Predictor{
				"family": predict.Nothing,
				"path":   predict.Nothing,
			}},
		},
	}
	root.Complete("hbk")
}
