package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/alexandrbasis/claude-agents-sync/internal/reconcile"
	"github.com/alexandrbasis/claude-agents-sync/internal/ui"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Reconcile the instruction pair owning a file",
		UsageText: "agentsync sync <path>",
		Description: `Reconcile the CLAUDE.md/AGENTS.md pair in the directory of the given
   file. The given file is the source of truth: when the pair differs,
   its counterpart is overwritten with the file's exact bytes. A file
   with no counterpart, or a path that is not an instruction file, is a
   no-op.

   Examples:
     agentsync sync CLAUDE.md
     agentsync sync backend/AGENTS.md`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return errors.New("sync requires exactly 1 argument: <path>")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			trigger := args.Get(0)
			root := cfg.ResolveRoot(filepath.Dir(trigger))

			result := newReconciler(cfg, root).Sync(trigger)
			printResult(result)

			if result.Failed() {
				return result.Err
			}
			return nil
		},
	}
}

// printResult renders a reconcile result for the terminal.
func printResult(result *reconcile.Result) {
	switch result.Outcome {
	case reconcile.OutcomeSynced:
		fmt.Println(ui.StatusSuccess(result.Summary()))
	case reconcile.OutcomeAlreadyInSync:
		fmt.Println(ui.StatusSkipped(result.Summary()))
	case reconcile.OutcomeError:
		fmt.Println(ui.StatusError(result.Summary()))
	default:
		fmt.Println(ui.StatusWarning(result.Summary()))
	}
}
