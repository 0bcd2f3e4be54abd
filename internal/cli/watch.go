package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/alexandrbasis/claude-agents-sync/internal/reconcile"
	"github.com/alexandrbasis/claude-agents-sync/internal/ui"
	"github.com/alexandrbasis/claude-agents-sync/internal/watch"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch a project tree and reconcile pairs on every edit",
		UsageText: "agentsync watch [root]",
		Description: `Continuously watch the tree for writes to CLAUDE.md or AGENTS.md and
   reconcile the owning pair after each one. Runs until interrupted.

   This is the standalone alternative to the editor hook: use it when
   files are edited by tools that fire no hooks.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			root := cfg.ResolveRoot(cmd.Args().Get(0))

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := watch.New(root, newReconciler(cfg, root), cfg.Watch.Debounce.Std())
			w.OnResult = func(result *reconcile.Result) {
				printResult(result)
			}

			fmt.Printf("Watching %s (ctrl-c to stop)\n", ui.Bold(root))

			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("watch failed: %w", err)
			}
			return nil
		},
	}
}
