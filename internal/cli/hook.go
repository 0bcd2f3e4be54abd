package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/alexandrbasis/claude-agents-sync/internal/hook"
	"github.com/alexandrbasis/claude-agents-sync/internal/logging"
)

func hookCommand() *cli.Command {
	return &cli.Command{
		Name:      "hook",
		Usage:     "Reconcile a pair from a PostToolUse hook event",
		UsageText: "agentsync hook [path]",
		Description: `Entry point for editor hook integrations. The trigger path is taken
   from the first argument, then the FILE_PATH environment variable,
   and finally from a PostToolUse JSON event on stdin.

   Events for tools other than Edit and Write are ignored, as are
   paths that are not CLAUDE.md or AGENTS.md. Those cases exit zero so
   the hook never blocks the editing tool.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logging.FromContext(ctx)

			trigger := hook.FallbackPath(cmd.Args().Slice(), os.Getenv)
			if trigger == "" {
				event, err := hook.ParseEvent(os.Stdin)
				if err != nil {
					// A malformed envelope is the caller's bug, not a
					// sync failure. Log and stand down.
					log.Warn("unreadable hook event", logging.Err(err))
					return nil
				}
				path, ok := event.TriggerPath()
				if !ok {
					log.Debug("hook event carries no trigger", logging.Path(event.ToolInput.FilePath))
					return nil
				}
				trigger = path
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			root := cfg.ResolveRoot(filepath.Dir(trigger))

			result := newReconciler(cfg, root).Sync(trigger)
			if result.NoOp() {
				// Unrelated or unpaired file: stay silent so the
				// editing tool sees no hook chatter.
				log.Debug("hook reconcile was a no-op",
					logging.Trigger(trigger),
					logging.Outcome(string(result.Outcome)),
				)
				return nil
			}
			printResult(result)
			if result.Failed() {
				return result.Err
			}
			return nil
		},
	}
}
