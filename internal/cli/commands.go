package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/alexandrbasis/claude-agents-sync/internal/ui"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "Show the effective configuration",
		UsageText: "agentsync config",
		Description: `Print the configuration agentsync would use, after merging the
   config file, environment overrides, and defaults.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			root := cfg.ResolveRoot("")
			logPath := cfg.SyncLogPath(root)
			if logPath == "" {
				logPath = ui.Dim("(disabled)")
			}

			exclude := ui.Dim("(none)")
			if len(cfg.Discovery.Exclude) > 0 {
				exclude = strings.Join(cfg.Discovery.Exclude, ", ")
			}

			fmt.Println(ui.Header("Configuration"))
			fmt.Printf("  %s %s\n", ui.Bold("Root:"), root)
			fmt.Printf("  %s %s\n", ui.Bold("Sync log:"), logPath)
			fmt.Printf("  %s %s\n", ui.Bold("Exclude:"), exclude)
			fmt.Printf("  %s %s\n", ui.Bold("Debounce:"), cfg.Watch.Debounce.Std())
			return nil
		},
	}
}
