package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/alexandrbasis/claude-agents-sync/internal/config"
	"github.com/alexandrbasis/claude-agents-sync/internal/pair"
	"github.com/alexandrbasis/claude-agents-sync/internal/reconcile"
	"github.com/alexandrbasis/claude-agents-sync/internal/ui"
	"github.com/alexandrbasis/claude-agents-sync/internal/ui/tui"
)

func pairsCommand() *cli.Command {
	return &cli.Command{
		Name:      "pairs",
		Usage:     "Discover instruction file pairs in a project tree",
		UsageText: "agentsync pairs [options] [root]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Browse pairs in an interactive list",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit machine-readable JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			root := cfg.ResolveRoot(cmd.Args().Get(0))

			d := pair.NewWithIgnorer(pair.NewIgnorer(cfg.Discovery.Exclude...))
			result, err := d.Discover(root)
			if err != nil {
				return fmt.Errorf("discovery failed: %w", err)
			}

			infos := collectPairInfo(root, result)

			switch {
			case cmd.Bool("json"):
				return printPairsJSON(infos, result.SkippedDirs)
			case cmd.Bool("interactive"):
				return browsePairs(cfg, root, infos)
			default:
				printPairsTable(infos, result)
				return nil
			}
		},
	}
}

// pairListing is the JSON shape for one pair.
type pairListing struct {
	Dir       string `json:"dir"`
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	InSync    bool   `json:"in_sync"`
}

func collectPairInfo(root string, result *pair.Result) []tui.PairInfo {
	infos := make([]tui.PairInfo, 0, result.Pairs.Cardinality())
	for p := range result.Pairs.Iter() {
		info := tui.PairInfo{Pair: p, Name: p.Name(root)}

		primaryData, perr := os.ReadFile(p.PrimaryPath)     // #nosec G304 - discovered pair path
		secondaryData, serr := os.ReadFile(p.SecondaryPath) // #nosec G304 - discovered pair path
		if perr == nil && serr == nil {
			info.InSync = reconcile.Equivalent(primaryData, secondaryData)
		}

		if stat, err := os.Stat(p.PrimaryPath); err == nil {
			info.Size = stat.Size()
			info.Modified = stat.ModTime()
		}
		if stat, err := os.Stat(p.SecondaryPath); err == nil && stat.ModTime().After(info.Modified) {
			info.Modified = stat.ModTime()
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func printPairsTable(infos []tui.PairInfo, result *pair.Result) {
	if len(infos) == 0 {
		fmt.Println("No instruction file pairs found.")
		return
	}

	fmt.Printf("%s\n\n", ui.Header(fmt.Sprintf("%d pair(s) discovered", len(infos))))
	for _, info := range infos {
		status := ui.StatusSuccess("in sync")
		if !info.InSync {
			status = ui.StatusWarning("out of sync")
		}
		modified := ""
		if !info.Modified.IsZero() {
			modified = ui.Dim(fmt.Sprintf(" (modified %s)", humanize.Time(info.Modified)))
		}
		fmt.Printf("  %s  %s%s\n", ui.Bold(info.Name), status, modified)
	}

	if result.Partial() {
		fmt.Printf("\n%s\n", ui.StatusWarning(fmt.Sprintf("%d director(ies) skipped (unreadable)", len(result.SkippedDirs))))
	}
}

func printPairsJSON(infos []tui.PairInfo, skipped []string) error {
	listings := make([]pairListing, len(infos))
	for i, info := range infos {
		listings[i] = pairListing{
			Dir:       info.Pair.Dir,
			Name:      info.Name,
			Primary:   info.Pair.PrimaryPath,
			Secondary: info.Pair.SecondaryPath,
			InSync:    info.InSync,
		}
	}

	out := struct {
		Pairs       []pairListing `json:"pairs"`
		SkippedDirs []string      `json:"skipped_dirs,omitempty"`
	}{Pairs: listings, SkippedDirs: skipped}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// browsePairs runs the interactive browser; selecting a pair
// reconciles it using its most recently modified side as the trigger.
func browsePairs(cfg *config.Config, root string, infos []tui.PairInfo) error {
	if !tui.IsInteractive() {
		return fmt.Errorf("interactive mode requires a terminal")
	}

	listResult, err := tui.RunPairList(infos)
	if err != nil {
		return fmt.Errorf("interactive browser failed: %w", err)
	}

	if listResult.Action != tui.PairActionSync {
		return nil
	}

	trigger := newestSide(listResult.Pair)
	result := newReconciler(cfg, root).Sync(trigger)
	printResult(result)
	if result.Failed() {
		return result.Err
	}
	return nil
}

// newestSide picks the pair member with the later mtime. Only the
// interactive browser uses this: a manual selection has no trigger
// path, so recency stands in for "the file the user just edited".
func newestSide(p pair.SyncPair) string {
	primary, perr := os.Stat(p.PrimaryPath)
	secondary, serr := os.Stat(p.SecondaryPath)
	if perr != nil || serr != nil {
		return p.PrimaryPath
	}
	if secondary.ModTime().After(primary.ModTime()) {
		return p.SecondaryPath
	}
	return p.PrimaryPath
}
