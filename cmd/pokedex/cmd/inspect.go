package cmd

import (
	"context"
	"fmt"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/catalog"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/logger"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/source"
)

var (
	inspectShowSkipped bool
	inspectGeneration  int
)

// nameWidth is the display width reserved for names in record listings.
const nameWidth = 24

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the catalog source and summarize it",
	Long: `Inspect reads the configured catalog source without starting the server
and prints how its rows were grouped.

Output includes:
  - Rows read, loaded, skipped, out of range and duplicate ids
  - Records and collected count per generation
  - Optionally the skipped rows and the records of one generation

Example:
  pokedex inspect --source Pokedex.xlsx --show-skipped
  pokedex inspect --generation 1`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectShowSkipped, "show-skipped", false, "List skipped rows with their reason")
	inspectCmd.Flags().IntVarP(&inspectGeneration, "generation", "g", 0, "List the records of one generation")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}

	reader, err := source.FromConfig(cfg)
	if err != nil {
		return err
	}

	svc := newCatalog(cfg, nil, logger.NewNop())
	snap, err := svc.Preview(context.Background(), reader)
	if err != nil {
		return err
	}

	stats := snap.Stats
	cmd.Printf("Source: %s\n", snap.Source)
	cmd.Printf("Rows: %d  Loaded: %s  Skipped: %s  Out of range: %d  Duplicates: %d\n\n",
		stats.Rows,
		color.Green.Sprint(stats.Loaded),
		warnCount(stats.Skipped),
		stats.OutOfRange,
		stats.Duplicates,
	)

	cmd.Println(color.Bold.Sprintf("%-4s %-8s %-10s %7s %9s %8s", "Gen", "Region", "Range", "Records", "Collected", "Progress"))
	for _, g := range snap.Summary() {
		cmd.Printf("%-4d %-8s %-10s %7d %9d %8s\n", g.Key, g.Region, g.String(), g.Count, g.Owned, progress(g))
	}

	if inspectShowSkipped && len(stats.Skips) > 0 {
		cmd.Println()
		cmd.Println(color.Bold.Sprint("Skipped rows:"))
		for _, s := range stats.Skips {
			cmd.Printf("  line %-6d %s\n", s.Line, s.Reason)
		}
		if more := stats.Skipped - len(stats.Skips); more > 0 {
			cmd.Printf("  ... and %d more\n", more)
		}
	}

	if inspectGeneration != 0 {
		records, ok := snap.Bucket(inspectGeneration)
		if !ok {
			return fmt.Errorf("%w: %d", catalog.ErrGenerationNotFound, inspectGeneration)
		}
		cmd.Println()
		cmd.Println(color.Bold.Sprintf("Generation %d:", inspectGeneration))
		for _, rec := range records {
			mark := color.Gray.Sprint("[ ]")
			if rec.Owned {
				mark = color.Green.Sprint("[x]")
			}
			cmd.Printf("  #%04d %s %s\n", rec.ID, runewidth.FillRight(runewidth.Truncate(rec.Name, nameWidth, "…"), nameWidth), mark)
		}
	}

	return nil
}

func warnCount(n int) string {
	if n == 0 {
		return "0"
	}
	return color.Yellow.Sprint(n)
}

// progress renders the collected share of the full range, not of the loaded rows.
// Duplicate ids can push Owned past the range size; the share stops at 100%.
func progress(g catalog.GenerationSummary) string {
	owned := min(g.Owned, g.Size())
	pct := float64(owned) * 100 / float64(g.Size())
	text := fmt.Sprintf("%.1f%%", pct)
	switch {
	case owned == g.Size():
		return color.Green.Sprint(text)
	case g.Owned == 0:
		return text
	default:
		return color.Cyan.Sprint(text)
	}
}
