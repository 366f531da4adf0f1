package cmd

import (
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/generation"
)

var generationsCmd = &cobra.Command{
	Use:   "generations",
	Short: "List the generation ranges",
	Long: `Generations prints the fixed Pokédex number range of every generation.

Example:
  pokedex generations`,
	Args: cobra.NoArgs,
	Run:  runGenerations,
}

func init() {
	rootCmd.AddCommand(generationsCmd)
}

func runGenerations(cmd *cobra.Command, args []string) {
	cmd.Println(color.Bold.Sprintf("%-4s %-8s %-10s %5s", "Gen", "Region", "Range", "Size"))
	for _, r := range generation.Default().Ranges() {
		cmd.Printf("%-4d %-8s %-10s %5d\n", r.Key, r.Region, r.String(), r.Size())
	}
}
