package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkour/internal/games/runner"
)

var flagShowRows bool

var patternsCmd = &cobra.Command{
	Use:   "patterns [catalog.yaml]",
	Short: "Show the obstacle pattern catalog",
	Long: `List the patterns the obstacle field spawns from: the built-in catalog, or
a custom catalog file in the same format as the 'patterns' config key.

Grid legend: C coin, B box, A anvil, lowercase b/a the right half of a
two-cell box or anvil, '.' empty. The last row sits on the ground.

Examples:
  parkour patterns
  parkour patterns --rows
  parkour patterns ./my-patterns.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatterns,
}

func init() {
	patternsCmd.Flags().BoolVar(&flagShowRows, "rows", false, "Print each pattern's grid")
}

func runPatterns(_ *cobra.Command, args []string) error {
	rng := rand.New(rand.NewSource(1))
	catalog := runner.BuiltinCatalog(rng)
	if len(args) == 1 {
		c, err := runner.LoadCatalogFile(args[0], rng)
		if err != nil {
			return err
		}
		catalog = c
	}

	all := catalog.Patterns()
	if intro := catalog.Intro(); intro != nil {
		all = append([]*runner.Pattern{intro}, all...)
	}

	fmt.Printf("  %-14s  %-5s  %-9s  %-5s  %-5s  %s\n", "Name", "Intro", "Size", "Coins", "Boxes", "Anvils")
	fmt.Printf("  %-14s  %-5s  %-9s  %-5s  %-5s  %s\n", "----", "-----", "----", "-----", "-----", "------")
	for _, p := range all {
		cols, rows := p.Size()
		intro := ""
		if p == catalog.Intro() {
			intro = "yes"
		}
		fmt.Printf("  %-14s  %-5s  %-9s  %-5d  %-5d  %d\n",
			p.Name, intro, fmt.Sprintf("%dx%d", cols, rows),
			p.Count(runner.KindCoin), p.Count(runner.KindBox), p.Count(runner.KindAnvil))

		if flagShowRows {
			fmt.Printf("    cell %gx%g px\n", p.CellW, p.CellH)
			fmt.Println("    " + strings.Join(p.Rows(), "\n    "))
			fmt.Println()
		}
	}
	return nil
}
