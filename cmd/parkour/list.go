package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkour/internal/config"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long: `Shows every runner variant and the mechanics it enables.

  hold    - holding jump lowers gravity for a higher jump
  crouch  - hard landings crouch briefly
  score   - distance is scored
  ramp    - speed increases over the run`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(_ *cobra.Command, _ []string) {
	fmt.Printf("  %-16s  %-16s  %-4s  %-6s  %-5s  %-4s  %s\n", "ID", "Title", "Hold", "Crouch", "Score", "Ramp", "")
	fmt.Printf("  %-16s  %-16s  %-4s  %-6s  %-5s  %-4s\n", "--", "-----", "----", "------", "-----", "----")
	for _, v := range config.Variants() {
		cfg := config.DefaultRunnerConfig()
		config.ApplyVariant(&cfg, v)

		info, ok := registry.Lookup(runner.New(v).ID())
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %-16s  %-4s  %-6s  %-5s  %-4s  %s\n",
			info.ID, info.Title,
			mark(cfg.Features.ButtonHold), mark(cfg.Features.Crouch),
			mark(cfg.Features.Scoring), mark(cfg.Speed.Acceleration > 0),
			info.Description)
	}

	fmt.Println()
	fmt.Println("Run 'parkour play <variant>' to play, e.g. 'parkour play hold'.")
}

func mark(on bool) string {
	if on {
		return "yes"
	}
	return "-"
}
