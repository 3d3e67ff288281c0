package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkour/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change saved preferences",
	Long: `Preferences are stored in the user data directory and provide defaults
for 'parkour play'. Command-line flags always win.

Keys:
  sound        on or off
  volume       0.0 to 1.0
  variant      default variant for the window frontend
  difficulty   easy, normal, hard, fixed or empty
  hold_window  seconds a terminal jump key counts as held

Examples:
  parkour settings
  parkour settings get volume
  parkour settings set sound off
  parkour settings set hold_window 0.4`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		m := loadSettings()
		for _, k := range settings.Keys() {
			v, err := m.Get(k)
			if err != nil {
				return err
			}
			fmt.Printf("  %-12s %s\n", k, v)
		}
		if !m.Persistent() {
			fmt.Println()
			fmt.Println("(settings storage unavailable, showing defaults)")
		}
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		v, err := loadSettings().Get(args[0])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change and save one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		m := loadSettings()
		if !m.Persistent() {
			return fmt.Errorf("settings storage unavailable")
		}
		if err := m.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := m.Save(); err != nil {
			return err
		}
		logger.Info("setting saved", "key", args[0])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
