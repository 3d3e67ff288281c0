package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkour/internal/platform/tui"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeNoRecord bool
	flagServeHold     time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the parkour SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a variant picker menu and
its own simulation. Finished runs are recorded in the --db database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.parkour/host_key

Examples:
  parkour serve                           # Listen on :23234 with auto-generated key
  parkour serve --ssh :2222               # Listen on port 2222
  parkour serve --host-key ./my_host_key  # Use specific host key
  parkour serve --no-record               # Do not keep replays

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeNoRecord, "no-record", false, "Do not record finished runs")
	serveCmd.Flags().DurationVar(&flagServeHold, "hold-window", 250*time.Millisecond, "Jump hold window for remote terminals")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for every session")
}

func runServe(_ *cobra.Command, _ []string) error {
	prefs := loadSettings().Settings()
	if err := applyGameFlags(prefs); err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.HoldWindow = flagServeHold
	cfg.Record = !flagServeNoRecord

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("parkour-ssh"))
	if err != nil {
		return err
	}

	logger.Info("connect with: ssh localhost -p <port>", "address", server.Addr())
	logger.Info("press Ctrl+C to stop")
	return server.ListenAndServe()
}
