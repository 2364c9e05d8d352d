package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/feed"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeFeed   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the main menu. The SSH user
name is the save profile, so every player keeps their own bank, upgrades and
run history in the shared database. Use a postgres:// --db to share it
between several servers.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blocktown/host_key

Examples:
  blocktown serve                               # Listen on :23234
  blocktown serve --ssh :2222                   # Listen on port 2222
  blocktown serve --db postgres://u:p@db/town   # Shared PostgreSQL saves
  blocktown serve --feed :8089                  # Also stream run events

Users can connect with:
  ssh -p 23234 <name>@localhost`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeFeed, "feed", "", "Serve run events of every session over websocket at this address")
}

func runServe(_ *cobra.Command, _ []string) {
	tuning := loadTuning()
	logger, closeLog := newLogger(false)
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := openStore(ctx)
	defer store.Close()

	env := tui.Env{
		Store:  store,
		Tuning: tuning,
		Logger: logger,
	}
	if flagServeFeed != "" {
		hub := feed.NewHub(logger)
		env.Listener = hub
		go func() {
			if err := feed.ListenAndServe(ctx, flagServeFeed, hub); err != nil {
				logger.Error("event feed stopped", "err", err)
			}
		}()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg, env)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Block Town SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
