// waterdrop is a terminal game: catch the clean water drops before they hit
// the ground and avoid the polluted ones.
//
// Usage:
//
//	waterdrop play              - Play a round (difficulty menu first)
//	waterdrop serve             - Start SSH server for remote play
//	waterdrop stats             - Show profile totals
//	waterdrop history           - Browse finished rounds
//	waterdrop badges            - List achievements
//	waterdrop mute              - Toggle sound
//	waterdrop reset-profile     - Delete a profile
//	waterdrop config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.waterdrop/waterdrop.db)
//	--profile <name>    - Profile to load and update (default: local)
//	--config <path>     - Custom config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/core"
	"github.com/vovakirdan/waterdrop/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagProfile  string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "waterdrop",
	Short: "Waterdrop - catch clean water in your terminal",
	Long: `Waterdrop is a short arcade round: clean drops fall from the sky,
catch them with the mouse for points and leave the polluted ones alone.
Reach the milestone before the timer runs out to win.

Available commands:
  play           - Play a round
  serve          - Start SSH server for remote play
  stats          - Show profile totals
  history        - Browse finished rounds
  badges         - List achievements
  mute           - Toggle sound
  reset-profile  - Delete a profile
  config         - Print the effective configuration

Examples:
  waterdrop play
  waterdrop play --difficulty hard
  waterdrop serve --ssh :2222
  waterdrop stats --profile alice`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", core.DefaultProfile, "Profile to load and update")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(muteCmd)
	rootCmd.AddCommand(resetProfileCmd)
	rootCmd.AddCommand(configCmd)
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatalf("%v", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// openLogFile opens ~/.waterdrop/waterdrop.log for appending, so log lines
// stay out of the alternate screen.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".waterdrop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "waterdrop.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// loadConfig loads the game config or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	return cfg
}

// openStore opens the profile database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening profile database: %v", err)
	}
	return store
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Profile = flagProfile
	return cfg
}
