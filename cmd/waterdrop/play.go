package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/waterdrop/internal/audio"
	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/game"
	"github.com/vovakirdan/waterdrop/internal/platform/tui"
)

var (
	flagDifficulty string
	flagNoSound    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start the game. Without --difficulty a menu asks for the level first.

Controls:
  Mouse      - Click a drop to catch it
  S/Space    - Start a round
  P          - Pause/resume
  R          - Play again (after a round)
  1/2/3      - Easy/Normal/Hard (between rounds)
  A          - Achievements
  M          - Sound on/off
  ?          - More keys
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 40s round, a drop every 800ms at first, win at 80
  normal - 30s round, a drop every 600ms at first, win at 100
  hard   - 20s round, a drop every 450ms at first, win at 120

Examples:
  waterdrop play
  waterdrop play --difficulty easy
  waterdrop play --profile alice --no-sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard (menu if empty)")
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Do not open the audio device")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	rt := runtimeConfig()

	var level config.Level
	if flagDifficulty != "" {
		parsed, err := config.ParseLevel(flagDifficulty)
		if err != nil {
			fatalf("%v", err)
		}
		level = parsed
	} else {
		chosen, ok, err := tui.RunDifficultySelector(cfg.Difficulty, cfg.Difficulty.DefaultOrNormal(), rt)
		if err != nil {
			fatalf("%v", err)
		}
		if !ok {
			return
		}
		level = chosen
	}

	logFile, err := openLogFile()
	if err != nil {
		fatalf("%v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "waterdrop")

	store := openStore()
	defer store.Close()
	ps := store.Profile(rt.Profile)

	var sink game.AudioSink
	if !flagNoSound {
		player := audio.NewPlayer(audio.DefaultGain)
		if err := player.Initialize(); err != nil {
			logger.Warn("audio unavailable, playing silently", "error", err)
		} else {
			defer player.Close()
		}
		sink = player
	}

	logger.Info("starting", "profile", rt.Profile, "level", level, "seed", rt.Seed)
	err = tui.Run(tui.Options{
		Config:  cfg,
		Runtime: rt,
		Level:   level,
		Store:   ps,
		History: ps,
		Audio:   sink,
		Logger:  logger,
	})
	if err != nil {
		fatalf("%v", err)
	}
}
