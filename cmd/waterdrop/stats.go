package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/waterdrop/internal/achievement"
	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/platform/tui"
	"github.com/vovakirdan/waterdrop/internal/storage"
)

var (
	flagPlain  bool
	flagRecent bool
	flagLimit  int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile totals",
	Long: `Display the saved totals of a profile and a summary of its round history.

Examples:
  waterdrop stats
  waterdrop stats --profile alice`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse finished rounds",
	Long: `Show the finished rounds of a profile, best first.

Without --plain the rounds are shown in an interactive table; tab switches
between profiles and o between best and most recent rounds.

Examples:
  waterdrop history
  waterdrop history --plain --recent --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive view")
	historyCmd.Flags().BoolVar(&flagRecent, "recent", false, "Newest rounds first (with --plain)")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to print (with --plain)")
}

func runStats(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	prof, err := store.Profile(flagProfile).Load()
	if err != nil {
		fatalf("loading profile: %v", err)
	}
	rs, err := store.ProfileStats(flagProfile)
	if err != nil {
		fatalf("%v", err)
	}

	unlocked := 0
	for _, b := range achievement.Catalog() {
		if prof.Unlocked(b.ID) {
			unlocked++
		}
	}

	fmt.Printf("Profile: %s\n", flagProfile)
	fmt.Println()
	fmt.Printf("  %-20s %s\n", "High score", humanize.Comma(int64(prof.HighScore)))
	fmt.Printf("  %-20s %s\n", "Games played", humanize.Comma(int64(prof.Stats.TotalGames)))
	fmt.Printf("  %-20s %s\n", "Clean drops caught", humanize.Comma(int64(prof.Stats.TotalClean)))
	fmt.Printf("  %-20s %s\n", "Polluted drops", humanize.Comma(int64(prof.Stats.TotalPolluted)))
	fmt.Printf("  %-20s %d\n", "Best clean streak", prof.Stats.BestCleanStreak)
	fmt.Printf("  %-20s %d/%d\n", "Achievements", unlocked, len(achievement.Catalog()))
	sound := "on"
	if prof.Muted {
		sound = "off"
	}
	fmt.Printf("  %-20s %s\n", "Sound", sound)

	if rs.Rounds == 0 {
		fmt.Println()
		fmt.Println("No rounds recorded yet. Run 'waterdrop play' to start!")
		return
	}

	fmt.Println()
	fmt.Printf("  %-20s %s (%d won)\n", "Recorded rounds", humanize.Comma(int64(rs.Rounds)), rs.Wins)
	fmt.Printf("  %-20s %.1f\n", "Average score", rs.AvgScore)
	fmt.Printf("  %-20s %s\n", "Total score", humanize.Comma(rs.TotalScore))
	fmt.Printf("  %-20s %s\n", "Last played", humanize.Time(rs.LastPlayed))
}

func runHistory(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	if !flagPlain {
		rt := runtimeConfig()
		if err := tui.RunHistory(store, flagProfile, rt.ScreenW, rt.ScreenH); err != nil {
			fatalf("%v", err)
		}
		return
	}

	var (
		rounds []storage.RoundEntry
		err    error
	)
	if flagRecent {
		rounds, err = store.RecentRounds(flagProfile, flagLimit)
	} else {
		rounds, err = store.TopRounds(flagProfile, flagLimit)
	}
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Rounds - %s\n", flagProfile)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %-5s  %-8s  %-6s  %-6s  %-4s  %s\n",
		"Rank", "Score", "Level", "Clean", "Polluted", "Missed", "Streak", "Won", "Played")
	for i, r := range rounds {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-6d  %-7s  %-5d  %-8d  %-6d  %-6d  %-4s  %s\n",
			i+1, r.Score, config.Level(r.Difficulty).Title(), r.Clean, r.Polluted, r.Missed, r.BestStreak,
			won, humanize.Time(r.CreatedAt))
	}
}
