package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/waterdrop/internal/achievement"
	"github.com/vovakirdan/waterdrop/internal/profile"
)

var flagYes bool

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List achievements",
	Long: `List every achievement and whether the profile has unlocked it.

Examples:
  waterdrop badges
  waterdrop badges --profile alice`,
	Args: cobra.NoArgs,
	Run:  runBadges,
}

var muteCmd = &cobra.Command{
	Use:   "mute",
	Short: "Toggle sound for a profile",
	Args:  cobra.NoArgs,
	Run:   runMute,
}

var resetProfileCmd = &cobra.Command{
	Use:   "reset-profile",
	Short: "Delete a profile",
	Long: `Delete the high score, totals, achievements, settings and round
history of a profile. This cannot be undone.

Examples:
  waterdrop reset-profile --yes
  waterdrop reset-profile --profile alice --yes`,
	Args: cobra.NoArgs,
	Run:  runResetProfile,
}

func init() {
	resetProfileCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm deletion")
}

func runBadges(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	prof, err := store.Profile(flagProfile).Load()
	if err != nil {
		fatalf("loading profile: %v", err)
	}

	fmt.Printf("Achievements - %s\n", flagProfile)
	fmt.Println()
	for _, b := range achievement.Catalog() {
		mark := "[ ]"
		if prof.Unlocked(b.ID) {
			mark = "[x]"
		}
		fmt.Printf("  %s %s %-18s %s\n", mark, b.Icon, b.Title, b.Description)
	}
}

func runMute(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	prof, err := store.Profile(flagProfile).Update(func(p *profile.Profile) {
		p.Muted = !p.Muted
	})
	if err != nil {
		fatalf("saving profile: %v", err)
	}

	if prof.Muted {
		fmt.Printf("Sound off for %s\n", flagProfile)
	} else {
		fmt.Printf("Sound on for %s\n", flagProfile)
	}
}

func runResetProfile(_ *cobra.Command, _ []string) {
	if !flagYes {
		fatalf("this deletes all data of profile %q; pass --yes to confirm", flagProfile)
	}

	store := openStore()
	defer store.Close()

	if err := store.ClearProfile(flagProfile); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Profile %s reset\n", flagProfile)
}
