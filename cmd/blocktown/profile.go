package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show a profile's bank and upgrades",
	Long: `Display the banked cash, upgrade levels and resulting base stats of
the profile selected with --profile.

Examples:
  blocktown profile
  blocktown profile --profile alice
  blocktown profile reset --profile alice`,
	Args: cobra.NoArgs,
	Run:  runProfile,
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a profile to a fresh save",
	Long:  `Discard the banked cash and upgrades of the profile. Run history is kept.`,
	Args:  cobra.NoArgs,
	Run:   runProfileReset,
}

func init() {
	profileCmd.AddCommand(profileResetCmd)
}

func runProfile(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := openStore(ctx)
	defer store.Close()
	save := loadSave(ctx, store, flagProfile)

	printProfile(flagProfile, save)
}

func runProfileReset(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := openStore(ctx)
	defer store.Close()

	if err := store.WriteSave(ctx, flagProfile, progression.DefaultSave()); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Profile %q reset.\n", flagProfile)
}

// printProfile prints the bank and one row per upgrade.
func printProfile(profile string, save progression.PersistentData) {
	fmt.Printf("Profile - %s\n", profile)
	fmt.Println()
	fmt.Printf("Bank: $%s\n", humanize.Comma(int64(save.TotalCash)))
	fmt.Println()

	// Print header
	fmt.Printf("  %-10s  %-11s  %-5s  %-8s  %s\n", "Kind", "Upgrade", "Level", "Value", "Next cost")
	fmt.Printf("  %-10s  %-11s  %-5s  %-8s  %s\n", "----", "-------", "-----", "-----", "---------")

	for _, kind := range progression.UpgradeKinds {
		spec := progression.Upgrades[kind]
		level := save.Upgrades.Level(kind)
		fmt.Printf("  %-10s  %-11s  %-5d  %-8s  $%s\n",
			kind, spec.Name, level,
			humanize.FtoaWithDigits(spec.ValueAt(level), 1),
			humanize.Comma(int64(save.NextCost(kind))))
	}

	fmt.Println()
	fmt.Println("Run 'blocktown upgrade <kind>' to buy a level.")
}
