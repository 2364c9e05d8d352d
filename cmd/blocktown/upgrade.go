package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <kind>",
	Short: "Buy an upgrade level",
	Long: `Spend banked cash on one level of a permanent upgrade.

Kinds: health, speed, damage, fireRate

Examples:
  blocktown upgrade health
  blocktown upgrade fireRate --profile alice`,
	Args: cobra.ExactArgs(1),
	Run:  runUpgrade,
}

func runUpgrade(_ *cobra.Command, args []string) {
	kind, ok := progression.ParseUpgradeKind(args[0])
	if !ok {
		fail("unknown upgrade %q (want health, speed, damage or fireRate)", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := openStore(ctx)
	defer store.Close()
	save := loadSave(ctx, store, flagProfile)

	spec := progression.Upgrades[kind]
	next, ok := progression.ApplyUpgrade(save, kind)
	if !ok {
		fmt.Fprintf(os.Stderr, "Not enough cash: %s costs $%s, bank is $%s\n",
			spec.Name, humanize.Comma(int64(save.NextCost(kind))), humanize.Comma(int64(save.TotalCash)))
		store.Close()
		os.Exit(1)
	}
	if err := store.WriteSave(ctx, flagProfile, next); err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Printf("%s upgraded to level %d. Bank: $%s\n",
		spec.Name, next.Upgrades.Level(kind), humanize.Comma(int64(next.TotalCash)))
}
