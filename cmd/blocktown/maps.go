package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
)

var flagMapCounts bool

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List all map presets",
	Long: `Shows every registered map preset, including extra presets loaded
from --maps or ~/.blocktown/configs/maps.yaml.

Examples:
  blocktown maps
  blocktown maps --counts`,
	Args: cobra.NoArgs,
	Run:  runMaps,
}

func init() {
	mapsCmd.Flags().BoolVar(&flagMapCounts, "counts", false, "Generate each map and show entity counts")
}

func runMaps(_ *cobra.Command, _ []string) {
	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, p := range presets {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	// Print header
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxNameLen, "Name", "Size", "Seed", "Description")
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxNameLen, "----", "----", "----", "-----------")

	// Print maps
	for _, p := range presets {
		fmt.Printf("  %-*s  %-6.0f  %-5d  %s\n", maxNameLen, p.Name, p.Config.WorldSize, p.Config.Seed, p.Description)
		if flagMapCounts {
			m := mapgen.Generate(p.Config)
			c := m.Counts()
			fmt.Printf("  %-*s  %d buildings, %d trees, %d obstacles, %d lamps, %d streets\n",
				maxNameLen, "", c.Buildings, c.Trees, c.Obstacles, c.StreetLamps, c.Streets)
		}
	}

	fmt.Println()
	fmt.Println("Run 'blocktown play --map <name>' to play a map.")
}
