package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema <tuning|maps>",
	Short: "Print the JSON schema of a config file",
	Long: `Print a JSON schema for tuning.yaml or maps.yaml, for editor
completion and validation of hand-written config files.

Examples:
  blocktown schema tuning
  blocktown schema maps --out configs/maps.schema.json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"tuning", "maps"},
	Run:       runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Write to a file instead of stdout")
}

func runSchema(_ *cobra.Command, args []string) {
	schema, err := buildSchema(args[0])
	if err != nil {
		fail("%v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fail("marshal schema: %v", err)
	}
	data = append(data, '\n')

	if flagSchemaOut == "" {
		os.Stdout.Write(data) //nolint:errcheck // stdout
		return
	}
	if err := writeFileAtomic(flagSchemaOut, data); err != nil {
		fail("%v", err)
	}
}

func buildSchema(file string) (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}

	var schema *jsonschema.Schema
	switch file {
	case "tuning":
		schema = reflector.Reflect(new(config.GameConfig))
		schema.Title = "Block Town tuning"
		schema.Description = "Gameplay constants read from tuning.yaml. Missing fields keep their defaults."
	case "maps":
		schema = reflector.Reflect(new(config.MapPresets))
		schema.Title = "Block Town map presets"
		schema.Description = "Extra map presets read from maps.yaml."
	default:
		return nil, fmt.Errorf("unknown config file %q (want tuning or maps)", file)
	}
	return schema, nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
