package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodagames/romtext/pkg/config"
	"github.com/kodagames/romtext/pkg/encoding"
	"github.com/kodagames/romtext/pkg/log"
	"github.com/kodagames/romtext/pkg/patch"
)

var (
	configPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "inserter <script.txt> <image.rom>",
		Short: "Insert dialogue text and its pointer table into a fixed-layout ROM image",
		Args:  cobra.ExactArgs(2),
		RunE:  runInsert,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (built-in layout defaults when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runInsert(cmd *cobra.Command, args []string) error {
	// Validation errors past this point are the tool's own messages, not a
	// usage problem.
	cmd.SilenceUsage = true

	// 1. Load configuration and logging
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.GetConfig()
	log.Init(cfg.Log)

	// 2. Resolve the substitution table (config override or stock table)
	table, err := encoding.TableFromStrings(cfg.Layout.Table)
	if err != nil {
		return fmt.Errorf("invalid substitution table in config: %w", err)
	}
	if table == nil {
		table = encoding.DefaultTable()
	}

	// 3. Run the insertion pipeline
	res, err := patch.Run(args[0], args[1], cfg.Layout, table)
	if err != nil {
		return err
	}

	fmt.Printf("Text written at offset 0x%X.\n", res.TextOffset)
	fmt.Printf("Pointers table written at offset 0x%X with %d pointers.\n", res.PointersOffset, res.PointerCount)
	fmt.Printf("Free space: %d bytes remaining.\n", res.FreeBytes)
	fmt.Printf("Data written to %s successfully.\n", args[1])
	return nil
}
