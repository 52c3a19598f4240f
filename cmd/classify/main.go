package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/wms-classify/internal/config"
	"github.com/andresuchdata/wms-classify/internal/pipeline"
	"github.com/andresuchdata/wms-classify/pkg/logger"
)

func newDepletionFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "depletion",
		Usage:   "Inventory depletion export (xlsx)",
		EnvVars: []string{"DEPLETION_FILE"},
	}
}

func newItemMasterFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "item-master",
		Usage:   "Item view export (xlsx)",
		EnvVars: []string{"ITEM_MASTER_FILE"},
	}
}

func newActivityFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "activity",
		Usage:   "Item activity report export (xlsx), repeatable",
		EnvVars: []string{"ACTIVITY_FILES"},
	}
}

func newOutputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Usage:   "Destination path for the generated SQL migration",
		EnvVars: []string{"MIGRATION_FILE"},
	}
}

func newLogLevelFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (trace, debug, info, warn, error)",
		EnvVars: []string{"LOG_LEVEL"},
	}
}

func runClassify(c *cli.Context) error {
	cfg := config.Load()

	// CLI flags override whatever the environment provided.
	if v := c.String("depletion"); v != "" {
		cfg.Sources.DepletionFile = v
	}
	if v := c.String("item-master"); v != "" {
		cfg.Sources.ItemMasterFile = v
	}
	if v := c.StringSlice("activity"); len(v) > 0 {
		cfg.Sources.ActivityFiles = v
	}
	if v := c.String("output"); v != "" {
		cfg.Output.MigrationFile = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.App.LogLevel = v
	}
	logger.SetLevel(cfg.App.LogLevel)

	stats, err := pipeline.New(cfg).Run(c.Context)
	if err != nil {
		return fmt.Errorf("classification run failed: %w", err)
	}

	fmt.Printf("\nDone: %d SKUs classified (%d matched to item view, %d estimated XYZ)\n",
		stats.SKUs, stats.MasterMatched, stats.EstimatedXYZ)
	fmt.Printf("Migration written to %s\n", cfg.Output.MigrationFile)
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "classify",
		Usage: "Classify warehouse SKUs (ABC/XYZ) from WMS exports and emit a SQL migration",
		Flags: []cli.Flag{
			newDepletionFlag(),
			newItemMasterFlag(),
			newActivityFlag(),
			newOutputFlag(),
			newLogLevelFlag(),
		},
		Action: runClassify,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
