package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edgard/arabictutor/internal/config"
	"github.com/edgard/arabictutor/internal/database"
	"github.com/edgard/arabictutor/internal/materials"
)

type importFunc func(im *materials.Importer, ctx context.Context, arg string) (*materials.Report, error)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import lesson materials into the database",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "pdf <dir>",
			Short: "Import <level>_weekNN.pdf files for every level and week",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImport(cmd.Context(), args[0], (*materials.Importer).ImportPDFs)
			},
		},
		&cobra.Command{
			Use:   "manifest <file>",
			Short: "Import the PDF and text files listed in a YAML manifest",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImport(cmd.Context(), args[0], (*materials.Importer).ImportManifest)
			},
		},
	)
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <dir>",
		Short: "Replace all materials with the {level, week, content} JSON files in dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0], (*materials.Importer).SeedJSON)
		},
	}
}

func runImport(ctx context.Context, arg string, fn importFunc) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	store := database.NewStore(db, log)
	report, err := fn(materials.NewImporter(store, log), ctx, arg)
	if report != nil {
		printReport(report)
	}
	if err != nil {
		return err
	}
	return printTotal(ctx, cfg, store)
}

func printReport(r *materials.Report) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	for _, path := range r.Imported {
		green.Printf("✓ %s\n", path)
	}
	for _, s := range r.Skipped {
		yellow.Printf("- %s: %s\n", s.Path, s.Reason)
	}
	fmt.Printf("\n%d imported, %d skipped\n", len(r.Imported), len(r.Skipped))
}

func printTotal(ctx context.Context, cfg *config.Config, store database.Store) error {
	n, err := store.CountMaterials(ctx)
	if err != nil {
		return err
	}
	color.New(color.FgCyan).Printf("%s now holds %d materials\n", database.ExtractDBNameFromPath(cfg.Database.Path), n)
	return nil
}
