package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/cli"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/config"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/export"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a validation run",
		Long: `Export a stored validation run as CSV or to Google Sheets.

The same filters as 'report' apply; exported row numbers follow the
filtered view. Sheets exports color each row by its compliance outcome.

Examples:
  soxcheck export --format csv --output run.csv
  soxcheck export --format csv --risk high --output highrisk.csv
  soxcheck export --format sheets`,
		RunE: runExport,
	}

	cmd.Flags().String("batch", "", "Batch id (default: latest run)")
	cmd.Flags().StringP("format", "f", "csv", "Export format (csv, sheets)")
	cmd.Flags().StringP("output", "o", "", "Output file for csv format (default: stdout)")
	cmd.Flags().String("memo", "", "Filter by memo id substring")
	cmd.Flags().String("status", "", "Filter by compliance status (compliant, violation)")
	cmd.Flags().String("risk", "", "Filter by risk level (low, medium, high)")

	_ = viper.BindPFlag("export.batch", cmd.Flags().Lookup("batch"))
	_ = viper.BindPFlag("export.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("export.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("export.memo", cmd.Flags().Lookup("memo"))
	_ = viper.BindPFlag("export.status", cmd.Flags().Lookup("status"))
	_ = viper.BindPFlag("export.risk", cmd.Flags().Lookup("risk"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format := viper.GetString("export.format")

	predicate, err := buildPredicate(
		viper.GetString("export.memo"),
		viper.GetString("export.status"),
		viper.GetString("export.risk"))
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	batch, err := resolveBatch(ctx, store, viper.GetString("export.batch"))
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}

	switch format {
	case "csv":
		return exportCSV(batch, predicate)
	case "sheets":
		return exportSheets(cmd, batch)
	default:
		return fmt.Errorf("unsupported format %q (use csv or sheets)", format)
	}
}

func exportCSV(batch *model.ValidatedBatch, predicate engine.Predicate) error {
	view := engine.Filter(batch, predicate)

	out := os.Stdout
	if path := viper.GetString("export.output"); path != "" {
		f, err := os.Create(path) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := export.WriteCSV(out, &view); err != nil {
		return fmt.Errorf("csv export failed: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Exported %d records", view.Len())))
	return nil
}

func exportSheets(cmd *cobra.Command, batch *model.ValidatedBatch) error {
	ctx := cmd.Context()

	sheetsCfg, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets export unavailable: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	summary := engine.Aggregate(batch)
	if err := writer.Write(ctx, batch, &summary); err != nil {
		return fmt.Errorf("sheets export failed: %w", err)
	}

	slog.Info(cli.FormatSuccess("Exported batch to Google Sheets"), "batch_id", batch.ID)
	return nil
}
