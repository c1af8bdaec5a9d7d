package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/cli"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/ingest"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <extract.csv>",
		Short: "Validate a credit memo extract",
		Long: `Validate every memo in a credit memo CSV extract against the approval
matrix and SLA policy, then store the run for reporting.

Each memo gets a verdict: reason classification, approval-level presence,
business-day timeline, violation count, and risk level. Bad data in a memo
never aborts the run; it degrades that memo's verdict with warnings.

Examples:
  soxcheck validate memos.csv
  soxcheck validate memos.csv --workers 8
  soxcheck validate memos.csv --no-save`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().IntP("workers", "w", 1, "Concurrent validation workers")
	cmd.Flags().Bool("no-save", false, "Skip persisting the run")

	_ = viper.BindPFlag("validate.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("validate.no_save", cmd.Flags().Lookup("no-save"))

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	workers := viper.GetInt("validate.workers")
	noSave := viper.GetBool("validate.no_save")
	path := args[0]

	cfg, matrix, err := loadPolicy()
	if err != nil {
		return fmt.Errorf("invalid policy configuration: %w", err)
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open extract: %w", err)
	}
	defer func() { _ = f.Close() }()

	parsed, err := ingest.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("failed to parse extract: %w", err)
	}
	for _, warning := range parsed.Warnings {
		common.LogWarn("extract data issue", common.Fields{"detail": warning})
	}
	if len(parsed.Records) == 0 {
		return fmt.Errorf("%s: %w", path, common.ErrNoRecords)
	}

	slog.Info("Validating extract", "records", len(parsed.Records), "workers", workers)

	bar := cli.NewValidationProgressBar(len(parsed.Records), os.Stderr)
	batch, err := engine.ValidateBatch(ctx, parsed.Records, cfg, matrix, engine.BatchOptions{
		Workers: workers,
		OnProgress: func(done, _ int) {
			_ = bar.Set(done)
		},
	})
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	summary := engine.Aggregate(batch)

	if !noSave {
		store, storeErr := initStorage(ctx)
		if storeErr != nil {
			return fmt.Errorf("failed to open database: %w", storeErr)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Error("Failed to close database", "error", closeErr)
			}
		}()

		if saveErr := store.SaveBatch(ctx, batch); saveErr != nil {
			return fmt.Errorf("failed to save batch: %w", saveErr)
		}
		common.LogInfo("Batch saved", common.Fields{
			"batch_id": batch.ID,
			"records":  summary.TotalRecords,
		})
	}

	fmt.Fprintln(os.Stdout, cli.RenderBox(
		fmt.Sprintf("Validation Run %s", batch.ID),
		cli.RenderSummary(&summary)))

	return nil
}
