package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/cli"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a stored validation run",
		Long: `Display the summary and per-memo results of a stored validation run.

Filters compose as a conjunction and never modify the stored batch; row
numbers are reassigned over the filtered view.

Examples:
  soxcheck report                      # Latest run
  soxcheck report --batch <id>
  soxcheck report --risk high
  soxcheck report --status violation --memo CM-10`,
		RunE: runReport,
	}

	cmd.Flags().String("batch", "", "Batch id (default: latest run)")
	cmd.Flags().String("memo", "", "Filter by memo id substring")
	cmd.Flags().String("status", "", "Filter by compliance status (compliant, violation)")
	cmd.Flags().String("risk", "", "Filter by risk level (low, medium, high)")

	_ = viper.BindPFlag("report.batch", cmd.Flags().Lookup("batch"))
	_ = viper.BindPFlag("report.memo", cmd.Flags().Lookup("memo"))
	_ = viper.BindPFlag("report.status", cmd.Flags().Lookup("status"))
	_ = viper.BindPFlag("report.risk", cmd.Flags().Lookup("risk"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	predicate, err := buildPredicate(
		viper.GetString("report.memo"),
		viper.GetString("report.status"),
		viper.GetString("report.risk"))
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

	batch, err := resolveBatch(ctx, store, viper.GetString("report.batch"))
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}

	summary := engine.Aggregate(batch)
	view := engine.Filter(batch, predicate)

	fmt.Fprintln(os.Stdout, cli.RenderBox(
		fmt.Sprintf("Validation Run %s", batch.ID),
		cli.RenderSummary(&summary)))
	fmt.Fprintln(os.Stdout, cli.RenderBatchTable(&view))

	if view.Len() < len(batch.Records) {
		fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render(
			fmt.Sprintf("Showing %d of %d records", view.Len(), len(batch.Records))))
	}

	return nil
}
