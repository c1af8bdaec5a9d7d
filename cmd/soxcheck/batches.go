package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/cli"
)

func batchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Manage stored validation runs",
		RunE:  runBatchesList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <batch-id>",
		Short: "Delete a stored validation run",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatchesDelete,
	})

	return cmd
}

func runBatchesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	infos, err := store.ListBatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}

	if len(infos) == 0 {
		fmt.Fprintln(os.Stdout, cli.SubtleStyle.Render("No stored validation runs. Run 'soxcheck validate' first."))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-38s  %-20s  %8s  %10s  %9s\n", "Batch", "Created", "Records", "Violations", "High Risk")
	for _, info := range infos {
		fmt.Fprintf(&b, "%-38s  %-20s  %8d  %10d  %9d\n",
			info.ID,
			info.CreatedAt.Format("2006-01-02 15:04:05"),
			info.TotalRecords,
			info.ViolationCount,
			info.HighRiskCount)
	}

	fmt.Fprintln(os.Stdout, cli.RenderBox("Stored Validation Runs", strings.TrimRight(b.String(), "\n")))
	return nil
}

func runBatchesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if err := store.DeleteBatch(ctx, id); err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}

	slog.Info(cli.FormatSuccess("Batch deleted"), "batch_id", id)
	return nil
}
