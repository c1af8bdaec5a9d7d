package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/cli"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/config"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/llm"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/service"
)

func insightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Ask questions about a validation run",
		Long: fmt.Sprintf(`Generate a narrative analysis of a stored validation run.

The model only sees an aggregate digest of the run plus the high-risk memo
list; it cannot change any verdict.

Quick actions: %s

Examples:
  soxcheck insight --action summary
  soxcheck insight --query "Which customers drive the SLA breaches?"
  soxcheck insight --batch <id> --action risk`, strings.Join(llm.QuickActionNames(), ", ")),
		RunE: runInsight,
	}

	cmd.Flags().String("batch", "", "Batch id (default: latest run)")
	cmd.Flags().StringP("query", "q", "", "Free-form question about the run")
	cmd.Flags().StringP("action", "a", "", "Quick action name")

	_ = viper.BindPFlag("insight.batch", cmd.Flags().Lookup("batch"))
	_ = viper.BindPFlag("insight.query", cmd.Flags().Lookup("query"))
	_ = viper.BindPFlag("insight.action", cmd.Flags().Lookup("action"))

	return cmd
}

func runInsight(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	query, err := llm.ResolveQuery(viper.GetString("insight.action"), viper.GetString("insight.query"))
	if err != nil {
		return err
	}

	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return fmt.Errorf("insight unavailable: %w", err)
	}

	client, err := llm.NewClient(llmCfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
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

	batch, err := resolveBatch(ctx, store, viper.GetString("insight.batch"))
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}

	summary := engine.Aggregate(batch)
	digest := engine.BuildDigest(batch, summary)

	slog.Info("Generating insight", "batch_id", batch.ID, "provider", llmCfg.Provider)

	prompt := llm.BuildPrompt(digest, query)

	var answer string
	err = common.WithRetry(ctx, func() error {
		var analyzeErr error
		answer, analyzeErr = client.Analyze(ctx, prompt, llm.SystemPrompt)
		if analyzeErr != nil && !common.IsRetryable(analyzeErr) {
			return &common.RetryableError{Err: analyzeErr, Retryable: false}
		}
		return analyzeErr
	}, service.RetryOptions{MaxAttempts: 3})
	if err != nil {
		slog.Error("LLM analysis failed", "error", err)
		return common.NewUserError(common.ErrInsightFailed.Error(), err)
	}

	fmt.Fprintln(os.Stdout, cli.RenderBox(
		fmt.Sprintf("Insight for %s", batch.ID),
		strings.TrimSpace(answer)))

	return nil
}
