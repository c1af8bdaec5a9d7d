// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

// BatchInfo is a lightweight listing entry for a stored validation run.
type BatchInfo struct {
	CreatedAt      time.Time
	ID             string
	TotalRecords   int
	ViolationCount int
	HighRiskCount  int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Batch operations
	SaveBatch(ctx context.Context, batch *model.ValidatedBatch) error
	GetBatch(ctx context.Context, id string) (*model.ValidatedBatch, error)
	GetLatestBatch(ctx context.Context) (*model.ValidatedBatch, error)
	ListBatches(ctx context.Context) ([]BatchInfo, error)
	DeleteBatch(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter defines the contract for exporting a validated batch. The
// writer receives the batch and its summary; the compliance taxonomy values
// (soxStatus, riskLevel, violation-count buckets) are stable and map
// directly to display colors.
type ReportWriter interface {
	Write(ctx context.Context, batch *model.ValidatedBatch, summary *model.BatchSummary) error
}

// InsightClient defines the contract for the external text-generation
// collaborator. It consumes a read-only digest of the validation results
// and returns free text; the engine never calls back into it.
type InsightClient interface {
	Analyze(ctx context.Context, prompt string, systemPrompt string) (string, error)
}

// RetryOptions configures retry behavior for external calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
