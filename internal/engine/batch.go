package engine

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/policy"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchOptions configures a batch validation run.
type BatchOptions struct {
	// OnProgress, when set, is invoked after each record completes with the
	// number of records done so far and the batch total.
	OnProgress func(done, total int)
	// Workers bounds concurrent record validation. Zero or negative means
	// sequential.
	Workers int
}

// ValidateBatch validates every record and returns the ordered batch.
// Verdicts align 1:1 with input records in input order.
//
// The policy and matrix are checked up front: a configuration problem
// aborts the run before any record is processed. Per-record data problems
// never do; they degrade that record's verdict and are isolated from
// sibling records. Records share no mutable state, so validation runs
// concurrently when Workers allows it.
func ValidateBatch(ctx context.Context, records []model.CreditMemoRecord, cfg policy.Config, matrix *policy.ApprovalMatrix, opts BatchOptions) (*model.ValidatedBatch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("policy rejected: %w", err)
	}
	if matrix == nil {
		return nil, fmt.Errorf("approval matrix is required")
	}

	batch := &model.ValidatedBatch{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Records:   make([]model.ValidatedRecord, len(records)),
	}

	duplicates := duplicateMemoIDs(records)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 1 {
		g.SetLimit(opts.Workers)
	} else {
		g.SetLimit(1)
	}

	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			verdict, err := Validate(records[i], cfg, matrix)
			if err != nil {
				return fmt.Errorf("record %d (memo %s): %w", i+1, records[i].MemoID, err)
			}
			verdict.DuplicateMemo = duplicates[normalizeMemoID(records[i].MemoID)]

			batch.Records[i] = model.ValidatedRecord{
				Record:  records[i],
				Verdict: verdict,
			}

			if opts.OnProgress != nil {
				opts.OnProgress(int(done.Add(1)), len(records))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return batch, nil
}

// duplicateMemoIDs returns the set of memo IDs that occur more than once
// in the input, compared case-insensitively.
func duplicateMemoIDs(records []model.CreditMemoRecord) map[string]bool {
	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[normalizeMemoID(r.MemoID)]++
	}

	duplicates := make(map[string]bool)
	for id, n := range counts {
		if id != "" && n > 1 {
			duplicates[id] = true
		}
	}
	return duplicates
}

func normalizeMemoID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
