package model

import "time"

// ValidatedRecord pairs an input record with its verdict.
type ValidatedRecord struct {
	Record  CreditMemoRecord
	Verdict ValidationVerdict
}

// ValidatedBatch is the ordered result of validating a batch. Records
// appear in input order and the batch is immutable once computed; filtering
// produces views without altering it.
type ValidatedBatch struct {
	CreatedAt time.Time
	ID        string
	Records   []ValidatedRecord
}

// BatchSummary holds the aggregate statistics for a validated batch.
// Percentages are computed against the total record count; an empty batch
// yields all-zero aggregates.
type BatchSummary struct {
	RiskCounts        map[RiskLevel]int
	TotalRecords      int
	CompliantCount    int
	ViolationCount    int
	HighRiskCount     int
	OverSLACount      int
	CompliantPercent  float64
	ViolationPercent  float64
	TotalAmount       float64
	MissingApprovals  int // records with the Missing Approval category
	SLAViolations     int // records with the SLA Exceeded category
	DuplicateMemos    int
	SoDViolations     int
	RecordsWithIssues int // records carrying data warnings
}

// FilteredRow is one entry of a filtered view: a pointer back into the
// batch plus its 1-based display row number within the view.
type FilteredRow struct {
	DisplayRow int
	Index      int // position in the underlying batch
}

// FilteredView is an ordered, non-destructive subset of a batch. The
// underlying batch is untouched; re-aggregation over the full batch
// remains possible.
type FilteredView struct {
	Batch *ValidatedBatch
	Rows  []FilteredRow
}

// Record returns the validated record behind a view row.
func (v *FilteredView) Record(row FilteredRow) *ValidatedRecord {
	return &v.Batch.Records[row.Index]
}

// Len returns the number of rows in the view.
func (v *FilteredView) Len() int {
	return len(v.Rows)
}
