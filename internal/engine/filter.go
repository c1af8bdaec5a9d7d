package engine

import (
	"strings"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

// Predicate is a conjunction of optional filter criteria. Zero-value
// criteria are ignored; an empty predicate matches every record.
type Predicate struct {
	SOXStatus *model.SOXStatus
	RiskLevel *model.RiskLevel
	// MemoID matches as a case-insensitive substring of the record's memo ID.
	MemoID string
}

// Matches reports whether a validated record satisfies every set criterion.
func (p Predicate) Matches(vr *model.ValidatedRecord) bool {
	if p.MemoID != "" {
		if !strings.Contains(strings.ToLower(vr.Record.MemoID), strings.ToLower(p.MemoID)) {
			return false
		}
	}
	if p.SOXStatus != nil && vr.Verdict.SOXStatus != *p.SOXStatus {
		return false
	}
	if p.RiskLevel != nil && vr.Verdict.RiskLevel != *p.RiskLevel {
		return false
	}
	return true
}

// Filter returns the view of a batch matching the predicate. Original
// relative order is preserved and a fresh 1-based display row index is
// assigned over the filtered subsequence only. The batch itself is never
// modified; re-aggregating or re-exporting the full batch afterward still
// works.
func Filter(batch *model.ValidatedBatch, predicate Predicate) model.FilteredView {
	view := model.FilteredView{Batch: batch}
	if batch == nil {
		return view
	}

	for i := range batch.Records {
		if predicate.Matches(&batch.Records[i]) {
			view.Rows = append(view.Rows, model.FilteredRow{
				DisplayRow: len(view.Rows) + 1,
				Index:      i,
			})
		}
	}
	return view
}
