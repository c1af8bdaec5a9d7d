// Package export writes validation results to local files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

var csvHeader = []string{
	"Row #",
	"Memo ID",
	"Customer",
	"Amount",
	"Memo Date",
	"Approval Date",
	"Business Days",
	"Reason Class",
	"Timeline",
	"Risk",
	"SOX Status",
	"Violation Reason",
	"Warnings",
}

// WriteCSV writes a filtered view as CSV. The Row # column carries the
// view's 1-based display numbering, so exported row numbers line up with
// what a filtered report shows on screen.
func WriteCSV(w io.Writer, view *model.FilteredView) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range view.Rows {
		vr := view.Record(row)
		if err := writer.Write(csvRow(row.DisplayRow, vr)); err != nil {
			return fmt.Errorf("write row %d: %w", row.DisplayRow, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// WriteBatchCSV writes an entire batch as CSV.
func WriteBatchCSV(w io.Writer, batch *model.ValidatedBatch) error {
	view := engine.Filter(batch, engine.Predicate{})
	return WriteCSV(w, &view)
}

func csvRow(displayRow int, vr *model.ValidatedRecord) []string {
	record := &vr.Record
	verdict := &vr.Verdict

	var amount string
	if record.Amount != nil {
		amount = strconv.FormatFloat(*record.Amount, 'f', 2, 64)
	}
	var businessDays string
	if verdict.BusinessDaysElapsed != nil {
		businessDays = strconv.Itoa(*verdict.BusinessDaysElapsed)
	}

	return []string{
		strconv.Itoa(displayRow),
		record.MemoID,
		record.CustomerName,
		amount,
		formatDate(record.MemoDate),
		formatDate(record.ApprovalDate),
		businessDays,
		string(verdict.ReasonClass),
		verdict.TimelineStatus.Display(),
		verdict.RiskLevel.Display(),
		verdict.SOXStatus.Display(),
		verdict.ViolationReason,
		joinWarnings(verdict.Warnings),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func joinWarnings(warnings []string) string {
	return strings.Join(warnings, "; ")
}
