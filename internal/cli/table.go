package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

var tableColumns = []string{"Row", "Memo ID", "Customer", "Amount", "Days", "Risk", "Status", "Violation Reason"}

// RenderBatchTable renders a filtered view as an aligned text table with
// risk and status coloring. The Row column carries the view's display
// numbering.
func RenderBatchTable(view *model.FilteredView) string {
	rows := make([][]string, 0, view.Len())
	for _, row := range view.Rows {
		vr := view.Record(row)
		rows = append(rows, []string{
			strconv.Itoa(row.DisplayRow),
			vr.Record.MemoID,
			vr.Record.CustomerName,
			formatAmount(vr.Record.Amount),
			formatDays(vr.Verdict.BusinessDaysElapsed),
			vr.Verdict.RiskLevel.Display(),
			vr.Verdict.SOXStatus.Display(),
			vr.Verdict.ViolationReason,
		})
	}

	widths := make([]int, len(tableColumns))
	for i, col := range tableColumns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	header := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		header[i] = pad(col, widths[i])
	}
	b.WriteString(TableHeaderStyle.Render(strings.Join(header, "  ")))
	b.WriteString("\n")

	for rowIdx, row := range rows {
		vr := view.Record(view.Rows[rowIdx])
		cells := make([]string, len(row))
		for i, cell := range row {
			padded := pad(cell, widths[i])
			switch i {
			case 5:
				padded = RiskStyle(vr.Verdict.RiskLevel).Render(padded)
			case 6:
				padded = SOXStyle(vr.Verdict.SOXStatus).Render(padded)
			}
			cells[i] = padded
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}

	if len(rows) == 0 {
		b.WriteString(SubtleStyle.Render("No records match the filters."))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSummary renders a batch summary as the content of a report box.
func RenderSummary(summary *model.BatchSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total memos:      %d\n", summary.TotalRecords)
	fmt.Fprintf(&b, "Compliant:        %s\n",
		SuccessStyle.Render(fmt.Sprintf("%d (%.1f%%)", summary.CompliantCount, summary.CompliantPercent)))
	fmt.Fprintf(&b, "Violations:       %s\n",
		ErrorStyle.Render(fmt.Sprintf("%d (%.1f%%)", summary.ViolationCount, summary.ViolationPercent)))
	fmt.Fprintf(&b, "High risk:        %s\n", ErrorStyle.Render(strconv.Itoa(summary.HighRiskCount)))
	fmt.Fprintf(&b, "Medium risk:      %s\n", WarningStyle.Render(strconv.Itoa(summary.RiskCounts[model.RiskMedium])))
	fmt.Fprintf(&b, "Missing approvals: %d\n", summary.MissingApprovals)
	fmt.Fprintf(&b, "SLA exceeded:      %d\n", summary.SLAViolations)
	if summary.DuplicateMemos > 0 {
		fmt.Fprintf(&b, "Duplicate memo ids: %d\n", summary.DuplicateMemos)
	}
	if summary.SoDViolations > 0 {
		fmt.Fprintf(&b, "SoD conflicts:      %d\n", summary.SoDViolations)
	}
	fmt.Fprintf(&b, "Total amount:     $%.2f", summary.TotalAmount)

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func formatAmount(amount *float64) string {
	if amount == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *amount)
}

func formatDays(days *int) string {
	if days == nil {
		return "-"
	}
	return strconv.Itoa(*days)
}
