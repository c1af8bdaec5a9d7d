// Package ingest parses credit memo extracts into validation records.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

// Column headers expected in a credit memo extract. Matching is
// case-insensitive and ignores surrounding whitespace.
const (
	colMemoID       = "memo"
	colCustomer     = "customer name"
	colMemoDate     = "cm date"
	colCreatedBy    = "created by"
	colAmount       = "amount"
	colReason       = "reason"
	colApprovalDate = "date of approval"
	colApprovers    = "approver"
	colDesignations = "approver designation"
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Result holds the parsed records plus any data-quality warnings collected
// during parsing. Malformed fields degrade to empty values with a warning;
// only rows without a memo id are dropped.
type Result struct {
	Records  []model.CreditMemoRecord
	Warnings []string
}

// ParseCSV parses a credit memo extract.
//
// Expected header:
//
//	Memo,Customer Name,CM Date,Created By,Amount,Reason,Date Of Approval,Approver,Approver Designation
//
// The Approver and Approver Designation columns hold semicolon-separated
// lists that are paired positionally.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns[colMemoID]; !ok {
		return nil, fmt.Errorf("missing required column %q", "Memo")
	}

	result := &Result{}
	lineNum := 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		memoID := field(row, columns, colMemoID)
		if memoID == "" {
			result.warnf("line %d: missing memo id, row skipped", lineNum)
			continue
		}

		record := model.CreditMemoRecord{
			MemoID:       memoID,
			CustomerName: field(row, columns, colCustomer),
			CreatedBy:    field(row, columns, colCreatedBy),
			ReasonText:   field(row, columns, colReason),
		}

		if raw := field(row, columns, colAmount); raw != "" {
			amount, err := parseAmount(raw)
			if err != nil {
				result.warnField(memoID, "amount", raw)
			} else {
				record.Amount = &amount
			}
		}

		if raw := field(row, columns, colMemoDate); raw != "" {
			date, err := parseDate(raw)
			if err != nil {
				result.warnField(memoID, "memo date", raw)
			} else {
				record.MemoDate = &date
			}
		}

		if raw := field(row, columns, colApprovalDate); raw != "" {
			date, err := parseDate(raw)
			if err != nil {
				result.warnField(memoID, "approval date", raw)
			} else {
				record.ApprovalDate = &date
			}
		}

		approvals, warnings := parseApprovals(
			field(row, columns, colApprovers),
			field(row, columns, colDesignations),
			lineNum)
		record.Approvals = approvals
		result.Warnings = append(result.Warnings, warnings...)

		result.Records = append(result.Records, record)
	}

	return result, nil
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// warnField records an unparseable field value as a per-record data problem.
func (r *Result) warnField(memoID, fieldName, raw string) {
	err := &common.RecordDataError{
		MemoID: memoID,
		Field:  fieldName,
		Reason: fmt.Sprintf("invalid value %q", raw),
	}
	r.Warnings = append(r.Warnings, err.Error())
}

func field(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	return strconv.ParseFloat(cleaned, 64)
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// parseApprovals pairs the semicolon-separated approver and designation
// lists positionally. A designation without a matching approver name is
// dropped; an approver without a designation keeps an empty designation.
func parseApprovals(approvers, designations string, lineNum int) ([]model.Approval, []string) {
	names := splitList(approvers)
	titles := splitList(designations)

	var warnings []string
	if len(titles) > len(names) {
		warnings = append(warnings,
			fmt.Sprintf("line %d: %d designations for %d approvers, extras ignored", lineNum, len(titles), len(names)))
	}

	approvals := make([]model.Approval, 0, len(names))
	for i, name := range names {
		approval := model.Approval{ApproverName: name}
		if i < len(titles) {
			approval.Designation = titles[i]
		} else {
			warnings = append(warnings,
				fmt.Sprintf("line %d: approver %q has no designation", lineNum, name))
		}
		approvals = append(approvals, approval)
	}

	return approvals, warnings
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
