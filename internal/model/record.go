// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
)

// Approval is one recorded sign-off on a credit memo, in the order it
// appears in the source data.
type Approval struct {
	ApproverName string
	Designation  string
}

// CreditMemoRecord represents a single credit memo transaction as parsed
// from input. It is constructed once at the ingestion boundary and never
// mutated afterward; validation produces a derived ValidationVerdict.
type CreditMemoRecord struct {
	ApprovalDate *time.Time
	MemoDate     *time.Time
	Amount       *float64 // nil when the source value was absent or unparseable
	MemoID       string
	CustomerName string
	CreatedBy    string
	ReasonText   string
	Approvals    []Approval
}

// HasApprover reports whether name appears among the record's approvers,
// compared case-insensitively and trimmed. Used by the separation-of-duties
// check.
func (r *CreditMemoRecord) HasApprover(name string) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return false
	}
	for _, a := range r.Approvals {
		if strings.ToLower(strings.TrimSpace(a.ApproverName)) == needle {
			return true
		}
	}
	return false
}
