package engine

import (
	"fmt"
	"strings"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

// HighRiskMemo is one high-risk entry in the insight digest.
type HighRiskMemo struct {
	MemoID          string
	CustomerName    string
	ViolationReason string
}

// Digest is the read-only structured summary handed to the external
// insight generator. It carries everything the collaborator needs and
// nothing it could call back into.
type Digest struct {
	CategoryTallies  map[string]int
	BatchID          string
	TotalRecords     int
	CompliantCount   int
	CompliantPercent float64
	ViolationCount   int
	ViolationPercent float64
	HighRiskCount    int
	MediumRiskCount  int
	OverSLACount     int
	TotalAmount      float64
	HighRiskMemos    []HighRiskMemo
}

// BuildDigest derives the insight digest from a validated batch and its
// summary.
func BuildDigest(batch *model.ValidatedBatch, summary model.BatchSummary) Digest {
	digest := Digest{
		BatchID:          batch.ID,
		TotalRecords:     summary.TotalRecords,
		CompliantCount:   summary.CompliantCount,
		CompliantPercent: summary.CompliantPercent,
		ViolationCount:   summary.ViolationCount,
		ViolationPercent: summary.ViolationPercent,
		HighRiskCount:    summary.HighRiskCount,
		MediumRiskCount:  summary.RiskCounts[model.RiskMedium],
		OverSLACount:     summary.OverSLACount,
		TotalAmount:      summary.TotalAmount,
		CategoryTallies: map[string]int{
			model.CategoryMissingApproval: summary.MissingApprovals,
			model.CategorySLAExceeded:     summary.SLAViolations,
		},
	}

	for i := range batch.Records {
		record := &batch.Records[i].Record
		verdict := &batch.Records[i].Verdict
		if verdict.RiskLevel != model.RiskHigh {
			continue
		}
		digest.HighRiskMemos = append(digest.HighRiskMemos, HighRiskMemo{
			MemoID:          record.MemoID,
			CustomerName:    record.CustomerName,
			ViolationReason: verdict.ViolationReason,
		})
	}

	return digest
}

// Render formats the digest as the textual context block for the insight
// generator.
func (d Digest) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Validation results for batch %s:\n", d.BatchID)
	fmt.Fprintf(&b, "- Total memos: %d\n", d.TotalRecords)
	fmt.Fprintf(&b, "- Compliant: %d (%.1f%%)\n", d.CompliantCount, d.CompliantPercent)
	fmt.Fprintf(&b, "- Violations: %d (%.1f%%)\n", d.ViolationCount, d.ViolationPercent)
	fmt.Fprintf(&b, "- High risk: %d\n", d.HighRiskCount)
	fmt.Fprintf(&b, "- Medium risk: %d\n", d.MediumRiskCount)
	fmt.Fprintf(&b, "- Over SLA: %d\n", d.OverSLACount)
	fmt.Fprintf(&b, "- Total amount: %.2f\n", d.TotalAmount)

	b.WriteString("\nViolation categories:\n")
	fmt.Fprintf(&b, "- %s: %d\n", model.CategoryMissingApproval, d.CategoryTallies[model.CategoryMissingApproval])
	fmt.Fprintf(&b, "- %s: %d\n", model.CategorySLAExceeded, d.CategoryTallies[model.CategorySLAExceeded])

	if len(d.HighRiskMemos) > 0 {
		b.WriteString("\nHigh-risk memos:\n")
		for _, m := range d.HighRiskMemos {
			fmt.Fprintf(&b, "- %s (%s): %s\n", m.MemoID, m.CustomerName, m.ViolationReason)
		}
	}

	return b.String()
}
