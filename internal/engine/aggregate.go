package engine

import (
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

// Aggregate computes summary statistics over a validated batch. The sum of
// amounts is independent of compliance status. An empty batch yields
// all-zero aggregates; percentages never divide by zero.
func Aggregate(batch *model.ValidatedBatch) model.BatchSummary {
	summary := model.BatchSummary{
		RiskCounts: map[model.RiskLevel]int{
			model.RiskLow:    0,
			model.RiskMedium: 0,
			model.RiskHigh:   0,
		},
	}
	if batch == nil {
		return summary
	}

	summary.TotalRecords = len(batch.Records)

	for i := range batch.Records {
		record := &batch.Records[i].Record
		verdict := &batch.Records[i].Verdict

		if verdict.SOXStatus == model.SOXCompliant {
			summary.CompliantCount++
		} else {
			summary.ViolationCount++
		}

		summary.RiskCounts[verdict.RiskLevel]++
		if verdict.RiskLevel == model.RiskHigh {
			summary.HighRiskCount++
		}
		if verdict.TimelineStatus == model.TimelineOverSLA {
			summary.OverSLACount++
			summary.SLAViolations++
		}
		if len(verdict.MissingLevels) > 0 {
			summary.MissingApprovals++
		}
		if verdict.DuplicateMemo {
			summary.DuplicateMemos++
		}
		if verdict.SoD == model.SoDViolation {
			summary.SoDViolations++
		}
		if len(verdict.Warnings) > 0 {
			summary.RecordsWithIssues++
		}
		if record.Amount != nil {
			summary.TotalAmount += *record.Amount
		}
	}

	if summary.TotalRecords > 0 {
		total := float64(summary.TotalRecords)
		summary.CompliantPercent = 100 * float64(summary.CompliantCount) / total
		summary.ViolationPercent = 100 * float64(summary.ViolationCount) / total
	}

	return summary
}
