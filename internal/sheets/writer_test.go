package sheets

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

func testBatch(t *testing.T) *model.ValidatedBatch {
	t.Helper()

	amount := 1200.50
	days := 3
	memoDate := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	approvalDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	return &model.ValidatedBatch{
		ID:        "batch-test",
		CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		Records: []model.ValidatedRecord{
			{
				Record: model.CreditMemoRecord{
					MemoID:       "CM-1",
					CustomerName: "Acme Corp",
					Amount:       &amount,
					MemoDate:     &memoDate,
					ApprovalDate: &approvalDate,
				},
				Verdict: model.ValidationVerdict{
					ReasonClass:         model.ReasonPromotional,
					TimelineStatus:      model.TimelineWithinSLA,
					SOXStatus:           model.SOXCompliant,
					RiskLevel:           model.RiskLow,
					ViolationReason:     model.NoViolations,
					BusinessDaysElapsed: &days,
				},
			},
			{
				Record: model.CreditMemoRecord{
					MemoID:       "CM-2",
					CustomerName: "Globex",
					MemoDate:     &memoDate,
				},
				Verdict: model.ValidationVerdict{
					ReasonClass:     model.ReasonContract,
					TimelineStatus:  model.TimelineNotApplicable,
					SOXStatus:       model.SOXViolation,
					RiskLevel:       model.RiskMedium,
					ViolationCount:  1,
					ViolationReason: "Missing Approval: Level 4 Missing",
				},
			},
			{
				Record: model.CreditMemoRecord{
					MemoID:       "CM-3",
					CustomerName: "Initech",
					MemoDate:     &memoDate,
					ApprovalDate: &approvalDate,
				},
				Verdict: model.ValidationVerdict{
					ReasonClass:     model.ReasonOther,
					TimelineStatus:  model.TimelineOverSLA,
					SOXStatus:       model.SOXViolation,
					RiskLevel:       model.RiskHigh,
					ViolationCount:  2,
					ViolationReason: "Missing Approval: Level 1 Missing | SLA Exceeded: Over 5 days",
				},
			},
		},
	}
}

func TestPrepareReportData(t *testing.T) {
	batch := testBatch(t)
	summary := engine.Aggregate(batch)

	w := &Writer{config: DefaultConfig(), logger: slog.Default()}
	values, detailStart := w.prepareReportData(batch, &summary)

	require.Greater(t, len(values), detailStart)
	assert.Len(t, values[detailStart:], 3)

	header := values[detailStart-1]
	assert.Equal(t, "Row #", header[0])
	assert.Equal(t, "Violation Reason", header[len(header)-1])

	first := values[detailStart]
	assert.Equal(t, 1, first[0])
	assert.Equal(t, "CM-1", first[1])
	assert.Equal(t, 1200.50, first[3])
	assert.Equal(t, "2025-01-10", first[4])
	assert.Equal(t, "Within SLA", first[8])
	assert.Equal(t, "SOX Compliant", first[10])

	// Missing amount and approval date come through as blanks.
	second := values[detailStart+1]
	assert.Nil(t, second[3])
	assert.Equal(t, "", second[5])
	assert.Equal(t, "Dates Missing", second[8])
}

func TestRowColor(t *testing.T) {
	assert.Equal(t, colorCompliant, rowColor(&model.ValidationVerdict{
		TimelineStatus: model.TimelineWithinSLA,
	}))
	assert.Equal(t, colorOneViolation, rowColor(&model.ValidationVerdict{
		TimelineStatus: model.TimelineWithinSLA,
		ViolationCount: 1,
	}))
	assert.Equal(t, colorMultiViolation, rowColor(&model.ValidationVerdict{
		TimelineStatus: model.TimelineOverSLA,
		ViolationCount: 2,
	}))
	assert.Equal(t, colorMissingData, rowColor(&model.ValidationVerdict{
		TimelineStatus: model.TimelineNotApplicable,
	}))
	// A memo with missing dates but an approval violation keeps its
	// violation color.
	assert.Equal(t, colorOneViolation, rowColor(&model.ValidationVerdict{
		TimelineStatus: model.TimelineNotApplicable,
		ViolationCount: 1,
	}))
}

func TestComplianceColorRequests(t *testing.T) {
	batch := testBatch(t)
	detailStart := 13

	requests := complianceColorRequests(batch, detailStart)

	// Three rows with three distinct colors produce three runs.
	require.Len(t, requests, 3)

	first := requests[0].RepeatCell
	assert.Equal(t, int64(detailStart), first.Range.StartRowIndex)
	assert.Equal(t, int64(detailStart+1), first.Range.EndRowIndex)
	assert.Equal(t, colorCompliant, first.Cell.UserEnteredFormat.BackgroundColor)

	last := requests[2].RepeatCell
	assert.Equal(t, int64(detailStart+2), last.Range.StartRowIndex)
	assert.Equal(t, int64(detailStart+3), last.Range.EndRowIndex)
	assert.Equal(t, colorMultiViolation, last.Cell.UserEnteredFormat.BackgroundColor)
}
