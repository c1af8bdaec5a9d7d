package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
)

func exportBatch() *model.ValidatedBatch {
	amount := 500.0
	days := 2
	memoDate := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	approvalDate := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	return &model.ValidatedBatch{
		ID: "batch-export",
		Records: []model.ValidatedRecord{
			{
				Record: model.CreditMemoRecord{
					MemoID:       "CM-10",
					CustomerName: "Acme",
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
					MemoID:       "CM-11",
					CustomerName: "Globex",
				},
				Verdict: model.ValidationVerdict{
					ReasonClass:     model.ReasonOther,
					TimelineStatus:  model.TimelineNotApplicable,
					SOXStatus:       model.SOXViolation,
					RiskLevel:       model.RiskMedium,
					ViolationCount:  1,
					ViolationReason: "Missing Approval: Level 1 Missing",
					Warnings:        []string{"memo date missing", "approval date missing"},
				},
			},
		},
	}
}

func TestWriteBatchCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBatchCSV(&buf, exportBatch()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Row #", rows[0][0])
	assert.Equal(t, "Violation Reason", rows[0][11])

	assert.Equal(t, []string{
		"1", "CM-10", "Acme", "500.00", "2025-03-03", "2025-03-05", "2",
		"Promotional", "Within SLA", "Low", "SOX Compliant", "None", "",
	}, rows[1])

	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "", rows[2][3])
	assert.Equal(t, "Dates Missing", rows[2][8])
	assert.Equal(t, "memo date missing; approval date missing", rows[2][12])
}

func TestWriteCSVFilteredViewRenumbers(t *testing.T) {
	batch := exportBatch()
	status := model.SOXViolation
	view := engine.Filter(batch, engine.Predicate{SOXStatus: &status})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &view))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The only matching record gets display row 1 even though it is the
	// second record in the batch.
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "CM-11", rows[1][1])
}

func TestWriteCSVEmptyView(t *testing.T) {
	view := engine.Filter(exportBatch(), engine.Predicate{MemoID: "nope"})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &view))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
