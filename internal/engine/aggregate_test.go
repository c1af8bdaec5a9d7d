package engine

import (
	"context"
	"testing"
	"time"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	batch, err := ValidateBatch(context.Background(), sampleRecords(),
		policy.Default(), policy.DefaultMatrix(), BatchOptions{})
	require.NoError(t, err)

	summary := Aggregate(batch)

	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 1, summary.CompliantCount)
	assert.Equal(t, 2, summary.ViolationCount)
	assert.Equal(t, 1, summary.HighRiskCount)
	assert.Equal(t, 1, summary.RiskCounts[model.RiskLow])
	assert.Equal(t, 1, summary.RiskCounts[model.RiskMedium])
	assert.Equal(t, 1, summary.RiskCounts[model.RiskHigh])
	assert.Equal(t, 2, summary.DuplicateMemos)
	assert.InDelta(t, 840.0, summary.TotalAmount, 1e-9, "amounts sum independent of status")
	assert.InDelta(t, 100.0/3, summary.CompliantPercent, 1e-9)
	assert.InDelta(t, 200.0/3, summary.ViolationPercent, 1e-9)
}

func TestAggregateInvariantCompliantPlusViolations(t *testing.T) {
	batch, err := ValidateBatch(context.Background(), sampleRecords(),
		policy.Default(), policy.DefaultMatrix(), BatchOptions{})
	require.NoError(t, err)

	summary := Aggregate(batch)

	assert.Equal(t, summary.TotalRecords, summary.CompliantCount+summary.ViolationCount)
	assert.InDelta(t, 100.0, summary.CompliantPercent+summary.ViolationPercent, 1e-9)
}

func TestAggregateEmptyBatch(t *testing.T) {
	summary := Aggregate(&model.ValidatedBatch{})

	assert.Equal(t, 0, summary.TotalRecords)
	assert.Equal(t, 0, summary.CompliantCount)
	assert.Equal(t, 0, summary.ViolationCount)
	assert.Zero(t, summary.CompliantPercent)
	assert.Zero(t, summary.ViolationPercent)
	assert.Zero(t, summary.TotalAmount)
}

func TestAggregateNilBatch(t *testing.T) {
	summary := Aggregate(nil)
	assert.Equal(t, 0, summary.TotalRecords)
}

func TestAggregateSkipsMissingAmounts(t *testing.T) {
	records := []model.CreditMemoRecord{
		{MemoID: "A", ReasonText: "x", Amount: floatPtr(100)},
		{MemoID: "B", ReasonText: "y"}, // amount unparseable upstream
	}

	batch, err := ValidateBatch(context.Background(), records,
		policy.Default(), policy.DefaultMatrix(), BatchOptions{})
	require.NoError(t, err)

	summary := Aggregate(batch)
	assert.InDelta(t, 100.0, summary.TotalAmount, 1e-9)
	assert.Equal(t, 2, summary.RecordsWithIssues)
}

func TestAggregateCategoryTallies(t *testing.T) {
	records := []model.CreditMemoRecord{
		{
			MemoID:       "SLOW",
			ReasonText:   "rebill",
			Amount:       floatPtr(10),
			ApprovalDate: datePtr(2025, time.January, 6),
			MemoDate:     datePtr(2025, time.January, 20),
			Approvals: []model.Approval{
				{ApproverName: "A", Designation: "Customer Analyst"},
				{ApproverName: "B", Designation: "Credit Supervisor"},
				{ApproverName: "C", Designation: "Finance Manager"},
			},
		},
	}

	batch, err := ValidateBatch(context.Background(), records,
		policy.Default(), policy.DefaultMatrix(), BatchOptions{})
	require.NoError(t, err)

	summary := Aggregate(batch)
	assert.Equal(t, 0, summary.MissingApprovals)
	assert.Equal(t, 1, summary.SLAViolations)
	assert.Equal(t, 1, summary.OverSLACount)
}
