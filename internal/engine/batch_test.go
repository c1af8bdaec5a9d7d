package engine

import (
	"context"
	"testing"
	"time"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []model.CreditMemoRecord {
	return []model.CreditMemoRecord{
		{
			MemoID:       "CM-1",
			CustomerName: "Acme",
			ReasonText:   "promotional discount",
			Amount:       floatPtr(1000),
			ApprovalDate: datePtr(2025, time.January, 10),
			MemoDate:     datePtr(2025, time.January, 13),
			Approvals: []model.Approval{
				{ApproverName: "A", Designation: "Customer Analyst"},
				{ApproverName: "B", Designation: "Credit Supervisor"},
				{ApproverName: "C", Designation: "Finance Manager"},
			},
		},
		{
			MemoID:     "CM-2",
			ReasonText: "contract dispute",
			Amount:     floatPtr(-250),
		},
		{
			MemoID:       "cm-1", // duplicate of CM-1, case-insensitively
			ReasonText:   "promotion",
			Amount:       floatPtr(90),
			ApprovalDate: datePtr(2025, time.January, 6),
			MemoDate:     datePtr(2025, time.January, 20),
			Approvals: []model.Approval{
				{ApproverName: "A", Designation: "Customer Analyst"},
			},
		},
	}
}

func TestValidateBatchOrderAndVerdicts(t *testing.T) {
	batch, err := ValidateBatch(context.Background(), sampleRecords(),
		policy.Default(), policy.DefaultMatrix(), BatchOptions{})
	require.NoError(t, err)

	require.Len(t, batch.Records, 3)
	assert.NotEmpty(t, batch.ID)
	assert.False(t, batch.CreatedAt.IsZero())

	// Verdicts align 1:1 with input order.
	assert.Equal(t, "CM-1", batch.Records[0].Record.MemoID)
	assert.Equal(t, model.SOXCompliant, batch.Records[0].Verdict.SOXStatus)
	assert.Equal(t, "CM-2", batch.Records[1].Record.MemoID)
	assert.Equal(t, model.SOXViolation, batch.Records[1].Verdict.SOXStatus)
	assert.Equal(t, "cm-1", batch.Records[2].Record.MemoID)
	assert.Equal(t, model.RiskHigh, batch.Records[2].Verdict.RiskLevel)
}

func TestValidateBatchDuplicateDetection(t *testing.T) {
	batch, err := ValidateBatch(context.Background(), sampleRecords(),
		policy.Default(), policy.DefaultMatrix(), BatchOptions{})
	require.NoError(t, err)

	assert.True(t, batch.Records[0].Verdict.DuplicateMemo)
	assert.False(t, batch.Records[1].Verdict.DuplicateMemo)
	assert.True(t, batch.Records[2].Verdict.DuplicateMemo)
}

func TestValidateBatchConcurrentMatchesSequential(t *testing.T) {
	records := sampleRecords()
	cfg := policy.Default()
	matrix := policy.DefaultMatrix()

	sequential, err := ValidateBatch(context.Background(), records, cfg, matrix, BatchOptions{})
	require.NoError(t, err)

	concurrent, err := ValidateBatch(context.Background(), records, cfg, matrix, BatchOptions{Workers: 8})
	require.NoError(t, err)

	require.Len(t, concurrent.Records, len(sequential.Records))
	for i := range sequential.Records {
		assert.Equal(t, sequential.Records[i].Verdict, concurrent.Records[i].Verdict,
			"verdict at index %d must not depend on worker count", i)
	}
}

func TestValidateBatchRejectsBadPolicy(t *testing.T) {
	cfg := policy.Default()
	cfg.SLABusinessDays = 0

	_, err := ValidateBatch(context.Background(), sampleRecords(), cfg, policy.DefaultMatrix(), BatchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestValidateBatchRequiresMatrix(t *testing.T) {
	_, err := ValidateBatch(context.Background(), sampleRecords(), policy.Default(), nil, BatchOptions{})
	require.Error(t, err)
}

func TestValidateBatchEmptyInput(t *testing.T) {
	batch, err := ValidateBatch(context.Background(), nil, policy.Default(), policy.DefaultMatrix(), BatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, batch.Records)
}

func TestValidateBatchProgressCallback(t *testing.T) {
	var calls int
	_, err := ValidateBatch(context.Background(), sampleRecords(),
		policy.Default(), policy.DefaultMatrix(),
		BatchOptions{OnProgress: func(_, total int) {
			calls++
			assert.Equal(t, 3, total)
		}})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestValidateBatchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ValidateBatch(ctx, sampleRecords(), policy.Default(), policy.DefaultMatrix(), BatchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
