package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Memo,Customer Name,CM Date,Created By,Amount,Reason,Date Of Approval,Approver,Approver Designation
CM-1001,Acme Corp,2025-01-10,J. Smith,1200.50,Promotional discount,2025-01-15,A. Lee; B. Wu,Customer Analyst; Credit Supervisor
CM-1002,Globex,2025-01-12,K. Patel,"2,400.00",Contract adjustment,,C. Diaz,Finance Manager
`

func TestParseCSV(t *testing.T) {
	result, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Warnings)

	first := result.Records[0]
	assert.Equal(t, "CM-1001", first.MemoID)
	assert.Equal(t, "Acme Corp", first.CustomerName)
	assert.Equal(t, "J. Smith", first.CreatedBy)
	assert.Equal(t, "Promotional discount", first.ReasonText)
	require.NotNil(t, first.Amount)
	assert.Equal(t, 1200.50, *first.Amount)
	require.NotNil(t, first.MemoDate)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), *first.MemoDate)
	require.NotNil(t, first.ApprovalDate)

	require.Len(t, first.Approvals, 2)
	assert.Equal(t, "A. Lee", first.Approvals[0].ApproverName)
	assert.Equal(t, "Customer Analyst", first.Approvals[0].Designation)
	assert.Equal(t, "B. Wu", first.Approvals[1].ApproverName)
	assert.Equal(t, "Credit Supervisor", first.Approvals[1].Designation)

	// Quoted thousands separator and a missing approval date.
	second := result.Records[1]
	require.NotNil(t, second.Amount)
	assert.Equal(t, 2400.00, *second.Amount)
	assert.Nil(t, second.ApprovalDate)
}

func TestParseCSVDegradesGracefully(t *testing.T) {
	csvData := `Memo,Customer Name,CM Date,Amount,Date Of Approval,Approver,Approver Designation
CM-1,Acme,not-a-date,twelve,2025-01-15,A. Lee,Customer Analyst
,Globex,2025-01-10,100.00,2025-01-12,B. Wu,Credit Supervisor
CM-3,Initech,2025-01-11,50.00,2025-01-13,C. Diaz,
`
	result, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	// The row without a memo id is dropped; bad fields degrade to nil.
	require.Len(t, result.Records, 2)
	first := result.Records[0]
	assert.Equal(t, "CM-1", first.MemoID)
	assert.Nil(t, first.Amount)
	assert.Nil(t, first.MemoDate)
	require.NotNil(t, first.ApprovalDate)

	third := result.Records[1]
	assert.Equal(t, "CM-3", third.MemoID)
	require.Len(t, third.Approvals, 1)
	assert.Equal(t, "", third.Approvals[0].Designation)

	require.Len(t, result.Warnings, 4)
	assert.Contains(t, result.Warnings[0], `amount: invalid value "twelve"`)
	assert.Contains(t, result.Warnings[1], `memo date: invalid value "not-a-date"`)
	assert.Contains(t, result.Warnings[2], "missing memo id")
	assert.Contains(t, result.Warnings[3], "has no designation")
}

func TestParseCSVHeaderCaseInsensitive(t *testing.T) {
	csvData := `MEMO,customer name,CM DATE
CM-9,Stark,2025-02-01
`
	result, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "CM-9", result.Records[0].MemoID)
	assert.Equal(t, "Stark", result.Records[0].CustomerName)
}

func TestParseCSVMissingMemoColumn(t *testing.T) {
	csvData := `Customer Name,Amount
Acme,100
`
	_, err := ParseCSV(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "Memo"`)
}

func TestParseCSVDesignationOverflow(t *testing.T) {
	csvData := `Memo,Approver,Approver Designation
CM-1,A. Lee,Customer Analyst; Credit Supervisor
`
	result, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	require.Len(t, result.Records[0].Approvals, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "extras ignored")
}
