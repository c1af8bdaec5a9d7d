package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSOXStatus(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   SOXStatus
		wantOK bool
	}{
		{name: "enum value", input: "SOX_COMPLIANT", want: SOXCompliant, wantOK: true},
		{name: "display form", input: "SOX Violation", want: SOXViolation, wantOK: true},
		{name: "short form", input: "compliant", want: SOXCompliant, wantOK: true},
		{name: "padded", input: "  violation  ", want: SOXViolation, wantOK: true},
		{name: "unknown", input: "wat", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSOXStatus(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   RiskLevel
		wantOK bool
	}{
		{name: "low", input: "Low", want: RiskLow, wantOK: true},
		{name: "med alias", input: "med", want: RiskMedium, wantOK: true},
		{name: "high upper", input: "HIGH", want: RiskHigh, wantOK: true},
		{name: "unknown", input: "critical", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRiskLevel(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDisplayLabels(t *testing.T) {
	assert.Equal(t, "SOX Compliant", SOXCompliant.Display())
	assert.Equal(t, "SOX Violation", SOXViolation.Display())
	assert.Equal(t, "Low", RiskLow.Display())
	assert.Equal(t, "Medium", RiskMedium.Display())
	assert.Equal(t, "High", RiskHigh.Display())
	assert.Equal(t, "Within SLA", TimelineWithinSLA.Display())
	assert.Equal(t, "Over SLA", TimelineOverSLA.Display())
	assert.Equal(t, "Dates Missing", TimelineNotApplicable.Display())
}
