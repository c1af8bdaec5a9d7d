package engine

import (
	"testing"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/policy"
	"github.com/stretchr/testify/assert"
)

func TestResolveReasonClass(t *testing.T) {
	cfg := policy.Default()

	tests := []struct {
		name   string
		reason string
		want   model.ReasonClass
	}{
		{
			name:   "promotional keyword",
			reason: "promotional discount for Q4",
			want:   model.ReasonPromotional,
		},
		{
			name:   "promotion variant",
			reason: "Spring PROMOTION pricing",
			want:   model.ReasonPromotional,
		},
		{
			name:   "contract keyword",
			reason: "contract dispute settlement",
			want:   model.ReasonContract,
		},
		{
			name:   "substring inside larger word",
			reason: "subcontracted services",
			want:   model.ReasonContract,
		},
		{
			name:   "no keyword",
			reason: "pricing error correction",
			want:   model.ReasonOther,
		},
		{
			name:   "empty reason degrades to Other",
			reason: "",
			want:   model.ReasonOther,
		},
		{
			name:   "whitespace only",
			reason: "   \t ",
			want:   model.ReasonOther,
		},
		{
			name:   "tie resolves to promotional",
			reason: "promotional adjustment under contract terms",
			want:   model.ReasonPromotional,
		},
		{
			name:   "case insensitive with surrounding whitespace",
			reason: "  ProMoTioNal credit  ",
			want:   model.ReasonPromotional,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveReasonClass(tt.reason, cfg))
		})
	}
}

func TestResolveReasonClassCustomKeywords(t *testing.T) {
	cfg := policy.Default()
	cfg.PromotionalKeywords = []string{"rebate"}
	cfg.ContractKeywords = []string{"agreement", "msa"}

	assert.Equal(t, model.ReasonPromotional, ResolveReasonClass("volume rebate", cfg))
	assert.Equal(t, model.ReasonContract, ResolveReasonClass("per MSA section 4", cfg))
	assert.Equal(t, model.ReasonOther, ResolveReasonClass("promotional discount", cfg),
		"default keywords do not apply once overridden")
}
