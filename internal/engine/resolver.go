// Package engine implements the credit memo validation and risk
// classification engine: reason classification, approval-presence and
// SLA timeline checks, violation synthesis, batch aggregation and
// filtering. Everything here is a pure function over explicit inputs;
// the engine holds no state between calls.
package engine

import (
	"strings"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/policy"
)

// ResolveReasonClass classifies a memo's reason text against the policy
// keyword lists. The text is lower-cased and trimmed; promotional keywords
// are checked before contract keywords, so text matching both lists
// resolves to Promotional. Anything else, including empty text, is Other.
func ResolveReasonClass(reasonText string, cfg policy.Config) model.ReasonClass {
	reason := strings.ToLower(strings.TrimSpace(reasonText))
	if reason == "" {
		return model.ReasonOther
	}

	promotional, contract := cfg.NormalizedKeywords()
	for _, k := range promotional {
		if strings.Contains(reason, k) {
			return model.ReasonPromotional
		}
	}
	for _, k := range contract {
		if strings.Contains(reason, k) {
			return model.ReasonContract
		}
	}
	return model.ReasonOther
}
