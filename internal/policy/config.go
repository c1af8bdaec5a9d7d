// Package policy defines the immutable configuration objects the validation
// engine consumes: the SLA/risk policy and the tiered approval matrix. Both
// are explicit value objects passed into every engine call; there is no
// shared mutable configuration state.
package policy

import (
	"fmt"
	"strings"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/spf13/viper"
)

// Default policy values.
const (
	DefaultSLABusinessDays            = 5
	DefaultHighRiskViolationThreshold = 2
)

// Config holds the per-batch validation policy. It is read-only input to
// the resolver and validator and applies to an entire batch.
type Config struct {
	SLABusinessDays            int
	HighRiskViolationThreshold int
	PromotionalKeywords        []string
	ContractKeywords           []string
}

// Default returns the policy defaults: SLA of 5 business days, high risk at
// 2 violation categories, and the standard keyword lists.
func Default() Config {
	return Config{
		SLABusinessDays:            DefaultSLABusinessDays,
		HighRiskViolationThreshold: DefaultHighRiskViolationThreshold,
		PromotionalKeywords:        []string{"promotional", "promotion"},
		ContractKeywords:           []string{"contract"},
	}
}

// FromViper builds a Config from the loaded configuration file, falling back
// to defaults for any key that is absent.
func FromViper(v *viper.Viper) Config {
	cfg := Default()
	if v.IsSet("policy.sla_business_days") {
		cfg.SLABusinessDays = v.GetInt("policy.sla_business_days")
	}
	if v.IsSet("policy.high_risk_violation_threshold") {
		cfg.HighRiskViolationThreshold = v.GetInt("policy.high_risk_violation_threshold")
	}
	if v.IsSet("policy.promotional_keywords") {
		cfg.PromotionalKeywords = v.GetStringSlice("policy.promotional_keywords")
	}
	if v.IsSet("policy.contract_keywords") {
		cfg.ContractKeywords = v.GetStringSlice("policy.contract_keywords")
	}
	return cfg
}

// Validate checks the policy before any record is processed. A bad policy
// aborts the whole batch; nothing silently defaults.
func (c Config) Validate() error {
	if c.SLABusinessDays <= 0 {
		return fmt.Errorf("%w: sla_business_days must be positive, got %d", common.ErrInvalidConfig, c.SLABusinessDays)
	}
	if c.HighRiskViolationThreshold <= 0 {
		return fmt.Errorf("%w: high_risk_violation_threshold must be positive, got %d", common.ErrInvalidConfig, c.HighRiskViolationThreshold)
	}
	for _, k := range c.PromotionalKeywords {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: empty promotional keyword", common.ErrInvalidConfig)
		}
	}
	for _, k := range c.ContractKeywords {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: empty contract keyword", common.ErrInvalidConfig)
		}
	}
	return nil
}

// NormalizedKeywords returns the keyword lists lower-cased and trimmed,
// promotional first. Matching is substring-based over the normalized
// reason text; promotional is always checked before contract so ties
// resolve to Promotional.
func (c Config) NormalizedKeywords() (promotional, contract []string) {
	promotional = normalizeAll(c.PromotionalKeywords)
	contract = normalizeAll(c.ContractKeywords)
	return promotional, contract
}

func normalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
