package policy

import (
	"fmt"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/spf13/viper"
)

// ApprovalMatrix maps each reason class to the ordered sequence of approval
// levels that class requires. Sequences are strictly increasing in level
// with no gaps, starting at 1.
type ApprovalMatrix struct {
	levels map[model.ReasonClass][]model.ApprovalLevel
}

// NewApprovalMatrix builds a matrix from per-class level sequences and
// validates it. Construction fails fast on a malformed matrix; the engine
// never sees an invalid one.
func NewApprovalMatrix(levels map[model.ReasonClass][]model.ApprovalLevel) (*ApprovalMatrix, error) {
	m := &ApprovalMatrix{levels: make(map[model.ReasonClass][]model.ApprovalLevel, len(levels))}
	for class, seq := range levels {
		copied := make([]model.ApprovalLevel, len(seq))
		copy(copied, seq)
		m.levels[class] = copied
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultMatrix returns the standard approval matrix: Promotional and Other
// memos require levels 1-3, Contract memos additionally require level 4.
func DefaultMatrix() *ApprovalMatrix {
	base := []model.ApprovalLevel{
		{Level: 1, Title: "Customer Analyst"},
		{Level: 2, Title: "Credit Supervisor"},
		{Level: 3, Title: "Finance Manager"},
	}
	contract := append(append([]model.ApprovalLevel{}, base...),
		model.ApprovalLevel{Level: 4, Title: "Finance Director"})

	m, err := NewApprovalMatrix(map[model.ReasonClass][]model.ApprovalLevel{
		model.ReasonPromotional: base,
		model.ReasonContract:    contract,
		model.ReasonOther:       base,
	})
	if err != nil {
		// The default matrix is a compile-time constant in all but syntax.
		panic(fmt.Sprintf("default approval matrix invalid: %v", err))
	}
	return m
}

// matrixEntry is the on-disk shape of one matrix row.
type matrixEntry struct {
	Title string `mapstructure:"title"`
	Level int    `mapstructure:"level"`
}

// MatrixFromViper loads the approval matrix from the configuration file,
// returning the default matrix when no matrix section is present.
func MatrixFromViper(v *viper.Viper) (*ApprovalMatrix, error) {
	if !v.IsSet("matrix") {
		return DefaultMatrix(), nil
	}

	var raw map[string][]matrixEntry
	if err := v.UnmarshalKey("matrix", &raw); err != nil {
		return nil, fmt.Errorf("%w: matrix section: %v", common.ErrInvalidConfig, err)
	}

	levels := make(map[model.ReasonClass][]model.ApprovalLevel, len(raw))
	for name, entries := range raw {
		class, ok := parseReasonClass(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown reason class %q in matrix", common.ErrInvalidConfig, name)
		}
		seq := make([]model.ApprovalLevel, 0, len(entries))
		for _, e := range entries {
			seq = append(seq, model.ApprovalLevel{Level: e.Level, Title: e.Title})
		}
		levels[class] = seq
	}

	return NewApprovalMatrix(levels)
}

// RequiredLevels returns the ordered level sequence for a reason class.
// Every class must have an entry; a missing one is a configuration error.
func (m *ApprovalMatrix) RequiredLevels(class model.ReasonClass) ([]model.ApprovalLevel, error) {
	seq, ok := m.levels[class]
	if !ok {
		return nil, fmt.Errorf("%w: no approval levels configured for reason class %q", common.ErrInvalidConfig, class)
	}
	out := make([]model.ApprovalLevel, len(seq))
	copy(out, seq)
	return out, nil
}

// validate checks that every reason class has a well-formed sequence.
func (m *ApprovalMatrix) validate() error {
	for _, class := range []model.ReasonClass{model.ReasonPromotional, model.ReasonContract, model.ReasonOther} {
		seq, ok := m.levels[class]
		if !ok || len(seq) == 0 {
			return fmt.Errorf("%w: reason class %q has no approval levels", common.ErrInvalidConfig, class)
		}
		for i, lvl := range seq {
			if lvl.Level != i+1 {
				return fmt.Errorf("%w: reason class %q levels must ascend from 1 without gaps, got level %d at position %d",
					common.ErrInvalidConfig, class, lvl.Level, i+1)
			}
			if lvl.Title == "" {
				return fmt.Errorf("%w: reason class %q level %d has no title", common.ErrInvalidConfig, class, lvl.Level)
			}
		}
	}
	return nil
}

func parseReasonClass(name string) (model.ReasonClass, bool) {
	switch name {
	case "promotional", "Promotional":
		return model.ReasonPromotional, true
	case "contract", "Contract":
		return model.ReasonContract, true
	case "other", "Other":
		return model.ReasonOther, true
	default:
		return "", false
	}
}
