package policy

import (
	"testing"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatrix(t *testing.T) {
	m := DefaultMatrix()

	for _, class := range []model.ReasonClass{model.ReasonPromotional, model.ReasonOther} {
		levels, err := m.RequiredLevels(class)
		require.NoError(t, err)
		require.Len(t, levels, 3)
		assert.Equal(t, "Customer Analyst", levels[0].Title)
		assert.Equal(t, "Credit Supervisor", levels[1].Title)
		assert.Equal(t, "Finance Manager", levels[2].Title)
	}

	contract, err := m.RequiredLevels(model.ReasonContract)
	require.NoError(t, err)
	require.Len(t, contract, 4)
	assert.Equal(t, "Finance Director", contract[3].Title)
}

func TestRequiredLevelsReturnsCopy(t *testing.T) {
	m := DefaultMatrix()

	first, err := m.RequiredLevels(model.ReasonOther)
	require.NoError(t, err)
	first[0].Title = "tampered"

	second, err := m.RequiredLevels(model.ReasonOther)
	require.NoError(t, err)
	assert.Equal(t, "Customer Analyst", second[0].Title)
}

func TestNewApprovalMatrixValidation(t *testing.T) {
	valid := []model.ApprovalLevel{
		{Level: 1, Title: "Customer Analyst"},
		{Level: 2, Title: "Credit Supervisor"},
	}

	tests := []struct {
		levels  map[model.ReasonClass][]model.ApprovalLevel
		name    string
		wantErr bool
	}{
		{
			name: "all classes present",
			levels: map[model.ReasonClass][]model.ApprovalLevel{
				model.ReasonPromotional: valid,
				model.ReasonContract:    valid,
				model.ReasonOther:       valid,
			},
			wantErr: false,
		},
		{
			name: "missing class",
			levels: map[model.ReasonClass][]model.ApprovalLevel{
				model.ReasonPromotional: valid,
				model.ReasonContract:    valid,
			},
			wantErr: true,
		},
		{
			name: "gap in levels",
			levels: map[model.ReasonClass][]model.ApprovalLevel{
				model.ReasonPromotional: {{Level: 1, Title: "A"}, {Level: 3, Title: "B"}},
				model.ReasonContract:    valid,
				model.ReasonOther:       valid,
			},
			wantErr: true,
		},
		{
			name: "first level is not one",
			levels: map[model.ReasonClass][]model.ApprovalLevel{
				model.ReasonPromotional: {{Level: 2, Title: "A"}},
				model.ReasonContract:    valid,
				model.ReasonOther:       valid,
			},
			wantErr: true,
		},
		{
			name: "untitled level",
			levels: map[model.ReasonClass][]model.ApprovalLevel{
				model.ReasonPromotional: {{Level: 1, Title: ""}},
				model.ReasonContract:    valid,
				model.ReasonOther:       valid,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewApprovalMatrix(tt.levels)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatrixFromViper(t *testing.T) {
	v := viper.New()
	v.Set("matrix", map[string]any{
		"promotional": []map[string]any{
			{"level": 1, "title": "Analyst"},
			{"level": 2, "title": "Manager"},
		},
		"contract": []map[string]any{
			{"level": 1, "title": "Analyst"},
			{"level": 2, "title": "Manager"},
			{"level": 3, "title": "Director"},
		},
		"other": []map[string]any{
			{"level": 1, "title": "Analyst"},
		},
	})

	m, err := MatrixFromViper(v)
	require.NoError(t, err)

	levels, err := m.RequiredLevels(model.ReasonContract)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, "Director", levels[2].Title)
}

func TestMatrixFromViperDefaults(t *testing.T) {
	m, err := MatrixFromViper(viper.New())
	require.NoError(t, err)

	levels, err := m.RequiredLevels(model.ReasonPromotional)
	require.NoError(t, err)
	assert.Len(t, levels, 3)
}

func TestMatrixFromViperUnknownClass(t *testing.T) {
	v := viper.New()
	v.Set("matrix", map[string]any{
		"warranty": []map[string]any{{"level": 1, "title": "Analyst"}},
	})

	_, err := MatrixFromViper(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
