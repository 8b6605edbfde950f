package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCompareIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	tests := []struct {
		name    string
		ids     []uuid.UUID
		wantErr bool
	}{
		{"one", []uuid.UUID{a}, true},
		{"two", []uuid.UUID{a, b}, false},
		{"four", []uuid.UUID{a, b, uuid.New(), uuid.New()}, false},
		{"five", []uuid.UUID{a, b, uuid.New(), uuid.New(), uuid.New()}, true},
		{"duplicate", []uuid.UUID{a, a}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompareIDs(tt.ids)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	cheap := newActiveProperty(t, 100)
	cheap.TokenPrice = price("10")
	cheap.AnnualYield = decimal.NewFromInt(4)

	highYield := newActiveProperty(t, 100)
	highYield.AnnualYield = decimal.NewFromInt(9)
	require.NoError(t, highYield.ReserveTokens(10))

	funded := newActiveProperty(t, 100)
	require.NoError(t, funded.ReserveTokens(80))

	c, err := Compare([]*Property{cheap, highYield, funded})
	require.NoError(t, err)

	require.Len(t, c.Rows, 3)
	assert.Equal(t, cheap.ID, c.Rows[0].PropertyID)
	assert.Equal(t, cheap.ID, c.LowestPriceID)
	assert.Equal(t, highYield.ID, c.HighestYieldID)
	assert.Equal(t, funded.ID, c.MostFundedID)
	assert.Equal(t, "80", c.Rows[2].FundedPercent.String())
}
