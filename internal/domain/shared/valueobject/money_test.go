package valueobject

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(50), USD)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(50)))
	assert.Equal(t, USD, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(1), "")
	assert.Error(t, err)

	_, err = NewMoney(decimal.NewFromInt(1), "XXXX")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12.345", EUR)
	require.NoError(t, err)
	assert.Equal(t, "12.35 EUR", m.String())

	_, err = NewMoneyFromString("abc", EUR)
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := USDAmount(decimal.NewFromInt(5000))
	b := USDAmount(decimal.NewFromInt(350))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equals(USDAmount(decimal.NewFromInt(4650))))

	sum, err := diff.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(a))

	_, err = a.Add(Zero(EUR))
	assert.Error(t, err)

	assert.True(t, a.Percentage(decimal.NewFromInt(7)).Equals(b))
	assert.True(t, USDAmount(decimal.NewFromInt(50)).MultiplyByInt(100).Equals(a))
}

func TestMoneyComparisons(t *testing.T) {
	a := USDAmount(decimal.NewFromInt(10))
	b := USDAmount(decimal.NewFromInt(5))

	gt, err := a.GreaterThan(b)
	require.NoError(t, err)
	assert.True(t, gt)

	_, err = a.GreaterThan(Zero(GBP))
	assert.Error(t, err)

	assert.True(t, a.IsPositive())
	assert.True(t, a.Multiply(decimal.NewFromInt(-1)).IsNegative())
	assert.True(t, Zero(USD).IsZero())
}

func TestMoneyFormat(t *testing.T) {
	out := USDAmount(decimal.RequireFromString("350")).Format(language.AmericanEnglish)
	assert.True(t, strings.HasPrefix(out, "$"), out)
	assert.Contains(t, out, "350.00")
}

func TestMoneyJSON(t *testing.T) {
	m := USDAmount(decimal.RequireFromString("4850.5"))
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"4850.5","currency":"USD"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equals(m))

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"1"}`), &back))
	assert.Equal(t, DefaultCurrency, back.Currency())

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"x","currency":"USD"}`), &back))
}
