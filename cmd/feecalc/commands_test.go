package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type quoteJSON struct {
	Tier struct {
		FeePercent decimal.Decimal `json:"fee_percent"`
	} `json:"tier"`
	FeeAmount struct {
		Amount decimal.Decimal `json:"amount"`
	} `json:"fee_amount"`
	NetPayout struct {
		Amount decimal.Decimal `json:"amount"`
	} `json:"net_payout"`
}

func TestQuote_DefaultTiers(t *testing.T) {
	tests := []struct {
		months   int
		fee, net string
		percent  string
	}{
		{0, "500", "4500", "10"},
		{18, "350", "4650", "7"},
		{40, "150", "4850", "3"},
	}
	for _, tt := range tests {
		out, err := run(t, "quote", "--json", "--tokens", "100", "--value", "50", "--months", itoa(tt.months))
		require.NoError(t, err, out)

		var q quoteJSON
		require.NoError(t, json.Unmarshal([]byte(out), &q))
		assert.True(t, decimal.RequireFromString(tt.percent).Equal(q.Tier.FeePercent), "months=%d", tt.months)
		assert.True(t, decimal.RequireFromString(tt.fee).Equal(q.FeeAmount.Amount), "months=%d fee=%s", tt.months, q.FeeAmount.Amount)
		assert.True(t, decimal.RequireFromString(tt.net).Equal(q.NetPayout.Amount), "months=%d net=%s", tt.months, q.NetPayout.Amount)
	}
}

func TestQuote_TableOutput(t *testing.T) {
	out, err := run(t, "quote", "--tokens", "100", "--value", "50", "--months", "18")
	require.NoError(t, err)
	assert.Contains(t, out, "12-24m 7%")
	assert.Contains(t, out, "4,650.00")
}

func TestQuote_TierFlags(t *testing.T) {
	out, err := run(t, "quote", "--json", "--tier", "0:6:20", "--tier", "6::1", "--tokens", "10", "--value", "10", "--months", "3")
	require.NoError(t, err, out)
	var q quoteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.True(t, decimal.NewFromInt(20).Equal(q.FeeAmount.Amount))
}

func TestQuote_Errors(t *testing.T) {
	_, err := run(t, "quote", "--tokens", "-1", "--value", "50")
	assert.Error(t, err)

	_, err = run(t, "quote", "--tokens", "1", "--value", "fifty")
	assert.ErrorContains(t, err, "--value")

	_, err = run(t, "quote", "--tier", "0-12-10", "--tokens", "1", "--value", "1")
	assert.ErrorContains(t, err, "min:max:percent")

	_, err = run(t, "quote", "--tier", "0:12:150", "--tokens", "1", "--value", "1")
	assert.Error(t, err)

	_, err = run(t, "quote", "--value", "1")
	assert.Error(t, err, "tokens is required")
}

func TestTiers_WarnsOnGaps(t *testing.T) {
	out, err := run(t, "tiers")
	require.NoError(t, err)
	assert.Contains(t, out, "36m+ 3%")
	assert.NotContains(t, out, "warning")

	out, err = run(t, "tiers", "--tier", "0:12:10", "--tier", "24::3")
	require.NoError(t, err)
	assert.Contains(t, out, "warning")
}

func TestTiers_FromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[liquidity.default_tiers]]
min_months = 0
max_months = 24
fee_percent = 8

[[liquidity.default_tiers]]
min_months = 24
fee_percent = 2
`), 0o600))

	out, err := run(t, "tiers", "--config", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "0-24m 8%")
	assert.Contains(t, out, "24m+ 2%")
}

func TestTable(t *testing.T) {
	out, err := run(t, "table", "--json", "--tokens", "100", "--value", "50", "--max-months", "36", "--step", "12")
	require.NoError(t, err, out)

	var rows []tableRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, []int{0, 12, 24, 36}, []int{rows[0].Months, rows[1].Months, rows[2].Months, rows[3].Months})
	assert.Equal(t, "4850.00", rows[3].Net)

	_, err = run(t, "table", "--tokens", "1", "--value", "1", "--step", "0")
	assert.ErrorContains(t, err, "--step")
}

func itoa(n int) string {
	return decimal.NewFromInt(int64(n)).String()
}
