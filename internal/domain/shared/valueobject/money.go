package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is an ISO 4217 currency code
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// DefaultCurrency is the currency token prices are quoted in
const DefaultCurrency = USD

// CentsPlaces is the number of decimal places money is settled to
const CentsPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// Money is an immutable amount in a currency
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, cur Currency) (Money, error) {
	if cur == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	if _, err := currency.ParseISO(string(cur)); err != nil {
		return Money{}, fmt.Errorf("invalid currency %q: %w", cur, err)
	}
	return Money{amount: amount, currency: cur}, nil
}

// NewMoneyFromString parses amount as a decimal
func NewMoneyFromString(amount string, cur Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, cur)
}

// USDAmount creates Money in the default currency
func USDAmount(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: USD}
}

// Zero returns a zero-value Money in the specified currency
func Zero(cur Currency) Money {
	return Money{amount: decimal.Zero, currency: cur}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsPositive() bool        { return m.amount.IsPositive() }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }

// Add returns the sum; currencies must match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference; currencies must match
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply returns the amount multiplied by factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// MultiplyByInt returns the amount multiplied by an integer
func (m Money) MultiplyByInt(factor int64) Money {
	return m.Multiply(decimal.NewFromInt(factor))
}

// Percentage returns percent/100 of the amount
func (m Money) Percentage(percent decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(percent).Div(hundred), currency: m.currency}
}

// Round rounds half away from zero to places
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// Equals compares amount and currency
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// GreaterThan compares amounts; currencies must match
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf("cannot compare money with different currencies: %s and %s", m.currency, other.currency)
	}
	return m.amount.GreaterThan(other.amount), nil
}

// String returns e.g. "4650.00 USD"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(CentsPlaces), m.currency)
}

// Format renders the amount with the currency symbol and grouping of tag,
// e.g. "$4,650.00" for en-US.
func (m Money) Format(tag language.Tag) string {
	unit, err := currency.ParseISO(string(m.currency))
	if err != nil {
		return m.String()
	}
	f, _ := m.amount.Round(CentsPlaces).Float64()
	return message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(f)))
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}{
		Amount:   m.amount.String(),
		Currency: m.currency,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var v struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	if v.Currency == "" {
		v.Currency = DefaultCurrency
	}
	m.amount = amount
	m.currency = v.Currency
	return nil
}
