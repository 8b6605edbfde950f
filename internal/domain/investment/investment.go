package investment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// Status is the settlement state of an investment
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSettled Status = "SETTLED"
	StatusFailed  Status = "FAILED"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSettled, StatusFailed:
		return true
	}
	return false
}

// Investment is a purchase of property tokens by an investor.
// ReservedTokens are locked by open redemption requests; RedeemedTokens
// have been paid out and no longer belong to the investor.
type Investment struct {
	shared.BaseAggregateRoot
	InvestorID     uuid.UUID
	PropertyID     uuid.UUID
	Tokens         int64
	TokenPrice     valueobject.Money
	TotalAmount    valueobject.Money
	ReservedTokens int64
	RedeemedTokens int64
	Status         Status
	SettledAt      *time.Time
	FailureReason  string
}

// NewInvestment creates a pending purchase
func NewInvestment(investorID, propertyID uuid.UUID, tokens int64, tokenPrice valueobject.Money) (*Investment, error) {
	if investorID == uuid.Nil || propertyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Investor and property are required")
	}
	if tokens <= 0 {
		return nil, shared.NewDomainError("INVALID_TOKENS", "Tokens to buy must be positive")
	}
	if !tokenPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Token price must be positive")
	}
	inv := &Investment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvestorID:        investorID,
		PropertyID:        propertyID,
		Tokens:            tokens,
		TokenPrice:        tokenPrice,
		TotalAmount:       tokenPrice.MultiplyByInt(tokens).Round(valueobject.CentsPlaces),
		Status:            StatusPending,
	}
	inv.AddDomainEvent(NewInvestmentCreatedEvent(inv))
	return inv, nil
}

// Settle marks the purchase complete. The caller reserves the tokens on the
// property in the same unit of work.
func (i *Investment) Settle(at time.Time) error {
	if i.Status != StatusPending {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot settle investment in %s status", i.Status))
	}
	i.Status = StatusSettled
	i.SettledAt = &at
	i.Touch()
	i.AddDomainEvent(NewInvestmentSettledEvent(i))
	return nil
}

// Fail marks the purchase as failed with a reason
func (i *Investment) Fail(reason string) error {
	if i.Status != StatusPending {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot fail investment in %s status", i.Status))
	}
	if reason == "" {
		reason = "settlement failed"
	}
	i.Status = StatusFailed
	i.FailureReason = reason
	i.Touch()
	i.AddDomainEvent(NewInvestmentFailedEvent(i))
	return nil
}

// HeldTokens is what the investor still owns
func (i *Investment) HeldTokens() int64 {
	if i.Status != StatusSettled {
		return 0
	}
	return i.Tokens - i.RedeemedTokens
}

// RedeemableTokens is what can still be put into a new redemption request
func (i *Investment) RedeemableTokens() int64 {
	return i.HeldTokens() - i.ReservedTokens
}

// ReserveForRedemption locks n tokens for a pending redemption
func (i *Investment) ReserveForRedemption(n int64) error {
	if i.Status != StatusSettled {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Only settled investments can be redeemed")
	}
	if n <= 0 {
		return shared.NewDomainError("INVALID_TOKENS", "Tokens to redeem must be positive")
	}
	if n > i.RedeemableTokens() {
		return shared.NewDomainError(shared.ErrInsufficientTokens.Code,
			fmt.Sprintf("Only %d tokens can be redeemed, requested %d", i.RedeemableTokens(), n))
	}
	i.ReservedTokens += n
	i.Touch()
	return nil
}

// ReleaseReservation unlocks tokens of a rejected or cancelled redemption
func (i *Investment) ReleaseReservation(n int64) error {
	if n <= 0 || n > i.ReservedTokens {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("Cannot release %d tokens, %d reserved", n, i.ReservedTokens))
	}
	i.ReservedTokens -= n
	i.Touch()
	return nil
}

// CompleteRedemption burns reserved tokens once the payout is made
func (i *Investment) CompleteRedemption(n int64) error {
	if err := i.ReleaseReservation(n); err != nil {
		return err
	}
	i.RedeemedTokens += n
	return nil
}

// HoldingMonths is the number of whole calendar months since settlement,
// 0 when the investment is not settled or now is before settlement.
func (i *Investment) HoldingMonths(now time.Time) int {
	if i.SettledAt == nil {
		return 0
	}
	return WholeMonthsBetween(*i.SettledAt, now)
}

// WholeMonthsBetween counts full calendar months from start to end. A month
// is complete once the day-of-month (and time of day) is reached again; end
// of month dates clamp, so Jan 31 to Feb 28 counts as one month.
func WholeMonthsBetween(start, end time.Time) int {
	end = end.In(start.Location())
	if !end.After(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	if months > 0 && addMonthsClamped(start, months).After(end) {
		months--
	}
	return months
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// CurrentValue values the held tokens at price
func (i *Investment) CurrentValue(price valueobject.Money) valueobject.Money {
	return price.MultiplyByInt(i.HeldTokens())
}
