package liquidity

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
)

var hundred = decimal.NewFromInt(100)

// Errors raised by fee schedules
var (
	ErrNoFeeTiers     = shared.NewDomainError("NO_FEE_TIERS", "Fee schedule has no tiers")
	ErrInvalidFeeTier = shared.NewDomainError("INVALID_FEE_TIER", "Fee tier is not valid")
)

// FeeTier is a redemption fee bracket covering holding periods in
// [MinMonths, MaxMonths). A nil MaxMonths means the tier is open-ended.
type FeeTier struct {
	MinMonths  int             `json:"min_months"`
	MaxMonths  *int            `json:"max_months"`
	FeePercent decimal.Decimal `json:"fee_percent"`
}

// NewFeeTier builds a tier; maxMonths may be nil
func NewFeeTier(minMonths int, maxMonths *int, feePercent decimal.Decimal) FeeTier {
	return FeeTier{MinMonths: minMonths, MaxMonths: maxMonths, FeePercent: feePercent}
}

// IsOpenEnded reports whether the tier has no upper bound
func (t FeeTier) IsOpenEnded() bool {
	return t.MaxMonths == nil
}

// Contains reports whether holdingMonths falls in [MinMonths, MaxMonths)
func (t FeeTier) Contains(holdingMonths int) bool {
	if holdingMonths < t.MinMonths {
		return false
	}
	return t.MaxMonths == nil || holdingMonths < *t.MaxMonths
}

// Validate checks the tier bounds and fee percentage
func (t FeeTier) Validate() error {
	if t.MinMonths < 0 {
		return shared.NewDomainError(ErrInvalidFeeTier.Code, "min_months cannot be negative")
	}
	if t.MaxMonths != nil && *t.MaxMonths <= t.MinMonths {
		return shared.NewDomainError(ErrInvalidFeeTier.Code,
			fmt.Sprintf("max_months (%d) must be greater than min_months (%d)", *t.MaxMonths, t.MinMonths))
	}
	if t.FeePercent.IsNegative() || t.FeePercent.GreaterThan(hundred) {
		return shared.NewDomainError(ErrInvalidFeeTier.Code, "fee_percent must be between 0 and 100")
	}
	return nil
}

// String renders the tier as "12-24m 7%" or "36m+ 3%"
func (t FeeTier) String() string {
	if t.MaxMonths == nil {
		return fmt.Sprintf("%dm+ %s%%", t.MinMonths, t.FeePercent.String())
	}
	return fmt.Sprintf("%d-%dm %s%%", t.MinMonths, *t.MaxMonths, t.FeePercent.String())
}

// sortedTiers returns a copy of tiers ordered by MinMonths ascending
func sortedTiers(tiers []FeeTier) []FeeTier {
	out := make([]FeeTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinMonths < out[j].MinMonths
	})
	return out
}

// selectTier picks the first tier containing holdingMonths from tiers already
// sorted ascending, falling back to the last one. tiers must not be empty.
func selectTier(sorted []FeeTier, holdingMonths int) FeeTier {
	for _, t := range sorted {
		if t.Contains(holdingMonths) {
			return t
		}
	}
	return sorted[len(sorted)-1]
}

// FeeSchedule is a validated, sorted set of fee tiers
type FeeSchedule struct {
	tiers []FeeTier
}

// NewFeeSchedule validates every tier and sorts them by MinMonths
func NewFeeSchedule(tiers []FeeTier) (*FeeSchedule, error) {
	if len(tiers) == 0 {
		return nil, ErrNoFeeTiers
	}
	for i, t := range tiers {
		if err := t.Validate(); err != nil {
			return nil, shared.NewDomainError(ErrInvalidFeeTier.Code, fmt.Sprintf("tier %d: %s", i, err.Error()))
		}
	}
	return &FeeSchedule{tiers: sortedTiers(tiers)}, nil
}

// Tiers returns a copy of the sorted tiers
func (s *FeeSchedule) Tiers() []FeeTier {
	out := make([]FeeTier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// SelectTier returns the tier applied to a holding period
func (s *FeeSchedule) SelectTier(holdingMonths int) FeeTier {
	return selectTier(s.tiers, holdingMonths)
}

// Covers reports whether the tiers cover [0, ∞) without gaps or overlaps.
// Schedules that do not cover the whole range are still usable; months that
// fall into a gap get the last tier.
func (s *FeeSchedule) Covers() bool {
	next := 0
	for i, t := range s.tiers {
		if t.MinMonths != next {
			return false
		}
		if t.MaxMonths == nil {
			return i == len(s.tiers)-1
		}
		next = *t.MaxMonths
	}
	return false
}

// Quote computes the payout for redeeming tokens under this schedule
func (s *FeeSchedule) Quote(req QuoteRequest) (PayoutQuote, error) {
	return CalculatePayout(s.tiers, req)
}
