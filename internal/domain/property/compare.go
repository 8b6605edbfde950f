package property

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
)

// Comparison limits, matching the client's comparison tray
const (
	MinCompare = 2
	MaxCompare = 4
)

// ComparisonRow is one column of a side-by-side comparison
type ComparisonRow struct {
	PropertyID      uuid.UUID         `json:"property_id"`
	Name            string            `json:"name"`
	Location        string            `json:"location"`
	Type            PropertyType      `json:"type"`
	Status          Status            `json:"status"`
	TokenPrice      valueobject.Money `json:"token_price"`
	AnnualYield     decimal.Decimal   `json:"annual_yield"`
	FundedPercent   decimal.Decimal   `json:"funded_percent"`
	AvailableTokens int64             `json:"available_tokens"`
	MarketCap       valueobject.Money `json:"market_cap"`
}

// Comparison is a side-by-side view plus the best values per metric
type Comparison struct {
	Rows           []ComparisonRow `json:"rows"`
	HighestYieldID uuid.UUID       `json:"highest_yield_id"`
	LowestPriceID  uuid.UUID       `json:"lowest_price_id"`
	MostFundedID   uuid.UUID       `json:"most_funded_id"`
}

// ValidateCompareIDs checks the requested set is 2-4 distinct properties
func ValidateCompareIDs(ids []uuid.UUID) error {
	if len(ids) < MinCompare || len(ids) > MaxCompare {
		return shared.NewDomainError("INVALID_COMPARISON",
			fmt.Sprintf("Compare between %d and %d properties", MinCompare, MaxCompare))
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return shared.NewDomainError("INVALID_COMPARISON", "Each property can only be compared once")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Compare builds a comparison in the order the properties were given
func Compare(props []*Property) (*Comparison, error) {
	ids := make([]uuid.UUID, len(props))
	for i, p := range props {
		ids[i] = p.ID
	}
	if err := ValidateCompareIDs(ids); err != nil {
		return nil, err
	}

	c := &Comparison{Rows: make([]ComparisonRow, 0, len(props))}
	var bestYield, bestFunded *Property
	var lowestPrice *Property
	for _, p := range props {
		c.Rows = append(c.Rows, ComparisonRow{
			PropertyID:      p.ID,
			Name:            p.Name,
			Location:        p.Location,
			Type:            p.Type,
			Status:          p.Status,
			TokenPrice:      p.TokenPrice,
			AnnualYield:     p.AnnualYield,
			FundedPercent:   p.FundedPercent(),
			AvailableTokens: p.AvailableTokens,
			MarketCap:       p.MarketCap(),
		})
		if bestYield == nil || p.AnnualYield.GreaterThan(bestYield.AnnualYield) {
			bestYield = p
		}
		if bestFunded == nil || p.FundedPercent().GreaterThan(bestFunded.FundedPercent()) {
			bestFunded = p
		}
		if lowestPrice == nil || p.TokenPrice.Amount().LessThan(lowestPrice.TokenPrice.Amount()) {
			lowestPrice = p
		}
	}
	c.HighestYieldID = bestYield.ID
	c.MostFundedID = bestFunded.ID
	c.LowestPriceID = lowestPrice.ID
	return c, nil
}
