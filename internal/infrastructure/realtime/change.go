package realtime

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/referral"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Table names clients can subscribe to
const (
	TableProperties     = "properties"
	TableInvestments    = "investments"
	TableRedemptions    = "redemption_requests"
	TableMarkets        = "prediction_markets"
	TableAccreditations = "accreditations"
	TableReferrals      = "referrals"
	TableFeeTiers       = "liquidity_fee_tiers"
)

// ChangeType mirrors the row operation a domain event stands for
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
)

// Change is the message pushed to subscribers
type Change struct {
	Table      string     `json:"table"`
	Type       ChangeType `json:"type"`
	Event      string     `json:"event"`
	RecordID   uuid.UUID  `json:"record_id"`
	OccurredAt time.Time  `json:"occurred_at"`

	// owner is set for rows only their investor (and admins) may see
	owner uuid.UUID
}

// Private reports whether the change is restricted to its owner
func (c Change) Private() bool { return c.owner != uuid.Nil }

var tables = map[string]string{
	property.AggregateTypeProperty:           TableProperties,
	investment.AggregateTypeInvestment:       TableInvestments,
	liquidity.AggregateTypeRedemption:        TableRedemptions,
	liquidity.AggregateTypeFeeSchedule:       TableFeeTiers,
	prediction.AggregateTypeMarket:           TableMarkets,
	accreditation.AggregateTypeAccreditation: TableAccreditations,
	referral.AggregateTypeReferral:           TableReferrals,
}

var aliases = map[string]string{
	"redemptions":  TableRedemptions,
	"markets":      TableMarkets,
	"fee_tiers":    TableFeeTiers,
	"fee_schedule": TableFeeTiers,
}

var inserts = map[string]bool{
	property.EventTypePropertyCreated:             true,
	investment.EventTypeInvestmentCreated:         true,
	liquidity.EventTypeRedemptionRequested:        true,
	prediction.EventTypeMarketOpened:              true,
	accreditation.EventTypeAccreditationSubmitted: true,
	referral.EventTypeReferralInvited:             true,
}

// ChangeFromEvent maps a domain event to a table change. ok is false for
// events that have no subscribable table, such as user events.
func ChangeFromEvent(e shared.DomainEvent) (Change, bool) {
	table, ok := tables[e.AggregateType()]
	if !ok {
		return Change{}, false
	}
	c := Change{
		Table:      table,
		Type:       ChangeUpdate,
		Event:      e.EventType(),
		RecordID:   e.AggregateID(),
		OccurredAt: e.OccurredAt(),
		owner:      ownerOf(e),
	}
	if inserts[e.EventType()] {
		c.Type = ChangeInsert
	}
	return c, true
}

func ownerOf(e shared.DomainEvent) uuid.UUID {
	switch ev := e.(type) {
	case *investment.InvestmentCreatedEvent:
		return ev.InvestorID
	case *investment.InvestmentSettledEvent:
		return ev.InvestorID
	case *investment.InvestmentFailedEvent:
		return ev.InvestorID
	case *liquidity.RedemptionRequestedEvent:
		return ev.InvestorID
	case *liquidity.RedemptionApprovedEvent:
		return ev.InvestorID
	case *liquidity.RedemptionRejectedEvent:
		return ev.InvestorID
	case *liquidity.RedemptionCancelledEvent:
		return ev.InvestorID
	case *liquidity.RedemptionPaidEvent:
		return ev.InvestorID
	case *accreditation.StatusChangedEvent:
		return ev.InvestorID
	case *referral.StatusChangedEvent:
		return ev.ReferrerID
	}
	return uuid.Nil
}

// ParseTopics splits a comma separated topic list into known table names.
// Unknown names are returned separately so the caller can reject them.
func ParseTopics(raw string) (known []string, unknown []string) {
	seen := make(map[string]bool)
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if alias, ok := aliases[t]; ok {
			t = alias
		}
		if !isTable(t) {
			unknown = append(unknown, t)
			continue
		}
		if !seen[t] {
			seen[t] = true
			known = append(known, t)
		}
	}
	return known, unknown
}

func isTable(name string) bool {
	for _, t := range tables {
		if t == name {
			return true
		}
	}
	return false
}
