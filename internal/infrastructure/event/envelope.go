package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/accreditation"
	"github.com/tokenestate/backend/internal/domain/identity"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/referral"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// Envelope is the wire form of a domain event on the relay topic
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Codec encodes events into envelopes and decodes envelopes back into the
// registered concrete event types.
type Codec struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewCodec creates a codec with every TokenEstate domain event registered
func NewCodec() *Codec {
	c := &Codec{types: make(map[string]reflect.Type)}
	registerDomainEvents(c)
	return c
}

// Register maps eventType to the concrete type of sample
func (c *Codec) Register(eventType string, sample shared.DomainEvent) {
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	c.mu.Lock()
	c.types[eventType] = t
	c.mu.Unlock()
}

// IsRegistered reports whether eventType can be decoded
func (c *Codec) IsRegistered(eventType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.types[eventType]
	return ok
}

// Encode wraps evt in an envelope and marshals it
func (c *Codec) Encode(evt shared.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", evt.EventType(), err)
	}
	return json.Marshal(Envelope{
		ID:            evt.EventID(),
		Type:          evt.EventType(),
		AggregateType: evt.AggregateType(),
		AggregateID:   evt.AggregateID(),
		OccurredAt:    evt.OccurredAt().UTC(),
		Payload:       payload,
	})
}

// Decode parses an envelope and its payload into the registered event type
func (c *Codec) Decode(data []byte) (*Envelope, shared.DomainEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	c.mu.RLock()
	t, ok := c.types[env.Type]
	c.mu.RUnlock()
	if !ok {
		return &env, nil, fmt.Errorf("unknown event type: %s", env.Type)
	}
	ptr := reflect.New(t).Interface()
	if err := json.Unmarshal(env.Payload, ptr); err != nil {
		return &env, nil, fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}
	evt, ok := ptr.(shared.DomainEvent)
	if !ok {
		return &env, nil, fmt.Errorf("%s does not implement DomainEvent", t)
	}
	return &env, evt, nil
}

func registerDomainEvents(c *Codec) {
	c.Register(identity.EventTypeUserRegistered, &identity.UserRegisteredEvent{})
	c.Register(identity.EventTypeUserPasswordChanged, &identity.UserPasswordChangedEvent{})

	c.Register(property.EventTypePropertyCreated, &property.PropertyCreatedEvent{})
	c.Register(property.EventTypePropertyUpdated, &property.PropertyUpdatedEvent{})
	c.Register(property.EventTypeTokenPriceChanged, &property.TokenPriceChangedEvent{})
	c.Register(property.EventTypeTokensReserved, &property.TokensReservedEvent{})
	c.Register(property.EventTypeTokensReleased, &property.TokensReleasedEvent{})

	c.Register(investment.EventTypeInvestmentCreated, &investment.InvestmentCreatedEvent{})
	c.Register(investment.EventTypeInvestmentSettled, &investment.InvestmentSettledEvent{})
	c.Register(investment.EventTypeInvestmentFailed, &investment.InvestmentFailedEvent{})

	c.Register(liquidity.EventTypeRedemptionRequested, &liquidity.RedemptionRequestedEvent{})
	c.Register(liquidity.EventTypeRedemptionApproved, &liquidity.RedemptionApprovedEvent{})
	c.Register(liquidity.EventTypeRedemptionRejected, &liquidity.RedemptionRejectedEvent{})
	c.Register(liquidity.EventTypeRedemptionCancelled, &liquidity.RedemptionCancelledEvent{})
	c.Register(liquidity.EventTypeRedemptionPaid, &liquidity.RedemptionPaidEvent{})
	c.Register(liquidity.EventTypeFeeScheduleUpdated, &liquidity.FeeScheduleUpdatedEvent{})

	for _, t := range []string{
		prediction.EventTypeMarketOpened,
		prediction.EventTypeMarketClosed,
		prediction.EventTypeMarketResolved,
		prediction.EventTypeMarketCancelled,
	} {
		c.Register(t, &prediction.MarketEvent{})
	}
	c.Register(prediction.EventTypeStakePlaced, &prediction.StakePlacedEvent{})

	for _, t := range []string{
		accreditation.EventTypeAccreditationSubmitted,
		accreditation.EventTypeAccreditationApproved,
		accreditation.EventTypeAccreditationRejected,
		accreditation.EventTypeAccreditationExpired,
	} {
		c.Register(t, &accreditation.StatusChangedEvent{})
	}

	for _, t := range []string{
		referral.EventTypeReferralInvited,
		referral.EventTypeReferralSignedUp,
		referral.EventTypeReferralRewarded,
	} {
		c.Register(t, &referral.StatusChangedEvent{})
	}
}
