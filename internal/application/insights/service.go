// Package insights generates short AI market commentary for listings and
// prediction markets.
package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/cache"
	"github.com/tokenestate/backend/internal/infrastructure/llm"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
)

const systemPrompt = `You are a real-estate investment analyst for a tokenized property platform.
Write a concise assessment (at most 150 words) for retail investors. Cover demand drivers,
risks and how the figures compare with typical market levels. Do not give personal
financial advice and do not invent figures that are not in the brief.`

// Subject kinds
const (
	SubjectProperty = "property"
	SubjectMarket   = "market"
)

// ErrInsightsDisabled is returned when no gateway is configured
var ErrInsightsDisabled = shared.NewDomainError(shared.ErrServiceUnavailable.Code, "Market insights are not enabled")

// InsightResponse is a generated commentary
type InsightResponse struct {
	Subject     string    `json:"subject"`
	SubjectID   uuid.UUID `json:"subject_id"`
	Text        string    `json:"text"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Cached      bool      `json:"cached"`
}

// Service builds prompts from domain data and caches the answers
type Service struct {
	completer  llm.Completer
	properties property.Repository
	markets    prediction.Repository
	cache      cache.Store
	ttl        time.Duration
	group      singleflight.Group
	now        func() time.Time
	logger     *zap.Logger
}

// NewService creates the service. A nil completer disables generation and
// a nil store disables caching.
func NewService(completer llm.Completer, properties property.Repository, markets prediction.Repository, store cache.Store, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		completer:  completer,
		properties: properties,
		markets:    markets,
		cache:      store,
		ttl:        ttl,
		now:        time.Now,
		logger:     logger,
	}
}

// SetClock overrides the time source
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Enabled reports whether a gateway is configured
func (s *Service) Enabled() bool { return s.completer != nil }

// ForProperty returns commentary on a published listing
func (s *Service) ForProperty(ctx context.Context, id uuid.UUID) (*InsightResponse, error) {
	if !s.Enabled() {
		return nil, ErrInsightsDisabled
	}
	p, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == property.StatusDraft {
		return nil, shared.ErrNotFound
	}
	// the version in the key retires commentary when the listing changes
	key := fmt.Sprintf("insights:%s:%s:v%d", SubjectProperty, p.ID, p.Version)
	return s.generate(ctx, key, SubjectProperty, p.ID, propertyBrief(p))
}

// ForMarket returns commentary on a prediction market
func (s *Service) ForMarket(ctx context.Context, id uuid.UUID) (*InsightResponse, error) {
	if !s.Enabled() {
		return nil, ErrInsightsDisabled
	}
	m, err := s.markets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var linked *property.Property
	if m.PropertyID != nil {
		linked, err = s.properties.FindByID(ctx, *m.PropertyID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	key := fmt.Sprintf("insights:%s:%s:v%d", SubjectMarket, m.ID, m.Version)
	return s.generate(ctx, key, SubjectMarket, m.ID, marketBrief(m, linked))
}

func (s *Service) generate(ctx context.Context, key, subject string, id uuid.UUID, brief string) (*InsightResponse, error) {
	log := logger.Enrich(ctx, s.logger).With(zap.String("subject", subject), zap.String("subject_id", id.String()))

	if s.cache != nil {
		var cached InsightResponse
		if ok, err := cache.GetJSON(ctx, s.cache, key, &cached); err != nil {
			log.Warn("Insights cache read failed", zap.Error(err))
		} else if ok {
			cached.Cached = true
			return &cached, nil
		}
	}

	// concurrent requests for the same subject share one gateway call
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		completion, err := s.completer.Complete(ctx, []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: brief},
		})
		if err != nil {
			return nil, err
		}
		return &InsightResponse{
			Subject:     subject,
			SubjectID:   id,
			Text:        completion.Text,
			Model:       completion.Model,
			GeneratedAt: s.now().UTC(),
		}, nil
	})
	if err != nil {
		log.Error("Insight generation failed", zap.Error(err))
		if errors.Is(err, llm.ErrGatewayUnavailable) || errors.Is(err, llm.ErrEmptyCompletion) {
			return nil, shared.NewDomainError(shared.ErrServiceUnavailable.Code, "Insights are temporarily unavailable")
		}
		return nil, err
	}
	resp := *v.(*InsightResponse)

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, resp, s.ttl); err != nil {
			log.Warn("Insights cache write failed", zap.Error(err))
		}
	}
	log.Info("Insight generated", zap.String("model", resp.Model))
	return &resp, nil
}

func propertyBrief(p *property.Property) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Property: %s\n", p.Name)
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Type: %s\n", p.Type)
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(&b, "Token price: %s\n", p.TokenPrice.Format(language.AmericanEnglish))
	fmt.Fprintf(&b, "Expected annual yield: %s%%\n", p.AnnualYield.StringFixed(2))
	fmt.Fprintf(&b, "Tokens: %d total, %d available (%s%% funded)\n", p.TotalTokens, p.AvailableTokens, p.FundedPercent().StringFixed(1))
	fmt.Fprintf(&b, "Valuation: %s\n", p.MarketCap().Format(language.AmericanEnglish))
	fmt.Fprintf(&b, "Status: %s\n", p.Status)
	return b.String()
}

func marketBrief(m *prediction.Market, linked *property.Property) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prediction market question: %s\n", m.Question)
	fmt.Fprintf(&b, "Closes: %s\n", m.ClosesAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Status: %s\n", m.Status)
	fmt.Fprintf(&b, "Pool: %s YES / %s NO\n", m.YesPool.Format(language.AmericanEnglish), m.NoPool.Format(language.AmericanEnglish))
	fmt.Fprintf(&b, "Implied YES probability: %s%%\n", m.ImpliedYesProbability().Shift(2).StringFixed(1))
	if linked != nil {
		b.WriteString("\nRelated listing:\n")
		b.WriteString(propertyBrief(linked))
	}
	return b.String()
}
