package referral

import (
	"context"

	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// RewardHandler rewards referrals when an invitee's investment settles
type RewardHandler struct {
	svc *Service
}

// NewRewardHandler creates the handler
func NewRewardHandler(svc *Service) *RewardHandler {
	return &RewardHandler{svc: svc}
}

// EventTypes implements shared.EventHandler
func (h *RewardHandler) EventTypes() []string {
	return []string{investment.EventTypeInvestmentSettled}
}

// Handle implements shared.EventHandler
func (h *RewardHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	settled, ok := event.(*investment.InvestmentSettledEvent)
	if !ok {
		return nil
	}
	return h.svc.RewardFirstInvestment(ctx, settled.InvestorID)
}
