package scheduler

import (
	"context"

	"github.com/tokenestate/backend/internal/infrastructure/config"
)

// Job names
const (
	JobAccreditationExpiry = "accreditation-expiry"
	JobMarketClose         = "market-close"
)

// AccreditationExpirer moves lapsed approvals to EXPIRED
type AccreditationExpirer interface {
	ExpireDue(ctx context.Context) (int, error)
}

// MarketCloser closes markets past their close time
type MarketCloser interface {
	CloseDue(ctx context.Context) (int, error)
}

// MaintenanceJobs builds the standard jobs from config
func MaintenanceJobs(cfg config.SchedulerConfig, expirer AccreditationExpirer, closer MarketCloser) []Job {
	var jobs []Job
	if expirer != nil {
		jobs = append(jobs, Job{Name: JobAccreditationExpiry, Spec: cfg.AccreditationExpiryCron, Run: expirer.ExpireDue})
	}
	if closer != nil {
		jobs = append(jobs, Job{Name: JobMarketClose, Spec: cfg.MarketCloseCron, Run: closer.CloseDue})
	}
	return jobs
}
