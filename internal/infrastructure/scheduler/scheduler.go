// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// JobStatus is the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// RunFunc does one pass of a job and reports how many records it touched
type RunFunc func(ctx context.Context) (int, error)

// Job is a named task on a cron schedule
type Job struct {
	Name string
	Spec string
	Run  RunFunc
}

// JobState is the observable state of a registered job
type JobState struct {
	Name        string     `json:"name"`
	Spec        string     `json:"spec"`
	Status      JobStatus  `json:"status"`
	Error       string     `json:"error,omitempty"`
	Affected    int        `json:"affected"`
	Runs        int        `json:"runs"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	NextRunAt   *time.Time `json:"next_run_at,omitempty"`
}

// Observer is told about every finished run
type Observer interface {
	ObserveJob(name string, affected int, duration time.Duration, err error)
}

type entry struct {
	job   Job
	id    cron.EntryID
	state JobState
}

// Scheduler wraps robfig/cron with per-job timeouts, overlap protection and
// run bookkeeping.
type Scheduler struct {
	cron       *cron.Cron
	jobTimeout time.Duration
	logger     *zap.Logger
	observer   Observer
	now        func() time.Time

	mu        sync.RWMutex
	jobs      map[string]*entry
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a scheduler. Jobs run with a timeout of cfg.JobTimeout.
func New(cfg config.SchedulerConfig, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{logger: logger.Named("cron")}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		jobTimeout: cfg.JobTimeout,
		logger:     logger,
		now:        time.Now,
		jobs:       make(map[string]*entry),
	}
}

// SetObserver registers a run observer, typically metrics
func (s *Scheduler) SetObserver(o Observer) { s.observer = o }

// Register adds a job. Jobs must be registered before Start.
func (s *Scheduler) Register(job Job) error {
	if job.Name == "" || job.Run == nil {
		return fmt.Errorf("%w: job needs a name and a run function", ErrInvalidConfig)
	}
	if _, err := cron.ParseStandard(job.Spec); err != nil {
		return fmt.Errorf("%w: job %s: %v", ErrInvalidConfig, job.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return ErrSchedulerRunning
	}
	if _, ok := s.jobs[job.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name)
	}

	e := &entry{job: job, state: JobState{Name: job.Name, Spec: job.Spec, Status: JobStatusPending}}
	id, err := s.cron.AddFunc(job.Spec, func() { s.execute(e) })
	if err != nil {
		return fmt.Errorf("%w: job %s: %v", ErrInvalidConfig, job.Name, err)
	}
	e.id = id
	s.jobs[job.Name] = e
	return nil
}

// Start starts the cron loop. Jobs stop receiving new runs when ctx ends
// or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	s.logger.Info("Scheduler started", zap.Strings("jobs", names))
	return nil
}

// Stop stops scheduling and waits for running jobs or ctx, whichever is first
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	if cancel != nil {
		cancel()
	}

	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow runs a job immediately, outside its schedule
func (s *Scheduler) RunNow(ctx context.Context, name string) (JobState, error) {
	s.mu.RLock()
	e, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return JobState{}, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	s.run(ctx, e)
	return s.snapshot(e), nil
}

// Jobs returns the state of every registered job sorted by name
func (s *Scheduler) Jobs() []JobState {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.jobs))
	for _, e := range s.jobs {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	states := make([]JobState, 0, len(entries))
	for _, e := range entries {
		states = append(states, s.snapshot(e))
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Name < states[j].Name })
	return states
}

func (s *Scheduler) snapshot(e *entry) JobState {
	s.mu.RLock()
	state := e.state
	s.mu.RUnlock()
	if next := s.cron.Entry(e.id).Next; !next.IsZero() {
		state.NextRunAt = &next
	}
	return state
}

func (s *Scheduler) execute(e *entry) {
	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}
	s.run(ctx, e)
}

func (s *Scheduler) run(parent context.Context, e *entry) {
	ctx := parent
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.jobTimeout)
		defer cancel()
	}

	started := s.now()
	s.mu.Lock()
	e.state.Status = JobStatusRunning
	e.state.StartedAt = &started
	e.state.Error = ""
	s.mu.Unlock()

	affected, err := e.job.Run(ctx)

	completed := s.now()
	duration := completed.Sub(started)
	s.mu.Lock()
	e.state.Runs++
	e.state.Affected = affected
	e.state.CompletedAt = &completed
	if err != nil {
		e.state.Status = JobStatusFailed
		e.state.Error = err.Error()
	} else {
		e.state.Status = JobStatusSuccess
	}
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.ObserveJob(e.job.Name, affected, duration, err)
	}

	log := s.logger.With(zap.String("job", e.job.Name), zap.Duration("duration", duration))
	if err != nil {
		log.Error("Scheduled job failed", zap.Int("affected", affected), zap.Error(err))
		return
	}
	if affected > 0 {
		log.Info("Scheduled job completed", zap.Int("affected", affected))
		return
	}
	log.Debug("Scheduled job completed with nothing to do")
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
