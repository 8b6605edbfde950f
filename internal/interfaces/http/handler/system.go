package handler

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/infrastructure/realtime"
	"github.com/tokenestate/backend/internal/infrastructure/scheduler"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck probes one backing service
type HealthCheck func(ctx context.Context) error

// JobRunner exposes the maintenance scheduler
type JobRunner interface {
	Jobs() []scheduler.JobState
	RunNow(ctx context.Context, name string) (scheduler.JobState, error)
}

// HubStats exposes realtime hub counters
type HubStats interface {
	Stats() realtime.Stats
}

// SystemHandler serves health, runtime information and maintenance jobs
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	checks    map[string]HealthCheck
	jobs      JobRunner
	hub       HubStats
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		checks:    make(map[string]HealthCheck),
	}
}

// AddCheck registers a dependency probed by the health endpoint
func (h *SystemHandler) AddCheck(name string, check HealthCheck) *SystemHandler {
	h.checks[name] = check
	return h
}

// SetJobRunner attaches the scheduler
func (h *SystemHandler) SetJobRunner(j JobRunner) { h.jobs = j }

// SetHub attaches the realtime hub
func (h *SystemHandler) SetHub(s HubStats) { h.hub = s }

// HealthResponse reports dependency status
// @name HandlerHealthResponse
type HealthResponse struct {
	Status string            `json:"status" example:"healthy"`
	Time   string            `json:"time" example:"2026-01-23T12:00:00Z"`
	Checks map[string]string `json:"checks"`
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string               `json:"name" example:"TokenEstate API"`
	Version   string               `json:"version" example:"1.0.0"`
	GoVersion string               `json:"go_version" example:"go1.25.5"`
	Uptime    string               `json:"uptime" example:"1h30m45s"`
	Runtime   RuntimeStats         `json:"runtime"`
	Host      *HostStats           `json:"host,omitempty"`
	Realtime  *realtime.Stats      `json:"realtime,omitempty"`
	Jobs      []scheduler.JobState `json:"jobs,omitempty"`
}

// RuntimeStats are process level figures
type RuntimeStats struct {
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc_bytes"`
	NumGC      uint32 `json:"num_gc"`
}

// HostStats are machine level figures
type HostStats struct {
	Hostname      string  `json:"hostname"`
	Platform      string  `json:"platform"`
	CPUs          int     `json:"cpus"`
	MemoryTotal   uint64  `json:"memory_total_bytes"`
	MemoryUsed    uint64  `json:"memory_used_bytes"`
	MemoryPercent float64 `json:"memory_used_percent"`
	HostUptime    uint64  `json:"host_uptime_seconds"`
}

// Health godoc
// @ID           healthSystem
// @Summary      Health check
// @Description  Probes the database and cache. Any failing dependency answers 503.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]error, len(names))
	var g errgroup.Group
	for i, name := range names {
		check := h.checks[name]
		g.Go(func() error {
			results[i] = check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	resp := HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
		Checks: make(map[string]string, len(names)),
	}
	status := http.StatusOK
	for i, name := range names {
		if err := results[i]; err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = "error"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	c.JSON(status, resp)
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Get system information
// @Description  Returns version, uptime, runtime and host statistics, realtime hub counters and maintenance job state
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Runtime: RuntimeStats{
			Goroutines: runtime.NumGoroutine(),
			HeapAlloc:  ms.HeapAlloc,
			NumGC:      ms.NumGC,
		},
		Host: hostStats(c.Request.Context()),
	}
	if h.hub != nil {
		stats := h.hub.Stats()
		info.Realtime = &stats
	}
	if h.jobs != nil {
		info.Jobs = h.jobs.Jobs()
	}
	h.Success(c, info)
}

// hostStats collects what gopsutil can read. It returns nil when the host
// information is unavailable, which happens in some sandboxes.
func hostStats(ctx context.Context) *HostStats {
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil
	}
	out := &HostStats{
		Hostname:   hi.Hostname,
		Platform:   hi.Platform + " " + hi.PlatformVersion,
		HostUptime: hi.Uptime,
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		out.CPUs = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		out.MemoryTotal = vm.Total
		out.MemoryUsed = vm.Used
		out.MemoryPercent = vm.UsedPercent
	}
	return out
}

// ListJobs godoc
// @ID           listJobsSystem
// @Summary      Maintenance jobs
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[[]scheduler.JobState]
// @Router       /system/jobs [get]
func (h *SystemHandler) ListJobs(c *gin.Context) {
	if h.jobs == nil {
		h.Success(c, []scheduler.JobState{})
		return
	}
	h.Success(c, h.jobs.Jobs())
}

// RunJob godoc
// @ID           runJobSystem
// @Summary      Run a maintenance job now
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Param        name path string true "Job name"
// @Success      200 {object} APIResponse[scheduler.JobState]
// @Failure      404 {object} ErrorResponse
// @Router       /system/jobs/{name}/run [post]
func (h *SystemHandler) RunJob(c *gin.Context) {
	if h.jobs == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Scheduler is not enabled")
		return
	}
	state, err := h.jobs.RunNow(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			h.NotFound(c, "Job not found")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}
