package background

import (
	"context"
	"sync"
	"time"

	"bizforge/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// JobScheduler manages the recurring maintenance jobs: the orphan-record
// audit and the per-organization stats refresh.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	auditSvc   *jobs.OrphanAuditService
	statsSvc   *jobs.StatsRefreshService
	jobsByName map[string]gocron.Job
	mu         sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(auditSvc *jobs.OrphanAuditService, statsSvc *jobs.StatsRefreshService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		auditSvc:   auditSvc,
		statsSvc:   statsSvc,
		jobsByName: make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	zap.L().Info("starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	zap.L().Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func(ctx context.Context) {
			_ = js.statsSvc.RefreshAll(ctx)
		}, context.Background()),
		gocron.WithName("resource-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		zap.L().Error("failed to create stats refresh job", zap.Error(err))
	} else {
		js.jobsByName["stats"] = statsJob
	}

	auditJob, err := js.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func(ctx context.Context) {
			_, _ = js.auditSvc.AuditAll(ctx)
		}, context.Background()),
		gocron.WithName("orphan-record-audit"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		zap.L().Error("failed to create orphan audit job", zap.Error(err))
	} else {
		js.jobsByName["audit"] = auditJob
	}
}
