package jobs

import (
	"context"
	"fmt"
	"sync"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/storeclock"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultMaintenanceSchedule checks every tenant once an hour.
const DefaultMaintenanceSchedule = "@hourly"

type TenantLister interface {
	Handle(ctx context.Context, query queries.ListTenantsQuery) ([]queries.TenantResponse, error)
}

type Sweeper interface {
	Handle(ctx context.Context, cmd commands.SweepTenantCommand) (commands.SweepResult, error)
}

// MaintenanceJob sweeps expired orders and aggregates of every tenant.
type MaintenanceJob struct {
	tenants  TenantLister
	sweeper  Sweeper
	markers  ports.MaintenanceMarkers
	calendar storeclock.Calendar
	schedule string
	cron     *cron.Cron
	logger   zerolog.Logger

	running sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewMaintenanceJob returns a job. An empty schedule means
// DefaultMaintenanceSchedule.
func NewMaintenanceJob(
	tenants TenantLister,
	sweeper Sweeper,
	markers ports.MaintenanceMarkers,
	calendar storeclock.Calendar,
	schedule string,
	logger zerolog.Logger,
) *MaintenanceJob {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}
	logger = logger.With().Str("component", "maintenance_job").Logger()
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &MaintenanceJob{
		ctx:      ctx,
		cancel:   cancel,
		tenants:  tenants,
		sweeper:  sweeper,
		markers:  markers,
		calendar: calendar,
		schedule: schedule,
		cron: cron.New(
			cron.WithLocation(calendar.Location()),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		logger: logger,
	}
}

// Start schedules the job and runs one pass right away.
func (j *MaintenanceJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(j.ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.RunOnce(j.ctx)
	}()

	j.logger.Info().Str("schedule", j.schedule).Msg("maintenance job started")
	return nil
}

// Stop cancels a running pass and waits for it to return.
func (j *MaintenanceJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.wg.Wait()
	j.logger.Info().Msg("maintenance job stopped")
}

// RunOnce sweeps every tenant not yet swept today and returns how many were
// swept. A pass that finds another one running returns zero at once.
func (j *MaintenanceJob) RunOnce(ctx context.Context) int {
	if !j.running.TryLock() {
		j.logger.Debug().Msg("previous pass still running")
		return 0
	}
	defer j.running.Unlock()

	list, err := j.tenants.Handle(ctx, queries.NewListTenantsQuery())
	if err != nil {
		j.logger.Error().Err(err).Msg("list tenants")
		return 0
	}

	today := j.calendar.Today()
	swept := 0
	for _, t := range list {
		if ctx.Err() != nil {
			return swept
		}
		if j.sweepTenant(ctx, t.ID, today) {
			swept++
		}
	}
	return swept
}

func (j *MaintenanceJob) sweepTenant(ctx context.Context, tenantID string, today kernel.Date) bool {
	logger := j.logger.With().Str("tenant_id", tenantID).Logger()

	last, ok, err := j.markers.LastRun(tenantID)
	if err != nil {
		logger.Warn().Err(err).Msg("read maintenance marker")
	}
	if ok && !last.Before(today) {
		return false
	}

	cmd, err := commands.NewSweepTenantCommand(tenantID)
	if err != nil {
		logger.Error().Err(err).Msg("build sweep")
		return false
	}

	res, err := j.sweeper.Handle(ctx, cmd)
	if err != nil {
		logger.Error().Err(err).
			Int("orders_deleted", res.OrdersDeleted).
			Int("aggregates_deleted", res.AggregatesDeleted).
			Msg("sweep failed")
		return false
	}

	if err = j.markers.SetLastRun(tenantID, today); err != nil {
		logger.Warn().Err(err).Msg("write maintenance marker")
	}
	logger.Info().
		Int("orders_deleted", res.OrdersDeleted).
		Int("aggregates_deleted", res.AggregatesDeleted).
		Msg("sweep finished")
	return true
}

// cronLogger routes cron's own messages to zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
