// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job represents a scheduled job.
type Job interface {
	Run() error
	Name() string
}

// FuncJob adapts a plain function into a Job.
type FuncJob struct {
	JobName string
	Fn      func() error
}

// Name returns the job name.
func (j FuncJob) Name() string { return j.JobName }

// Run invokes the wrapped function.
func (j FuncJob) Run() error { return j.Fn() }

// Scheduler manages background jobs.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
}

// New creates a new scheduler.
func New(log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers a job with a cron schedule ("@hourly", "@every 5m", ...).
// Job failures are logged, never propagated: background work must not take
// the process down.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := job.Run(); err != nil {
			s.log.Errorw("job failed", "job", job.Name(), "error", err)
			return
		}
		s.log.Debugw("job completed", "job", job.Name())
	})
	if err != nil {
		return err
	}

	s.log.Infow("job registered", "job", job.Name(), "schedule", schedule)
	return nil
}
