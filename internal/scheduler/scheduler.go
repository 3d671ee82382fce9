// Package scheduler runs the update pipeline on a fixed interval for the
// watch command.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/pfrederiksen/tahoe-conditions/internal/logger"
)

// Scheduler periodically runs an update job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	job       func()
}

// New creates a scheduler that runs job every interval, in UTC.
func New(interval time.Duration, job func()) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		job:       job,
	}
}

// Start schedules the job and blocks. The job also runs immediately at
// startup so a fresh deploy produces artifacts right away.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		logger.Info("Scheduled update starting", logger.Fields{
			"interval": s.interval.String(),
		})
		s.job()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartBlocking()
	return nil
}

// Stop cancels future runs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
