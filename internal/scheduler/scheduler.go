package scheduler

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/promptloom/loom/internal/logger"
)

// Scheduler runs periodic maintenance jobs (fallback rescans, history
// pruning) on cron expressions.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a new scheduler
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()), // Support second-level precision
	}
}

// normalizeCron prepends "0 " to standard 5-field cron expressions
// so they work with the 6-field (with seconds) parser.
func normalizeCron(schedule string) string {
	if len(strings.Fields(schedule)) == 5 {
		return "0 " + schedule
	}
	return schedule
}

// Add schedules fn under the given cron expression.
func (s *Scheduler) Add(name, schedule string, fn func()) error {
	_, err := s.cron.AddFunc(normalizeCron(schedule), func() {
		logger.Debug("scheduled job %s firing", name)
		fn()
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%s): %w", name, schedule, err)
	}
	return nil
}

// Start starts the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
