// internal/matching/scheduler.go
// Weekly trigger for the drop. Registration happens exactly once, from
// the process entry point; the engine itself stays stateless.

package matching

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	service Service
}

func NewScheduler(service Service) *Scheduler {
	return &Scheduler{service: service}
}

// Start launches the weekly drop loop. It returns immediately; the loop
// stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.runWeekly(ctx)
	log.Printf("[Matching] weekly drop scheduled for %vs at %02d:00", dropWeekday, dropHour)
}

func (s *Scheduler) runWeekly(ctx context.Context) {
	for {
		next := NextDropDate(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			if _, err := s.service.RunDrop(ctx, next); err != nil {
				// Event row stays pending; the next admin-triggered or
				// scheduled run picks it back up.
				log.Printf("[Matching] scheduled drop failed: %v", err)
			}
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
