// Package cleanup runs the reservation retention policy: rows older than a
// configured number of months are purged, either on a cron schedule inside
// the server or as a one-shot run from the cleanup command.
package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/internhub/desk-reservation/internal/repository"
)

// Job deletes reservations older than Months months before today.
type Job struct {
	Reservations *repository.ReservationRepo
	Months       int
}

// Run executes one purge pass and returns the number of deleted rows.
func (j Job) Run(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := j.Reservations.PurgeOlderThan(ctx, j.Months)
	if err != nil {
		return 0, err
	}
	log.Printf("retention: purged %d reservations older than %d months", n, j.Months)
	return n, nil
}

// Schedule registers the job on the given cron spec and starts the scheduler.
// The returned cron can be Stop()ped during shutdown.  An invalid spec is
// reported and the scheduler is not started; the one-shot cleanup command
// still covers retention in that case.
func Schedule(spec string, job Job) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := job.Run(context.Background()); err != nil {
			log.Printf("retention: purge failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("retention: invalid cron spec %q: %v", spec, err)
		return c
	}
	c.Start()
	log.Printf("retention: scheduled with spec %q", spec)
	return c
}
