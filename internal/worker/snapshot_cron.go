package worker

// snapshot_cron.go
// Background goroutine that enqueues one snapshot job per active platillo
// once a day. Cost edits already snapshot synchronously; the cron guarantees
// a row set exists even on days with no catalog activity, so trend series
// have no gaps.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

// SnapshotCronConfig holds all dependencies for the daily snapshot goroutine.
type SnapshotCronConfig struct {
	Platillos  repository.PlatilloRepository
	Dispatcher *Dispatcher
	// Hour is the local hour (0-23) at which the daily run fires.
	Hour int
}

// StartSnapshotCron launches a goroutine that sleeps until the configured
// hour, enqueues the day's snapshot jobs, and repeats. It respects the
// context for graceful shutdown.
func StartSnapshotCron(ctx context.Context, cfg SnapshotCronConfig) {
	go func() {
		log.Info().Int("hour", cfg.Hour).Msg("snapshot_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("snapshot_cron: shutting down")
				return
			case <-time.After(untilNextRun(time.Now(), cfg.Hour)):
				enqueueDailySnapshots(ctx, cfg)
			}
		}
	}()
}

func untilNextRun(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

func enqueueDailySnapshots(ctx context.Context, cfg SnapshotCronConfig) {
	ids, err := cfg.Platillos.ListActivosIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("snapshot_cron: failed to list active platillos")
		return
	}
	enqueued := 0
	for _, id := range ids {
		job := SnapshotJob{PlatilloID: id.String()}
		if err := cfg.Dispatcher.EnqueueSnapshot(ctx, job); err != nil {
			log.Error().Err(err).Str("platillo_id", id.String()).Msg("snapshot_cron: enqueue failed")
			continue
		}
		enqueued++
	}
	log.Info().Int("enqueued", enqueued).Msg("snapshot_cron: daily snapshots enqueued")
}
