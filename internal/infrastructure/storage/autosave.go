package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Autosave runs save periodically until ctx is cancelled, then performs one
// final save. Supplements the synchronous save points with a safety net for
// state mutated between them.
func Autosave(ctx context.Context, interval time.Duration, save func(context.Context) error, log zerolog.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := save(context.Background()); err != nil {
				log.Error().Err(err).Msg("final snapshot failed")
			}
			return
		case <-ticker.C:
			if err := save(ctx); err != nil {
				log.Error().Err(err).Msg("autosave failed")
			}
		}
	}
}
