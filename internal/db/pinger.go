package db

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StartPinger checks the database every interval until ctx is done and logs
// when it stops or starts answering again.
func StartPinger(ctx context.Context, db Pinger, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		healthy := true
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, interval)
				err := db.PingContext(pingCtx)
				cancel()

				switch {
				case err != nil && healthy:
					healthy = false
					log.Error("database unreachable", zap.Error(err))
				case err == nil && !healthy:
					healthy = true
					log.Info("database reachable again")
				}
			}
		}
	}()
}
