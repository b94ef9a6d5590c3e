package rental

import (
	"context"
	"time"
)

// KeepAliveRepository maintains the singleton liveness row. Ping upserts
// the row's timestamp; LastPing returns nil when no ping was ever recorded.
type KeepAliveRepository interface {
	Ping(ctx context.Context, at time.Time) error
	LastPing(ctx context.Context) (*time.Time, error)
}
