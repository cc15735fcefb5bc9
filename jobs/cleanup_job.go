package jobs

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/course_market/stores"
	"github.com/robfig/cron/v3"
)

const (
	// CleanupSchedule runs the housekeeping every 15 minutes.
	CleanupSchedule = "*/15 * * * *"

	// StalePaymentSessionAge is how long an unconfirmed checkout snapshot is
	// kept on a user. Stripe expires checkout sessions after 24 hours.
	StalePaymentSessionAge = 24 * time.Hour
)

// Cleanup purges rows that have outlived their purpose: expired reset codes,
// revoked tokens past their expiry, and abandoned checkout snapshots.
type Cleanup struct {
	Users  *stores.UserStore
	Tokens *stores.TokenStore
	Now    func() time.Time
}

func NewCleanup(users *stores.UserStore, tokens *stores.TokenStore) *Cleanup {
	return &Cleanup{Users: users, Tokens: tokens, Now: time.Now}
}

// Run does a single pass. Each step runs even if an earlier one failed.
func (j *Cleanup) Run(ctx context.Context) {
	now := j.Now()

	if n, err := j.Users.ClearExpiredResetCodes(ctx, now); err != nil {
		log.Printf("Error clearing expired reset codes: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Cleared %d expired password reset codes", n)
	}

	if n, err := j.Tokens.CleanupExpired(ctx, now); err != nil {
		log.Printf("Error purging revoked tokens: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Purged %d expired revoked tokens", n)
	}

	if n, err := j.Users.ClearStalePaymentSessions(ctx, now.Add(-StalePaymentSessionAge)); err != nil {
		log.Printf("Error clearing stale payment sessions: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Cleared %d stale payment sessions", n)
	}
}

// Schedule registers the job on c.
func (j *Cleanup) Schedule(c *cron.Cron) (cron.EntryID, error) {
	return c.AddFunc(CleanupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		j.Run(ctx)
	})
}
