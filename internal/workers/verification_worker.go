package workers

import (
	"context"
	"time"

	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/repositories"

	"gorm.io/gorm"
)

const verificationCleanupInterval = time.Hour

// VerificationWorker deletes invitation codes past their expiry. The
// invitation itself stays pending and can be re-sent; re-sending upserts a
// fresh verification.
type VerificationWorker struct {
	db             *gorm.DB
	invitationRepo repositories.InvitationRepository
	interval       time.Duration
	now            func() time.Time
}

func NewVerificationWorker(db *gorm.DB, invitationRepo repositories.InvitationRepository) *VerificationWorker {
	return &VerificationWorker{
		db:             db,
		invitationRepo: invitationRepo,
		interval:       verificationCleanupInterval,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the cleanup loop until ctx is cancelled.
func (w *VerificationWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *VerificationWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Verification worker stopped")
			return
		case <-ticker.C:
			w.CleanupExpired(ctx)
		}
	}
}

// CleanupExpired runs one cleanup pass and returns the number of rows removed.
func (w *VerificationWorker) CleanupExpired(ctx context.Context) int64 {
	removed, err := w.invitationRepo.DeleteExpiredVerifications(w.db.WithContext(ctx), w.now())
	logger.WorkerLog("verification_worker", "delete_expired", removed, err)
	return removed
}
