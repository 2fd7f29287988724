package workers

import (
	"context"
	"log/slog"
	"time"

	application "advidly/contexts/identity-access/account-service/application"
	"advidly/contexts/identity-access/account-service/ports"
)

// SessionPruner sweeps sessions that crossed expires_at.
type SessionPruner struct {
	Sessions ports.SessionRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (p SessionPruner) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(p.Logger)
	now := time.Now().UTC()
	if p.Clock != nil {
		now = p.Clock.Now().UTC()
	}

	pruned, err := p.Sessions.DeleteExpiredSessions(ctx, now)
	if err != nil {
		logger.Error("session prune sweep failed",
			"event", "account_session_prune_failed",
			"module", "identity-access/account-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if pruned > 0 {
		logger.Info("session prune sweep completed",
			"event", "account_session_prune_completed",
			"module", "identity-access/account-service",
			"layer", "worker",
			"pruned_count", pruned,
		)
	}
	return nil
}
