package jobs

import (
	"context"
	"log/slog"
	"time"

	"drycleaning/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionExpiryJob periodically expires wizard sessions that have been
// idle longer than the configured TTL. An expired order intake must be
// restarted; leaving abandoned sessions active would keep their remote
// counterparts alive indefinitely.
type SessionExpiryJob struct {
	handler    commands.ExpireStaleSessionsCommandHandler
	sessionTTL time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewSessionExpiryJob creates a job expiring sessions idle longer than
// sessionTTL. The check runs every minute.
func NewSessionExpiryJob(
	handler commands.ExpireStaleSessionsCommandHandler,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *SessionExpiryJob {
	return &SessionExpiryJob{
		handler:    handler,
		sessionTTL: sessionTTL,
		cron:       cron.New(),
		logger:     logger.With("component", "session_expiry_job"),
	}
}

// Start begins the session expiry job to run every minute.
func (j *SessionExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireStaleSessionsCommand(time.Now().Add(-j.sessionTTL))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build session expiry command", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Session expiry job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session expiry job started (running every minute)",
		"session_ttl", j.sessionTTL.String())
	return nil
}

// Stop stops the session expiry job.
func (j *SessionExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session expiry job stopped")
}
