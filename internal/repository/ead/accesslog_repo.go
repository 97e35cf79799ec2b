package ead

import (
	"context"
	"time"

	"ead-service/internal/domain/progress"
	"ead-service/internal/pkg/kv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccessLogRepository struct {
	store  kv.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewAccessLogRepository(store kv.Store, logger *zap.Logger) *AccessLogRepository {
	return &AccessLogRepository{store: store, logger: logger, now: time.Now}
}

func (r *AccessLogRepository) GetLogs(ctx context.Context, principal string) []progress.AccessLog {
	var logs []progress.AccessLog
	loadJSON(ctx, r.store, r.logger, logsKey(principal), &logs)
	return logs
}

// StartSession opens a session in the dedicated current-session slot. An
// already-open session is silently overwritten: sessions abandoned without
// an end (closed tab, crash) are dropped, an accepted data-loss case.
func (r *AccessLogRepository) StartSession(ctx context.Context, principal, device string) (progress.AccessLog, error) {
	if len(device) > 80 {
		device = device[:80]
	}
	session := progress.AccessLog{
		ID:           uuid.NewString(),
		SessionStart: r.now().UnixMilli(),
		Device:       device,
	}
	return session, storeJSON(ctx, r.store, sessionKey(principal), session)
}

// EndSession closes the open session by appending it to the log list and
// clearing the slot. A missing open session is a no-op.
func (r *AccessLogRepository) EndSession(ctx context.Context, principal string) error {
	var session progress.AccessLog
	if !loadJSON(ctx, r.store, r.logger, sessionKey(principal), &session) {
		return nil
	}
	session.SessionEnd = r.now().UnixMilli()

	logs := r.GetLogs(ctx, principal)
	logs = append(logs, session)
	if err := storeJSON(ctx, r.store, logsKey(principal), logs); err != nil {
		return err
	}
	return r.store.Del(ctx, sessionKey(principal))
}
