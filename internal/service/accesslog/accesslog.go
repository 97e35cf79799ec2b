package accesslog

import (
	"context"

	"ead-service/internal/domain/progress"
	xerrors "ead-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Store interface {
	GetLogs(ctx context.Context, principal string) []progress.AccessLog
	StartSession(ctx context.Context, principal, device string) (progress.AccessLog, error)
	EndSession(ctx context.Context, principal string) error
}

// Service tracks platform sessions per principal. A session opens when the
// dashboard mounts and closes on explicit end; abandoned sessions are
// dropped by the next start.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Start(ctx context.Context, principal, device string) (progress.AccessLog, error) {
	session, err := s.store.StartSession(ctx, principal, device)
	if err != nil {
		return progress.AccessLog{}, xerrors.Wrap(err, "failed to start session")
	}
	return session, nil
}

func (s *Service) End(ctx context.Context, principal string) error {
	if err := s.store.EndSession(ctx, principal); err != nil {
		return xerrors.Wrap(err, "failed to end session")
	}
	return nil
}

func (s *Service) Logs(ctx context.Context, principal string) []progress.AccessLog {
	return s.store.GetLogs(ctx, principal)
}
