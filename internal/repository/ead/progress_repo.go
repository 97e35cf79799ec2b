package ead

import (
	"context"
	"time"

	"ead-service/internal/domain/progress"
	"ead-service/internal/pkg/kv"

	"go.uber.org/zap"
)

type ProgressRepository struct {
	store  kv.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewProgressRepository(store kv.Store, logger *zap.Logger) *ProgressRepository {
	return &ProgressRepository{store: store, logger: logger, now: time.Now}
}

// GetProgress returns the principal's full progress map, empty if absent.
func (r *ProgressRepository) GetProgress(ctx context.Context, principal string) progress.Progress {
	p := progress.Progress{}
	loadJSON(ctx, r.store, r.logger, progressKey(principal), &p)
	if p == nil {
		p = progress.Progress{}
	}
	return p
}

func (r *ProgressRepository) SaveProgress(ctx context.Context, principal string, p progress.Progress) error {
	return storeJSON(ctx, r.store, progressKey(principal), p)
}

// UpdateLessonProgress overwrites a single lesson record. completed follows
// the invariant secondsWatched >= duration.
func (r *ProgressRepository) UpdateLessonProgress(ctx context.Context, principal, lessonID string, secondsWatched, duration int) error {
	p := r.GetProgress(ctx, principal)
	p[lessonID] = progress.LessonProgress{
		SecondsWatched: secondsWatched,
		Completed:      secondsWatched >= duration,
		LastWatched:    r.now().UnixMilli(),
	}
	return r.SaveProgress(ctx, principal, p)
}
