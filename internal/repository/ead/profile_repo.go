package ead

import (
	"context"

	"ead-service/internal/domain/profile"
	"ead-service/internal/pkg/kv"

	"go.uber.org/zap"
)

type ProfileRepository struct {
	store  kv.Store
	logger *zap.Logger
}

func NewProfileRepository(store kv.Store, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{store: store, logger: logger}
}

// GetLocalProfile returns the browser-only supplementary profile, or nil
// when none was ever saved for the principal.
func (r *ProfileRepository) GetLocalProfile(ctx context.Context, principal string) *profile.LocalProfile {
	var p profile.LocalProfile
	if !loadJSON(ctx, r.store, r.logger, profileKey(principal), &p) {
		return nil
	}
	return &p
}

func (r *ProfileRepository) SaveLocalProfile(ctx context.Context, principal string, p profile.LocalProfile) error {
	return storeJSON(ctx, r.store, profileKey(principal), p)
}
