package ead

import (
	"context"
	"encoding/json"

	"ead-service/internal/pkg/kv"

	"go.uber.org/zap"
)

// Reads never propagate failure: a missing key, a backend error or a malformed
// payload all degrade to "not loaded" so callers fall back to a
// type-appropriate default. Failures stay observable through the logger.

func loadJSON(ctx context.Context, store kv.Store, logger *zap.Logger, key string, out any) bool {
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("kv read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("kv payload malformed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func storeJSON(ctx context.Context, store kv.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, data)
}
