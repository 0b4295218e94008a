// Package savedmix persists named mixes against the key-value store.
package savedmix

import (
	"context"
	"encoding/json"
	"fmt"

	"mix-service/internal/models"
	"mix-service/internal/util"

	"go.uber.org/zap"
)

// StoreKey is the key-value slot holding the full saved-mix list.
const StoreKey = "savedMixes"

// KV is the slice of the persistent store the adapter needs.
type KV interface {
	GetRaw(ctx context.Context, key string) ([]byte, bool, error)
	SetJSON(ctx context.Context, key string, val interface{}) error
}

// Store reads and appends saved mixes. There is no partial-update API:
// Append is a read-modify-write of the whole list, last writer wins.
type Store struct {
	kv     KV
	logger *zap.Logger
}

// NewStore creates a saved-mix store over the key-value client.
func NewStore(kv KV) *Store {
	return &Store{
		kv:     kv,
		logger: util.GetLogger(),
	}
}

// List returns all saved mixes. An absent or malformed payload reads as
// an empty list, not an error; only store access failures propagate.
func (s *Store) List(ctx context.Context) ([]models.SavedMix, error) {
	raw, found, err := s.kv.GetRaw(ctx, StoreKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved mixes: %w", err)
	}
	if !found {
		return []models.SavedMix{}, nil
	}

	var mixes []models.SavedMix
	if err := json.Unmarshal(raw, &mixes); err != nil {
		s.logger.Warn("Malformed saved-mix payload, treating as empty",
			zap.Error(err))
		return []models.SavedMix{}, nil
	}

	return sanitize(mixes), nil
}

// Append persists a new mix at the end of the list.
func (s *Store) Append(ctx context.Context, mix models.SavedMix) error {
	mixes, err := s.List(ctx)
	if err != nil {
		return err
	}

	mixes = append(mixes, mix)
	if err := s.kv.SetJSON(ctx, StoreKey, mixes); err != nil {
		return fmt.Errorf("failed to persist saved mixes: %w", err)
	}

	util.SavedMixesTotal.Set(float64(len(mixes)))
	return nil
}

// sanitize drops entries that do not satisfy the persisted schema.
func sanitize(mixes []models.SavedMix) []models.SavedMix {
	clean := make([]models.SavedMix, 0, len(mixes))
	for _, m := range mixes {
		if m.ID <= 0 || m.Name == "" || len(m.Components) == 0 {
			continue
		}
		clean = append(clean, m)
	}
	return clean
}
