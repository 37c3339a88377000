package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fnmonopoly/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	profileCollection = "profile"
	profileKey        = "player_v1"
)

// profileStore is the part of runtime.NakamaModule the profile adapter needs.
type profileStore interface {
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaProfileAdapter stores the player profile in Nakama storage.
type NakamaProfileAdapter struct {
	store profileStore
}

// NewNakamaProfileAdapter creates a new profile adapter.
func NewNakamaProfileAdapter(nk runtime.NakamaModule) *NakamaProfileAdapter {
	return &NakamaProfileAdapter{store: nk}
}

// CreateProfileOnce writes the profile only if the user has none. The write
// uses version "*" so Nakama rejects it when the object already exists.
func (a *NakamaProfileAdapter) CreateProfileOnce(ctx context.Context, userID string, profile ports.PlayerProfile) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}

	value, err := json.Marshal(profile)
	if err != nil {
		return false, fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = a.store.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      profileCollection,
			Key:             profileKey,
			UserID:          userID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create profile: %w", err)
	}
	return true, nil
}

var _ ports.ProfilePort = (*NakamaProfileAdapter)(nil)
