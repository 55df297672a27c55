package nakama

import (
	"context"
	"errors"
	"fmt"

	"chillista/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaSaveAdapter keeps cart saves in Nakama storage. Saves are readable
// by their owner and writable only by the server.
type NakamaSaveAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaSaveAdapter creates a new save adapter.
func NewNakamaSaveAdapter(nk runtime.NakamaModule) *NakamaSaveAdapter {
	return &NakamaSaveAdapter{nk: nk}
}

// LoadSave reads the player's save object.
func (a *NakamaSaveAdapter) LoadSave(ctx context.Context, userID string) ([]byte, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: SaveCollection, Key: SaveKey, UserID: userID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read save: %w", err)
	}
	if len(objects) == 0 {
		return nil, ports.ErrSaveNotFound
	}
	return []byte(objects[0].Value), nil
}

// WriteSave overwrites the player's save object.
func (a *NakamaSaveAdapter) WriteSave(ctx context.Context, userID string, blob []byte) error {
	if _, err := a.nk.StorageWrite(ctx, []*runtime.StorageWrite{a.write(userID, blob, "")}); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// CreateSaveOnce writes the save only if none exists, using the "*" version guard.
func (a *NakamaSaveAdapter) CreateSaveOnce(ctx context.Context, userID string, blob []byte) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}
	_, err := a.nk.StorageWrite(ctx, []*runtime.StorageWrite{a.write(userID, blob, "*")})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create save: %w", err)
	}
	return true, nil
}

// DeleteSave removes the player's save object.
func (a *NakamaSaveAdapter) DeleteSave(ctx context.Context, userID string) error {
	if err := a.nk.StorageDelete(ctx, []*runtime.StorageDelete{
		{Collection: SaveCollection, Key: SaveKey, UserID: userID},
	}); err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

func (a *NakamaSaveAdapter) write(userID string, blob []byte, version string) *runtime.StorageWrite {
	return &runtime.StorageWrite{
		Collection:      SaveCollection,
		Key:             SaveKey,
		UserID:          userID,
		Value:           string(blob),
		Version:         version,
		PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}
}

var _ ports.SaveStore = (*NakamaSaveAdapter)(nil)
