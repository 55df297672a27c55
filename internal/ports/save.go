package ports

import (
	"context"
	"errors"
)

// ErrSaveNotFound is returned by LoadSave when the player has no save yet.
var ErrSaveNotFound = errors.New("save not found")

// SaveStore keeps one encoded save blob per player.
type SaveStore interface {
	// LoadSave returns the raw save blob or ErrSaveNotFound.
	LoadSave(ctx context.Context, userID string) ([]byte, error)

	// WriteSave overwrites the player's save.
	WriteSave(ctx context.Context, userID string, blob []byte) error

	// CreateSaveOnce writes blob only when no save exists yet.
	// Returns created=false when a save was already present.
	CreateSaveOnce(ctx context.Context, userID string, blob []byte) (bool, error)

	// DeleteSave removes the player's save. Deleting a missing save is not an error.
	DeleteSave(ctx context.Context, userID string) error
}
