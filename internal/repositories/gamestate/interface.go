package gamestate

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pigparty/server/internal/repositories/gamestate Repository

import (
	"context"

	"github.com/pigparty/server/internal/models"
)

// Repository defines the interface for game state persistence. Game state is
// a single JSON blob per room; CompareAndSave provides optimistic concurrency
// for read-modify-write cycles that race across connections and processes.
type Repository interface {
	// Get retrieves a room's game state
	Get(ctx context.Context, input *GetInput) (*models.PigState, error)

	// Save persists a room's game state unconditionally
	Save(ctx context.Context, input *SaveInput) error

	// CompareAndSave persists a room's game state only if the stored
	// version still matches ExpectedVersion
	CompareAndSave(ctx context.Context, input *CompareAndSaveInput) error

	// Delete removes a room's game state
	Delete(ctx context.Context, input *DeleteInput) error
}
