package engine

import (
	"context"

	"github.com/Veraticus/the-wheel-must-spin/internal/storage"
)

// Checkpointer snapshots the database before destructive operations.
type Checkpointer interface {
	AutoCheckpoint(ctx context.Context, operation string) (*storage.CheckpointInfo, error)
}
