// Package storage defines the sink for assembled warehouse output.
package storage

import (
	"context"

	"dwh/internal/pipeline"
)

// Warehouse persists one assembled batch. Each load replaces the previous
// contents of the presentation tables; surrogate keys are only stable within
// a batch, so partial writes are never useful.
type Warehouse interface {
	Load(ctx context.Context, res *pipeline.Result) error
}
