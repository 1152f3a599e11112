package ports

import (
	"context"

	"drycleaning/internal/core/domain/model/kernel"
)

// PhotoStorage stores item photos and returns opaque references. Drafts
// and committed items carry only the references, never the bytes.
type PhotoStorage interface {
	// Upload stores a photo for an item and returns its reference.
	Upload(ctx context.Context, itemLocalID kernel.UUID, contents []byte) (string, error)
}
