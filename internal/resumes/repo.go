package resumes

import "context"

// Repo persists resumes. Every owner-scoped method treats an ownership
// mismatch exactly like a missing id and returns ErrNotFound.
type Repo interface {
	Create(ctx context.Context, resume Resume) (Resume, error)
	GetByID(ctx context.Context, id, ownerID string) (Resume, error)
	GetPublic(ctx context.Context, id string) (Resume, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Resume, error)
	// Update applies patch as one atomic conditional write. Each key present
	// in patch replaces the stored value whole.
	Update(ctx context.Context, id, ownerID string, patch Patch) (Resume, error)
	Delete(ctx context.Context, id, ownerID string) error
}
