package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		resumes: make(map[string]Resume),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	resume.CreatedAt = now
	resume.UpdatedAt = now
	resume.normalize()
	r.resumes[resume.ID] = resume.clone()
	return resume.clone(), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id, ownerID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok || resume.UserID != ownerID {
		return Resume{}, ErrNotFound
	}
	return resume.clone(), nil
}

func (r *MemoryRepo) GetPublic(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok || !resume.Public {
		return Resume{}, ErrNotFound
	}
	return resume.clone(), nil
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Resume, 0)
	for _, resume := range r.resumes {
		if resume.UserID == ownerID {
			out = append(out, resume.clone())
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id, ownerID string, patch Patch) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.resumes[id]
	if !ok || current.UserID != ownerID {
		return Resume{}, ErrNotFound
	}
	next := current.clone()
	patch.Apply(&next.Content)
	next.UpdatedAt = r.now()
	r.resumes[id] = next
	return next.clone(), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.resumes[id]
	if !ok || current.UserID != ownerID {
		return ErrNotFound
	}
	delete(r.resumes, id)
	return nil
}
