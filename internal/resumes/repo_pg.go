package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, document, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) (Resume, error) {
	resume.normalize()
	doc, err := json.Marshal(resume.Content)
	if err != nil {
		return Resume{}, fmt.Errorf("encode resume document: %w", err)
	}
	const query = `
INSERT INTO resumes (id, user_id, document, created_at, updated_at)
VALUES ($1, $2, $3::jsonb, now(), now())
RETURNING ` + resumeColumns
	return scanResume(r.DB.QueryRowContext(ctx, query, resume.ID, resume.UserID, string(doc)))
}

func (r *PGRepo) GetByID(ctx context.Context, id, ownerID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2`
	return scanResume(r.DB.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PGRepo) GetPublic(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND COALESCE((document->>'public')::boolean, false)`
	return scanResume(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Update relies on jsonb || being a top-level shallow merge, so the patch
// replaces exactly the keys it carries in a single conditional statement.
func (r *PGRepo) Update(ctx context.Context, id, ownerID string, patch Patch) (Resume, error) {
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return Resume{}, fmt.Errorf("encode patch: %w", err)
	}
	const query = `
UPDATE resumes
SET document = document || $3::jsonb,
    updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + resumeColumns
	return scanResume(r.DB.QueryRowContext(ctx, query, id, ownerID, string(patchJSON)))
}

func (r *PGRepo) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume Resume
		doc    []byte
	)
	if err := row.Scan(&resume.ID, &resume.UserID, &doc, &resume.CreatedAt, &resume.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &resume.Content); err != nil {
			return Resume{}, fmt.Errorf("decode resume document: %w", err)
		}
	}
	resume.normalize()
	return resume, nil
}
