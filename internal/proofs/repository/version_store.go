package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markleedr/campaign-planner-app/internal/proofs/domain"
)

// VersionStore manages the append-only snapshot history of an ad proof and
// its current-version pointer. The ad_data column is json, not jsonb: field
// order is part of the payload and must survive storage.
type VersionStore struct {
	db *pgxpool.Pool
}

func NewVersionStore(db *pgxpool.Pool) *VersionStore {
	return &VersionStore{db: db}
}

// LoadLatest returns the highest-numbered snapshot, or (nil, nil) when the
// proof exists but has no versions yet. Unknown proofs are ErrNotFound.
func (s *VersionStore) LoadLatest(ctx context.Context, proofID string) (*domain.AdProofVersion, error) {
	const q = `
select version_number, ad_data, created_at
from ad_proof_versions
where ad_proof_id = $1::uuid
order by version_number desc
limit 1;
`
	v := domain.AdProofVersion{AdProofID: proofID}
	var raw []byte
	err := s.db.QueryRow(ctx, q, proofID).Scan(&v.VersionNumber, &raw, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.checkProofExists(ctx, proofID)
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &v.Data); err != nil {
		return nil, fmt.Errorf("decode version %d: %w", v.VersionNumber, err)
	}
	return &v, nil
}

// Get returns one specific snapshot.
func (s *VersionStore) Get(ctx context.Context, proofID string, versionNumber int) (*domain.AdProofVersion, error) {
	const q = `
select version_number, ad_data, created_at
from ad_proof_versions
where ad_proof_id = $1::uuid and version_number = $2;
`
	v := domain.AdProofVersion{AdProofID: proofID}
	var raw []byte
	err := s.db.QueryRow(ctx, q, proofID, versionNumber).Scan(&v.VersionNumber, &raw, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &v.Data); err != nil {
		return nil, fmt.Errorf("decode version %d: %w", versionNumber, err)
	}
	return &v, nil
}

func (s *VersionStore) List(ctx context.Context, proofID string) ([]domain.VersionMeta, error) {
	const q = `
select version_number, created_at
from ad_proof_versions
where ad_proof_id = $1::uuid
order by version_number desc;
`
	rows, err := s.db.Query(ctx, q, proofID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.VersionMeta, 0, 8)
	for rows.Next() {
		var m domain.VersionMeta
		if err := rows.Scan(&m.VersionNumber, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		if err := s.checkProofExists(ctx, proofID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Commit appends a snapshot and advances the current pointer in one
// transaction. The row lock serializes racing writers; a writer that passes
// the base version it loaded gets ErrVersionConflict when the pointer has
// moved past it, instead of stacking a version on someone else's edit.
// baseVersion == nil opts into serialization.
func (s *VersionStore) Commit(ctx context.Context, proofID string, data domain.AdData, baseVersion *int) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("encode ad data: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int
	err = tx.QueryRow(ctx,
		`select current_version from ad_proofs where id = $1::uuid for update;`,
		proofID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}

	if baseVersion != nil && *baseVersion != current {
		return 0, fmt.Errorf("base version %d is behind current %d: %w",
			*baseVersion, current, domain.ErrVersionConflict)
	}

	next := current + 1

	_, err = tx.Exec(ctx, `
insert into ad_proof_versions (id, ad_proof_id, version_number, ad_data)
values ($1, $2::uuid, $3, $4);
`, uuid.NewString(), proofID, next, payload)
	if err != nil {
		return 0, fmt.Errorf("insert version %d: %w", next, err)
	}

	_, err = tx.Exec(ctx, `
update ad_proofs set current_version = $2, updated_at = now() where id = $1::uuid;
`, proofID, next)
	if err != nil {
		return 0, fmt.Errorf("advance pointer to %d: %w", next, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit version %d: %w", next, err)
	}
	return next, nil
}

func (s *VersionStore) checkProofExists(ctx context.Context, proofID string) error {
	var one int
	err := s.db.QueryRow(ctx, `select 1 from ad_proofs where id = $1::uuid;`, proofID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
