package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markleedr/campaign-planner-app/internal/proofs/domain"
)

type ProofRepo struct {
	db *pgxpool.Pool
}

func NewProofRepo(db *pgxpool.Pool) *ProofRepo {
	return &ProofRepo{db: db}
}

const proofColumns = `id, campaign_id, platform, ad_format, status, current_version, share_token, created_at, updated_at`

func scanProof(row pgx.Row) (*domain.AdProof, error) {
	var p domain.AdProof
	err := row.Scan(&p.ID, &p.CampaignID, &p.Platform, &p.Format, &p.Status,
		&p.CurrentVersion, &p.ShareToken, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProofRepo) Create(ctx context.Context, campaignID string, platform domain.Platform, format domain.Format) (*domain.AdProof, error) {
	const q = `
insert into ad_proofs (id, campaign_id, platform, ad_format, status, share_token)
values ($1, $2::uuid, $3, $4, $5, $6)
returning ` + proofColumns + `;
`
	p, err := scanProof(r.db.QueryRow(ctx, q,
		uuid.NewString(), campaignID, platform, format, domain.StatusDraft, uuid.NewString()))
	if err != nil {
		// foreign key violation → unknown campaign
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProofRepo) GetByID(ctx context.Context, id string) (*domain.AdProof, error) {
	const q = `select ` + proofColumns + ` from ad_proofs where id = $1::uuid;`
	return scanProof(r.db.QueryRow(ctx, q, id))
}

func (r *ProofRepo) GetByShareToken(ctx context.Context, token string) (*domain.AdProof, error) {
	const q = `select ` + proofColumns + ` from ad_proofs where share_token = $1;`
	return scanProof(r.db.QueryRow(ctx, q, token))
}

func (r *ProofRepo) ListByCampaign(ctx context.Context, campaignID string) ([]domain.AdProof, error) {
	const q = `
select ` + proofColumns + `
from ad_proofs
where campaign_id = $1::uuid
order by created_at;
`
	rows, err := r.db.Query(ctx, q, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.AdProof, 0, 8)
	for rows.Next() {
		var p domain.AdProof
		if err := rows.Scan(&p.ID, &p.CampaignID, &p.Platform, &p.Format, &p.Status,
			&p.CurrentVersion, &p.ShareToken, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProofRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.AdProof, error) {
	const q = `
update ad_proofs
set status = $2, updated_at = now()
where id = $1::uuid
returning ` + proofColumns + `;
`
	return scanProof(r.db.QueryRow(ctx, q, id, status))
}
