package campaigns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("campaign not found")

type Campaign struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	Name       string    `json:"name"`
	ShareToken string    `json:"share_token"`
	ProofCount int       `json:"proof_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, clientID, name string) (*Campaign, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	id := uuid.NewString()
	const q = `
insert into campaigns (id, client_id, name, share_token)
values ($1, $2::uuid, $3, $4);
`
	if _, err := r.db.Exec(ctx, q, id, clientID, name, uuid.NewString()); err != nil {
		// foreign key violation → unknown client
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// read back through the join so the response carries the client name
	return r.GetByID(ctx, id)
}

const campaignColumns = `
c.id, c.client_id, cl.name, c.name, c.share_token,
count(p.id), c.created_at, c.updated_at`

const campaignJoins = `
from campaigns c
join clients cl on cl.id = c.client_id
left join ad_proofs p on p.campaign_id = c.id`

func scanCampaign(row pgx.Row) (*Campaign, error) {
	var cp Campaign
	err := row.Scan(&cp.ID, &cp.ClientID, &cp.ClientName, &cp.Name, &cp.ShareToken,
		&cp.ProofCount, &cp.CreatedAt, &cp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

func (r *Repo) List(ctx context.Context) ([]Campaign, error) {
	const q = `
select` + campaignColumns + campaignJoins + `
group by c.id, cl.name
order by c.created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Campaign, 0, 16)
	for rows.Next() {
		var cp Campaign
		if err := rows.Scan(&cp.ID, &cp.ClientID, &cp.ClientName, &cp.Name, &cp.ShareToken,
			&cp.ProofCount, &cp.CreatedAt, &cp.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Campaign, error) {
	const q = `
select` + campaignColumns + campaignJoins + `
where c.id = $1::uuid
group by c.id, cl.name;
`
	return scanCampaign(r.db.QueryRow(ctx, q, id))
}

func (r *Repo) GetByShareToken(ctx context.Context, token string) (*Campaign, error) {
	const q = `
select` + campaignColumns + campaignJoins + `
where c.share_token = $1
group by c.id, cl.name;
`
	return scanCampaign(r.db.QueryRow(ctx, q, token))
}
