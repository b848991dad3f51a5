package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("client not found")

type Client struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	WebsiteURL string    `json:"website_url,omitempty"`
	LogoURL    string    `json:"logo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, name, websiteURL, logoURL string) (*Client, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	const q = `
insert into clients (id, name, website_url, logo_url)
values ($1, $2, $3, $4)
returning id, name, website_url, logo_url, created_at, updated_at;
`
	var c Client
	err := r.db.QueryRow(ctx, q, uuid.NewString(), name, websiteURL, logoURL).
		Scan(&c.ID, &c.Name, &c.WebsiteURL, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) List(ctx context.Context) ([]Client, error) {
	const q = `
select id, name, website_url, logo_url, created_at, updated_at
from clients
order by name;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Client, 0, 16)
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.WebsiteURL, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Client, error) {
	const q = `
select id, name, website_url, logo_url, created_at, updated_at
from clients
where id = $1::uuid;
`
	var c Client
	err := r.db.QueryRow(ctx, q, id).
		Scan(&c.ID, &c.Name, &c.WebsiteURL, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
