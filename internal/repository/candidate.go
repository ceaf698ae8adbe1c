package repository

import (
	"context"
	"fmt"

	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/google/uuid"
)

// UpsertCandidate inserts or refreshes a candidate keyed by email. Documents
// already on file are kept when the new submission carries none, so a
// re-application without attachments does not wipe an earlier resume.
func (r *Repository) UpsertCandidate(ctx context.Context, c *model.Candidate) (uuid.UUID, error) {
	return upsertCandidate(ctx, r.db, c)
}

func upsertCandidate(ctx context.Context, db querier, c *model.Candidate) (uuid.UUID, error) {
	const q = `
INSERT INTO candidates (
	id, first_name, last_name, email, phone, resume, cover_letter,
	linkedin_url, portfolio_url, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
ON CONFLICT (email) DO UPDATE SET
	first_name   = EXCLUDED.first_name,
	last_name    = EXCLUDED.last_name,
	phone        = EXCLUDED.phone,
	resume       = COALESCE(EXCLUDED.resume, candidates.resume),
	cover_letter = COALESCE(EXCLUDED.cover_letter, candidates.cover_letter),
	linkedin_url = COALESCE(EXCLUDED.linkedin_url, candidates.linkedin_url),
	portfolio_url = COALESCE(EXCLUDED.portfolio_url, candidates.portfolio_url),
	updated_at   = now()
RETURNING id
`
	var id uuid.UUID
	row := db.QueryRow(ctx, q,
		uuid.New(), c.FirstName, c.LastName, c.Email, c.Phone,
		c.Resume, c.CoverLetter, c.LinkedinURL, c.PortfolioURL,
	)
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert candidate: %w", err)
	}
	return id, nil
}

func (r *Repository) GetCandidateByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	const q = `
SELECT id, first_name, last_name, email, phone, resume, cover_letter,
	linkedin_url, portfolio_url, created_at, updated_at
FROM candidates WHERE id = $1
`
	var c model.Candidate
	row := r.db.QueryRow(ctx, q, id)
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Resume, &c.CoverLetter, &c.LinkedinURL, &c.PortfolioURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get candidate %s: %w", id, err)
	}
	return &c, nil
}
