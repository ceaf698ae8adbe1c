package repository

import (
	"context"
	"fmt"

	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/google/uuid"
)

func (r *Repository) CreateInterview(ctx context.Context, iv *model.Interview) error {
	const q = `
INSERT INTO interviews (
	id, application_id, step_name, agent_name, status, vapi_call_id,
	phone_number_used, scheduled_at, started_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
RETURNING id, created_at, updated_at
`
	row := r.db.QueryRow(ctx, q,
		uuid.New(), iv.ApplicationID, iv.StepName, iv.AgentName, iv.Status,
		iv.VapiCallID, iv.PhoneNumberUsed, iv.ScheduledAt, iv.StartedAt,
	)
	if err := row.Scan(&iv.ID, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

const interviewColumns = `
	id, application_id, step_name, agent_name, status, vapi_call_id,
	phone_number_used, scheduled_at, started_at, completed_at,
	duration_minutes, transcript, summary, scores, created_at, updated_at`

func scanInterview(row interface{ Scan(dest ...any) error }) (*model.Interview, error) {
	var iv model.Interview
	err := row.Scan(
		&iv.ID, &iv.ApplicationID, &iv.StepName, &iv.AgentName, &iv.Status,
		&iv.VapiCallID, &iv.PhoneNumberUsed, &iv.ScheduledAt, &iv.StartedAt,
		&iv.CompletedAt, &iv.DurationMinutes, &iv.Transcript, &iv.Summary,
		&iv.Scores, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// FindInterviewByCall resolves the interview a webhook event belongs to.
// Filtering by both the provider call id and the application id from the
// event's metadata rejects events that would otherwise leak across
// applications. Should more than one row match, the oldest wins.
func (r *Repository) FindInterviewByCall(ctx context.Context, callID string, applicationID uuid.UUID) (*model.Interview, error) {
	q := `SELECT` + interviewColumns + `
FROM interviews
WHERE vapi_call_id = $1 AND application_id = $2
ORDER BY created_at ASC
LIMIT 1`
	return scanInterview(r.db.QueryRow(ctx, q, callID, applicationID))
}

func (r *Repository) GetInterviewByID(ctx context.Context, id uuid.UUID) (*model.Interview, error) {
	q := `SELECT` + interviewColumns + ` FROM interviews WHERE id = $1`
	iv, err := scanInterview(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("get interview %s: %w", id, err)
	}
	return iv, nil
}

func (r *Repository) ListInterviewsByApplication(ctx context.Context, applicationID uuid.UUID) ([]model.Interview, error) {
	q := `SELECT` + interviewColumns + `
FROM interviews WHERE application_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, q, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	var out []model.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, *iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// UpdateInterview applies a partial update. Columns outside the whitelist are
// skipped so reconciliation can pass provider-derived maps straight through.
func (r *Repository) UpdateInterview(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	validCols := map[string]bool{
		"status": true, "started_at": true, "completed_at": true,
		"duration_minutes": true, "transcript": true, "summary": true,
		"scores": true, "phone_number_used": true, "scheduled_at": true,
	}

	query := "UPDATE interviews SET updated_at = now()"
	args := []any{}
	argID := 1

	for col, val := range updates {
		if !validCols[col] {
			continue
		}
		query += fmt.Sprintf(", %s = $%d", col, argID)
		args = append(args, val)
		argID++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argID)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview not found")
	}
	return nil
}
