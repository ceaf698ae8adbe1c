package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateApplication is returned when a candidate already applied for
// the job; the (job_id, candidate_id) pair is unique in the database.
var ErrDuplicateApplication = errors.New("application already exists for this job and candidate")

func (r *Repository) CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, source model.ApplicationSource) (*model.Application, error) {
	return createApplication(ctx, r.db, jobID, candidateID, source)
}

func createApplication(ctx context.Context, db querier, jobID, candidateID uuid.UUID, source model.ApplicationSource) (*model.Application, error) {
	if source == "" {
		source = model.SourceDirect
	}
	const q = `
INSERT INTO applications (id, job_id, candidate_id, status, source, applied_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now(), now())
RETURNING id, applied_at, created_at, updated_at
`
	app := &model.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      model.ApplicationApplied,
		Source:      source,
	}
	row := db.QueryRow(ctx, q, uuid.New(), jobID, candidateID, model.ApplicationApplied, source)
	if err := row.Scan(&app.ID, &app.AppliedAt, &app.CreatedAt, &app.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return app, nil
}

// SubmitApplication upserts the candidate and creates the application in one
// transaction, so a rejected duplicate application does not leave a freshly
// created candidate row behind with no application pointing at it.
func (r *Repository) SubmitApplication(ctx context.Context, req *model.SubmitApplicationReq) (*model.Application, error) {
	var app *model.Application
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		candidateID, err := upsertCandidate(ctx, tx, &model.Candidate{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			Resume:      req.Resume,
			CoverLetter: req.CoverLetter,
		})
		if err != nil {
			return err
		}
		app, err = createApplication(ctx, tx, req.JobID, candidateID, req.Source)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *Repository) GetApplicationByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	const q = `
SELECT id, job_id, candidate_id, status, source, applied_at, notes, created_at, updated_at
FROM applications WHERE id = $1
`
	var a model.Application
	row := r.db.QueryRow(ctx, q, id)
	err := row.Scan(
		&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.Source,
		&a.AppliedAt, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get application %s: %w", id, err)
	}
	return &a, nil
}

func (r *Repository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error {
	const q = `UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found")
	}
	return nil
}

// ApplicationForScreening projects everything the call initiator needs in one
// query: candidate contact and documents plus the job's interview routing.
func (r *Repository) ApplicationForScreening(ctx context.Context, id uuid.UUID) (*model.ScreeningApplication, error) {
	const q = `
SELECT a.id, c.id, trim(c.first_name || ' ' || c.last_name), c.phone,
	j.title, j.vapi_squad_id, c.resume, c.cover_letter
FROM applications a
JOIN candidates c ON c.id = a.candidate_id
JOIN jobs j ON j.id = a.job_id
WHERE a.id = $1
`
	var sa model.ScreeningApplication
	row := r.db.QueryRow(ctx, q, id)
	err := row.Scan(
		&sa.ID, &sa.CandidateID, &sa.CandidateName, &sa.CandidatePhone,
		&sa.JobTitle, &sa.SquadID, &sa.Resume, &sa.CoverLetter,
	)
	if err != nil {
		return nil, fmt.Errorf("load application %s for screening: %w", id, err)
	}
	return &sa, nil
}
