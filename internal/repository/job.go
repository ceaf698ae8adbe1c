package repository

import (
	"context"
	"fmt"

	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/google/uuid"
)

func (r *Repository) CreateJob(ctx context.Context, req *model.CreateJobReq) (*model.Job, error) {
	const q = `
INSERT INTO jobs (
	id, title, company, department, location, employment_type, experience_level,
	description, requirements, responsibilities, skills_required, benefits,
	certifications_required, salary_range_min, salary_range_max, vapi_squad_id,
	phone_number, application_deadline, interview_process, ai_interview_enabled,
	is_active, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
	$18, $19, $20, true, now(), now()
) RETURNING id, created_at, updated_at
`
	job := &model.Job{
		Title:                  req.Title,
		Company:                req.Company,
		Department:             req.Department,
		Location:               req.Location,
		EmploymentType:         req.EmploymentType,
		ExperienceLevel:        req.ExperienceLevel,
		Description:            req.Description,
		Requirements:           req.Requirements,
		Responsibilities:       req.Responsibilities,
		SkillsRequired:         req.SkillsRequired,
		Benefits:               req.Benefits,
		CertificationsRequired: req.CertificationsRequired,
		SalaryRangeMin:         req.SalaryRangeMin,
		SalaryRangeMax:         req.SalaryRangeMax,
		VapiSquadID:            req.VapiSquadID,
		PhoneNumber:            req.PhoneNumber,
		ApplicationDeadline:    req.ApplicationDeadline,
		InterviewProcess:       req.InterviewProcess,
		AIInterviewEnabled:     req.AIInterviewEnabled,
		IsActive:               true,
	}

	row := r.db.QueryRow(ctx, q,
		uuid.New(), req.Title, req.Company, req.Department, req.Location,
		req.EmploymentType, req.ExperienceLevel, req.Description,
		req.Requirements, req.Responsibilities, req.SkillsRequired,
		req.Benefits, req.CertificationsRequired, req.SalaryRangeMin,
		req.SalaryRangeMax, req.VapiSquadID, req.PhoneNumber,
		req.ApplicationDeadline, req.InterviewProcess, req.AIInterviewEnabled,
	)
	if err := row.Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

const jobColumns = `
	id, title, company, department, location, employment_type, experience_level,
	description, requirements, responsibilities, skills_required, benefits,
	certifications_required, salary_range_min, salary_range_max, vapi_squad_id,
	phone_number, application_deadline, interview_process, ai_interview_enabled,
	is_active, created_at, updated_at`

func scanJob(row interface{ Scan(dest ...any) error }) (*model.Job, error) {
	var j model.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Department, &j.Location,
		&j.EmploymentType, &j.ExperienceLevel, &j.Description,
		&j.Requirements, &j.Responsibilities, &j.SkillsRequired, &j.Benefits,
		&j.CertificationsRequired, &j.SalaryRangeMin, &j.SalaryRangeMax,
		&j.VapiSquadID, &j.PhoneNumber, &j.ApplicationDeadline,
		&j.InterviewProcess, &j.AIInterviewEnabled, &j.IsActive,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repository) GetJobByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	q := `SELECT` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return job, nil
}

func (r *Repository) ListJobs(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Job, int, error) {
	where := ""
	if activeOnly {
		where = " WHERE is_active = true"
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	q := `SELECT` + jobColumns + ` FROM jobs` + where + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	out := make([]model.Job, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job row: %w", err)
		}
		out = append(out, *j)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, total, nil
}

// SetJobActive toggles whether the posting accepts applications. Jobs are
// otherwise immutable once published.
func (r *Repository) SetJobActive(ctx context.Context, id uuid.UUID, active bool) error {
	const q = `UPDATE jobs SET is_active = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, active)
	if err != nil {
		return fmt.Errorf("set job active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found")
	}
	return nil
}
