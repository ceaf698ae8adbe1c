package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationApplied      ApplicationStatus = "applied"
	ApplicationScreening    ApplicationStatus = "screening"
	ApplicationInterviewed  ApplicationStatus = "interviewed"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationOffered      ApplicationStatus = "offered"
	ApplicationHired        ApplicationStatus = "hired"
	ApplicationRejected     ApplicationStatus = "rejected"
	ApplicationWithdrawn    ApplicationStatus = "withdrawn"
)

type ApplicationSource string

const (
	SourceDirect      ApplicationSource = "direct"
	SourceReferral    ApplicationSource = "referral"
	SourceJobBoard    ApplicationSource = "job_board"
	SourceSocialMedia ApplicationSource = "social_media"
	SourceOther       ApplicationSource = "other"
)

// Application links a candidate to a job. Exactly one row exists per
// (job, candidate) pair; the unique constraint lives in the database.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"job_id"`
	CandidateID uuid.UUID         `json:"candidate_id"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
	Source      ApplicationSource `json:"source"`
	Notes       *string           `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type SubmitApplicationReq struct {
	JobID       uuid.UUID         `json:"job_id" binding:"required"`
	FirstName   string            `json:"first_name" binding:"required"`
	LastName    string            `json:"last_name" binding:"required"`
	Email       string            `json:"email" binding:"required,email"`
	Phone       string            `json:"phone" binding:"required"`
	Resume      *DocumentContent  `json:"resume"`
	CoverLetter *DocumentContent  `json:"cover_letter"`
	Source      ApplicationSource `json:"source"`
}

// ScreeningApplication is the projection the call initiator works from: the
// application joined with the candidate's contact info and documents and the
// job's interview routing.
type ScreeningApplication struct {
	ID             uuid.UUID
	CandidateID    uuid.UUID
	CandidateName  string
	CandidatePhone string
	JobTitle       string
	SquadID        *string
	Resume         *DocumentContent
	CoverLetter    *DocumentContent
}
