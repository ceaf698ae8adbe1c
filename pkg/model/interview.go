package model

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	InterviewScheduled  InterviewStatus = "scheduled"
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewCancelled  InterviewStatus = "cancelled"
	InterviewNoShow     InterviewStatus = "no_show"
)

// Terminal reports whether the status is an end state. An interview never
// leaves a terminal status, which is what makes webhook replays harmless.
func (s InterviewStatus) Terminal() bool {
	switch s {
	case InterviewCompleted, InterviewCancelled, InterviewNoShow:
		return true
	}
	return false
}

// Scores holds the structured evaluation the voice provider produces in its
// end-of-call analysis. Every dimension is optional.
type Scores struct {
	TechnicalSkills     *float64 `json:"technical_skills,omitempty"`
	Communication       *float64 `json:"communication,omitempty"`
	CulturalFit         *float64 `json:"cultural_fit,omitempty"`
	Enthusiasm          *float64 `json:"enthusiasm,omitempty"`
	ExperienceRelevance *float64 `json:"experience_relevance,omitempty"`
	Overall             *float64 `json:"overall,omitempty"`
}

// Interview is one step of an application's screening process. Created at
// call-initiation time and thereafter mutated only by webhook reconciliation;
// rows are never deleted. VapiCallID, once set, is the immutable join key for
// inbound call events.
type Interview struct {
	ID              uuid.UUID       `json:"id"`
	ApplicationID   uuid.UUID       `json:"application_id"`
	StepName        string          `json:"step_name"`
	AgentName       string          `json:"agent_name"`
	Status          InterviewStatus `json:"status"`
	VapiCallID      *string         `json:"vapi_call_id,omitempty"`
	PhoneNumberUsed *string         `json:"phone_number_used,omitempty"`
	ScheduledAt     *time.Time      `json:"scheduled_at,omitempty"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
	Transcript      *string         `json:"transcript,omitempty"`
	Summary         *string         `json:"summary,omitempty"`
	Scores          *Scores         `json:"scores,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
