package model

import (
	"time"

	"github.com/google/uuid"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// InterviewStep is one step of a job's configured interview process.
type InterviewStep struct {
	Name            string `json:"name"`
	AgentName       string `json:"agent_name"`
	DurationMinutes int    `json:"duration_minutes"`
	Description     string `json:"description,omitempty"`
}

type InterviewProcess struct {
	Steps []InterviewStep `json:"steps"`
}

type Job struct {
	ID                     uuid.UUID        `json:"id"`
	Title                  string           `json:"title"`
	Company                string           `json:"company"`
	Department             string           `json:"department"`
	Location               string           `json:"location"`
	EmploymentType         EmploymentType   `json:"employment_type"`
	ExperienceLevel        ExperienceLevel  `json:"experience_level"`
	Description            string           `json:"description"`
	Requirements           []string         `json:"requirements"`
	Responsibilities       []string         `json:"responsibilities"`
	SkillsRequired         []string         `json:"skills_required"`
	Benefits               []string         `json:"benefits,omitempty"`
	CertificationsRequired []string         `json:"certifications_required,omitempty"`
	SalaryRangeMin         *int             `json:"salary_range_min,omitempty"`
	SalaryRangeMax         *int             `json:"salary_range_max,omitempty"`
	VapiSquadID            *string          `json:"vapi_squad_id,omitempty"`
	PhoneNumber            *string          `json:"phone_number,omitempty"`
	IsActive               bool             `json:"is_active"`
	ApplicationDeadline    *time.Time       `json:"application_deadline,omitempty"`
	InterviewProcess       InterviewProcess `json:"interview_process"`
	AIInterviewEnabled     bool             `json:"ai_interview_enabled"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

type CreateJobReq struct {
	Title                  string           `json:"title" binding:"required"`
	Company                string           `json:"company" binding:"required"`
	Department             string           `json:"department"`
	Location               string           `json:"location"`
	EmploymentType         EmploymentType   `json:"employment_type" binding:"required"`
	ExperienceLevel        ExperienceLevel  `json:"experience_level" binding:"required"`
	Description            string           `json:"description" binding:"required"`
	Requirements           []string         `json:"requirements"`
	Responsibilities       []string         `json:"responsibilities"`
	SkillsRequired         []string         `json:"skills_required"`
	Benefits               []string         `json:"benefits"`
	CertificationsRequired []string         `json:"certifications_required"`
	SalaryRangeMin         *int             `json:"salary_range_min"`
	SalaryRangeMax         *int             `json:"salary_range_max"`
	VapiSquadID            *string          `json:"vapi_squad_id"`
	PhoneNumber            *string          `json:"phone_number"`
	ApplicationDeadline    *time.Time       `json:"application_deadline"`
	InterviewProcess       InterviewProcess `json:"interview_process"`
	AIInterviewEnabled     bool             `json:"ai_interview_enabled"`
}

// GeneratedJob is the structured posting returned by the AI job-description
// generator. Field set mirrors CreateJobReq so the client can prefill the
// job-setup form directly.
type GeneratedJob struct {
	Title                  string   `json:"title"`
	Company                string   `json:"company"`
	Department             string   `json:"department"`
	Location               string   `json:"location"`
	EmploymentType         string   `json:"employment_type"`
	ExperienceLevel        string   `json:"experience_level"`
	Description            string   `json:"description"`
	SalaryRangeMin         int      `json:"salary_range_min"`
	SalaryRangeMax         int      `json:"salary_range_max"`
	ApplicationDeadline    string   `json:"application_deadline"`
	Requirements           []string `json:"requirements"`
	Responsibilities       []string `json:"responsibilities"`
	SkillsRequired         []string `json:"skills_required"`
	Benefits               []string `json:"benefits"`
	CertificationsRequired []string `json:"certifications_required"`
}
