package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Candidate is upserted by email; one row per natural person. The resume and
// cover letter are stored as normalized DocumentContent jsonb so the
// screening-call injection never has to guess at their shape.
type Candidate struct {
	ID           uuid.UUID        `json:"id"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	Resume       *DocumentContent `json:"resume,omitempty"`
	CoverLetter  *DocumentContent `json:"cover_letter,omitempty"`
	LinkedinURL  *string          `json:"linkedin_url,omitempty"`
	PortfolioURL *string          `json:"portfolio_url,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (c *Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
