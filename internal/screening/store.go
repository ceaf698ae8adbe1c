package screening

import (
	"context"

	"github.com/alibomaye27/yourvoice/internal/vapi"
	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/google/uuid"
)

// Store is the slice of the repository the screening workflows touch. All
// mutations are single-row updates; coordination between concurrent requests
// happens entirely at the database, last write wins.
type Store interface {
	// ApplicationForScreening loads an application joined with its candidate's
	// contact info and documents and the job's interview routing. Returns
	// pgx.ErrNoRows (possibly wrapped) when the application does not exist.
	ApplicationForScreening(ctx context.Context, id uuid.UUID) (*model.ScreeningApplication, error)

	// CreateInterview inserts a new interview row and fills in its id.
	CreateInterview(ctx context.Context, iv *model.Interview) error

	// FindInterviewByCall looks an interview up by the provider's call id,
	// scoped to the application the event claims to belong to. Scoping by
	// both keys rejects cross-application leakage. Returns pgx.ErrNoRows
	// when nothing matches.
	FindInterviewByCall(ctx context.Context, callID string, applicationID uuid.UUID) (*model.Interview, error)

	// UpdateInterview applies a partial column update to one interview row.
	UpdateInterview(ctx context.Context, id uuid.UUID, updates map[string]any) error

	// UpdateApplicationStatus moves an application to the given status.
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error
}

// CallPlacer places outbound calls with the voice provider.
type CallPlacer interface {
	CreateCall(ctx context.Context, req vapi.CallRequest) (*vapi.Call, error)
}

// DocumentInjector is the slice of the call controller the deferred
// injection job uses.
type DocumentInjector interface {
	InjectCandidateDocuments(ctx context.Context, resume, coverLetter *model.DocumentContent) bool
}

// InjectorFactory builds a DocumentInjector for a call's control URL.
type InjectorFactory func(controlURL string) DocumentInjector

// Deduper suppresses repeat deliveries of the same webhook event. Seen
// reports whether the key was already recorded; implementations must fail
// open (return false) when the backing store is unavailable.
type Deduper interface {
	Seen(ctx context.Context, key string) bool
}
