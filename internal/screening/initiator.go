package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/alibomaye27/yourvoice/internal/vapi"
	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	screeningStepName  = "AI Screening"
	screeningAgentName = "AI Interviewer"
	callTypeScreening  = "interview_screening"

	// Gives the callee time to answer and the assistant's opening turn to
	// finish before documents land in the context.
	defaultInjectDelay = 5 * time.Second
)

type InitiateCallRequest struct {
	ApplicationID  string `json:"applicationId"`
	CandidatePhone string `json:"candidatePhone"`
	CandidateName  string `json:"candidateName"`
	JobTitle       string `json:"jobTitle"`
	RoutingID      string `json:"routingId"`
}

type InitiateCallResult struct {
	CallID             string `json:"callId"`
	ControlURL         string `json:"controlUrl,omitempty"`
	DocumentsScheduled bool   `json:"candidateDocumentsInjected"`
}

// Initiator places outbound screening calls. A successful return means the
// call was dialed; the interview row and the application status cascade are
// best-effort bookkeeping that is logged but never rolls the call back,
// because the call is irrevocable once placed.
type Initiator struct {
	store       Store
	calls       CallPlacer
	scheduler   *InjectionScheduler
	newInjector InjectorFactory

	phoneNumberID string
	injectDelay   time.Duration
	log           *zap.Logger
}

func NewInitiator(store Store, calls CallPlacer, scheduler *InjectionScheduler, newInjector InjectorFactory, phoneNumberID string, injectDelay time.Duration, log *zap.Logger) *Initiator {
	if injectDelay <= 0 {
		injectDelay = defaultInjectDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Initiator{
		store:         store,
		calls:         calls,
		scheduler:     scheduler,
		newInjector:   newInjector,
		phoneNumberID: phoneNumberID,
		injectDelay:   injectDelay,
		log:           log,
	}
}

// InitiateCall validates the request, resolves the interview routing, dials
// the candidate and records the interview. The deferred document injection is
// scheduled fire-and-forget; its outcome is never part of this response.
func (in *Initiator) InitiateCall(ctx context.Context, req InitiateCallRequest) (*InitiateCallResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("%w: applicationId is not a valid uuid", ErrInvalidRequest)
	}

	app, err := in.store.ApplicationForScreening(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not load application %s: %v", ErrConfiguration, appID, err)
	}

	routingID := req.RoutingID
	if routingID == "" && app.SquadID != nil {
		routingID = *app.SquadID
	}
	if routingID == "" {
		return nil, fmt.Errorf("%w: job for application %s has no squad id", ErrConfiguration, appID)
	}

	call, err := in.calls.CreateCall(ctx, vapi.CallRequest{
		PhoneNumberID: in.phoneNumberID,
		SquadID:       routingID,
		Customer: vapi.Customer{
			Number: req.CandidatePhone,
			Name:   req.CandidateName,
		},
		Name: fmt.Sprintf("AI Interview for %s", req.CandidateName),
		Metadata: &vapi.CallMetadata{
			CandidateName: req.CandidateName,
			JobTitle:      req.JobTitle,
			ApplicationID: appID.String(),
			CandidateID:   app.CandidateID.String(),
			CallType:      callTypeScreening,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	// The call is live from here on. Everything below is bookkeeping that
	// must not fail the initiation.
	in.recordInterview(ctx, app, call, req.CandidatePhone)

	if err := in.store.UpdateApplicationStatus(ctx, appID, model.ApplicationScreening); err != nil {
		in.log.Error("failed to update application status",
			zap.String("application_id", appID.String()), zap.Error(err))
	}

	controlURL := ""
	if call.Monitor != nil {
		controlURL = call.Monitor.ControlURL
	}
	if controlURL != "" && in.scheduler != nil && in.newInjector != nil {
		in.scheduleInjection(call.ID, controlURL, app)
	}

	return &InitiateCallResult{
		CallID:             call.ID,
		ControlURL:         controlURL,
		DocumentsScheduled: controlURL != "",
	}, nil
}

func (req InitiateCallRequest) validate() error {
	switch {
	case req.ApplicationID == "":
		return fmt.Errorf("%w: applicationId is required", ErrInvalidRequest)
	case req.CandidatePhone == "":
		return fmt.Errorf("%w: candidatePhone is required", ErrInvalidRequest)
	case req.CandidateName == "":
		return fmt.Errorf("%w: candidateName is required", ErrInvalidRequest)
	case req.JobTitle == "":
		return fmt.Errorf("%w: jobTitle is required", ErrInvalidRequest)
	}
	return nil
}

func (in *Initiator) recordInterview(ctx context.Context, app *model.ScreeningApplication, call *vapi.Call, phone string) {
	status := model.InterviewScheduled
	var startedAt *time.Time
	if call.Status == "in-progress" || call.Status == "in_progress" {
		status = model.InterviewInProgress
		now := time.Now().UTC()
		startedAt = &now
	}

	iv := &model.Interview{
		ApplicationID:   app.ID,
		StepName:        screeningStepName,
		AgentName:       screeningAgentName,
		Status:          status,
		VapiCallID:      &call.ID,
		PhoneNumberUsed: &phone,
		StartedAt:       startedAt,
	}
	if err := in.store.CreateInterview(ctx, iv); err != nil {
		// Orphaned call: placed but unrecorded. Surfaced for operators, not
		// retried; webhook events for it will be dropped as uncorrelated.
		in.log.Error("failed to store interview record",
			zap.String("application_id", app.ID.String()),
			zap.String("call_id", call.ID),
			zap.Error(err))
	}
}

func (in *Initiator) scheduleInjection(callID, controlURL string, app *model.ScreeningApplication) {
	resume, coverLetter := app.Resume, app.CoverLetter
	in.scheduler.Schedule(callID, in.injectDelay, func(ctx context.Context) {
		injector := in.newInjector(controlURL)
		if injector.InjectCandidateDocuments(ctx, resume, coverLetter) {
			in.log.Info("injected candidate documents into call", zap.String("call_id", callID))
		} else {
			in.log.Warn("candidate document injection sent nothing", zap.String("call_id", callID))
		}
	})
}
