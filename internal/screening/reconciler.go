package screening

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alibomaye27/yourvoice/internal/vapi"
	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Reconciler folds asynchronous call lifecycle events into the durable
// interview and application records. Events arrive at-least-once and
// unordered, so every field update is guarded to be idempotent: started_at is
// only set when unset, terminal statuses are never overwritten, and replaying
// any event leaves the row as a single processing would have.
type Reconciler struct {
	store     Store
	dedupe    Deduper             // optional
	scheduler *InjectionScheduler // optional, pending-injection cancellation
	log       *zap.Logger
}

func NewReconciler(store Store, dedupe Deduper, scheduler *InjectionScheduler, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{
		store:     store,
		dedupe:    dedupe,
		scheduler: scheduler,
		log:       log,
	}
}

// Process applies one webhook event. A nil return covers both successful
// reconciliation and deliberate drops (uncorrelatable or unknown events);
// a non-nil return means a store write failed, which the caller logs and
// still acknowledges to the provider.
func (r *Reconciler) Process(ctx context.Context, event *vapi.WebhookEvent) error {
	callID := event.Call.ID

	if event.Call.Metadata.ApplicationID == "" {
		r.log.Info("webhook has no application id, skipping",
			zap.String("type", event.Type), zap.String("call_id", callID))
		return nil
	}
	appID, err := uuid.Parse(event.Call.Metadata.ApplicationID)
	if err != nil {
		r.log.Warn("webhook application id is not a uuid, skipping",
			zap.String("application_id", event.Call.Metadata.ApplicationID))
		return nil
	}

	if r.alreadyDelivered(ctx, event) {
		r.log.Info("duplicate webhook delivery suppressed",
			zap.String("type", event.Type), zap.String("call_id", callID))
		return nil
	}

	iv, err := r.store.FindInterviewByCall(ctx, callID, appID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Info("no interview for webhook call, skipping",
				zap.String("call_id", callID), zap.String("application_id", appID.String()))
			return nil
		}
		return fmt.Errorf("find interview for call %s: %w", callID, err)
	}

	switch event.Type {
	case vapi.EventCallStarted:
		return r.applyCallStarted(ctx, iv, event)
	case vapi.EventCallEnded:
		return r.applyCallEnded(ctx, iv, event)
	case vapi.EventTranscriptUpdated:
		return r.applyTranscriptUpdated(ctx, iv, event)
	default:
		r.log.Info("unhandled webhook type", zap.String("type", event.Type))
		return nil
	}
}

func (r *Reconciler) applyCallStarted(ctx context.Context, iv *model.Interview, event *vapi.WebhookEvent) error {
	if iv.Status.Terminal() {
		// call-started delivered after call-ended; the row already reflects
		// the more advanced state.
		r.log.Info("call-started after terminal status, skipping",
			zap.String("interview_id", iv.ID.String()), zap.String("status", string(iv.Status)))
		return nil
	}

	updates := map[string]any{"status": model.InterviewInProgress}
	if iv.StartedAt == nil {
		updates["started_at"] = eventTimeOrNow(event.Call.StartedAt)
	}
	if err := r.store.UpdateInterview(ctx, iv.ID, updates); err != nil {
		return fmt.Errorf("update interview %s on call-started: %w", iv.ID, err)
	}

	if err := r.store.UpdateApplicationStatus(ctx, iv.ApplicationID, model.ApplicationScreening); err != nil {
		return fmt.Errorf("cascade application %s to screening: %w", iv.ApplicationID, err)
	}
	return nil
}

func (r *Reconciler) applyCallEnded(ctx context.Context, iv *model.Interview, event *vapi.WebhookEvent) error {
	if r.scheduler != nil && iv.VapiCallID != nil {
		if r.scheduler.Cancel(*iv.VapiCallID) {
			r.log.Info("cancelled pending document injection", zap.String("call_id", *iv.VapiCallID))
		}
	}

	if iv.Status.Terminal() {
		// Replayed ending; the first delivery already populated the row.
		return nil
	}

	status := model.InterviewCancelled
	if event.Call.Status == vapi.CallStatusCompleted {
		status = model.InterviewCompleted
	}

	updates := map[string]any{
		"status":       status,
		"completed_at": eventTimeOrNow(event.Call.EndedAt),
	}
	if d := durationMinutes(event.Call.StartedAt, event.Call.EndedAt); d != nil {
		updates["duration_minutes"] = *d
	}
	if event.Call.Transcript != "" {
		updates["transcript"] = event.Call.Transcript
	}
	if event.Call.Summary != "" {
		updates["summary"] = event.Call.Summary
	}
	if scores := parseScores(event.Call.Analysis); scores != nil {
		updates["scores"] = scores
	}

	if err := r.store.UpdateInterview(ctx, iv.ID, updates); err != nil {
		return fmt.Errorf("update interview %s on call-ended: %w", iv.ID, err)
	}

	if status == model.InterviewCompleted {
		if err := r.store.UpdateApplicationStatus(ctx, iv.ApplicationID, model.ApplicationInterviewed); err != nil {
			return fmt.Errorf("cascade application %s to interviewed: %w", iv.ApplicationID, err)
		}
	}
	return nil
}

func (r *Reconciler) applyTranscriptUpdated(ctx context.Context, iv *model.Interview, event *vapi.WebhookEvent) error {
	if event.Call.Transcript == "" {
		return nil
	}
	if err := r.store.UpdateInterview(ctx, iv.ID, map[string]any{"transcript": event.Call.Transcript}); err != nil {
		return fmt.Errorf("update interview %s transcript: %w", iv.ID, err)
	}
	return nil
}

// alreadyDelivered consults the dedupe store for status-bearing events, which
// the provider sends once per call. Transcript updates repeat legitimately
// and are never deduplicated.
func (r *Reconciler) alreadyDelivered(ctx context.Context, event *vapi.WebhookEvent) bool {
	if r.dedupe == nil {
		return false
	}
	if event.Type != vapi.EventCallStarted && event.Type != vapi.EventCallEnded {
		return false
	}
	return r.dedupe.Seen(ctx, event.Call.ID+":"+event.Type)
}

// durationMinutes rounds the call length to whole minutes, half away from
// zero (17m30s reports 18). Nil when either timestamp is missing; a default
// is never substituted.
func durationMinutes(startedAt, endedAt *time.Time) *int {
	if startedAt == nil || endedAt == nil {
		return nil
	}
	mins := int(math.Round(endedAt.Sub(*startedAt).Minutes()))
	return &mins
}

func eventTimeOrNow(t *time.Time) time.Time {
	if t != nil {
		return t.UTC()
	}
	return time.Now().UTC()
}

var scoreKeys = map[string]func(*model.Scores) **float64{
	"technical_skills":     func(s *model.Scores) **float64 { return &s.TechnicalSkills },
	"communication":        func(s *model.Scores) **float64 { return &s.Communication },
	"cultural_fit":         func(s *model.Scores) **float64 { return &s.CulturalFit },
	"enthusiasm":           func(s *model.Scores) **float64 { return &s.Enthusiasm },
	"experience_relevance": func(s *model.Scores) **float64 { return &s.ExperienceRelevance },
	"overall":              func(s *model.Scores) **float64 { return &s.Overall },
}

// parseScores pulls the known score dimensions out of the provider's
// loosely-structured analysis payload. Values may sit at the top level or
// under structuredData depending on the assistant's analysis plan.
func parseScores(analysis json.RawMessage) *model.Scores {
	if len(analysis) == 0 {
		return nil
	}

	var scores model.Scores
	found := false
	for key, field := range scoreKeys {
		v := gjson.GetBytes(analysis, key)
		if !v.Exists() {
			v = gjson.GetBytes(analysis, "structuredData."+key)
		}
		if v.Exists() && v.Type == gjson.Number {
			n := v.Float()
			*field(&scores) = &n
			found = true
		}
	}
	if !found {
		return nil
	}
	return &scores
}
