package screening

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alibomaye27/yourvoice/internal/vapi"
	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDeduper struct {
	seen map[string]bool
}

func (m *mockDeduper) Seen(ctx context.Context, key string) bool {
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[key] {
		return true
	}
	m.seen[key] = true
	return false
}

func storedInterview(status model.InterviewStatus) *model.Interview {
	callID := "call-1"
	return &model.Interview{
		ID:            uuid.New(),
		ApplicationID: uuid.New(),
		StepName:      "AI Screening",
		Status:        status,
		VapiCallID:    &callID,
	}
}

func event(eventType string, iv *model.Interview) *vapi.WebhookEvent {
	return &vapi.WebhookEvent{
		Type: eventType,
		Call: vapi.WebhookCall{
			ID: "call-1",
			Metadata: vapi.CallMetadata{
				ApplicationID: iv.ApplicationID.String(),
				CallType:      "interview_screening",
			},
		},
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestProcessDropsUncorrelatableEvents(t *testing.T) {
	store := newMockStore()
	r := NewReconciler(store, nil, nil, nil)

	// no application id in metadata: acknowledged and dropped, no lookups
	err := r.Process(context.Background(), &vapi.WebhookEvent{
		Type: vapi.EventCallStarted,
		Call: vapi.WebhookCall{ID: "call-1"},
	})
	require.NoError(t, err)
	assert.Zero(t, store.findCalls)

	// malformed application id: same treatment
	err = r.Process(context.Background(), &vapi.WebhookEvent{
		Type: vapi.EventCallStarted,
		Call: vapi.WebhookCall{
			ID:       "call-1",
			Metadata: vapi.CallMetadata{ApplicationID: "not-a-uuid"},
		},
	})
	require.NoError(t, err)
	assert.Zero(t, store.findCalls)
}

func TestProcessDropsUnknownCall(t *testing.T) {
	store := newMockStore()
	store.findErr = pgx.ErrNoRows
	r := NewReconciler(store, nil, nil, nil)

	iv := storedInterview(model.InterviewScheduled)
	err := r.Process(context.Background(), event(vapi.EventCallStarted, iv))
	require.NoError(t, err)
	assert.Empty(t, store.updates)
}

func TestCallStartedSetsInProgress(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewScheduled)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	startedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := event(vapi.EventCallStarted, iv)
	ev.Call.StartedAt = &startedAt

	require.NoError(t, r.Process(context.Background(), ev))

	require.Len(t, store.updates, 1)
	assert.Equal(t, model.InterviewInProgress, store.updates[0]["status"])
	assert.Equal(t, startedAt, store.updates[0]["started_at"])
	assert.Equal(t, model.ApplicationScreening, store.statusByApp[iv.ApplicationID])
}

func TestCallStartedKeepsExistingStartedAt(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewInProgress)
	iv.StartedAt = timePtr(time.Now().UTC())
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	require.NoError(t, r.Process(context.Background(), event(vapi.EventCallStarted, iv)))

	require.Len(t, store.updates, 1)
	_, hasStartedAt := store.updates[0]["started_at"]
	assert.False(t, hasStartedAt, "replayed call-started must not move started_at")
}

func TestCallStartedAfterTerminalIsNoOp(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewCompleted)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	// late call-started after the ending was already processed
	require.NoError(t, r.Process(context.Background(), event(vapi.EventCallStarted, iv)))
	assert.Empty(t, store.updates)
	assert.Zero(t, store.statusCalls)
}

func TestCallEndedCompleted(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewInProgress)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	startedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(17*time.Minute + 30*time.Second)

	ev := event(vapi.EventCallEnded, iv)
	ev.Call.Status = vapi.CallStatusCompleted
	ev.Call.StartedAt = &startedAt
	ev.Call.EndedAt = &endedAt
	ev.Call.Transcript = "AI: Hello\nUser: Hi"
	ev.Call.Summary = "Strong candidate"
	ev.Call.Analysis = json.RawMessage(`{"structuredData":{"technical_skills":8,"overall":7.5}}`)

	require.NoError(t, r.Process(context.Background(), ev))

	require.Len(t, store.updates, 1)
	u := store.updates[0]
	assert.Equal(t, model.InterviewCompleted, u["status"])
	assert.Equal(t, endedAt, u["completed_at"])
	assert.Equal(t, 18, u["duration_minutes"], "17m30s rounds up")
	assert.Equal(t, "AI: Hello\nUser: Hi", u["transcript"])
	assert.Equal(t, "Strong candidate", u["summary"])

	scores, ok := u["scores"].(*model.Scores)
	require.True(t, ok)
	require.NotNil(t, scores.TechnicalSkills)
	assert.Equal(t, 8.0, *scores.TechnicalSkills)
	require.NotNil(t, scores.Overall)
	assert.Equal(t, 7.5, *scores.Overall)

	assert.Equal(t, model.ApplicationInterviewed, store.statusByApp[iv.ApplicationID])
}

func TestCallEndedNotCompleted(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewInProgress)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	ev := event(vapi.EventCallEnded, iv)
	ev.Call.Status = "customer-did-not-answer"

	require.NoError(t, r.Process(context.Background(), ev))

	require.Len(t, store.updates, 1)
	u := store.updates[0]
	assert.Equal(t, model.InterviewCancelled, u["status"])
	_, hasDuration := u["duration_minutes"]
	assert.False(t, hasDuration, "no duration without both timestamps")

	// only a completed call advances the application
	assert.Zero(t, store.statusCalls)
}

func TestCallEndedDurationRoundsDown(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewInProgress)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	startedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(17*time.Minute + 24*time.Second)

	ev := event(vapi.EventCallEnded, iv)
	ev.Call.Status = vapi.CallStatusCompleted
	ev.Call.StartedAt = &startedAt
	ev.Call.EndedAt = &endedAt

	require.NoError(t, r.Process(context.Background(), ev))
	require.Len(t, store.updates, 1)
	assert.Equal(t, 17, store.updates[0]["duration_minutes"])
}

func TestCallEndedReplayOnTerminalRow(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewCompleted)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	ev := event(vapi.EventCallEnded, iv)
	ev.Call.Status = vapi.CallStatusCompleted

	require.NoError(t, r.Process(context.Background(), ev))
	assert.Empty(t, store.updates)
	assert.Zero(t, store.statusCalls)
}

func TestCallEndedCancelsPendingInjection(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewInProgress)
	store.find = iv
	scheduler := NewInjectionScheduler(nil)
	scheduler.Schedule("call-1", time.Hour, func(ctx context.Context) {
		t.Error("injection must not fire after the call ended")
	})
	r := NewReconciler(store, nil, scheduler, nil)

	ev := event(vapi.EventCallEnded, iv)
	ev.Call.Status = vapi.CallStatusCompleted

	require.NoError(t, r.Process(context.Background(), ev))
	assert.Zero(t, scheduler.Pending())
}

func TestTranscriptUpdated(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewInProgress)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	ev := event(vapi.EventTranscriptUpdated, iv)
	ev.Call.Transcript = "partial transcript"

	require.NoError(t, r.Process(context.Background(), ev))

	require.Len(t, store.updates, 1)
	assert.Equal(t, map[string]any{"transcript": "partial transcript"}, store.updates[0])
	assert.Zero(t, store.statusCalls, "transcript updates never touch the application")
}

func TestTranscriptUpdatedEmptyIsNoOp(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewInProgress)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	require.NoError(t, r.Process(context.Background(), event(vapi.EventTranscriptUpdated, iv)))
	assert.Empty(t, store.updates)
}

func TestUnknownEventTypeAcknowledged(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewScheduled)
	store.find = iv
	r := NewReconciler(store, nil, nil, nil)

	require.NoError(t, r.Process(context.Background(), event("speech-update", iv)))
	assert.Empty(t, store.updates)
}

func TestDuplicateDeliverySuppressed(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewScheduled)
	store.find = iv
	r := NewReconciler(store, &mockDeduper{}, nil, nil)

	require.NoError(t, r.Process(context.Background(), event(vapi.EventCallStarted, iv)))
	require.NoError(t, r.Process(context.Background(), event(vapi.EventCallStarted, iv)))

	// second delivery short-circuits before the store
	assert.Len(t, store.updates, 1)
	assert.Equal(t, 1, store.findCalls)
}

func TestTranscriptUpdatesNeverDeduplicated(t *testing.T) {
	store := newMockStore()
	iv := storedInterview(model.InterviewInProgress)
	store.find = iv
	r := NewReconciler(store, &mockDeduper{}, nil, nil)

	for i := 0; i < 3; i++ {
		ev := event(vapi.EventTranscriptUpdated, iv)
		ev.Call.Transcript = "growing transcript"
		require.NoError(t, r.Process(context.Background(), ev))
	}
	assert.Len(t, store.updates, 3)
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Nil(t, durationMinutes(nil, nil))
	assert.Nil(t, durationMinutes(&start, nil))
	assert.Nil(t, durationMinutes(nil, &start))

	cases := []struct {
		length time.Duration
		want   int
	}{
		{0, 0},
		{29 * time.Second, 0},
		{30 * time.Second, 1},
		{17*time.Minute + 24*time.Second, 17},
		{17*time.Minute + 30*time.Second, 18},
		{45 * time.Minute, 45},
	}
	for _, tc := range cases {
		end := start.Add(tc.length)
		got := durationMinutes(&start, &end)
		require.NotNil(t, got)
		assert.Equal(t, tc.want, *got, "length %s", tc.length)
	}
}

func TestParseScores(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		s := parseScores(json.RawMessage(`{"communication":6,"overall":7}`))
		require.NotNil(t, s)
		assert.Equal(t, 6.0, *s.Communication)
		assert.Equal(t, 7.0, *s.Overall)
		assert.Nil(t, s.TechnicalSkills)
	})

	t.Run("structured data fallback", func(t *testing.T) {
		s := parseScores(json.RawMessage(`{"structuredData":{"enthusiasm":9}}`))
		require.NotNil(t, s)
		assert.Equal(t, 9.0, *s.Enthusiasm)
	})

	t.Run("non numeric values ignored", func(t *testing.T) {
		s := parseScores(json.RawMessage(`{"overall":"great","communication":true}`))
		assert.Nil(t, s)
	})

	t.Run("empty analysis", func(t *testing.T) {
		assert.Nil(t, parseScores(nil))
		assert.Nil(t, parseScores(json.RawMessage(`{}`)))
	})
}
