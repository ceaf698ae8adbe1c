package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alibomaye27/yourvoice/internal/screening"
	"github.com/alibomaye27/yourvoice/internal/vapi"
	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubStore satisfies screening.Store for handler tests; every lookup
// misses, exercising the "acknowledge and drop" paths.
type stubStore struct{}

func (stubStore) ApplicationForScreening(ctx context.Context, id uuid.UUID) (*model.ScreeningApplication, error) {
	return nil, pgx.ErrNoRows
}
func (stubStore) CreateInterview(ctx context.Context, iv *model.Interview) error { return nil }
func (stubStore) FindInterviewByCall(ctx context.Context, callID string, applicationID uuid.UUID) (*model.Interview, error) {
	return nil, pgx.ErrNoRows
}
func (stubStore) UpdateInterview(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}
func (stubStore) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error {
	return nil
}

func webhookRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{
		Logger:     zap.NewNop(),
		Reconciler: screening.NewReconciler(stubStore{}, nil, nil, nil),
	}
	r := gin.New()
	r.POST("/webhooks/vapi", h.VapiWebhook)
	return r
}

func postWebhook(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/vapi", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVapiWebhookUnparseableBody(t *testing.T) {
	r := webhookRouter(t)
	w := postWebhook(t, r, `{"type": "call-started", "call": `)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unparseable")
}

func TestVapiWebhookAcknowledgesMissingMetadata(t *testing.T) {
	r := webhookRouter(t)
	w := postWebhook(t, r, `{"type": "call-started", "call": {"id": "call-1"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestVapiWebhookAcknowledgesUnknownCall(t *testing.T) {
	r := webhookRouter(t)
	appID := uuid.New().String()
	w := postWebhook(t, r,
		`{"type": "call-ended", "call": {"id": "call-404", "status": "completed", "metadata": {"applicationId": "`+appID+`"}}}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestVapiWebhookAcknowledgesUnknownEventType(t *testing.T) {
	r := webhookRouter(t)
	w := postWebhook(t, r, `{"type": "speech-update", "call": {"id": "call-1"}}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestVapiWebhookParsesTimestamps(t *testing.T) {
	// the envelope must accept the provider's RFC3339 millisecond timestamps
	var ev vapi.WebhookEvent
	body := []byte(`{"type":"call-ended","call":{"id":"c1","startedAt":"2026-03-01T10:00:00.000Z","endedAt":"2026-03-01T10:17:30.000Z"}}`)
	require.NoError(t, json.Unmarshal(body, &ev))
	require.NotNil(t, ev.Call.StartedAt)
	require.NotNil(t, ev.Call.EndedAt)
	assert.Equal(t, 1050.0, ev.Call.EndedAt.Sub(*ev.Call.StartedAt).Seconds())
}
