package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alibomaye27/yourvoice/internal/screening"
	"github.com/alibomaye27/yourvoice/internal/vapi"
	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// screeningStore serves a single application, stubbing everything else.
type screeningStore struct {
	stubStore
	app *model.ScreeningApplication
}

func (s screeningStore) ApplicationForScreening(ctx context.Context, id uuid.UUID) (*model.ScreeningApplication, error) {
	if s.app == nil {
		return nil, errors.New("no rows in result set")
	}
	return s.app, nil
}

type stubPlacer struct {
	call *vapi.Call
	err  error
}

func (s stubPlacer) CreateCall(ctx context.Context, req vapi.CallRequest) (*vapi.Call, error) {
	return s.call, s.err
}

func callRouter(t *testing.T, store screening.Store, placer screening.CallPlacer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{
		Logger:    zap.NewNop(),
		Initiator: screening.NewInitiator(store, placer, nil, nil, "pn-1", 0, nil),
	}
	r := gin.New()
	r.POST("/api/v1/calls/initiate", h.InitiateCall)
	return r
}

func postInitiate(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calls/initiate", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInitiateCallHandlerSuccess(t *testing.T) {
	squad := "squad-1"
	store := screeningStore{app: &model.ScreeningApplication{
		ID:          uuid.New(),
		CandidateID: uuid.New(),
		SquadID:     &squad,
	}}
	placer := stubPlacer{call: &vapi.Call{
		ID:      "call-9",
		Status:  "queued",
		Monitor: &vapi.CallMonitor{ControlURL: "https://control.example/call-9"},
	}}
	r := callRouter(t, store, placer)

	w := postInitiate(t, r, gin.H{
		"applicationId":  store.app.ID.String(),
		"candidatePhone": "+15551234567",
		"candidateName":  "Ada Lovelace",
		"jobTitle":       "Backend Engineer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "call-9", body["callId"])
	assert.Equal(t, "https://control.example/call-9", body["controlUrl"])
	assert.Equal(t, true, body["candidateDocumentsInjected"])
}

func TestInitiateCallHandlerMissingField(t *testing.T) {
	r := callRouter(t, screeningStore{}, stubPlacer{})

	w := postInitiate(t, r, gin.H{"candidatePhone": "+15551234567"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "applicationId is required")
}

func TestInitiateCallHandlerUnknownApplication(t *testing.T) {
	r := callRouter(t, screeningStore{}, stubPlacer{})

	w := postInitiate(t, r, gin.H{
		"applicationId":  uuid.New().String(),
		"candidatePhone": "+15551234567",
		"candidateName":  "Ada Lovelace",
		"jobTitle":       "Backend Engineer",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "could not find job or squad")
}

func TestInitiateCallHandlerProviderFailure(t *testing.T) {
	squad := "squad-1"
	store := screeningStore{app: &model.ScreeningApplication{
		ID:          uuid.New(),
		CandidateID: uuid.New(),
		SquadID:     &squad,
	}}
	r := callRouter(t, store, stubPlacer{err: errors.New("vapi returned 503")})

	w := postInitiate(t, r, gin.H{
		"applicationId":  store.app.ID.String(),
		"candidatePhone": "+15551234567",
		"candidateName":  "Ada Lovelace",
		"jobTitle":       "Backend Engineer",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to initiate call")
}
