package vapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.vapi.ai"

// Client talks to the Vapi REST API. It is constructed explicitly with its
// credentials and injected wherever calls need to be placed; there is no
// package-level instance.
type Client struct {
	phoneNumberID string
	http          *resty.Client
}

func NewClient(apiKey, phoneNumberID string) *Client {
	return &Client{
		phoneNumberID: phoneNumberID,
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetAuthToken(apiKey).
			SetTimeout(30 * time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.http.SetBaseURL(u) }

// PhoneNumberID returns the provider-side id of the account's outbound number.
func (c *Client) PhoneNumberID() string { return c.phoneNumberID }

type Customer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// CallMetadata is the opaque correlation bag attached to an outbound call.
// The provider echoes it unchanged on every webhook event for the call, which
// is the only way those events can be mapped back to domain records.
type CallMetadata struct {
	CandidateName string `json:"candidateName,omitempty"`
	JobTitle      string `json:"jobTitle,omitempty"`
	ApplicationID string `json:"applicationId,omitempty"`
	CandidateID   string `json:"candidateId,omitempty"`
	CallType      string `json:"callType,omitempty"`
}

type CallRequest struct {
	PhoneNumberID string        `json:"phoneNumberId"`
	SquadID       string        `json:"squadId,omitempty"`
	AssistantID   string        `json:"assistantId,omitempty"`
	Customer      Customer      `json:"customer"`
	Name          string        `json:"name,omitempty"`
	Metadata      *CallMetadata `json:"metadata,omitempty"`
}

type CallMonitor struct {
	ControlURL string `json:"controlUrl,omitempty"`
	ListenURL  string `json:"listenUrl,omitempty"`
}

type Call struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	PhoneNumberID string          `json:"phoneNumberId,omitempty"`
	Customer      Customer        `json:"customer"`
	Metadata      *CallMetadata   `json:"metadata,omitempty"`
	Monitor       *CallMonitor    `json:"monitor,omitempty"`
	Transcript    string          `json:"transcript,omitempty"`
	Summary       string          `json:"summary,omitempty"`
	Analysis      json.RawMessage `json:"analysis,omitempty"`
	StartedAt     *time.Time      `json:"startedAt,omitempty"`
	EndedAt       *time.Time      `json:"endedAt,omitempty"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
}

type Assistant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	FirstMessage string          `json:"firstMessage,omitempty"`
	Voice        json.RawMessage `json:"voice,omitempty"`
	Model        json.RawMessage `json:"model,omitempty"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

// CreateCall places an outbound call. The call is irrevocable once the
// provider accepts the request, so callers must treat a success here as a
// committed side effect even if their own bookkeeping fails afterwards.
func (c *Client) CreateCall(ctx context.Context, req CallRequest) (*Call, error) {
	var call Call
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&call).
		Post("/call")
	if err != nil {
		return nil, fmt.Errorf("create call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create call: vapi returned %d: %s", resp.StatusCode(), resp.String())
	}
	if call.ID == "" {
		return nil, fmt.Errorf("create call: vapi response missing call id")
	}
	return &call, nil
}

func (c *Client) GetCall(ctx context.Context, callID string) (*Call, error) {
	var call Call
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&call).
		Get("/call/" + callID)
	if err != nil {
		return nil, fmt.Errorf("get call %s: %w", callID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get call %s: vapi returned %d", callID, resp.StatusCode())
	}
	return &call, nil
}

// EndCall asks the provider to hang up a live call.
func (c *Client) EndCall(ctx context.Context, callID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"status": "ended"}).
		Patch("/call/" + callID)
	if err != nil {
		return fmt.Errorf("end call %s: %w", callID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("end call %s: vapi returned %d", callID, resp.StatusCode())
	}
	return nil
}

func (c *Client) ListAssistants(ctx context.Context) ([]Assistant, error) {
	var assistants []Assistant
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&assistants).
		Get("/assistant")
	if err != nil {
		return nil, fmt.Errorf("list assistants: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list assistants: vapi returned %d: %s", resp.StatusCode(), resp.String())
	}
	return assistants, nil
}

// CreateAssistant passes an assistant definition through to the provider
// unchanged and returns the provider's response body.
func (c *Client) CreateAssistant(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/assistant")
	if err != nil {
		return nil, fmt.Errorf("create assistant: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create assistant: vapi returned %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

// UpdateAssistant patches an existing assistant definition.
func (c *Client) UpdateAssistant(ctx context.Context, id string, payload json.RawMessage) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Patch("/assistant/" + id)
	if err != nil {
		return nil, fmt.Errorf("update assistant %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("update assistant %s: vapi returned %d: %s", id, resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}
