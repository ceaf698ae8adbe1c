package vapi

import (
	"context"
	"fmt"
	"time"

	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ControlMessage is one imperative command on a live call's control channel.
type ControlMessage struct {
	Type                   string               `json:"type"`
	Content                string               `json:"content,omitempty"`
	EndCallAfterSpoken     bool                 `json:"endCallAfterSpoken,omitempty"`
	Message                *ChatMessage         `json:"message,omitempty"`
	TriggerResponseEnabled *bool                `json:"triggerResponseEnabled,omitempty"`
	Control                string               `json:"control,omitempty"`
	Destination            *TransferDestination `json:"destination,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TransferDestination struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

const (
	resumeInjectionTemplate = `CANDIDATE RESUME INFORMATION:
%s

Please use this resume information to ask relevant follow-up questions about the candidate's experience, skills, and background. Focus on areas that align with the job requirements.`

	coverLetterInjectionTemplate = `CANDIDATE COVER LETTER:
%s

The candidate has expressed interest in this position through their cover letter. Use this information to understand their motivation and ask relevant questions about their interest in the role.`

	documentsReadyMessage = "I have now received the candidate's application documents. Please proceed with the interview questions based on their background and expressed interest."

	defaultTransferMessage = "Transferring you to a human interviewer now."
)

// CallController steers a single live call through its ephemeral control URL.
// Every operation is a single fire-and-forget POST: the return value reports
// only whether the transport accepted the message, there are no retries and
// no queue. The controller keeps no state beyond the URL, so it is safe to
// construct one ad hoc for every pending call.
type CallController struct {
	controlURL string
	http       *resty.Client
	log        *zap.Logger
}

func NewCallController(controlURL string, log *zap.Logger) *CallController {
	if log == nil {
		log = zap.NewNop()
	}
	return &CallController{
		controlURL: controlURL,
		http:       resty.New().SetTimeout(10 * time.Second),
		log:        log,
	}
}

func (cc *CallController) send(ctx context.Context, msg ControlMessage) bool {
	resp, err := cc.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(cc.controlURL)
	if err != nil {
		cc.log.Warn("control message failed", zap.String("type", msg.Type), zap.Error(err))
		return false
	}
	if resp.IsError() {
		cc.log.Warn("control message rejected",
			zap.String("type", msg.Type),
			zap.Int("status", resp.StatusCode()))
		return false
	}
	return true
}

// Say has the assistant speak content immediately.
func (cc *CallController) Say(ctx context.Context, content string, endCallAfter bool) bool {
	return cc.send(ctx, ControlMessage{
		Type:               "say",
		Content:            content,
		EndCallAfterSpoken: endCallAfter,
	})
}

// AddSystemMessage appends a system-role message to the assistant's running
// context. triggerResponse controls whether the assistant acts on it
// immediately or only folds it into later turns.
func (cc *CallController) AddSystemMessage(ctx context.Context, content string, triggerResponse bool) bool {
	return cc.send(ctx, ControlMessage{
		Type: "add-message",
		Message: &ChatMessage{
			Role:    "system",
			Content: content,
		},
		TriggerResponseEnabled: &triggerResponse,
	})
}

// InjectResumeContent pushes the candidate's resume into the call context.
// Empty or whitespace-only content is a no-op returning false, not an error.
func (cc *CallController) InjectResumeContent(ctx context.Context, resume *model.DocumentContent) bool {
	content := resume.Text()
	if content == "" {
		return false
	}
	return cc.AddSystemMessage(ctx, fmt.Sprintf(resumeInjectionTemplate, content), false)
}

// InjectCoverLetterContent pushes the candidate's cover letter into the call
// context, same contract as InjectResumeContent.
func (cc *CallController) InjectCoverLetterContent(ctx context.Context, coverLetter *model.DocumentContent) bool {
	content := coverLetter.Text()
	if content == "" {
		return false
	}
	return cc.AddSystemMessage(ctx, fmt.Sprintf(coverLetterInjectionTemplate, content), false)
}

// InjectCandidateDocuments injects resume then cover letter, and if either
// landed, nudges the assistant that the documents have arrived. The nudge is
// the only message sent with triggerResponseEnabled, and it always comes last
// so it can reference material already in context. Returns false and sends
// nothing further when neither document produced content.
func (cc *CallController) InjectCandidateDocuments(ctx context.Context, resume, coverLetter *model.DocumentContent) bool {
	resumeOK := cc.InjectResumeContent(ctx, resume)
	coverOK := cc.InjectCoverLetterContent(ctx, coverLetter)

	if !resumeOK && !coverOK {
		return false
	}
	return cc.AddSystemMessage(ctx, documentsReadyMessage, true)
}

func (cc *CallController) MuteAssistant(ctx context.Context) bool {
	return cc.send(ctx, ControlMessage{Type: "control", Control: "mute-assistant"})
}

func (cc *CallController) UnmuteAssistant(ctx context.Context) bool {
	return cc.send(ctx, ControlMessage{Type: "control", Control: "unmute-assistant"})
}

func (cc *CallController) SayFirstMessage(ctx context.Context) bool {
	return cc.send(ctx, ControlMessage{Type: "control", Control: "say-first-message"})
}

func (cc *CallController) EndCall(ctx context.Context) bool {
	return cc.send(ctx, ControlMessage{Type: "end-call"})
}

// TransferToHuman hands the call off to a human at the given number. An empty
// message falls back to a standard hand-off announcement.
func (cc *CallController) TransferToHuman(ctx context.Context, number, message string) bool {
	if message == "" {
		message = defaultTransferMessage
	}
	return cc.send(ctx, ControlMessage{
		Type:    "transfer",
		Content: message,
		Destination: &TransferDestination{
			Type:   "number",
			Number: number,
		},
	})
}
