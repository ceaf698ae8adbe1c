package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentContentText(t *testing.T) {
	var nilDoc *DocumentContent
	assert.Equal(t, "", nilDoc.Text())
	assert.Equal(t, "", (&DocumentContent{Content: "  \n\t "}).Text())
	assert.Equal(t, "resume body", PlainText("  resume body \n").Text())
}

func TestInterviewStatusTerminal(t *testing.T) {
	assert.False(t, InterviewScheduled.Terminal())
	assert.False(t, InterviewInProgress.Terminal())
	assert.True(t, InterviewCompleted.Terminal())
	assert.True(t, InterviewCancelled.Terminal())
	assert.True(t, InterviewNoShow.Terminal())
}
