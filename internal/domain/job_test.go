package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusFailed))
	assert.False(t, IsTerminal(StatusQueued))
	assert.False(t, IsTerminal(StatusProcessing))
}

func TestJobMessage_WireFormat(t *testing.T) {
	body, err := json.Marshal(JobMessage{
		RequestID:      "abc-123",
		Text:           "hello",
		TargetLanguage: "fr",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"requestId":"abc-123","text":"hello","targetLanguage":"fr"}`, string(body))
}
