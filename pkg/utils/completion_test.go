package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCompletionText_StripsFencesAndBoilerplate(t *testing.T) {
	raw := "```markdown\nHere are your vacation recommendations:\n\n## Vacation Recommendation 1: Kyoto\n```"

	got := cleanCompletionText(raw)

	assert.Equal(t, "## Vacation Recommendation 1: Kyoto", got)
}

func TestCleanCompletionText_LeavesPlainTextAlone(t *testing.T) {
	raw := "## Vacation Recommendation 1: Kyoto\n\nDescription:\nTemples."

	assert.Equal(t, raw, cleanCompletionText(raw))
}

func TestNewCompletionClient_RejectsUnknownProvider(t *testing.T) {
	client, err := NewCompletionClient("cohere", "key", "model")

	assert.Nil(t, client)
	assert.Error(t, err)
}
