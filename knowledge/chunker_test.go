package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = `Meeting: Product Launch Planning
Date: 2025-06-02
Duration: 45 minutes
Attendees: Sarah Chen, Mike Johnson, Lisa Park

Sarah Chen: Good morning everyone. Today we need to finalize the launch timeline and assign the remaining workstreams before the end of the sprint.
Mike Johnson: The QA suite is about eighty percent done. I still need two days for the regression pass on the payments flow before I can sign off.
Lisa Park: Marketing assets are ready for review. I'll circulate the landing page copy this afternoon so everyone can comment before Friday.
Sarah Chen: Great. Let's also make sure the support team gets the FAQ draft by next week at the latest.`

func TestParseTranscriptHeader(t *testing.T) {
	header := parseTranscriptHeader(sampleTranscript)

	assert.Equal(t, "Product Launch Planning", header.Meeting)
	assert.Equal(t, "2025-06-02", header.Date)
	assert.Equal(t, "Sarah Chen, Mike Johnson, Lisa Park", header.Attendees)
}

func TestParseTranscriptHeaderMissingFields(t *testing.T) {
	header := parseTranscriptHeader("Sarah: hello\nMike: hi")

	assert.Empty(t, header.Meeting)
	assert.Empty(t, header.Date)
	assert.Empty(t, header.Attendees)
}

func TestSplitTranscriptPrependsHeader(t *testing.T) {
	chunks := splitTranscript(sampleTranscript, 500)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.True(t, strings.HasPrefix(chunk, "Meeting: Product Launch Planning"),
			"every chunk carries the header context")
	}
}

func TestSplitTranscriptRespectsChunkSize(t *testing.T) {
	chunks := splitTranscript(sampleTranscript, 400)
	require.Greater(t, len(chunks), 1, "long transcript splits into multiple chunks")

	// All body content survives the split.
	joined := strings.Join(chunks, "\n")
	assert.Contains(t, joined, "regression pass on the payments flow")
	assert.Contains(t, joined, "FAQ draft")
}

func TestSplitTranscriptEmpty(t *testing.T) {
	assert.Nil(t, splitTranscript("", 500))
	assert.Nil(t, splitTranscript("   \n  ", 500))
}

func TestSplitTranscriptHeaderOnly(t *testing.T) {
	text := "Meeting: Standup\nDate: 2025-06-02"
	chunks := splitTranscript(text, 500)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Product Launch Planning", titleCase("product launch planning"))
	assert.Equal(t, "Q3", titleCase("q3"))
	assert.Equal(t, "", titleCase(""))
}
