package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTranscript(t *testing.T) {
	t.Run("valid transcript", func(t *testing.T) {
		err := ValidateTranscript("We discussed the Q3 roadmap and assigned owners.")
		assert.NoError(t, err)
	})

	t.Run("empty transcript", func(t *testing.T) {
		err := ValidateTranscript("")
		assert.ErrorIs(t, err, ErrTranscriptTooShort)
	})

	t.Run("whitespace only", func(t *testing.T) {
		err := ValidateTranscript("   \n\t   ")
		assert.ErrorIs(t, err, ErrTranscriptTooShort)
	})

	t.Run("too short after trimming", func(t *testing.T) {
		err := ValidateTranscript("  short meeting  ")
		assert.ErrorIs(t, err, ErrTranscriptTooShort)
	})

	t.Run("exactly at minimum", func(t *testing.T) {
		err := ValidateTranscript(strings.Repeat("x", MinTranscriptLength))
		assert.NoError(t, err)
	})
}

func TestValidateActionItem(t *testing.T) {
	valid := func() *ActionItem {
		return &ActionItem{
			Id:          "ai-001",
			Description: "Update the deployment runbook",
			Priority:    PriorityMedium,
		}
	}

	t.Run("valid item", func(t *testing.T) {
		require.NoError(t, ValidateActionItem(valid()))
	})

	t.Run("nil item", func(t *testing.T) {
		assert.ErrorIs(t, ValidateActionItem(nil), ErrInvalidActionItem)
	})

	t.Run("empty description", func(t *testing.T) {
		item := valid()
		item.Description = ""
		err := ValidateActionItem(item)
		assert.ErrorIs(t, err, ErrInvalidActionItem)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("unknown priority", func(t *testing.T) {
		item := valid()
		item.Priority = "CRITICAL"
		assert.ErrorIs(t, ValidateActionItem(item), ErrInvalidActionItem)
	})
}

func TestValidateDocument(t *testing.T) {
	valid := func() *Document {
		return &Document{
			Corpus: CorpusTeam,
			Text:   "Name: Ada Lovelace\nRole: Engineer",
		}
	}

	t.Run("valid document", func(t *testing.T) {
		require.NoError(t, ValidateDocument(valid()))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	})

	t.Run("unknown corpus", func(t *testing.T) {
		doc := valid()
		doc.Corpus = "wiki"
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, ErrInvalidCorpus)
	})

	t.Run("empty text", func(t *testing.T) {
		doc := valid()
		doc.Text = ""
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrEmptyText)
	})
}
