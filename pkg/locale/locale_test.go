package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, English, Normalize("en"))
	assert.Equal(t, Chinese, Normalize("zh"))
	assert.Equal(t, English, Normalize("fr"))
	assert.Equal(t, English, Normalize(""))
}

func TestFallbackOpeningOptions(t *testing.T) {
	assert.Len(t, FallbackOpeningOptions(English), 3)
	assert.Len(t, FallbackOpeningOptions(Chinese), 3)
	assert.Len(t, FallbackOpeningOptions("tlh"), 3)

	// Callers mutate their copy, not the table.
	opts := FallbackOpeningOptions(English)
	opts[0] = "changed"
	assert.NotEqual(t, "changed", FallbackOpeningOptions(English)[0])
}

func TestFallbackEventStrings(t *testing.T) {
	assert.NotEmpty(t, FallbackEventText(English))
	assert.Contains(t, FallbackEventText(Chinese), "冒险")
	assert.NotEmpty(t, FallbackFinaleText(English))
	assert.Len(t, FallbackEventOptions(Chinese), 5)
}

func TestPDFLabel(t *testing.T) {
	assert.Equal(t, "Main Quest", PDFLabel("quest", English))
	assert.Equal(t, "主线任务", PDFLabel("quest", Chinese))
	assert.Equal(t, "unknown-section", PDFLabel("unknown-section", English))
}
