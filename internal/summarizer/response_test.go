package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gita/internal/domain"
)

func TestCompose_Fallback(t *testing.T) {
	c := NewResponseComposer()
	assert.Equal(t, c.Fallback, c.Compose(nil))
	assert.Contains(t, c.Compose(nil), "rephrasing")
}

func TestCompose_ListsVersesInOrder(t *testing.T) {
	ch2 := &domain.Chapter{Number: 2, NameMeaning: "Transcendental Knowledge"}
	ch3 := &domain.Chapter{Number: 3, NameMeaning: "The Path of Selfless Action"}
	results := []domain.ScoredResult{
		{Chapter: ch3, Verse: &domain.Verse{Number: 8, Meaning: "Perform your prescribed duties."}, Score: 40},
		{Chapter: ch2, Verse: &domain.Verse{Number: 47, Meaning: "You have control over action alone."}, Score: 12},
	}

	c := NewResponseComposer()
	out := c.Compose(results)
	require.True(t, strings.HasPrefix(out, c.Intro+"\n\n"))
	assert.True(t, strings.HasSuffix(out, c.Closing))

	first := strings.Index(out, "1. Chapter 3: The Path of Selfless Action\n   Verse 8: Perform your prescribed duties.")
	second := strings.Index(out, "2. Chapter 2: Transcendental Knowledge\n   Verse 47: You have control over action alone.")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.NotContains(t, out, "40")
}

func TestGreeting(t *testing.T) {
	c := &ResponseComposer{Welcome: "hello"}
	assert.Equal(t, "hello", c.Greeting())
	assert.NotEmpty(t, NewResponseComposer().Greeting())
}
