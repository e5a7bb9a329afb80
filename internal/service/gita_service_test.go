package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gita/internal/corpus/memory"
	"gita/internal/domain"
	"gita/internal/search"
	"gita/internal/summarizer"
)

func newTestService(t *testing.T) *GitaServiceImpl {
	t.Helper()
	engine := search.NewEngine(search.Options{}, nil)
	svc := NewGitaService(memory.NewStorage(), engine, engine, summarizer.NewResponseComposer(), nil)
	info, err := svc.LoadCorpus(t.Context(), nil)
	require.NoError(t, err)
	require.Equal(t, 6, info.Chapters)
	require.Equal(t, 17, info.Verses)
	require.Len(t, info.Sources, 1)
	return svc
}

func TestSearch(t *testing.T) {
	svc := newTestService(t)

	assert.False(t, svc.Search("   ").Active)

	st := svc.Search("arjuna")
	require.True(t, st.Active)
	require.NotEmpty(t, st.Results)
	assert.Equal(t, 1, st.Results[0].Chapter.Number)
	assert.Nil(t, st.Results[0].Verse, "chapter-level match suppresses verse rows")

	st = svc.Search("no such phrase anywhere")
	assert.True(t, st.Active)
	assert.Empty(t, st.Results)
}

func TestAsk(t *testing.T) {
	svc := newTestService(t)
	composer := summarizer.NewResponseComposer()

	_, err := svc.Ask("  ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)

	ans, err := svc.Ask("How do I control my restless mind?")
	require.NoError(t, err)
	require.NotEmpty(t, ans.Results)
	assert.LessOrEqual(t, len(ans.Results), search.DefaultRankedLimit)
	assert.Contains(t, ans.Text, composer.Intro)
	for i := 1; i < len(ans.Results); i++ {
		assert.GreaterOrEqual(t, ans.Results[i-1].Score, ans.Results[i].Score)
	}

	ans, err = svc.Ask("xyzzy qwerty")
	require.NoError(t, err)
	assert.Empty(t, ans.Results)
	assert.Equal(t, composer.Fallback, ans.Text)
}

func TestAsk_TrimsQuestion(t *testing.T) {
	svc := newTestService(t)

	want, err := svc.Ask("eternal")
	require.NoError(t, err)
	require.NotEmpty(t, want.Results)

	for _, q := range []string{"eternal ", "  eternal", "\teternal\n"} {
		got, err := svc.Ask(q)
		require.NoError(t, err)
		assert.Equal(t, "eternal", got.Query)
		assert.Equal(t, want.Results, got.Results, "question %q", q)
		assert.Equal(t, want.Text, got.Text)
	}
}

func TestResolve(t *testing.T) {
	svc := newTestService(t)

	ch, v, err := svc.Resolve(domain.VerseRef{Chapter: 2, Verse: 47})
	require.NoError(t, err)
	assert.Equal(t, "Transcendental Knowledge", ch.NameMeaning)
	assert.Equal(t, 47, v.Number)

	_, _, err = svc.Resolve(domain.VerseRef{Chapter: 2, Verse: 999})
	assert.ErrorIs(t, err, domain.ErrVerseNotFound)

	_, _, err = svc.Resolve(domain.VerseRef{Chapter: 7, Verse: 1})
	assert.ErrorIs(t, err, domain.ErrChapterNotFound)
}

func TestLoadCorpus_FailureKeepsSnapshot(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.LoadCorpus(t.Context(), []string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Len(t, svc.Chapters(), 6)
}

func TestGreeting(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, summarizer.NewResponseComposer().Greeting(), svc.Greeting())
}
