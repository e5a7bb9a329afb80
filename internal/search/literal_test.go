package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gita/internal/domain"
)

func TestLiteral_EmptyQueryIsInactive(t *testing.T) {
	l := NewLiteral(0, 0)
	for _, q := range []string{"", "   ", "\t\n"} {
		st := l.Search(q, testCorpus())
		assert.False(t, st.Active, "query %q", q)
		assert.Empty(t, st.Results)
	}
}

func TestLiteral_NoMatchIsActiveAndEmpty(t *testing.T) {
	st := NewLiteral(0, 0).Search("zebra", testCorpus())
	assert.True(t, st.Active)
	assert.Empty(t, st.Results)
}

func TestLiteral_ChapterMatchSuppressesVerseRows(t *testing.T) {
	// "arjuna" hits chapter 1's meaning and summary; no verse row follows.
	st := NewLiteral(0, 0).Search("Arjuna", testCorpus())
	require.Len(t, st.Results, 1)
	assert.Equal(t, 1, st.Results[0].Chapter.Number)
	assert.Nil(t, st.Results[0].Verse)
}

func TestLiteral_FirstVerseMatchPerChapter(t *testing.T) {
	// "perform" appears in chapter 3 verses 8 and 19; only verse 8 surfaces.
	st := NewLiteral(0, 0).Search("PERFORM", testCorpus())
	require.True(t, st.Active)
	require.Len(t, st.Results, 1)
	r := st.Results[0]
	assert.Equal(t, 3, r.Chapter.Number)
	require.NotNil(t, r.Verse)
	assert.Equal(t, 8, r.Verse.VerseNumber)
	assert.Equal(t, "नियतं कुरु कर्म त्वं...", r.Verse.Text)
	assert.Equal(t, domain.VerseRef{Chapter: 3, Verse: 8}, r.Ref())
}

func TestLiteral_MatchesEveryVerseField(t *testing.T) {
	corpus := testCorpus()
	cases := map[string]int{
		"मा फलेषु":   47, // text
		"mriyate":    20, // transliteration
		"अधिकार":     47, // hindi meaning
		"never born": 20, // meaning
	}
	for q, want := range cases {
		st := NewLiteral(0, 0).Search(q, corpus)
		require.Len(t, st.Results, 1, q)
		require.NotNil(t, st.Results[0].Verse, q)
		assert.Equal(t, want, st.Results[0].Verse.VerseNumber, q)
	}
}

func TestLiteral_OneRowPerChapterAcrossCorpus(t *testing.T) {
	st := NewLiteral(0, 0).Search("o", testCorpus())
	seen := map[int]bool{}
	for _, r := range st.Results {
		assert.False(t, seen[r.Chapter.Number], "chapter %d repeated", r.Chapter.Number)
		seen[r.Chapter.Number] = true
	}
	assert.Len(t, st.Results, 3)
}

func TestLiteral_TruncatesToFirstTenInCorpusOrder(t *testing.T) {
	var corpus []domain.Chapter
	for i := 1; i <= 12; i++ {
		corpus = append(corpus, chapter(i, fmt.Sprintf("c%d", i), "Yoga", "",
			verse(1, "text", "meaning")))
	}
	st := NewLiteral(0, 0).Search("yoga", corpus)
	require.Len(t, st.Results, 10)
	for i, r := range st.Results {
		assert.Equal(t, i+1, r.Chapter.Number)
	}

	st = NewLiteral(3, 0).Search("yoga", corpus)
	assert.Len(t, st.Results, 3)
}

func TestLiteral_ExcerptLength(t *testing.T) {
	long := strings.Repeat("a", 60)
	corpus := []domain.Chapter{chapter(1, "n", "m", "", verse(1, long, "zzz"))}

	st := NewLiteral(0, 0).Search("zzz", corpus)
	require.Len(t, st.Results, 1)
	assert.Equal(t, strings.Repeat("a", 50)+"...", st.Results[0].Verse.Text)

	st = NewLiteral(0, 5).Search("zzz", corpus)
	assert.Equal(t, "aaaaa...", st.Results[0].Verse.Text)
}

func TestExcerpt_KeepsCombiningMarks(t *testing.T) {
	assert.Equal(t, "e\u0301e\u0301...", excerpt("e\u0301e\u0301e\u0301", 2))
	assert.Equal(t, "abc...", excerpt("abc", 50))
	assert.Equal(t, "...", excerpt("", 50))
}

func TestLiteral_Idempotent(t *testing.T) {
	l := NewLiteral(0, 0)
	corpus := testCorpus()
	assert.Equal(t, l.Search("the", corpus), l.Search("the", corpus))
}
