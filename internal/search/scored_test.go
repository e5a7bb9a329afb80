package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gita/internal/domain"
)

func single(meaning string) []domain.Chapter {
	return []domain.Chapter{chapter(1, "n", "X", "", verse(1, "t", meaning))}
}

func TestScored_ThemeExpansionNeedsATermInTheVerse(t *testing.T) {
	corpus := []domain.Chapter{chapter(2, "सांख्ययोग", "Transcendental Knowledge", "",
		verse(47, "कर्मण्येवाधिकारस्ते", "...you have control over action alone, never over its results..."))}
	assert.Empty(t, NewScored(0, nil).Rank("stress", corpus))

	// In the wider corpus only chapter 1, whose summary mentions grief, scores.
	res := NewScored(0, nil).Rank("stress", testCorpus())
	require.Len(t, res, 2)
	for _, r := range res {
		assert.Equal(t, 1, r.Chapter.Number)
		assert.Equal(t, 3.0, r.Score)
	}
}

func TestScored_ExpandedTermScoresWithoutLiteralToken(t *testing.T) {
	res := NewScored(0, nil).Rank("karma", single("Perform action without attachment."))
	require.Len(t, res, 1)
	assert.Equal(t, 3.0, res[0].Score)
}

func TestScored_OriginalTokensCountTwice(t *testing.T) {
	// phrase 20 + expanded "fear" 3 + token "fear" 2 + meaning 8
	res := NewScored(0, nil).Rank("fear", single("Abandon fear."))
	require.Len(t, res, 1)
	assert.Equal(t, 33.0, res[0].Score)
}

func TestScored_HindiAndSummaryBoosts(t *testing.T) {
	v := verse(1, "t", "Peace.")
	v.HindiMeaning = strPtr("शांति")
	res := NewScored(0, nil).Rank("शांति", []domain.Chapter{chapter(1, "n", "X", "", v)})
	require.Len(t, res, 1)
	// phrase 20 + term 3 + token 2 + hindi 8
	assert.Equal(t, 33.0, res[0].Score)

	corpus := []domain.Chapter{chapter(1, "n", "X", "Renunciation of fruits", verse(1, "t", "Act."))}
	res = NewScored(0, nil).Rank("renunciation", corpus)
	require.Len(t, res, 1)
	// phrase 20 + term 3 + token 2 + summary 5
	assert.Equal(t, 30.0, res[0].Score)
}

func TestScored_ShortTokensDroppedButPhraseCounts(t *testing.T) {
	corpus := []domain.Chapter{chapter(1, "n", "X", "",
		verse(1, "t", "An arrow."),
		verse(2, "t", "Bow."),
	)}
	res := NewScored(0, nil).Rank("an", corpus)
	require.Len(t, res, 1)
	assert.Equal(t, 1, res[0].Verse.Number)
	assert.Equal(t, 28.0, res[0].Score)
}

func TestScored_MeaningSubstringScoresAtLeast28(t *testing.T) {
	res := NewScored(0, nil).Rank("never born", testCorpus())
	require.NotEmpty(t, res)
	assert.Equal(t, 20, res[0].Verse.Number)
	assert.GreaterOrEqual(t, res[0].Score, 28.0)
}

func TestScored_SortedAndCapped(t *testing.T) {
	var verses []domain.Verse
	for i := 1; i <= 8; i++ {
		verses = append(verses, verse(i, "t", strings.TrimSpace(strings.Repeat("peace ", i))))
	}
	corpus := []domain.Chapter{chapter(1, "n", "X", "", verses...)}

	res := NewScored(0, nil).Rank("peace", corpus)
	require.Len(t, res, 5)
	assert.Equal(t, 8, res[0].Verse.Number)
	assert.Equal(t, 68.0, res[0].Score)
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].Score, res[i].Score)
	}

	assert.Len(t, NewScored(2, nil).Rank("peace", corpus), 2)
}

func TestScored_TiesKeepCorpusOrder(t *testing.T) {
	corpus := []domain.Chapter{
		chapter(1, "n", "X", "", verse(4, "t", "Peace.")),
		chapter(2, "n", "X", "", verse(1, "t", "Peace.")),
	}
	res := NewScored(0, nil).Rank("peace", corpus)
	require.Len(t, res, 2)
	assert.Equal(t, res[0].Score, res[1].Score)
	assert.Equal(t, 1, res[0].Chapter.Number)
	assert.Equal(t, 2, res[1].Chapter.Number)
}

func TestScored_NoMatchAndBlankQuery(t *testing.T) {
	s := NewScored(0, nil)
	assert.Empty(t, s.Rank("xylophone", testCorpus()))
	assert.Empty(t, s.Rank("   ", testCorpus()))
}

func TestScored_Idempotent(t *testing.T) {
	s := NewScored(0, nil)
	corpus := testCorpus()
	assert.Equal(t, s.Rank("how do I perform my duty", corpus), s.Rank("how do I perform my duty", corpus))
}

func TestScored_Expand(t *testing.T) {
	exp := NewScored(0, nil).Expand("Fears of death")
	assert.Equal(t, "fears of death", exp.Query)
	assert.Equal(t, []string{"fears", "death"}, exp.Tokens)
	require.GreaterOrEqual(t, len(exp.Terms), 2)
	assert.Equal(t, exp.Tokens, exp.Terms[:2])
	for _, want := range []string{"fear", "anxiety", "worry", "immortal", "soul", "courage"} {
		assert.Contains(t, exp.Terms, want)
	}
	assert.NotContains(t, exp.Terms, "of")
}
