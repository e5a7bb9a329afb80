package search

import (
	"strings"

	"gita/internal/domain"
)

// Defaults used when a Literal is built with non-positive settings.
const (
	DefaultLiteralLimit  = 10
	DefaultExcerptLength = 50
)

// Literal finds chapters and verses whose text contains the query,
// case-insensitively. It is existence-based: results come back in corpus
// order and the first limit rows win.
type Literal struct {
	limit      int
	excerptLen int
}

// NewLiteral creates a literal matcher returning at most limit rows, with
// verse excerpts of excerptLen characters.
func NewLiteral(limit, excerptLen int) *Literal {
	if limit <= 0 {
		limit = DefaultLiteralLimit
	}
	if excerptLen <= 0 {
		excerptLen = DefaultExcerptLength
	}
	return &Literal{limit: limit, excerptLen: excerptLen}
}

// Search returns an inactive state for a blank query. Otherwise every
// chapter contributes at most one row: the chapter itself when its name,
// meaning or summary matches, else its first matching verse.
func (l *Literal) Search(query string, chapters []domain.Chapter) domain.SearchState {
	if strings.TrimSpace(query) == "" {
		return domain.SearchState{}
	}
	f := newFolder()
	q := f.fold(query)

	var results []domain.LiteralResult
	for i := range chapters {
		ch := &chapters[i]
		if anyContains(f, q, ch.Name, ch.NameMeaning, ch.Summary) {
			results = append(results, domain.LiteralResult{Chapter: ch})
			continue
		}
		for j := range ch.Verses {
			v := &ch.Verses[j]
			if anyContains(f, q, v.Text, v.Transliteration, v.Meaning, v.Hindi()) {
				results = append(results, domain.LiteralResult{
					Chapter: ch,
					Verse:   &domain.Excerpt{VerseNumber: v.Number, Text: excerpt(v.Text, l.excerptLen)},
				})
				break
			}
		}
	}
	if len(results) > l.limit {
		results = results[:l.limit]
	}
	return domain.SearchState{Active: true, Results: results}
}

func anyContains(f *folder, q string, fields ...string) bool {
	for _, s := range fields {
		if s != "" && strings.Contains(f.fold(s), q) {
			return true
		}
	}
	return false
}
