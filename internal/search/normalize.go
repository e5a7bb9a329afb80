package search

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// folder lower-cases text for matching. A cases.Caser keeps state, so each
// search call builds its own folder instead of sharing one.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Lower(language.Und)}
}

func (f *folder) fold(s string) string {
	if s == "" {
		return s
	}
	return f.caser.String(s)
}

// excerpt keeps the first n user-perceived characters of text and always
// appends an ellipsis.
func excerpt(text string, n int) string {
	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	b.WriteString("...")
	return b.String()
}

// tokenize splits a folded query on whitespace and drops tokens of
// minTokenLength characters or fewer.
func tokenize(folded string) []string {
	fields := strings.Fields(folded)
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > minTokenLength {
			out = append(out, f)
		}
	}
	return out
}
