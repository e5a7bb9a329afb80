package search

import (
	"sort"
	"strings"

	"gita/internal/domain"
)

// DefaultRankedLimit is how many verses Rank returns unless configured.
const DefaultRankedLimit = 5

// minTokenLength is the longest query word still treated as noise.
const minTokenLength = 2

// Score weights.
const (
	phraseWeight   = 20
	expandedWeight = 3
	tokenWeight    = 2
	meaningBoost   = 8
	hindiBoost     = 8
	summaryBoost   = 5
)

// Expansion is the query as the scorer sees it.
type Expansion struct {
	Query  string   `json:"query"`
	Tokens []string `json:"tokens"`
	Terms  []string `json:"terms"`
}

// Scored ranks verses by a weighted sum of phrase, token and expanded
// keyword hits over the verse's and chapter's text.
type Scored struct {
	limit    int
	keywords *Keywords
}

// NewScored creates a ranker returning at most limit verses. A nil keywords
// table selects DefaultKeywords.
func NewScored(limit int, keywords *Keywords) *Scored {
	if limit <= 0 {
		limit = DefaultRankedLimit
	}
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	return &Scored{limit: limit, keywords: keywords}
}

// Expand folds and tokenizes query and grows the token list through the
// keyword table.
func (s *Scored) Expand(query string) Expansion {
	return s.expand(newFolder(), query)
}

func (s *Scored) expand(f *folder, query string) Expansion {
	q := f.fold(query)
	tokens := tokenize(q)
	return Expansion{Query: q, Tokens: tokens, Terms: s.keywords.expand(tokens)}
}

// Rank scores every verse and returns the best ones, highest first. Verses
// scoring zero are left out; equal scores keep corpus order.
func (s *Scored) Rank(query string, chapters []domain.Chapter) []domain.ScoredResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	f := newFolder()
	exp := s.expand(f, query)

	var results []domain.ScoredResult
	for i := range chapters {
		ch := &chapters[i]
		nameMeaning := f.fold(ch.NameMeaning)
		summary := f.fold(ch.Summary)
		for j := range ch.Verses {
			v := &ch.Verses[j]
			score := scoreVerse(exp, f.fold(v.Meaning), f.fold(v.Hindi()), nameMeaning, summary)
			if score > 0 {
				results = append(results, domain.ScoredResult{Verse: v, Chapter: ch, Score: score})
			}
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > s.limit {
		results = results[:s.limit]
	}
	return results
}

// scoreVerse expects every field already folded. Original tokens are counted
// again on top of the expanded terms that include them.
func scoreVerse(exp Expansion, meaning, hindi, nameMeaning, summary string) float64 {
	text := strings.Join([]string{meaning, hindi, nameMeaning, summary}, " ")
	q := exp.Query

	score := 0
	if strings.Contains(text, q) {
		score += phraseWeight
	}
	for _, term := range exp.Terms {
		score += expandedWeight * strings.Count(text, term)
	}
	for _, tok := range exp.Tokens {
		score += tokenWeight * strings.Count(text, tok)
	}
	if strings.Contains(meaning, q) {
		score += meaningBoost
	}
	if hindi != "" && strings.Contains(hindi, q) {
		score += hindiBoost
	}
	if summary != "" && strings.Contains(summary, q) {
		score += summaryBoost
	}
	return float64(score)
}
