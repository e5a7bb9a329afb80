package domain

import (
	"context"
	"errors"
)

var (
	ErrChapterNotFound = errors.New("chapter not found")
	ErrVerseNotFound   = errors.New("verse not found")
	ErrEmptyQuery      = errors.New("empty query")
)

// Verse is a single verse. ChapterNumber is a lookup key back to its chapter.
type Verse struct {
	ChapterNumber   int     `json:"chapter_number" yaml:"chapter_number"`
	Number          int     `json:"verse_number" yaml:"verse_number"`
	Text            string  `json:"text" yaml:"text"`
	Transliteration string  `json:"transliteration" yaml:"transliteration"`
	Meaning         string  `json:"meaning" yaml:"meaning"`
	HindiMeaning    *string `json:"hindi_meaning,omitempty" yaml:"hindi_meaning,omitempty"`
}

// Chapter holds its verses in reading order.
type Chapter struct {
	ID          int     `json:"id" yaml:"id"`
	Number      int     `json:"chapter_number" yaml:"chapter_number"`
	Name        string  `json:"name" yaml:"name"`
	NameMeaning string  `json:"name_meaning" yaml:"name_meaning"`
	Summary     string  `json:"summary" yaml:"summary"`
	VersesCount int     `json:"verses_count" yaml:"verses_count"`
	Verses      []Verse `json:"verses" yaml:"verses"`
}

// VerseRef identifies a verse for navigation. Verse is 0 when the whole
// chapter was selected.
type VerseRef struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Excerpt is the truncated verse text shown under a literal match.
type Excerpt struct {
	VerseNumber int    `json:"verse_number"`
	Text        string `json:"text"`
}

// LiteralResult is one row of a literal search. Verse is nil when the
// chapter itself matched.
type LiteralResult struct {
	Chapter *Chapter `json:"-"`
	Verse   *Excerpt `json:"verse,omitempty"`
}

// SearchState separates "no search active" from "active, zero matches".
type SearchState struct {
	Active  bool
	Results []LiteralResult
}

// ScoredResult is a verse with its relevance score for a single query.
type ScoredResult struct {
	Verse   *Verse
	Chapter *Chapter
	Score   float64
}

// Answer is the chat-mode reply to a question.
type Answer struct {
	Query   string
	Text    string
	Results []ScoredResult
}

// Source describes one loaded corpus file.
type Source struct {
	Path     string
	Digest   uint64
	Chapters int
}

// CorpusInfo summarizes the currently loaded corpus.
type CorpusInfo struct {
	Chapters int
	Verses   int
	Sources  []Source
}

// Searcher runs the literal substring strategy.
type Searcher interface {
	Search(query string, chapters []Chapter) SearchState
}

// Ranker runs the scored retrieval strategy.
type Ranker interface {
	Rank(query string, chapters []Chapter) []ScoredResult
}

// Composer turns ranked verses into a chat reply.
type Composer interface {
	Compose(results []ScoredResult) string
	Greeting() string
}

// CorpusStore holds the immutable corpus snapshot.
type CorpusStore interface {
	Replace(chapters []Chapter) error
	Chapters() []Chapter
	Chapter(number int) (*Chapter, error)
	Verse(ref VerseRef) (*Chapter, *Verse, error)
}

// GitaService defines the operations exposed by the application core.
type GitaService interface {
	LoadCorpus(ctx context.Context, paths []string) (CorpusInfo, error)
	Search(query string) SearchState
	Ask(query string) (Answer, error)
	Resolve(ref VerseRef) (*Chapter, *Verse, error)
	Chapters() []Chapter
	Greeting() string
}
