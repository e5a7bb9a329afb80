// Package search implements verse lookup over an in-memory corpus: literal
// substring matching for search-as-you-type and keyword-expanded scoring for
// questions. Every call is a fresh linear scan with no shared state.
package search

import (
	"log/slog"

	"gita/internal/domain"
)

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	LiteralLimit  int
	RankedLimit   int
	ExcerptLength int
	Keywords      *Keywords
}

// Engine bundles both strategies. It is safe for concurrent use.
type Engine struct {
	literal *Literal
	scored  *Scored
	logger  *slog.Logger
}

// NewEngine builds both strategies from opts. A nil logger discards output.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		literal: NewLiteral(opts.LiteralLimit, opts.ExcerptLength),
		scored:  NewScored(opts.RankedLimit, opts.Keywords),
		logger:  logger.With(slog.String("module", "search")),
	}
}

// Search runs the literal strategy.
func (e *Engine) Search(query string, chapters []domain.Chapter) domain.SearchState {
	st := e.literal.Search(query, chapters)
	e.logger.Debug("literal search", "query", query, "active", st.Active, "results", len(st.Results))
	return st
}

// Rank runs the scored strategy.
func (e *Engine) Rank(query string, chapters []domain.Chapter) []domain.ScoredResult {
	res := e.scored.Rank(query, chapters)
	e.logger.Debug("ranked retrieval", "query", query, "results", len(res))
	return res
}

// Expand reports how Rank would read query.
func (e *Engine) Expand(query string) Expansion { return e.scored.Expand(query) }
