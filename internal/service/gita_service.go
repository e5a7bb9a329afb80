package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gita/internal/corpus"
	"gita/internal/domain"
	"gita/internal/logging"
)

type GitaServiceImpl struct {
	store    domain.CorpusStore
	searcher domain.Searcher
	ranker   domain.Ranker
	composer domain.Composer
	logger   *slog.Logger
}

// NewGitaService wires the store, strategies and composer. A nil logger
// discards output.
func NewGitaService(store domain.CorpusStore, searcher domain.Searcher, ranker domain.Ranker, composer domain.Composer, logger *slog.Logger) *GitaServiceImpl {
	return &GitaServiceImpl{
		store:    store,
		searcher: searcher,
		ranker:   ranker,
		composer: composer,
		logger:   logging.OrDiscard(logger).With(slog.String("module", "service")),
	}
}

// LoadCorpus reads and validates the corpus files, then swaps them in as the
// new snapshot. On error the previous snapshot stays in place.
func (s *GitaServiceImpl) LoadCorpus(ctx context.Context, paths []string) (domain.CorpusInfo, error) {
	chapters, sources, err := corpus.Load(ctx, paths, s.logger)
	if err != nil {
		return domain.CorpusInfo{}, err
	}
	if err := s.store.Replace(chapters); err != nil {
		return domain.CorpusInfo{}, fmt.Errorf("store corpus: %w", err)
	}
	info := domain.CorpusInfo{Chapters: len(chapters), Sources: sources}
	for _, ch := range chapters {
		info.Verses += len(ch.Verses)
	}
	s.logger.Info("corpus ready", "chapters", info.Chapters, "verses", info.Verses, "sources", len(sources))
	return info, nil
}

func (s *GitaServiceImpl) Search(query string) domain.SearchState {
	return s.searcher.Search(query, s.store.Chapters())
}

// Ask ranks verses for the trimmed question and composes the reply. A blank
// question is rejected with ErrEmptyQuery.
func (s *GitaServiceImpl) Ask(query string) (domain.Answer, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.Answer{}, domain.ErrEmptyQuery
	}
	results := s.ranker.Rank(q, s.store.Chapters())
	s.logger.Debug("answered question", "query", q, "verses", len(results))
	return domain.Answer{
		Query:   q,
		Text:    s.composer.Compose(results),
		Results: results,
	}, nil
}

func (s *GitaServiceImpl) Resolve(ref domain.VerseRef) (*domain.Chapter, *domain.Verse, error) {
	return s.store.Verse(ref)
}

func (s *GitaServiceImpl) Chapters() []domain.Chapter { return s.store.Chapters() }

func (s *GitaServiceImpl) Greeting() string { return s.composer.Greeting() }
