package memory

import (
	"errors"
	"fmt"
	"sync"

	"gita/internal/domain"
)

// Storage keeps the corpus as an in-memory snapshot. Replace swaps the whole
// slice, so a snapshot handed out earlier is never modified afterwards.
type Storage struct {
	mu       sync.RWMutex
	chapters []domain.Chapter
	byNumber map[int]int
}

// NewStorage creates an empty store.
func NewStorage() *Storage { return &Storage{byNumber: map[int]int{}} }

// Replace installs chapters as the new snapshot. It rejects an empty corpus
// and duplicate chapter numbers.
func (s *Storage) Replace(chapters []domain.Chapter) error {
	if len(chapters) == 0 {
		return errors.New("empty corpus")
	}
	idx := make(map[int]int, len(chapters))
	for i, ch := range chapters {
		if _, dup := idx[ch.Number]; dup {
			return fmt.Errorf("duplicate chapter %d", ch.Number)
		}
		idx[ch.Number] = i
	}
	snapshot := make([]domain.Chapter, len(chapters))
	copy(snapshot, chapters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chapters = snapshot
	s.byNumber = idx
	return nil
}

// Chapters returns a copy of the chapter list in corpus order. Verse slices
// are shared with the store and must be treated as read-only.
func (s *Storage) Chapters() []domain.Chapter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Chapter(nil), s.chapters...)
}

// Chapter looks up a chapter by its number.
func (s *Storage) Chapter(number int) (*domain.Chapter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("chapter %d: %w", number, domain.ErrChapterNotFound)
	}
	return &s.chapters[i], nil
}

// Verse resolves a navigation pair. A zero verse number resolves to the
// chapter alone.
func (s *Storage) Verse(ref domain.VerseRef) (*domain.Chapter, *domain.Verse, error) {
	ch, err := s.Chapter(ref.Chapter)
	if err != nil {
		return nil, nil, err
	}
	if ref.Verse == 0 {
		return ch, nil, nil
	}
	v, ok := ch.Verse(ref.Verse)
	if !ok {
		return ch, nil, fmt.Errorf("chapter %d verse %d: %w", ref.Chapter, ref.Verse, domain.ErrVerseNotFound)
	}
	return ch, v, nil
}
