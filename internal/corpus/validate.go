package corpus

import (
	"errors"
	"fmt"
	"strings"

	"gita/internal/domain"
)

var ErrInvalidCorpus = errors.New("invalid corpus")

// Validate checks the invariants the search engine relies on but never
// checks itself. All violations are reported together.
func Validate(chapters []domain.Chapter) error {
	var errs []error
	seen := make(map[int]bool, len(chapters))
	for _, ch := range chapters {
		switch {
		case ch.Number <= 0:
			errs = append(errs, fmt.Errorf("chapter %q: chapter_number must be positive, got %d", ch.Name, ch.Number))
		case seen[ch.Number]:
			errs = append(errs, fmt.Errorf("chapter %d: duplicate chapter_number", ch.Number))
		}
		seen[ch.Number] = true

		if ch.VersesCount != len(ch.Verses) {
			errs = append(errs, fmt.Errorf("chapter %d: verses_count is %d but %d verses present", ch.Number, ch.VersesCount, len(ch.Verses)))
		}
		verses := make(map[int]bool, len(ch.Verses))
		for _, v := range ch.Verses {
			if v.Number <= 0 {
				errs = append(errs, fmt.Errorf("chapter %d: verse_number must be positive, got %d", ch.Number, v.Number))
			} else if verses[v.Number] {
				errs = append(errs, fmt.Errorf("chapter %d: duplicate verse %d", ch.Number, v.Number))
			}
			verses[v.Number] = true
			if v.ChapterNumber != ch.Number {
				errs = append(errs, fmt.Errorf("chapter %d verse %d: belongs to chapter %d", ch.Number, v.Number, v.ChapterNumber))
			}
			if strings.TrimSpace(v.Meaning) == "" {
				errs = append(errs, fmt.Errorf("chapter %d verse %d: meaning is empty", ch.Number, v.Number))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCorpus, errors.Join(errs...))
}
