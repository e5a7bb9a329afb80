// Package corpus loads the static chapter/verse bundle the reader serves.
package corpus

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"gita/internal/domain"
)

//go:embed data/gita.json
var embedded []byte

// EmbeddedPath names the built-in corpus in Source listings.
const EmbeddedPath = "embedded:gita.json"

const maxConcurrentReads = 4

var ErrNoCorpusFiles = errors.New("no corpus files found")

// Load reads every corpus file matched by paths (plain paths or globs) and
// returns their chapters in argument order. With no paths it returns the
// embedded corpus. The result is validated before it is returned.
func Load(ctx context.Context, paths []string, logger *slog.Logger) ([]domain.Chapter, []domain.Source, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("module", "corpus"))

	if len(paths) == 0 {
		chapters, err := decode(EmbeddedPath, embedded)
		if err != nil {
			return nil, nil, err
		}
		src := domain.Source{Path: EmbeddedPath, Digest: xxhash.Sum64(embedded), Chapters: len(chapters)}
		logger.Info("loaded embedded corpus", "chapters", len(chapters), "digest", fmt.Sprintf("%016x", src.Digest))
		return chapters, []domain.Source{src}, Validate(chapters)
	}

	files := expand(paths)
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoCorpusFiles, strings.Join(paths, ", "))
	}

	parts := make([][]domain.Chapter, len(files))
	sources := make([]domain.Source, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f)
			if err != nil {
				return fmt.Errorf("read corpus %s: %w", f, err)
			}
			chapters, err := decode(f, data)
			if err != nil {
				return err
			}
			parts[i] = chapters
			sources[i] = domain.Source{Path: f, Digest: xxhash.Sum64(data), Chapters: len(chapters)}
			logger.Debug("read corpus file", "path", f, "chapters", len(chapters))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var chapters []domain.Chapter
	for _, p := range parts {
		chapters = append(chapters, p...)
	}
	if err := Validate(chapters); err != nil {
		return nil, nil, err
	}
	logger.Info("loaded corpus", "files", len(files), "chapters", len(chapters))
	return chapters, sources, nil
}

// expand resolves globs, keeping only supported extensions. A pattern that
// matches nothing is kept as a literal path so the read error surfaces.
func expand(paths []string) []string {
	var out []string
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if supported(m) {
				out = append(out, m)
			}
		}
	}
	return out
}

func supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func decode(path string, data []byte) ([]domain.Chapter, error) {
	var chapters []domain.Chapter
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &chapters)
	default:
		err = json.Unmarshal(data, &chapters)
	}
	if err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	for i := range chapters {
		for j := range chapters[i].Verses {
			if chapters[i].Verses[j].ChapterNumber == 0 {
				chapters[i].Verses[j].ChapterNumber = chapters[i].Number
			}
		}
	}
	return chapters, nil
}
