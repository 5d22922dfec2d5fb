// Package appmode provides the run modes: local search, 'master' spreading the search over nodes and search 'node'
package appmode

import (
	"context"
	"io"

	"github.com/UnendingLoop/minigrep/internal/matcher"
	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/reader"
	"github.com/rs/zerolog"
)

// RunLocal reads the whole corpus, matches it in-process and prints the matching lines.
// An empty result is not an error.
func RunLocal(ctx context.Context, cfg *model.Config, stdin io.Reader, out io.Writer) error {
	log := zerolog.Ctx(ctx)

	corpus, err := reader.ReadCorpus(stdin, cfg.FilePath)
	if err != nil {
		return err
	}
	log.Debug().Str("file", cfg.FilePath).Int("bytes", len(corpus)).Bool("case_sensitive", cfg.CaseSensitive).Msg("corpus loaded")

	lines := matcher.MatchLines(cfg.Query, corpus, cfg.CaseSensitive)
	log.Debug().Int("matches", len(lines)).Msg("search finished")

	return newPrinter(out, cfg).printLines(lines)
}
