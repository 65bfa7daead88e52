package updater

import (
	"context"
	"path/filepath"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"threatfeed/config"
	"threatfeed/logger"
	"threatfeed/parser"
	"threatfeed/writer"
)

// Fetcher downloads the raw text of a list.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Result describes what happened to one source during a run.
type Result struct {
	Source   config.Source
	File     string
	Domains  int
	FetchErr error // nil when the download succeeded
}

// Updater refreshes every configured blocklist file, one source at a time.
type Updater struct {
	sources   []config.Source
	outputDir string
	fetcher   Fetcher
}

// NewUpdater creates a new Updater.
func NewUpdater(cfg *config.Config, fetcher Fetcher) *Updater {
	return &Updater{
		sources:   cfg.Sources,
		outputDir: cfg.OutputDir,
		fetcher:   fetcher,
	}
}

// Run processes the sources in order. A failed download yields an empty
// file for that source and the run continues; a failed write aborts it.
func (u *Updater) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(u.sources))
	for _, src := range u.sources {
		res, err := u.updateSource(ctx, src)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (u *Updater) updateSource(ctx context.Context, src config.Source) (Result, error) {
	ctx = logger.WithFields(ctx, zap.String("source", src.Name))
	logger.Info(ctx, "processing source", zap.String("url", src.URL))

	res := Result{
		Source: src,
		File:   filepath.Join(u.outputDir, config.OutputFilename(src.Name)),
	}

	parse, err := parser.ForFormat(src.Format)
	if err != nil {
		return res, err
	}

	domains := make(parser.DomainSet)
	text, err := u.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		res.FetchErr = err
		logger.Error(ctx, "error fetching source", zap.Error(err))
	} else {
		domains = parse(text)
		logger.Info(ctx, "parsed domains", zap.Int("count", domains.Len()))
	}

	if err := writer.WriteDomains(res.File, domains); err != nil {
		return res, errors.Wrapf(err, "save %s", src.Name)
	}
	res.Domains = domains.Len()

	logger.Info(ctx, "saved domains", zap.Int("count", res.Domains), zap.String("file", res.File))
	return res, nil
}
