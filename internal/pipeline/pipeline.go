// Package pipeline orchestrates a catalog build: fetch each entry from both
// stores, reconcile, materialize media and append workbook rows.
package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/appshelf/appshelf/internal/assets"
	"github.com/appshelf/appshelf/internal/sources"
	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
	"github.com/appshelf/appshelf/pkg/logging"
	"github.com/appshelf/appshelf/pkg/reconcile"
)

// DefaultConcurrency bounds how many entries are processed at once.
const DefaultConcurrency = 4

// RowWriter receives reconciled rows in their final order. The workbook
// writer satisfies it; tests substitute their own.
type RowWriter interface {
	Append(app *apps.App, iconPath string, screenshotPaths []string) error
}

// Pipeline runs entries through lookup, reconcile and materialize stages.
type Pipeline struct {
	google sources.Source
	apple  sources.Source

	merger       *reconcile.Merger
	materializer *assets.Materializer
	writer       RowWriter

	concurrency    int
	maxScreenshots int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency sets the worker pool size.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithMaxScreenshots caps screenshots per app in both the merge and the
// download stages.
func WithMaxScreenshots(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxScreenshots = n
		}
	}
}

// New assembles a pipeline over the two store sources.
func New(google, apple sources.Source, materializer *assets.Materializer, writer RowWriter, opts ...Option) *Pipeline {
	p := &Pipeline{
		google:         google,
		apple:          apple,
		materializer:   materializer,
		writer:         writer,
		concurrency:    DefaultConcurrency,
		maxScreenshots: assets.DefaultMaxScreenshots,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.merger = reconcile.NewMerger().WithMaxScreenshots(p.maxScreenshots)
	return p
}

// result is what one worker produced for one entry. A nil result means the
// entry was dropped.
type result struct {
	app      *apps.App
	bundle   *assets.Bundle
	failures []Failure
}

// Run processes all entries and writes one workbook row per entry that had
// at least one usable source. Entries are fetched concurrently; rows are
// written afterwards in input order with dropped entries omitted, so the
// workbook never has gaps. Data-level failures are logged and reported, not
// returned; Run only errors on cancellation or a row write failure.
func (p *Pipeline) Run(ctx context.Context, entries []apps.Entry) (*Report, error) {
	report := &Report{Started: time.Now().UTC(), Total: len(entries)}

	results := make([]*result, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, entry := range entries {
		if entry.IsEmpty() {
			logging.Warn().Int("index", i).Msg("Entry has no identifiers, skipping")
			continue
		}
		g.Go(func() error {
			res, err := p.process(gctx, entry)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	seen := make(map[string]int)
	for i, res := range results {
		if res != nil {
			report.Failures = append(report.Failures, res.failures...)
		}
		if res == nil || res.app == nil {
			report.Skipped++
			continue
		}

		key := res.app.ContentKey
		if prev, dup := seen[key]; dup {
			logging.Warn().Str("key", key).Int("index", i).Int("previous", prev).
				Msg("Duplicate content key, assets overwritten")
		}
		seen[key] = i

		if err := p.writer.Append(res.app, res.bundle.IconPath, res.bundle.ScreenshotPaths); err != nil {
			return report, err
		}
		report.Written++
	}

	report.Finished = time.Now().UTC()
	return report, nil
}

// process handles one entry: both store lookups in parallel, then reconcile
// and materialize. A failed lookup downgrades that source to absent; the
// entry is dropped only when both sources are absent.
func (p *Pipeline) process(ctx context.Context, entry apps.Entry) (*result, error) {
	res := &result{}

	var (
		google, apple         *apps.SourceRecord
		googleFail, appleFail *Failure
	)

	lg, lctx := errgroup.WithContext(ctx)
	if entry.GoogleID != "" {
		lg.Go(func() error {
			google, googleFail = p.lookup(lctx, p.google, entry.GoogleID)
			return nil
		})
	}
	if entry.AppleID != "" {
		lg.Go(func() error {
			apple, appleFail = p.lookup(lctx, p.apple, entry.AppleID)
			return nil
		})
	}
	_ = lg.Wait()

	for _, fail := range []*Failure{googleFail, appleFail} {
		if fail != nil {
			res.failures = append(res.failures, *fail)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	app, err := p.merger.Merge(google, apple)
	if err != nil {
		if errors.IsNoUsableSource(err) {
			logging.Warn().Str("google_id", entry.GoogleID).Str("apple_id", entry.AppleID).
				Msg("No usable source, dropping entry")
			return res, nil
		}
		return nil, err
	}
	res.app = app

	bundle, err := p.materializer.Materialize(ctx, app.ContentKey, app.IconURL, app.ScreenshotURLs, p.maxScreenshots)
	if err != nil {
		logging.Warn().Err(err).Str("key", app.ContentKey).Msg("Asset materialization failed")
		bundle = &assets.Bundle{}
	}
	res.bundle = bundle

	logging.Info().Str("key", app.ContentKey).Str("title", app.Title).Msg("Entry reconciled")
	return res, nil
}

// lookup fetches one store record, downgrading any error to an absent record
// plus a reportable failure. Failures never cross the entry boundary.
func (p *Pipeline) lookup(ctx context.Context, src sources.Source, id string) (*apps.SourceRecord, *Failure) {
	record, err := src.Lookup(ctx, id)
	if err != nil {
		logging.Warn().Err(err).Str("source", src.ID().String()).Str("id", id).Msg("Source lookup failed")
		return nil, &Failure{
			Source: src.ID().String(),
			ID:     id,
			Error:  err.Error(),
		}
	}
	return record, nil
}
