package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/appshelf/appshelf/internal/assets"
	"github.com/appshelf/appshelf/internal/parsing"
	"github.com/appshelf/appshelf/internal/pipeline"
	"github.com/appshelf/appshelf/internal/sources/appstore"
	"github.com/appshelf/appshelf/internal/sources/googleplay"
	"github.com/appshelf/appshelf/internal/transport"
	"github.com/appshelf/appshelf/internal/workbook"
)

// runBuild is the root command: parse the input file, run the pipeline and
// write the workbook, the asset tree and the run report.
func (a *App) runBuild(ctx context.Context, inputPath string) error {
	entries, err := parsing.LoadEntries(inputPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	a.logger.Info().Int("entries", len(entries)).Str("input", inputPath).Msg("Starting catalog build")

	client := transport.New(a.config.HTTPTimeout)
	google := googleplay.New(client, googleplay.WithLocale(a.config.Country, a.config.Lang))
	apple := appstore.New(client, appstore.WithLocale(a.config.Country, a.config.Lang))

	writer, err := workbook.NewWriter(a.config.OutputFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := writer.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	materializer := assets.New(a.config.ContentDir, client)

	p := pipeline.New(google, apple, materializer, writer,
		pipeline.WithConcurrency(a.config.Concurrency),
		pipeline.WithMaxScreenshots(a.config.MaxScreenshots),
	)

	report, err := p.Run(ctx, entries)
	if err != nil {
		return err
	}

	if err := writer.Save(); err != nil {
		return err
	}

	reportPath := filepath.Join(filepath.Dir(a.config.OutputFile), pipeline.ReportFileName)
	if err := report.Save(reportPath); err != nil {
		a.logger.Warn().Err(err).Str("path", reportPath).Msg("Failed to save run report")
	}

	a.logger.Info().
		Int("total", report.Total).
		Int("written", report.Written).
		Int("skipped", report.Skipped).
		Int("failures", len(report.Failures)).
		Str("workbook", a.config.OutputFile).
		Msg("Catalog build finished")

	return nil
}
