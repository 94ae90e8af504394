// Package assets downloads an app's icon and screenshots into the per-app
// folder named by its content key. Downloads within one app run
// concurrently; one app's failures never block another's.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/appshelf/appshelf/internal/transport"
	"github.com/appshelf/appshelf/pkg/errors"
	"github.com/appshelf/appshelf/pkg/logging"
)

const (
	// IconFileName is the fixed name of the icon inside an app folder.
	IconFileName = "icon.png"

	// ScreenshotFilePattern names screenshots positionally.
	ScreenshotFilePattern = "screenshot%d.png"

	// DefaultMaxScreenshots caps how many screenshots are attempted.
	DefaultMaxScreenshots = 3
)

// Bundle is the set of local files written for one app.
type Bundle struct {
	// IconPath is empty when the icon was missing or failed to download.
	IconPath string

	// ScreenshotPaths holds the surviving screenshots, renumbered
	// sequentially by successful download order.
	ScreenshotPaths []string
}

// Materializer downloads store media into the asset tree.
type Materializer struct {
	root      string
	transport *transport.Client
}

// New creates a materializer rooted at the given content directory.
func New(root string, t *transport.Client) *Materializer {
	return &Materializer{root: root, transport: t}
}

// Root returns the content directory the materializer writes under.
func (m *Materializer) Root() string {
	return m.root
}

// Materialize ensures the app folder exists and downloads the icon plus at
// most max screenshots into it. Failed or empty URLs are skipped; surviving
// screenshots are renumbered by successful download order, so the files on
// disk are always screenshot0..N-1 with no index gaps. Files are overwritten
// idempotently on re-runs and never otherwise deleted.
//
// Only the folder creation can fail the call; individual download failures
// are logged and omitted from the bundle.
func (m *Materializer) Materialize(ctx context.Context, key, iconURL string, screenshotURLs []string, max int) (*Bundle, error) {
	if max <= 0 {
		max = DefaultMaxScreenshots
	}

	folder := filepath.Join(m.root, key)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, errors.WrapIO("create", folder, err)
	}

	log := logging.Ctx(ctx)

	if len(screenshotURLs) > max {
		screenshotURLs = screenshotURLs[:max]
	}

	var iconData []byte
	shotData := make([][]byte, len(screenshotURLs))

	g, gctx := errgroup.WithContext(ctx)

	if iconURL != "" {
		g.Go(func() error {
			data, err := m.transport.Download(gctx, iconURL)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Str("url", iconURL).Msg("Icon download failed")
				return nil
			}
			iconData = data
			return nil
		})
	}

	for i, u := range screenshotURLs {
		if u == "" {
			continue
		}
		g.Go(func() error {
			data, err := m.transport.Download(gctx, u)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Str("url", u).Msg("Screenshot download failed")
				return nil
			}
			shotData[i] = data
			return nil
		})
	}

	// Download failures were already downgraded to warnings above.
	_ = g.Wait()

	bundle := &Bundle{}

	if iconData != nil {
		path := filepath.Join(folder, IconFileName)
		if err := os.WriteFile(path, iconData, 0o644); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Icon write failed")
		} else {
			bundle.IconPath = path
		}
	}

	// Renumber survivors in attempted order so indices stay gap-free.
	next := 0
	for _, data := range shotData {
		if data == nil {
			continue
		}
		path := filepath.Join(folder, fmt.Sprintf(ScreenshotFilePattern, next))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Warn().Err(err).Str("key", key).Str("path", path).Msg("Screenshot write failed")
			continue
		}
		bundle.ScreenshotPaths = append(bundle.ScreenshotPaths, path)
		next++
	}

	return bundle, nil
}
