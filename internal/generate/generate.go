// Package generate assembles every title of a platform and writes one XML
// artifact per title.
package generate

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xtding233/panelmap/internal/game"
	"github.com/xtding233/panelmap/internal/logging"
	"github.com/xtding233/panelmap/internal/panel"
	"github.com/xtding233/panelmap/internal/render"
)

// Options controls a run.
type Options struct {
	OutDir string
	Jobs   int  // concurrent titles; 0 means GOMAXPROCS
	Strict bool // abort on the first title that fails to assemble
}

// TitleLayouts is a title with its records for every panel size.
type TitleLayouts struct {
	Title   panel.Title
	Records []panel.LayoutRecord
}

// Failure is a title that could not be assembled.
type Failure struct {
	Title string
	Err   error
}

// Result summarizes a run. Slices are sorted by title.
type Result struct {
	Platform game.Platform
	Layouts  []TitleLayouts
	Written  []string
	Failed   []Failure
}

func jobs(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Collect assembles every title of b concurrently. Without strict, titles that
// fail are reported in the returned failures and the rest still succeed.
func Collect(ctx context.Context, b *game.Bundle, n int, strict bool, logger *zap.SugaredLogger) ([]TitleLayouts, []Failure, error) {
	logger = logging.OrNop(logger)
	eng := b.Engine()

	var (
		mu       sync.Mutex
		layouts  []TitleLayouts
		failures []Failure
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs(n))
	for _, t := range b.Titles {
		t := t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := eng.AssembleAll(t)
			if err != nil {
				if strict {
					return errors.Wrapf(err, "title %s", t.Name)
				}
				logger.Warnw("skipping title", "platform", b.Platform, "title", t.Name, "error", err)
				mu.Lock()
				failures = append(failures, Failure{Title: t.Name, Err: err})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			layouts = append(layouts, TitleLayouts{Title: t, Records: recs})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].Title.Name < layouts[j].Title.Name })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Title < failures[j].Title })
	return layouts, failures, nil
}

// Run collects b and writes <OutDir>/<title>.xml for every title that assembled.
func Run(ctx context.Context, b *game.Bundle, opts Options, logger *zap.SugaredLogger) (*Result, error) {
	logger = logging.OrNop(logger)
	if opts.OutDir == "" {
		return nil, errors.New("output directory is required")
	}

	layouts, failures, err := Collect(ctx, b, opts.Jobs, opts.Strict, logger)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}

	// titles come from section names; keep every artifact inside OutDir
	writable := layouts[:0]
	for _, tl := range layouts {
		if err := checkFileName(tl.Title.Name); err != nil {
			logger.Warnw("skipping title", "platform", b.Platform, "title", tl.Title.Name, "error", err)
			failures = append(failures, Failure{Title: tl.Title.Name, Err: err})
			continue
		}
		writable = append(writable, tl)
	}
	layouts = writable
	sort.Slice(failures, func(i, j int) bool { return failures[i].Title < failures[j].Title })

	written := make([]string, len(layouts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs(opts.Jobs))
	for i, tl := range layouts {
		i, tl := i, tl
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(opts.OutDir, tl.Title.Name+".xml")
			if err := writeTitle(path, b, tl); err != nil {
				return errors.Wrapf(err, "write %s", path)
			}
			written[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Infow("generated", "platform", b.Platform, "written", len(written), "failed", len(failures), "dir", opts.OutDir)
	return &Result{Platform: b.Platform, Layouts: layouts, Written: written, Failed: failures}, nil
}

func checkFileName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return errors.Errorf("title %q is not a valid file name", name)
	}
	return nil
}

func writeTitle(path string, b *game.Bundle, tl TitleLayouts) error {
	var doc render.Document
	if b.System == "" {
		doc = render.SystemDocument(b.SystemFor(tl.Title), tl.Records)
	} else {
		doc = render.GameDocument(b.System, tl.Title.Name, tl.Records)
	}
	data, err := render.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
