package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/xtding233/panelmap/internal/game"
	"github.com/xtding233/panelmap/internal/generate"
	"github.com/xtding233/panelmap/internal/logging"
	"github.com/xtding233/panelmap/internal/panel"
	"github.com/xtding233/panelmap/internal/report"
)

const defaultInterval = 500 * time.Millisecond

func setup(c *cli.Context) (*game.Loader, *zap.SugaredLogger, error) {
	logger, err := logging.NewLogger("panelmap", c.Bool(flagDebug))
	if err != nil {
		return nil, nil, err
	}
	return game.NewLoader(c.String(flagConfigDir), logger), logger, nil
}

func platforms(c *cli.Context) ([]game.Platform, error) {
	var out []game.Platform
	for _, s := range strings.Split(c.String(flagPlatform), ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.EqualFold(s, "all") {
			out = append(out, game.Platforms...)
			continue
		}
		p, err := game.ParsePlatform(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, errors.New("no platform selected")
	}
	return lo.Uniq(out), nil
}

func generateAll(ctx context.Context, c *cli.Context, l *game.Loader, logger *zap.SugaredLogger) error {
	ps, err := platforms(c)
	if err != nil {
		return err
	}
	m, err := l.Manifest()
	if err != nil {
		return err
	}
	if err := game.ValidateManifest(m); err != nil {
		return err
	}
	for _, p := range ps {
		b, err := l.Resolve(p)
		if err != nil {
			return err
		}
		res, err := generate.Run(ctx, b, generate.Options{
			OutDir: filepath.Join(c.String(flagOut), m.Output.Dir(p)),
			Jobs:   c.Int(flagJobs),
			Strict: c.Bool(flagStrict),
		}, logger)
		if err != nil {
			return errors.Wrapf(err, "generate %s", p)
		}
		fmt.Fprintf(c.App.Writer, "%s: wrote %d layouts, %d failed\n", p, len(res.Written), len(res.Failed))
		for _, f := range res.Failed {
			fmt.Fprintf(c.App.Writer, "  %s: %v\n", f.Title, f.Err)
		}
	}
	return nil
}

func generateAction(c *cli.Context) error {
	l, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	return generateAll(c.Context, c, l, logger)
}

func showAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("show takes exactly one title")
	}
	l, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	p, err := game.ParsePlatform(c.String(flagPlatform))
	if err != nil {
		return err
	}
	b, err := l.Resolve(p)
	if err != nil {
		return err
	}
	t, ok := b.Find(c.Args().First())
	if !ok {
		return errors.Errorf("unknown %s title %q", p, c.Args().First())
	}

	eng := b.Engine()
	var recs []panel.LayoutRecord
	if size := c.Int(flagSize); size != 0 {
		rec, err := eng.Assemble(t, size)
		if err != nil {
			return err
		}
		recs = []panel.LayoutRecord{rec}
	} else {
		recs, err = eng.AssembleAll(t)
		if err != nil {
			return err
		}
	}
	for _, rec := range recs {
		fmt.Fprintln(c.App.Writer, report.LayoutTable(rec))
	}
	return nil
}

func validateAction(c *cli.Context) error {
	l, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ps, err := platforms(c)
	if err != nil {
		return err
	}
	m, err := l.Manifest()
	if err != nil {
		return err
	}

	problems := 0
	emit := func(err error) {
		for _, e := range multierr.Errors(errors.Cause(err)) {
			problems++
			fmt.Fprintln(c.App.Writer, e)
		}
	}
	if err := game.ValidateManifest(m); err != nil {
		emit(err)
		return errors.Errorf("%d problems found", problems)
	}
	for _, p := range ps {
		b, err := l.Resolve(p)
		if err != nil {
			emit(err)
			continue
		}
		if err := game.ValidateBundle(b); err != nil {
			emit(err)
		}
	}
	if problems > 0 {
		return errors.Errorf("%d problems found", problems)
	}
	fmt.Fprintln(c.App.Writer, "ok")
	return nil
}

func reportAction(c *cli.Context) error {
	l, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ps, err := platforms(c)
	if err != nil {
		return err
	}
	for _, p := range ps {
		b, err := l.Resolve(p)
		if err != nil {
			return err
		}
		layouts, failures, err := generate.Collect(c.Context, b, c.Int(flagJobs), false, logger)
		if err != nil {
			return err
		}
		recs := lo.Map(layouts, func(tl generate.TitleLayouts, _ int) []panel.LayoutRecord { return tl.Records })
		fmt.Fprintln(c.App.Writer, report.Summarize(string(p), recs, len(failures)).Table())
	}
	return nil
}

func watchAction(c *cli.Context) error {
	l, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generateAll(ctx, c, l, logger); err != nil {
		logger.Errorw("initial generation failed", "error", err)
	}
	paths, err := l.WatchList()
	if err != nil {
		return err
	}

	regen := make(chan string, 1)
	w := game.NewFileWatcher(paths, c.Duration(flagInterval), func(path string) {
		select {
		case regen <- path:
		default:
		}
	}, logger)
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()
	logger.Infow("watching", "paths", len(paths))

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-regen:
			logger.Infow("source changed", "path", path)
			l.Invalidate()
			if err := generateAll(ctx, c, l, logger); err != nil {
				logger.Errorw("generation failed", "error", err)
			}
		}
	}
}
