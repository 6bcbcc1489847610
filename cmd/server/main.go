package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/xtding233/panelmap/internal/game"
	"github.com/xtding233/panelmap/internal/logging"
	"github.com/xtding233/panelmap/internal/panel"
	"github.com/xtding233/panelmap/internal/render"
	"github.com/xtding233/panelmap/internal/rpc"
)

type layoutResp struct {
	Title    string                   `json:"title,omitempty"`
	Platform string                   `json:"platform,omitempty"`
	System   string                   `json:"system,omitempty"`
	Layouts  []map[string]interface{} `json:"layouts,omitempty"`
	Err      string                   `json:"err,omitempty"`
}

type titlesResp struct {
	Platform string   `json:"platform,omitempty"`
	Titles   []string `json:"titles"`
	Err      string   `json:"err,omitempty"`
}

type handlers struct {
	resolver game.Resolver
	logger   *zap.SugaredLogger
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handlers) bundle(r *http.Request) (*game.Bundle, int, error) {
	name := r.URL.Query().Get("platform")
	if name == "" {
		name = string(game.Arcade)
	}
	p, err := game.ParsePlatform(name)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	b, err := h.resolver.Resolve(p)
	if err != nil {
		h.logger.Errorw("load failed", "platform", p, "error", err)
		return nil, http.StatusServiceUnavailable, err
	}
	return b, http.StatusOK, nil
}

// one title, one size or every size
func (h *handlers) handleLayout(w http.ResponseWriter, r *http.Request) {
	b, code, err := h.bundle(r)
	if err != nil {
		writeJSON(w, code, layoutResp{Err: err.Error()})
		return
	}
	name := r.URL.Query().Get("title")
	if name == "" {
		http.Error(w, "missing param title", http.StatusBadRequest)
		return
	}
	size, hasSize, msg := parseInt(r, "size")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if hasSize && !panel.IsPanelSize(size) {
		http.Error(w, "size must be one of 2, 4, 6, 8", http.StatusBadRequest)
		return
	}
	t, ok := b.Find(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, layoutResp{Err: "unknown title " + name})
		return
	}

	eng := b.Engine()
	var recs []panel.LayoutRecord
	if hasSize {
		var rec panel.LayoutRecord
		rec, err = eng.Assemble(t, size)
		recs = []panel.LayoutRecord{rec}
	} else {
		recs, err = eng.AssembleAll(t)
	}
	if err != nil {
		h.logger.Errorw("assemble failed", "platform", b.Platform, "title", t.Name, "error", err)
		code := http.StatusInternalServerError
		if panel.IsDefect(err) {
			code = http.StatusUnprocessableEntity
		}
		writeJSON(w, code, layoutResp{Title: t.Name, Err: err.Error()})
		return
	}

	resp := layoutResp{Title: t.Name, Platform: string(b.Platform), System: b.SystemFor(t)}
	for _, rec := range recs {
		resp.Layouts = append(resp.Layouts, render.Fields(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) handleTitles(w http.ResponseWriter, r *http.Request) {
	b, code, err := h.bundle(r)
	if err != nil {
		writeJSON(w, code, titlesResp{Err: err.Error()})
		return
	}
	keep := func(panel.Title) bool { return true }
	if s := r.URL.Query().Get("family"); s != "" {
		f, err := panel.ParseFamily(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		keep = func(t panel.Title) bool { return t.Family == f }
	}
	resp := titlesResp{Platform: string(b.Platform), Titles: make([]string, 0, len(b.Titles))}
	for _, t := range b.Titles {
		if keep(t) {
			resp.Titles = append(resp.Titles, t.Name)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/layout", h.handleLayout)
	mux.HandleFunc("/titles", h.handleTitles)
	return mux
}

func serve(c *cli.Context) error {
	logger, err := logging.NewLogger("server", c.Bool("debug"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	loader := game.NewLoader(c.String("config-dir"), logger)
	if _, err := loader.Manifest(); err != nil {
		return err
	}
	if paths, err := loader.WatchList(); err == nil && c.Bool("watch") {
		w := game.NewFileWatcher(paths, 500*time.Millisecond, func(path string) {
			logger.Infow("source changed, reloading", "path", path)
			loader.Invalidate()
		}, logger)
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &handlers{resolver: loader, logger: logger}
	httpSrv := &http.Server{Addr: c.String("http"), Handler: h.mux(), ReadHeaderTimeout: 5 * time.Second}
	grpcSrv := grpc.NewServer()
	rpc.RegisterLayoutServiceServer(grpcSrv, rpc.NewServer(loader, logger))

	var lis net.Listener
	if addr := c.String("grpc"); addr != "" {
		if lis, err = net.Listen("tcp", addr); err != nil {
			return errors.Wrap(err, "grpc listen")
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("http listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http")
		}
		return nil
	})
	if lis != nil {
		g.Go(func() error {
			logger.Infow("grpc listening", "addr", lis.Addr())
			return errors.Wrap(grpcSrv.Serve(lis), "grpc")
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdown)
	})
	return g.Wait()
}

func main() {
	app := &cli.App{
		Name:  "panelmap-server",
		Usage: "serve control panel layouts over HTTP and gRPC",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Aliases: []string{"c"}, Value: ".", Usage: "config `DIR`"},
			&cli.StringFlag{Name: "http", Value: ":8080", Usage: "HTTP listen address"},
			&cli.StringFlag{Name: "grpc", Value: ":8081", Usage: "gRPC listen address; empty disables gRPC"},
			&cli.BoolFlag{Name: "watch", Usage: "reload sources when they change"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: serve,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
