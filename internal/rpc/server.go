package rpc

import (
	"context"
	"math"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/panelmap/internal/game"
	"github.com/xtding233/panelmap/internal/logging"
	"github.com/xtding233/panelmap/internal/panel"
	"github.com/xtding233/panelmap/internal/render"
)

// Server implements LayoutServiceServer over a game.Resolver.
type Server struct {
	resolver game.Resolver
	logger   *zap.SugaredLogger
}

// NewServer returns a server resolving bundles through r.
func NewServer(r game.Resolver, logger *zap.SugaredLogger) *Server {
	return &Server{resolver: r, logger: logging.OrNop(logger)}
}

var _ LayoutServiceServer = (*Server)(nil)

// Assemble implements LayoutServiceServer.
func (s *Server) Assemble(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	b, err := s.bundle(fields)
	if err != nil {
		return nil, err
	}
	name := fields["title"].GetStringValue()
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "title is required")
	}
	t, ok := b.Find(name)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "unknown %s title %q", b.Platform, name)
	}

	size := fields["size"].GetNumberValue()
	if size != math.Trunc(size) || (size != 0 && !panel.IsPanelSize(int(size))) {
		return nil, status.Errorf(codes.InvalidArgument, "size must be one of 2, 4, 6, 8 (got %v)", size)
	}

	eng := b.Engine()
	var recs []panel.LayoutRecord
	if size == 0 {
		recs, err = eng.AssembleAll(t)
	} else {
		var rec panel.LayoutRecord
		rec, err = eng.Assemble(t, int(size))
		recs = []panel.LayoutRecord{rec}
	}
	if err != nil {
		s.logger.Errorw("assemble failed", "platform", b.Platform, "title", t.Name, "error", err)
		if panel.IsDefect(err) {
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	layouts := make([]interface{}, 0, len(recs))
	for _, r := range recs {
		layouts = append(layouts, render.Fields(r))
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"title":    t.Name,
		"platform": string(b.Platform),
		"system":   b.SystemFor(t),
		"layouts":  layouts,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// ListTitles implements LayoutServiceServer.
func (s *Server) ListTitles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	b, err := s.bundle(req.GetFields())
	if err != nil {
		return nil, err
	}
	names := make([]interface{}, 0, len(b.Titles))
	for _, t := range b.Titles {
		names = append(names, t.Name)
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"platform": string(b.Platform),
		"titles":   names,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *Server) bundle(fields map[string]*structpb.Value) (*game.Bundle, error) {
	name := fields["platform"].GetStringValue()
	if name == "" {
		name = string(game.Arcade)
	}
	p, err := game.ParsePlatform(name)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	b, err := s.resolver.Resolve(p)
	if err != nil {
		s.logger.Errorw("load failed", "platform", p, "error", err)
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	return b, nil
}
