// Package main is a demo driver for the quadfill library: it builds a flat
// ring mesh with an n-sided hole, previews a Coons patch over it and commits
// the fill, logging the resulting mesh statistics.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/quadfill/internal/config"
	"github.com/Faultbox/quadfill/internal/logger"
	"github.com/Faultbox/quadfill/internal/mesh"
	"github.com/Faultbox/quadfill/internal/quadfill"
)

var flagSegments = flag.Int("segments", 6, "Number of edges of the demo hole")

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Quadfill ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, *flagSegments); err != nil {
		logger.Error("fill failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, segments int) error {
	ed := mesh.NewEditor()

	target, err := ed.CreateRing(1, 2, segments)
	if err != nil {
		return err
	}
	vc, _ := ed.VertexCount(target)
	fc, _ := ed.FaceCount(target)
	logger.Info("demo mesh created",
		zap.Int("segments", segments),
		zap.Int("vertices", vc),
		zap.Int("faces", fc))

	// The inner rim is the hole; the outer rim stays open.
	edges, err := ed.Edges(target)
	if err != nil {
		return err
	}
	var hole []mesh.EdgeID
	for i, e := range edges {
		if int(e.A) < segments && int(e.B) < segments {
			hole = append(hole, mesh.EdgeID(i))
		}
	}

	session := quadfill.NewSession(ed, quadfill.Options{
		WeldTolerance:    cfg.Fill.WeldTolerance,
		ClosureTolerance: cfg.Fill.ClosureTolerance,
	})
	if err := session.CaptureBoundary(target, hole); err != nil {
		return err
	}
	loop := session.Loop()
	logger.Info("boundary captured",
		zap.Int("edges", loop.Len()),
		zap.Bool("odd", loop.IsOdd()),
		zap.Int("maxSpans", session.MaxSpans()))

	spans := cfg.Fill.DefaultSpans
	if spans > session.MaxSpans() {
		spans = session.MaxSpans()
	}
	if err := session.SetParameters(cfg.Fill.DefaultOffset, spans); err != nil {
		return err
	}
	logger.Info("preview built", zap.Any("params", session.Params()))

	combined, err := session.Commit()
	if err != nil {
		return err
	}

	vc, _ = ed.VertexCount(combined)
	fc, _ = ed.FaceCount(combined)
	boundary, _ := ed.BoundaryEdges(combined)
	logger.Info("fill committed",
		zap.Int("vertices", vc),
		zap.Int("faces", fc),
		zap.Int("openBoundaryEdges", len(boundary)),
		zap.Int("historyEntries", ed.History().Len()))

	return nil
}
