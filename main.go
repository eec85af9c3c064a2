// Command polypanel evaluates a voxel script, groups the exposed faces of the
// resulting polycube into coplanar panels and writes each panel outline as an
// SVG file.
//
//	polypanel [-config file.toml] [-out dir] [-mesh file] [-json] script.lisp
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"

	"github.com/chazu/polypanel/pkg/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("polypanel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	outDir := fs.String("out", "", "directory for panel SVGs (overrides render.output_dir)")
	meshPath := fs.String("mesh", "", "write the preview mesh as JSON to this file (overrides mesh.path)")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: polypanel [flags] script.lisp\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *outDir != "" {
		cfg.Render.OutputDir = *outDir
	}
	if *meshPath != "" {
		cfg.Mesh.Path = *meshPath
	}

	logger, closer, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closer.Close()

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logger.Error("could not read script", "err", err)
		return 1
	}
	logger.Info("evaluating", "script", fs.Arg(0))

	report := NewApp(cfg, logger).Evaluate(string(source))
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			logger.Error("could not encode report", "err", err)
			return 1
		}
	} else {
		printReport(stdout, report)
	}
	if len(report.Errors) > 0 {
		return 1
	}
	return 0
}

// newLogger returns a text slog logger at the configured level. With a log
// file configured it writes through a rotating lumberjack logger instead of
// stderr.
func newLogger(c config.LogConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	var (
		w      io.Writer = stderr
		closer io.Closer = nopCloser{}
	)
	if c.File != "" {
		l := &lumberjack.Logger{
			Filename: c.File,
			MaxSize:  c.MaxSize, // megabytes
			MaxAge:   c.MaxAge,  // days
		}
		w, closer = l, l
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func printReport(w io.Writer, r Report) {
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
	if len(r.Errors) > 0 && r.Voxels == 0 {
		return
	}
	fmt.Fprintf(w, "%d voxels, %d faces, %d panels\n", r.Voxels, r.Faces, r.PanelCount)
	for _, p := range r.Panels {
		fmt.Fprintf(w, "  %-20s %4d faces %4d segments\n", p.Name, p.Faces, p.Segments)
	}
	for _, f := range r.Files {
		fmt.Fprintf(w, "wrote %s\n", f)
	}
	if r.Mesh != "" {
		fmt.Fprintf(w, "wrote %s\n", r.Mesh)
	}
}
