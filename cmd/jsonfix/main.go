// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jsonfix validates, formats, repairs, and shares JSON documents.
//
// Usage:
//
//	jsonfix fmt [--mode beautify|minify] [--color auto|always|never] [--path p] [file]
//	jsonfix repair [--write] [file]
//	jsonfix share [--base url] [file]
//	jsonfix open <link>
//	jsonfix sample [--index n]
//	jsonfix watch <file>
//	jsonfix serve
//	jsonfix schema
//
// Commands that take a file read standard input when it is omitted. Settings
// are loaded from jsonfix.yaml, .env, and JSONFIX_ environment variables; run
// "jsonfix schema" for a description of the settings.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jsonfix/internal/config"
)

const version = "0.1.0"

type cli struct {
	Config  string           `help:"Path of the YAML settings file." type:"path"`
	Debug   bool             `help:"Enable debug logging."`
	Version kong.VersionFlag `help:"Print the version and exit."`

	Fmt    fmtCmd    `cmd:"" help:"Validate and format a JSON document."`
	Repair repairCmd `cmd:"" help:"Repair a nearly-JSON document."`
	Share  shareCmd  `cmd:"" help:"Print a share link for a JSON document."`
	Open   openCmd   `cmd:"" help:"Format the document carried by a share link."`
	Sample sampleCmd `cmd:"" help:"Print a sample document."`
	Watch  watchCmd  `cmd:"" help:"Format a file each time it changes."`
	Serve  serveCmd  `cmd:"" help:"Serve the tools over MCP on stdin and stdout."`
	Schema schemaCmd `cmd:"" help:"Print the JSON schema of the settings file."`
}

// env is the environment shared by all commands.
type env struct {
	ctx    context.Context
	cfg    *config.Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	e := &env{ctx: ctx, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := run(e, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "jsonfix: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and runs the selected command in e.
func run(e *env, args []string) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("jsonfix"),
		kong.Description("Validate, format, repair, and share JSON documents."),
		kong.UsageOnError(),
		kong.Writers(e.stdout, e.stderr),
		kong.Vars{"version": version},
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{File: c.Config})
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	level := cfg.SlogLevel()
	if c.Debug {
		level = slog.LevelDebug
	}
	e.cfg = cfg
	e.log = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))
	if cfg.Source != "" {
		e.log.Debug("loaded settings", "file", cfg.Source)
	}
	return kctx.Run(e)
}
