// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jsonfix/format"
	"github.com/creachadair/jsonfix/highlight"
	"github.com/creachadair/jsonfix/internal/config"
	"github.com/creachadair/jsonfix/internal/mcpserver"
	"github.com/creachadair/jsonfix/repair"
	"github.com/creachadair/jsonfix/samples"
	"github.com/creachadair/jsonfix/session"
	"github.com/creachadair/jsonfix/share"
	"github.com/creachadair/jsonfix/value"
	kfile "github.com/knadh/koanf/providers/file"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type fmtCmd struct {
	Mode  string `help:"Rendering mode, beautify or minify (default from settings)."`
	Color string `help:"When to highlight output: auto, always, or never (default from settings)."`
	Path  string `help:"Print only the value at this dot-separated path, e.g. items.0.name."`
	File  string `arg:"" optional:"" help:"Input file (default stdin)." type:"existingfile"`
}

func (c *fmtCmd) Run(e *env) error {
	mode, err := e.mode(c.Mode)
	if err != nil {
		return err
	}
	text, err := e.readInput(c.File)
	if err != nil {
		return err
	}
	v, err := e.format(text, mode)
	if err != nil || v == nil {
		return err
	}
	if c.Path != "" {
		v, err = value.Path(v, value.SplitPath(c.Path)...)
		if err != nil {
			return err
		}
	}
	return e.print(format.Render(v, mode), cmp.Or(c.Color, e.cfg.Color))
}

type repairCmd struct {
	Write bool   `help:"Replace the input file with the repaired document."`
	File  string `arg:"" optional:"" help:"Input file (default stdin)." type:"existingfile"`
}

func (c *repairCmd) Run(e *env) error {
	if c.Write && (c.File == "" || c.File == "-") {
		return errors.New("--write requires an input file")
	}
	text, err := e.readInput(c.File)
	if err != nil {
		return err
	}
	res := repair.Repair(text)
	if !res.OK {
		return fmt.Errorf("could not repair JSON: %s", res.Reason)
	}
	if len(res.Applied) == 0 {
		fmt.Fprintln(e.stderr, "Already valid JSON; no repairs needed.")
	} else {
		title := cases.Title(language.English)
		names := make([]string, len(res.Applied))
		for i, name := range res.Applied {
			names[i] = title.String(name)
		}
		fmt.Fprintf(e.stderr, "Repaired: %s\n", strings.Join(names, ", "))
	}
	if c.Write {
		e.log.Debug("rewriting file", "path", c.File, "steps", len(res.Applied))
		return os.WriteFile(c.File, []byte(res.Text), 0644)
	}
	_, err = fmt.Fprintln(e.stdout, res.Text)
	return err
}

type shareCmd struct {
	Base string `help:"Prefix of the link (default from settings)."`
	File string `arg:"" optional:"" help:"Input file (default stdin)." type:"existingfile"`
}

func (c *shareCmd) Run(e *env) error {
	text, err := e.readInput(c.File)
	if err != nil {
		return err
	}
	enc := e.cfg.Encoder()
	enc.BaseURL = cmp.Or(c.Base, enc.BaseURL)
	link, err := enc.Encode(text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, link)
	return err
}

type openCmd struct {
	Link string `arg:"" help:"A share link, or just its query string."`
}

func (c *openCmd) Run(e *env) error {
	text, err := share.Decode(c.Link)
	if err != nil {
		return err
	}
	mode := e.cfg.FormatMode()
	v, err := e.format(text, mode)
	if err != nil || v == nil {
		return err
	}
	return e.print(format.Render(v, mode), e.cfg.Color)
}

type sampleCmd struct {
	Index int `help:"Which sample to print; values wrap around." default:"0"`
}

func (c *sampleCmd) Run(e *env) error {
	mode := e.cfg.FormatMode()
	v, err := e.format(samples.Get(c.Index), mode)
	if err != nil || v == nil {
		return err
	}
	return e.print(format.Render(v, mode), e.cfg.Color)
}

type watchCmd struct {
	File string `arg:"" help:"The file to watch." type:"existingfile"`
}

func (c *watchCmd) Run(e *env) error {
	s := session.New(func(r session.Result) {
		switch {
		case r.Err != nil:
			fmt.Fprintf(e.stderr, "Invalid JSON: %v\n", r.Err)
		case r.Empty():
			fmt.Fprintln(e.stderr, "No content.")
		default:
			if err := e.print(r.Text, e.cfg.Color); err != nil {
				e.log.Error("write output", "err", err)
			}
		}
	},
		session.WithDelay(e.cfg.Watch.Debounce),
		session.WithMode(e.cfg.FormatMode()),
		session.WithLogger(e.log),
	)
	defer s.Close()

	load := func() {
		data, err := os.ReadFile(c.File)
		if err != nil {
			e.log.Error("read file", "path", c.File, "err", err)
			return
		}
		s.Update(string(data))
	}
	load()
	if err := kfile.Provider(c.File).Watch(func(_ any, err error) {
		if err != nil {
			e.log.Error("watch file", "path", c.File, "err", err)
			return
		}
		e.log.Debug("file changed", "path", c.File)
		load()
	}); err != nil {
		return fmt.Errorf("watch %s: %w", c.File, err)
	}
	<-e.ctx.Done()
	return nil
}

type serveCmd struct{}

func (serveCmd) Run(e *env) error {
	s := mcpserver.New("jsonfix", version, &mcpserver.Tools{
		Mode:    e.cfg.FormatMode(),
		Encoder: e.cfg.Encoder(),
		Logger:  e.log,
	})
	e.log.Info("serving tools on stdio")
	return mcpserver.Serve(s)
}

type schemaCmd struct{}

func (schemaCmd) Run(e *env) error {
	text, err := config.Schema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, text)
	return err
}

// readInput returns the contents of path, or of stdin if path is "" or "-".
func (e *env) readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(e.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// mode returns the mode named by s, or the configured mode if s == "".
func (e *env) mode(s string) (format.Mode, error) {
	if s == "" {
		return e.cfg.FormatMode(), nil
	}
	return format.ParseMode(s)
}

// format parses text, reporting an error for invalid input. Empty input is
// not an error: format notes it on stderr and returns a nil value.
func (e *env) format(text string, mode format.Mode) (value.Value, error) {
	res, err := format.Format(text, mode)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	} else if res.Empty() {
		fmt.Fprintln(e.stderr, "No content.")
		return nil, nil
	}
	e.log.Debug("formatted input", "bytes", len(text), "mode", mode)
	return res.Value, nil
}

// print writes text and a newline to stdout, highlighted according to the
// given color setting.
func (e *env) print(text, colorMode string) error {
	p := highlight.DefaultPalette()
	switch colorMode {
	case "always":
		p = p.Enable()
	case "never":
		p = p.Disable()
	case "auto":
	default:
		return fmt.Errorf("invalid color setting %q", colorMode)
	}
	if err := p.Write(e.stdout, text); err != nil {
		return err
	}
	_, err := fmt.Fprintln(e.stdout)
	return err
}
