package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/convert"
	"github.com/reoring/tariffconv/i18n"
	"github.com/reoring/tariffconv/internal/config"
	"github.com/reoring/tariffconv/internal/logging"
	"github.com/reoring/tariffconv/tariff"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	sub := "convert"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "convert":
		return convertCmd(args, stdout, stderr)
	case "event":
		return eventCmd(args, stdout, stderr)
	case "help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", sub)
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "tariffconv converts a tariff request between JSON, YAML and TOML\n\nUsage:\n  tariffconv convert [-config file] [-in request.json] [-from json|yaml|toml] [-to yaml,toml] [-out dir] [-fail-fast] [-log-level info]\n  tariffconv event [-name \"Event 1\"] [-date 2021-11-14]")
}

func convertCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath  string
		in       string
		from     string
		to       string
		out      string
		failFast bool
		level    string
	)
	fs.StringVar(&cfgPath, "config", "", "config file (yaml, toml or json)")
	fs.StringVar(&in, "in", "", "input request file")
	fs.StringVar(&from, "from", "", "input format; inferred from the file extension when empty")
	fs.StringVar(&to, "to", "", "comma-separated output formats")
	fs.StringVar(&out, "out", "", "write outputs into this directory instead of stdout")
	fs.BoolVar(&failFast, "fail-fast", false, "stop at the first issue")
	fs.StringVar(&level, "log-level", "", "trace, debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return exitUsage
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input = in
		case "from":
			cfg.From = from
		case "to":
			cfg.To = splitCSV(to)
		case "out":
			cfg.OutDir = out
		case "fail-fast":
			cfg.FailFast = failFast
		case "log-level":
			cfg.LogLevel = level
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	opt, err := cfg.Options()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	log, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	i18n.SetLanguage(cfg.Language)
	opt.Logger = &log

	docs, err := convert.File(context.Background(), cfg.Input, opt)
	if err != nil {
		logFailure(log, err)
		return exitFail
	}

	if cfg.OutDir == "" {
		if err := convert.WriteTo(stdout, docs); err != nil {
			logFailure(log, err)
			return exitFail
		}
		return exitOK
	}
	base := strings.TrimSuffix(filepath.Base(cfg.Input), filepath.Ext(cfg.Input))
	paths, err := convert.WriteDir(cfg.OutDir, base, docs)
	if err != nil {
		logFailure(log, err)
		return exitFail
	}
	for _, p := range paths {
		log.Info().Str("path", p).Msg("wrote")
	}
	return exitOK
}

func eventCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("event", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var ev tariff.Event
	fs.StringVar(&ev.Name, "name", "Event 1", "event name")
	fs.StringVar(&ev.Date, "date", "2021-11-14", "event date")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	data, back, err := convert.EventRoundTrip(context.Background(), ev)
	if err != nil {
		logFailure(zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}), err)
		return exitFail
	}
	_, _ = stdout.Write(data)
	fmt.Fprintf(stdout, "decoded: %+v\n", back)
	return exitOK
}

// logFailure logs one line per issue, or the bare error when it carries none.
func logFailure(log zerolog.Logger, err error) {
	iss, ok := tariffconv.AsIssues(err)
	if !ok {
		log.Error().Err(err).Msg("conversion failed")
		return
	}
	for _, it := range iss {
		ev := log.Error().
			Str("category", tariffconv.CategoryOfCode(it.Code).String()).
			Str("path", it.Path).
			Str("code", it.Code)
		if it.Hint != "" {
			ev = ev.Str("hint", it.Hint)
		}
		ev.Msg(it.Message)
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
