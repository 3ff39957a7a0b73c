// Command uri parses, normalizes and builds RFC 3986 URIs.
//
// Usage:
//
//	uri parse [-format text|json|yaml] [-v] URI...
//	uri normalize [-format text|json|yaml] [-v] URI...
//	uri build -scheme SCHEME [-userinfo U] [-host H] [-port P] [-path P] [-query Q] [-fragment F]
//	uri http [-format text|json|yaml] [-v] URI...
//	uri host [-format text|json|yaml] [-v] HOST...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ghettovoice/uri"
	"github.com/ghettovoice/uri/internal/errorutil"
	"github.com/ghettovoice/uri/internal/log"
	"github.com/ghettovoice/uri/internal/util"
)

func main() {
	c := &cli{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: func(verbose bool) *slog.Logger {
			if verbose {
				return log.Dev
			}
			return log.Def
		},
	}
	os.Exit(c.run(os.Args[1:]))
}

type cli struct {
	stdout, stderr io.Writer
	logger         func(verbose bool) *slog.Logger
}

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func (c *cli) usage() {
	fmt.Fprintln(c.stderr, `uri - RFC 3986 URI tool

Usage:
  uri parse [-format text|json|yaml] [-v] URI...
  uri normalize [-format text|json|yaml] [-v] URI...
  uri build -scheme SCHEME [-userinfo U] [-host H] [-port P] [-path P] [-query Q] [-fragment F]
  uri http [-format text|json|yaml] [-v] URI...
  uri host [-format text|json|yaml] [-v] HOST...`)
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		c.usage()
		return exitUsage
	}

	var cmd func(name string, args []string) int
	switch args[0] {
	case "parse":
		cmd = c.eachCmd(parseReport)
	case "normalize":
		cmd = c.eachCmd(normalizeReport)
	case "http":
		cmd = c.eachCmd(httpReport)
	case "host":
		cmd = c.eachCmd(hostReport)
	case "build":
		cmd = c.buildCmd
	case "help", "-h", "-help", "--help":
		c.usage()
		return exitOK
	default:
		c.usage()
		return exitUsage
	}
	return cmd(args[0], args[1:])
}

type commonFlags struct {
	format  string
	verbose bool
}

func (c *cli) newFlagSet(name string) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	cf := &commonFlags{}
	fs.StringVar(&cf.format, "format", "text", "output format: text, json or yaml")
	fs.BoolVar(&cf.verbose, "v", false, "enable developer logging")
	return fs, cf
}

// eachCmd runs report for every positional argument, failures are collected and reported at the end.
func (c *cli) eachCmd(report func(arg string) (any, error)) func(name string, args []string) int {
	return func(name string, args []string) int {
		fs, cf := c.newFlagSet(name)
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return exitOK
			}
			return exitUsage
		}
		enc, err := newEncoder(cf.format, c.stdout)
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			return exitUsage
		}
		if fs.NArg() == 0 {
			fs.Usage()
			return exitUsage
		}

		logger := c.logger(cf.verbose).With("cmd", name)
		var errs []error
		for _, arg := range fs.Args() {
			rep, err := report(arg)
			if err != nil {
				logger.Debug("argument rejected", "arg", util.Ellipsis(arg, 80), "error", err)
				errs = append(errs, fmt.Errorf("%q: %w", arg, err))
				continue
			}
			logger.Debug("argument processed", "arg", util.Ellipsis(arg, 80), "report", log.FmtValue(rep, false))
			if err := enc.Encode(rep); err != nil {
				logger.Error("failed to write output", "error", err)
				return exitFailure
			}
		}
		if err := enc.Close(); err != nil {
			logger.Error("failed to write output", "error", err)
			return exitFailure
		}
		if len(errs) > 0 {
			logger.Error("command failed", "error", errorutil.JoinPrefix(name+":", errs...))
			return exitFailure
		}
		return exitOK
	}
}

func (c *cli) buildCmd(name string, args []string) int {
	fs, cf := c.newFlagSet(name)
	var (
		scheme, userinfo, host, path, query, fragment string
		port                                          uint
	)
	fs.StringVar(&scheme, "scheme", "", "scheme, required")
	fs.StringVar(&userinfo, "userinfo", "", "userinfo, requires -host")
	fs.StringVar(&host, "host", "", "host, sets the authority")
	fs.UintVar(&port, "port", 0, "port, requires -host")
	fs.StringVar(&path, "path", "", "path")
	fs.StringVar(&query, "query", "", "query without \"?\"")
	fs.StringVar(&fragment, "fragment", "", "fragment without \"#\"")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	enc, err := newEncoder(cf.format, c.stdout)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitUsage
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	logger := c.logger(cf.verbose).With("cmd", name)
	comps, err := buildComponents(set, scheme, userinfo, host, port, path, query, fragment)
	if err != nil {
		logger.Error("command failed", "error", err)
		return exitFailure
	}
	u, err := uri.Build(comps)
	if err != nil {
		logger.Error("command failed", "error", errorutil.JoinPrefix(name+":", err))
		return exitFailure
	}
	logger.Debug("URI built", "uri", u, "host", comps.Host, "params", u.QueryParams())

	if err := enc.Encode(newURIReport(u)); err != nil {
		logger.Error("failed to write output", "error", err)
		return exitFailure
	}
	if err := enc.Close(); err != nil {
		logger.Error("failed to write output", "error", err)
		return exitFailure
	}
	return exitOK
}

func buildComponents(
	set map[string]bool,
	scheme, userinfo, host string,
	port uint,
	path, query, fragment string,
) (uri.Components, error) {
	var (
		comps uri.Components
		errs  []error
		err   error
	)
	if comps.Scheme, err = uri.NewScheme(scheme); err != nil {
		errs = append(errs, fmt.Errorf("-scheme: %w", err))
	}
	if set["userinfo"] {
		if comps.Userinfo, err = uri.NewUserinfo(userinfo); err != nil {
			errs = append(errs, fmt.Errorf("-userinfo: %w", err))
		}
	}
	if set["host"] {
		if comps.Host, err = uri.NewHost(host); err != nil {
			errs = append(errs, fmt.Errorf("-host: %w", err))
		}
	}
	if set["port"] {
		if port > 0xFFFF {
			errs = append(errs, fmt.Errorf("-port: %w: port %d out of range", uri.ErrInvalidAuthority, port))
		}
		comps.Port, comps.HasPort = uint16(port), true
	}
	if comps.Path, err = uri.NewPath(path); err != nil {
		errs = append(errs, fmt.Errorf("-path: %w", err))
	}
	if set["query"] {
		if comps.Query, err = uri.NewQuery(query); err != nil {
			errs = append(errs, fmt.Errorf("-query: %w", err))
		}
	}
	if set["fragment"] {
		if comps.Fragment, err = uri.NewFragment(fragment); err != nil {
			errs = append(errs, fmt.Errorf("-fragment: %w", err))
		}
	}
	if len(errs) > 0 {
		return comps, errorutil.JoinPrefix("build:", errs...)
	}
	return comps, nil
}
