// SPDX-License-Identifier: MIT

// Command modelmatrix parses, canonicalizes and materializes model formulas.
//
//	modelmatrix parse  [-color mode] FORMULA
//	modelmatrix canon  [-color mode] FORMULA
//	modelmatrix vars   FORMULA
//	modelmatrix matrix -data FILE [flags] FORMULA
//	modelmatrix repl   [-data FILE] [-config FILE]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/modelmatrix"
	"github.com/katalvlaran/modelmatrix/config"
	"github.com/katalvlaran/modelmatrix/design"
	"github.com/katalvlaran/modelmatrix/frame"
	"github.com/katalvlaran/modelmatrix/logutil"
	"github.com/katalvlaran/modelmatrix/parser"
	"github.com/katalvlaran/modelmatrix/pretty"
)

const appName = "modelmatrix"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "parse":
		return cmdPrint(cmd, rest, stdout, stderr, false)
	case "canon":
		return cmdPrint(cmd, rest, stdout, stderr, true)
	case "vars":
		return cmdVars(rest, stdout, stderr)
	case "matrix":
		return cmdMatrix(rest, stdout, stderr)
	case "repl":
		return cmdRepl(rest, stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	}
	fmt.Fprintf(stderr, "%s: unknown command %q\n", appName, cmd)
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %[1]s parse  [-color auto|always|never] FORMULA   Print the parsed formula.
  %[1]s canon  [-color auto|always|never] FORMULA   Print the canonical formula.
  %[1]s vars   FORMULA                             List referenced columns.
  %[1]s matrix -data FILE [flags] FORMULA          Materialize Y, X and Z.
  %[1]s repl   [-data FILE] [-config FILE]         Interactive session.

`, appName)
}

// common holds the flags shared by the data-bearing commands.
type common struct {
	fs         *flag.FlagSet
	configPath string
	color      string
	logPath    string
	verbose    bool
	cfg        config.Config
}

func newCommon(name string, stderr io.Writer) *common {
	c := &common{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	c.fs.SetOutput(stderr)
	c.fs.StringVar(&c.configPath, "config", "", "YAML or TOML settings `file`")
	c.fs.StringVar(&c.color, "color", "", "color `mode`: auto, always or never")
	c.fs.StringVar(&c.logPath, "log", "", "write debug log to `file`")
	c.fs.BoolVar(&c.verbose, "v", false, "write debug log to stderr")
	return c
}

// setup loads the config file, applies the color flag and enables logging.
func (c *common) setup(stderr io.Writer) error {
	c.cfg = config.Default()
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	if c.color != "" {
		c.cfg.Color = c.color
		if err := c.cfg.Validate(); err != nil {
			return err
		}
	}
	switch {
	case c.logPath != "":
		return logutil.SetOutputFile(c.logPath)
	case c.verbose:
		logutil.SetOutput(stderr)
	}
	return nil
}

func (c *common) printer(w io.Writer) pretty.Printer {
	f, _ := w.(*os.File)
	return pretty.Printer{Color: c.cfg.UseColor(f)}
}

// formula joins the positional arguments so unquoted shell words work.
func (c *common) formula() (string, error) {
	if c.fs.NArg() == 0 {
		return "", errors.New("missing FORMULA argument")
	}
	return strings.Join(c.fs.Args(), " "), nil
}

func cmdPrint(name string, args []string, stdout, stderr io.Writer, canonical bool) int {
	c := newCommon(name, stderr)
	if err := c.fs.Parse(args); err != nil {
		return 2
	}
	src, err := c.formula()
	if err == nil {
		err = c.setup(stderr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s %s: %v\n", appName, name, err)
		return 2
	}

	var text string
	if canonical {
		spec, cerr := modelmatrix.Compile(src)
		if err = cerr; err == nil {
			text = c.printer(stdout).Spec(spec)
		}
	} else {
		spec, perr := parser.Parse(src)
		if err = perr; err == nil {
			text = c.printer(stdout).Spec(spec)
		}
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, text)
	return 0
}

func cmdVars(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(stderr, "%s vars: missing FORMULA argument\n", appName)
		return 2
	}
	vars, err := modelmatrix.Variables(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, v := range vars {
		fmt.Fprintln(stdout, v)
	}
	return 0
}

func cmdMatrix(args []string, stdout, stderr io.Writer) int {
	c := newCommon("matrix", stderr)
	dataPath := c.fs.String("data", "", "CSV or YAML data `file` (required)")
	which := c.fs.String("show", "yxz", "tables to print, any of y, x and z")
	noIntercept := c.fs.Bool("no-intercept", false, "omit the intercept column")
	rawNames := c.fs.Bool("raw-names", false, "keep column names uncleaned")
	contrast := c.fs.String("contrast", "", "categorical coding: treatment, sum or helmert")
	parallel := c.fs.Int("parallel", -1, "materialize up to `n` terms concurrently")
	if err := c.fs.Parse(args); err != nil {
		return 2
	}
	src, err := c.formula()
	if err == nil && *dataPath == "" {
		err = errors.New("-data is required")
	}
	if err == nil {
		err = c.setup(stderr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s matrix: %v\n", appName, err)
		return 2
	}

	// Flags given on the command line override the config file.
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "no-intercept":
			c.cfg.Intercept = !*noIntercept
		case "raw-names":
			c.cfg.CleanNames = !*rawNames
		case "contrast":
			c.cfg.Contrast = *contrast
		case "parallel":
			c.cfg.Parallel = *parallel
		}
	})
	opts, err := c.cfg.Options()
	if err != nil {
		fmt.Fprintf(stderr, "%s matrix: %v\n", appName, err)
		return 2
	}

	data, err := frame.Load(*dataPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s matrix: %v\n", appName, err)
		return 1
	}
	y, x, z, err := modelmatrix.Materialize(src, data, modelmatrix.WithOptions(opts))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	tables := map[rune]struct {
		title string
		t     *design.Table
	}{'y': {"Y", y}, 'x': {"X", x}, 'z': {"Z", z}}
	first := true
	for _, r := range strings.ToLower(*which) {
		tt, ok := tables[r]
		if !ok {
			continue
		}
		if !first {
			fmt.Fprintln(stdout)
		}
		first = false
		if err = writeTable(stdout, tt.title, tt.t); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}
