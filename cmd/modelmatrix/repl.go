// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/katalvlaran/modelmatrix"
	"github.com/katalvlaran/modelmatrix/frame"
	"github.com/katalvlaran/modelmatrix/parser"
)

const (
	historyFile = ".modelmatrix_history"
	promptMain  = "formula> "
	promptCont  = "......> "
	replHelp    = `Enter a formula to see its canonical form; with data loaded the
fixed and random effects tables are printed too.
  :data FILE   load a CSV or YAML data file
  :vars        toggle printing referenced columns
  :help        this text
  :quit        leave`
)

type session struct {
	c        *common
	data     *frame.Frame
	showVars bool
	out, err io.Writer
}

func cmdRepl(args []string, stdout, stderr io.Writer) int {
	c := newCommon("repl", stderr)
	dataPath := c.fs.String("data", "", "CSV or YAML data `file`")
	if err := c.fs.Parse(args); err != nil {
		return 2
	}
	if err := c.setup(stderr); err != nil {
		fmt.Fprintf(stderr, "%s repl: %v\n", appName, err)
		return 2
	}
	s := &session{c: c, out: stdout, err: stderr}
	if *dataPath != "" {
		if err := s.load(*dataPath); err != nil {
			fmt.Fprintf(stderr, "%s repl: %v\n", appName, err)
			return 1
		}
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	done := make(chan struct{})
	defer close(done)
	watchSignals(sigc, done, func() {
		ln.Close()
		os.Exit(130)
	})

	fmt.Fprintln(stdout, "modelmatrix repl, :help for commands")
	for {
		src, ok := readComplete(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if s.eval(src) {
			return 0
		}
	}
}

// eval handles one command or formula; it reports whether to quit.
func (s *session) eval(src string) bool {
	if strings.HasPrefix(src, ":") {
		fields := strings.Fields(src)
		switch fields[0] {
		case ":quit", ":q":
			return true
		case ":help":
			fmt.Fprintln(s.out, replHelp)
		case ":vars":
			s.showVars = !s.showVars
		case ":data":
			if len(fields) != 2 {
				fmt.Fprintln(s.err, "usage: :data FILE")
				break
			}
			if err := s.load(fields[1]); err != nil {
				fmt.Fprintln(s.err, err)
			}
		default:
			fmt.Fprintf(s.err, "unknown command %s, :help for the list\n", fields[0])
		}
		return false
	}

	spec, err := modelmatrix.Compile(src)
	if err != nil {
		fmt.Fprintln(s.err, err)
		return false
	}
	fmt.Fprintln(s.out, s.c.printer(s.out).Spec(spec))
	if s.showVars {
		vars, _ := modelmatrix.Variables(src)
		fmt.Fprintln(s.out, "columns:", strings.Join(vars, ", "))
	}
	if s.data == nil {
		return false
	}

	opts, err := s.c.cfg.Options()
	if err != nil {
		fmt.Fprintln(s.err, err)
		return false
	}
	_, x, z, err := modelmatrix.Materialize(src, s.data, modelmatrix.WithOptions(opts))
	if err != nil {
		fmt.Fprintln(s.err, err)
		return false
	}
	_ = writeTable(s.out, "X", x)
	if z.Width() > 0 {
		_ = writeTable(s.out, "Z", z)
	}
	return false
}

func (s *session) load(path string) error {
	f, err := frame.Load(path)
	if err != nil {
		return err
	}
	s.data = f
	fmt.Fprintf(s.out, "loaded %s: %d rows, columns %s\n", path, f.Height(), strings.Join(f.Names(), ", "))
	return nil
}

// readComplete reads lines until they form a formula that is either
// valid or wrong for a reason other than ending too early.
func readComplete(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.Parse(src); perr == nil || !parser.IsIncomplete(perr) || strings.TrimSpace(src) == "" {
			return src, true
		}
	}
}

// watchSignals calls onSignal when sigc fires. The watcher exits when done is
// closed; the returned channel is closed once it has.
func watchSignals(sigc <-chan os.Signal, done <-chan struct{}, onSignal func()) <-chan struct{} {
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-sigc:
			onSignal()
		case <-done:
		}
	}()
	return exited
}
