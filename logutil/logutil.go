// SPDX-License-Identifier: MIT

// Package logutil provides package-level loggers that share one output.
//
// All loggers discard their output until SetOutput or SetOutputFile is called,
// so library packages can log freely without polluting a host program's stderr.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	loggers []*log.Logger
	logFile *os.File
)

// Discard is a Logger that ignores all loggings.
var Discard = log.New(io.Discard, "", 0)

// GetLogger returns a logger with the given prefix. Its output follows every
// later SetOutput call.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.Lmicroseconds)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLogFile()
	setOutput(w)
}

// SetOutputFile redirects all loggers to the named file, truncating it.
// An empty name restores the discarding output.
func SetOutputFile(name string) error {
	mu.Lock()
	defer mu.Unlock()
	closeLogFile()
	if name == "" {
		setOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	logFile = f
	setOutput(f)
	return nil
}

func setOutput(w io.Writer) {
	out = w
	for _, logger := range loggers {
		logger.SetOutput(w)
	}
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
