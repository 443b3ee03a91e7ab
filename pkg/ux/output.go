// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"

	luxlog "github.com/luxfi/log"
)

type UserLog struct {
	log    luxlog.Logger
	writer io.Writer
	errw   io.Writer
}

// NewUserLog sends command output to userwriter and errors to errwriter.
// Errors are also recorded in log.
func NewUserLog(log luxlog.Logger, userwriter io.Writer, errwriter io.Writer) *UserLog {
	if log == nil {
		log = luxlog.Noop()
	}
	return &UserLog{
		log:    log,
		writer: userwriter,
		errw:   errwriter,
	}
}

// PrintToUser prints msg as a single line of command output
// Does NOT log to avoid duplication with the structured log entries
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
}

// Info logs an info message without printing it
func (ul *UserLog) Info(msg string, fields ...interface{}) {
	ul.log.Info(msg, fields...)
}

// PrintError prints a single ERROR line to the error writer
func (ul *UserLog) PrintError(err error) {
	_, _ = fmt.Fprintf(ul.errw, "ERROR: %s\n", err)
	ul.log.Error("command failed", luxlog.Err(err))
}
