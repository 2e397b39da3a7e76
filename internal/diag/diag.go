// File: internal/diag/diag.go
// Package diag provides the single categorical-level diagnostic sink used
// across bufpool: error, warning, and debug.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package diag

import (
	"io"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetOutput redirects the package logger's output. Intended for tests that
// need to assert on emitted diagnostics; production callers never need it.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Errorf logs at error level — used when a D1 (complain) pool is closed
// with buffers still outstanding.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

// Warnf logs at warning level. The reclamation registry's shutdown warning
// goes through WithFields instead, so that it carries the residual count.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// WithFields attaches structured context (residual count, pool id, ...) to
// a subsequent log call.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}
