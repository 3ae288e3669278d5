// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process-wide progress/diagnostics logger. Verbose
// lowers the level to Debug; otherwise only Info and above are shown, so
// a plain run sees the same kind of progress banners the original tools
// print to stderr without drowning in per-focus chatter.
func NewLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
