// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ticclcfg provides optional TOML configuration for the
// ticcl-anahash and ticcl-indexer commands: a Config value is built
// from built-in defaults, overlaid with a TOML file when one is given,
// and finally overlaid with whichever command-line flags the user
// actually set.
package ticclcfg

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the full flag set of both ticcl-anahash and
// ticcl-indexer. Each command only reads the fields relevant to it.
type Config struct {
	// ticcl-anahash fields.
	Alphabet   string `toml:"alphabet"`
	Background string `toml:"background"`
	Separator  string `toml:"separator"`
	Clip       int64  `toml:"clip"`
	ArtiFreq   int64  `toml:"artifreq"`
	NGrams     bool   `toml:"ngrams"`
	List       bool   `toml:"list"`

	// ticcl-indexer fields.
	Hash      string `toml:"hash"`
	CharConf  string `toml:"charconf"`
	Foci      string `toml:"foci"`
	Low       int    `toml:"low"`
	High      int    `toml:"high"`
	ConfStats string `toml:"confstats"`
	Threads   string `toml:"threads"`

	// shared.
	Output  string `toml:"output"`
	Verbose bool   `toml:"verbose"`
}

// Default returns the built-in defaults, applied before any
// configuration file or flag is considered.
func Default() Config {
	return Config{
		Separator: "_",
		Low:       5,
		High:      35,
		Threads:   "1",
	}
}

// MustParse reads and parses a TOML configuration file, exiting the
// process on error. Fields absent from the file keep Default's values.
func MustParse(filename string) Config {
	f, err := os.Open(filename)
	if err != nil {
		fatal("cannot open configuration file", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		fatal("cannot parse configuration file", err)
	}
	return cfg
}

// Parse reads a TOML configuration from r, starting from Default.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func fatal(prefix string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err.Error())
	os.Exit(1)
}
