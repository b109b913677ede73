// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hotkeys

import (
	"io"
	"log/slog"
)

// Option configures Open and OpenLibrary.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	baseFile string
	mirror   PathResolver
}

// WithLogger sets an optional logger for load, save and mirror progress.
// If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithBaseFile names a base file to try before the usual candidates.  It
// is only useful when the base file lives somewhere unrelated to the
// profile file.
func WithBaseFile(path string) Option {
	return func(opts *options) {
		opts.baseFile = path
	}
}

// WithMirror enables copying saved files into r's remote directory when
// they live under r's profiles directory.  Steam restores its remote copy
// over the profiles directory, so edits that aren't mirrored get reverted.
func WithMirror(r PathResolver) Option {
	return func(opts *options) {
		opts.mirror = r
	}
}

func buildOptions(opts []Option) options {
	var o options
	o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
