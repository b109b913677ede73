// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hkfile

import (
	"errors"

	"github.com/bpowers/hotkeys/internal/ondisk"
	"github.com/bpowers/hotkeys/version"
)

var (
	// ErrExternalConflict is returned by Save when the file on disk was
	// modified after it was loaded.  Save with force to overwrite it.
	ErrExternalConflict = errors.New("hkfile: file was changed externally since it was loaded")

	// ErrAlreadyExists is returned by SaveAs when the target exists and
	// overwrite wasn't requested.
	ErrAlreadyExists = errors.New("hkfile: file already exists")

	// ErrClosed is returned for writes through a closed File.
	ErrClosed = errors.New("hkfile: file is closed")

	// ErrForeignBinding is returned when a File is asked to write a Binding
	// it doesn't own.
	ErrForeignBinding = errors.New("hkfile: binding belongs to a different file")

	// ErrTruncated is returned when the header or records run past the end
	// of the inflated data.
	ErrTruncated = ondisk.ErrTruncated

	// ErrUnrecognizedVersion is returned when the version code isn't known.
	ErrUnrecognizedVersion = version.ErrUnrecognizedVersion
)
