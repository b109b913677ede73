// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hotkeys

import (
	"errors"

	"github.com/bpowers/hotkeys/hkfile"
)

var (
	// ErrBaseFileNotFound is returned by Open when none of the base file
	// candidates exist.
	ErrBaseFileNotFound = errors.New("hotkeys: base file not found")

	// ErrNoProfilesDir is returned when a PathResolver can't locate the
	// game's profiles directory.
	ErrNoProfilesDir = errors.New("hotkeys: profiles directory not found")

	// ErrNoRemoteDir is returned when a PathResolver can't locate the Steam
	// remote storage directory.
	ErrNoRemoteDir = errors.New("hotkeys: remote directory not found")
)

// Errors re-exported from hkfile.
var (
	ErrExternalConflict    = hkfile.ErrExternalConflict
	ErrAlreadyExists       = hkfile.ErrAlreadyExists
	ErrUnrecognizedVersion = hkfile.ErrUnrecognizedVersion
	ErrClosed              = hkfile.ErrClosed
)
