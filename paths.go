// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hotkeys

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const (
	gameDir    = "Age of Empires 2 DE"
	steamAppID = "813780"
	// profile directories are named after the 17-digit Steam id
	steamIDLen = 17
)

// PathResolver locates the directories the game manages.  The rest of
// the package only ever consumes the resolved paths.
type PathResolver interface {
	// ProfilesDir is where the game reads and writes hotkey profiles.
	ProfilesDir() (string, error)
	// RemoteDir is Steam's cloud-synced copy of the profiles directory.
	RemoteDir() (string, error)
}

// FixedPaths is a PathResolver for already known directories.  An empty
// field reports the directory as not found.
type FixedPaths struct {
	Profiles string
	Remote   string
}

func (p FixedPaths) ProfilesDir() (string, error) {
	if p.Profiles == "" {
		return "", ErrNoProfilesDir
	}
	return p.Profiles, nil
}

func (p FixedPaths) RemoteDir() (string, error) {
	if p.Remote == "" {
		return "", ErrNoRemoteDir
	}
	return p.Remote, nil
}

// DiscoverPaths finds the directories the way a default install lays
// them out:
//
//	{Home}/Games/Age of Empires 2 DE/{steam id}/profile
//	{SteamDir}/userdata/{account}/813780/remote
//
// Zero fields fall back to the user's home directory and the platform's
// default Steam install location.
type DiscoverPaths struct {
	Home     string
	SteamDir string
}

func (d DiscoverPaths) ProfilesDir() (string, error) {
	home := d.Home
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoProfilesDir, err)
		}
	}
	game := filepath.Join(home, "Games", gameDir)
	entries, err := os.ReadDir(game)
	if err != nil {
		return "", fmt.Errorf("%w: couldn't read %q: %w", ErrNoProfilesDir, game, err)
	}
	for _, e := range entries {
		if !e.IsDir() || !isSteamID(e.Name()) {
			continue
		}
		profile := filepath.Join(game, e.Name(), "profile")
		if isDir(profile) {
			return profile, nil
		}
	}
	return "", fmt.Errorf("%w: no steam id folder under %q", ErrNoProfilesDir, game)
}

func (d DiscoverPaths) RemoteDir() (string, error) {
	steam := d.SteamDir
	if steam == "" {
		steam = defaultSteamDir()
	}
	userdata := filepath.Join(steam, "userdata")
	entries, err := os.ReadDir(userdata)
	if err != nil {
		return "", fmt.Errorf("%w: couldn't read %q (set the Steam directory manually for non-standard installs): %w",
			ErrNoRemoteDir, userdata, err)
	}
	var accounts []string
	for _, e := range entries {
		if e.IsDir() {
			accounts = append(accounts, e.Name())
		}
	}
	switch len(accounts) {
	case 0:
		return "", fmt.Errorf("%w: no accounts under %q", ErrNoRemoteDir, userdata)
	case 1:
	default:
		return "", fmt.Errorf("%w: found %d accounts under %q and can't tell which one plays", ErrNoRemoteDir, len(accounts), userdata)
	}
	remote := filepath.Join(userdata, accounts[0], steamAppID, "remote")
	if !isDir(remote) {
		return "", fmt.Errorf("%w: %q doesn't exist", ErrNoRemoteDir, remote)
	}
	return remote, nil
}

func defaultSteamDir() string {
	switch runtime.GOOS {
	case "windows":
		return `C:\Program Files (x86)\Steam`
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "Steam")
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".steam", "steam")
		}
	}
	return ""
}

func isSteamID(name string) bool {
	if len(name) != steamIDLen {
		return false
	}
	_, err := strconv.ParseUint(name, 10, 64)
	return err == nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// OverridePaths returns its non-empty fields and asks Fallback for the
// rest.
type OverridePaths struct {
	Profiles string
	Remote   string
	Fallback PathResolver
}

func (o OverridePaths) ProfilesDir() (string, error) {
	if o.Profiles != "" {
		return o.Profiles, nil
	}
	if o.Fallback == nil {
		return "", ErrNoProfilesDir
	}
	return o.Fallback.ProfilesDir()
}

func (o OverridePaths) RemoteDir() (string, error) {
	if o.Remote != "" {
		return o.Remote, nil
	}
	if o.Fallback == nil {
		return "", ErrNoRemoteDir
	}
	return o.Fallback.RemoteDir()
}

// relativeTo returns file's path relative to dir if file is inside dir.
func relativeTo(dir, file string) (string, bool) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absDir, absFile)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// IsUnder reports whether file lives inside dir.
func IsUnder(dir, file string) bool {
	_, ok := relativeTo(dir, file)
	return ok
}
