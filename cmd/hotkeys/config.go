// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bpowers/hotkeys"
)

// config is the optional YAML file read at startup:
//
//	profiles_dir: /path/to/profile
//	remote_dir: /path/to/steam/userdata/1234/813780/remote
//	steam_dir: /path/to/Steam
//	names: /path/to/names.yaml
//	mirror: true
type config struct {
	ProfilesDir string `yaml:"profiles_dir"`
	RemoteDir   string `yaml:"remote_dir"`
	SteamDir    string `yaml:"steam_dir"`
	Names       string `yaml:"names"`
	Mirror      bool   `yaml:"mirror"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hotkeys", "config.yaml")
}

// loadConfig reads path.  A missing file is only an error when required
// is set, i.e. when the user named the file explicitly.
func loadConfig(path string, required bool) (config, error) {
	var c config
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return c, nil
	} else if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config %q: %w", path, err)
	}
	return c, nil
}

func (c config) resolver() hotkeys.PathResolver {
	return hotkeys.OverridePaths{
		Profiles: c.ProfilesDir,
		Remote:   c.RemoteDir,
		Fallback: hotkeys.DiscoverPaths{SteamDir: c.SteamDir},
	}
}
