// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// hotkeys lists and edits Age of Empires II hotkey profiles.
//
//	hotkeys [flags] list <profile> [-where expr]
//	hotkeys [flags] set <profile> -where expr [-key K] [-ctrl b] [-alt b] [-shift b] [-force]
//	hotkeys [flags] clone <profile> <new name> [-dir dir] [-overwrite]
//	hotkeys [flags] profiles [dir]
//	hotkeys [flags] shell <profile>
//
// A profile is either a path to a .hkp file or the name of a profile in
// the game's profiles directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bpowers/hotkeys"
	"github.com/bpowers/hotkeys/names"
)

var (
	configPath  = flag.String("config", "", "YAML config file (default: user config dir/hotkeys/config.yaml)")
	profilesDir = flag.String("profiles", "", "game profiles directory (overrides config and discovery)")
	remoteDir   = flag.String("remote", "", "Steam remote directory (overrides config and discovery)")
	namesPath   = flag.String("names", "", "YAML table of action names")
	mirror      = flag.Bool("mirror", false, "copy saved files into the Steam remote directory")
	verbose     = flag.Bool("v", false, "verbose logging")
)

type app struct {
	out    io.Writer
	logger *slog.Logger
	paths  hotkeys.PathResolver
	names  names.Lookup
	mirror bool
}

func newApp(cfg config, out io.Writer, logger *slog.Logger) (*app, error) {
	a := &app{
		out:    out,
		logger: logger,
		paths:  cfg.resolver(),
		mirror: cfg.Mirror,
	}
	if cfg.Names != "" {
		table, err := names.LoadYAML(cfg.Names)
		if err != nil {
			return nil, fmt.Errorf("names: %w", err)
		}
		a.names = table
	}
	return a, nil
}

func (a *app) options() []hotkeys.Option {
	opts := []hotkeys.Option{hotkeys.WithLogger(a.logger)}
	if a.mirror {
		opts = append(opts, hotkeys.WithMirror(a.paths))
	}
	return opts
}

// open resolves arg as a path when it looks like one, otherwise as a
// profile name.
func (a *app) open(arg string) (*hotkeys.Profile, error) {
	if strings.ContainsRune(arg, filepath.Separator) || strings.ContainsRune(arg, '/') ||
		strings.EqualFold(filepath.Ext(arg), ".hkp") {
		return hotkeys.Open(arg, a.options()...)
	}
	return hotkeys.OpenNamed(a.paths, arg, a.options()...)
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "list":
		return a.withProfile(args, a.list)
	case "set":
		return a.withProfile(args, func(p *hotkeys.Profile, args []string) error {
			return a.set(p, args, true)
		})
	case "clone":
		return a.withProfile(args, a.clone)
	case "profiles":
		return a.profiles(args)
	case "shell":
		return a.withProfile(args, func(p *hotkeys.Profile, args []string) error {
			if len(args) != 0 {
				return errUsage
			}
			return a.shell(p, os.Stdin)
		})
	case "help", "-h", "--help":
		usage()
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) withProfile(args []string, fn func(p *hotkeys.Profile, args []string) error) error {
	if len(args) == 0 {
		return errUsage
	}
	p, err := a.open(args[0])
	if err != nil {
		return err
	}
	defer func() {
		_ = p.Close()
	}()
	return fn(p, args[1:])
}

var errUsage = errors.New("invalid arguments")

func usage() {
	fmt.Fprintf(os.Stderr, `usage: hotkeys [flags] <command> [args]

commands:
  list <profile> [-where expr]      print bindings, optionally filtered
  set <profile> -where expr ...     change matching bindings and save
  clone <profile> <name> [-dir d]   save a copy of a profile
  profiles [dir]                    list profiles in a directory
  shell <profile>                   edit a profile interactively

expressions can use key, key_name, name_id, name, ctrl, alt and shift,
e.g. 'ctrl && key_name in ["1", "2"]'.

flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path, required := *configPath, true
	if path == "" {
		path, required = defaultConfigPath(), false
	}
	cfg, err := loadConfig(path, required)
	if err != nil {
		die(err)
	}
	// flags win over the config file
	if *profilesDir != "" {
		cfg.ProfilesDir = *profilesDir
	}
	if *remoteDir != "" {
		cfg.RemoteDir = *remoteDir
	}
	if *namesPath != "" {
		cfg.Names = *namesPath
	}
	if *mirror {
		cfg.Mirror = true
	}

	a, err := newApp(cfg, os.Stdout, logger)
	if err != nil {
		die(err)
	}
	if err := a.run(flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			usage()
			os.Exit(2)
		}
		die(err)
	}
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "hotkeys: %s\n", err)
	os.Exit(1)
}
