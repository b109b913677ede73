// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/bpowers/hotkeys"
)

const shellHelp = `commands:
  list [-where expr]                 print bindings
  set -where expr [-key K] [-ctrl] [-alt=false] ...
                                     change bindings (in memory)
  save [-force]                      write both files
  clone <name> [-dir d] [-overwrite] save a copy
  changed                            count bindings edited since opening
  exit                               quit without saving`

// shell runs an interactive session on p.  Lines are split with shell
// quoting rules, so expressions containing spaces need quotes:
//
//	list -where 'ctrl && key_name == "1"'
func (a *app) shell(p *hotkeys.Profile, in io.Reader) error {
	fmt.Fprintf(a.out, "Editing %s (%d bindings). Type 'help' for commands or 'exit' to quit.\n", p, p.Len())

	dirty := false
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words, err := shellquote.Split(line)
		if err != nil {
			fmt.Fprintln(a.out, "parse error:", err)
			continue
		}

		cmd, args := words[0], words[1:]
		if cmd == "exit" || cmd == "quit" {
			break
		}
		if err := a.shellCommand(p, cmd, args); err != nil {
			fmt.Fprintln(a.out, "error:", err)
			continue
		}
		switch cmd {
		case "set":
			dirty = true
		case "save":
			dirty = false
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if dirty {
		a.logger.Warn("exiting with unsaved changes", slog.String("profile", p.Name()))
	}
	return nil
}

func (a *app) shellCommand(p *hotkeys.Profile, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, shellHelp)
		return nil
	case "list":
		return a.list(p, args)
	case "set":
		return a.set(p, args, false)
	case "save":
		fs := newFlagSet("save")
		force := fs.Bool("force", false, "save even if the files changed on disk")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := a.save(p, *force); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "saved")
		return nil
	case "clone":
		return a.clone(p, args)
	case "changed":
		fmt.Fprintf(a.out, "%d bindings changed\n", p.Changed())
		return nil
	}
	return errors.New("unknown command " + cmd + " (try 'help')")
}
