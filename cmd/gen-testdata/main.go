// Copyright 2021 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// gen-testdata writes a synthetic hotkey profile (a profile file, its
// base file and a names table) for exercising the hotkeys tool without a
// game install.
package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bpowers/hotkeys/hkfile"
	"github.com/bpowers/hotkeys/version"
)

const (
	deVersion = 0x40866666
	// name ids start here so they don't look like small integers
	nameBase = 10000
)

var (
	outDir       = flag.String("out", "testdata", "directory to write the profile into")
	profileName  = flag.String("name", "Synthetic", "profile name")
	baseMenus    = flag.Int("base-menus", 4, "menu groups in the base file")
	profileMenus = flag.Int("menus", 8, "menu groups in the profile file")
	perMenu      = flag.Int("per-menu", 12, "maximum bindings per menu group")
	seed         = flag.Int64("seed", 0, "random seed (0 picks one)")
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var seedBytes [8]byte
		if _, err := crand.Read(seedBytes[:]); err != nil {
			panic(err)
		}
		seed = int64(binary.LittleEndian.Uint64(seedBytes[:]))
	}
	return rand.New(rand.NewSource(seed))
}

type generator struct {
	rng    *rand.Rand
	nextID uint32
	names  map[uint32]string
}

func (g *generator) menu(group string) []hkfile.Record {
	n := 1 + g.rng.Intn(*perMenu)
	recs := make([]hkfile.Record, n)
	for i := range recs {
		id := g.nextID
		g.nextID++
		g.names[id] = fmt.Sprintf("%s: Action %d", group, i+1)

		var key hkfile.Key
		switch g.rng.Intn(4) {
		case 0:
			key = hkfile.KeyNone
		case 1:
			key = hkfile.Key0 + hkfile.Key(g.rng.Intn(10))
		case 2:
			key = hkfile.KeyF1 + hkfile.Key(g.rng.Intn(12))
		default:
			key = hkfile.KeyA + hkfile.Key(g.rng.Intn(26))
		}
		recs[i] = hkfile.Record{
			Key:    uint32(key),
			NameID: id,
			Ctrl:   g.rng.Intn(3) == 0,
			Alt:    g.rng.Intn(5) == 0,
			Shift:  g.rng.Intn(4) == 0,
		}
	}
	return recs
}

func (g *generator) menus(prefix string, n int) [][]hkfile.Record {
	out := make([][]hkfile.Record, n)
	for i := range out {
		out[i] = g.menu(fmt.Sprintf("%s %d", prefix, i+1))
	}
	return out
}

func write(path string, l *hkfile.Layout) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		die(err)
	}
	f, err := hkfile.Create(path, l)
	if err != nil {
		die(err)
	}
	fmt.Printf("%s: %d bindings\n", path, f.Len())
	_ = f.Close()
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "gen-testdata: %s\n", err)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if _, err := version.Lookup(deVersion); err != nil {
		die(err)
	}

	g := &generator{
		rng:    newRand(*seed),
		nextID: nameBase,
		names:  make(map[uint32]string),
	}

	write(filepath.Join(*outDir, *profileName, "base.hkp"), &hkfile.Layout{
		Version: deVersion,
		Leading: g.menus("Menu", 3),
		Menus:   g.menus("Base", *baseMenus),
	})
	write(filepath.Join(*outDir, *profileName+".hkp"), &hkfile.Layout{
		Version: deVersion,
		Menus:   g.menus("Group", *profileMenus),
	})

	data, err := yaml.Marshal(g.names)
	if err != nil {
		die(err)
	}
	namesPath := filepath.Join(*outDir, "names.yaml")
	if err := os.WriteFile(namesPath, data, 0o644); err != nil {
		die(err)
	}
	fmt.Printf("%s: %d names\n", namesPath, len(g.names))
}
