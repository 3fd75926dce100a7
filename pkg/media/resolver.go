// RetroFlow Core
// Copyright (c) 2026 The RetroFlow Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of RetroFlow Core.
//
// RetroFlow Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// RetroFlow Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with RetroFlow Core.  If not, see <http://www.gnu.org/licenses/>.

package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// Resolver finds a usable emulator executable for a profile command.
// Precedence is fixed: a portable copy under Emulators/<command>/
// always wins over a system-wide install, so bundled copies behave the
// same regardless of what the host has installed. Results are never
// cached; removable media may change between calls.
type Resolver struct {
	fs           afero.Fs
	lookPath     func(string) (string, error)
	emulatorsDir string
	exeSuffixes  []string
}

// NewResolver creates a Resolver rooted at emulatorsDir. exeSuffixes
// are the platform's executable suffixes (empty string meaning
// suffix-less files checked for the exec bit).
func NewResolver(fsys afero.Fs, emulatorsDir string, exeSuffixes []string) *Resolver {
	return &Resolver{
		fs:           fsys,
		lookPath:     exec.LookPath,
		emulatorsDir: emulatorsDir,
		exeSuffixes:  exeSuffixes,
	}
}

// Resolve finds an executable for command, portable first, then the
// system PATH. Returns ErrEmulatorNotFound when neither exists.
func (r *Resolver) Resolve(command string) (ResolvedEmulator, error) {
	if portable, ok := r.findPortable(command); ok {
		return ResolvedEmulator{Path: portable, Origin: OriginPortable}, nil
	}

	if path, err := r.lookPath(command); err == nil {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		return ResolvedEmulator{Path: abs, Origin: OriginSystem}, nil
	}

	return ResolvedEmulator{}, fmt.Errorf("%w: %s", ErrEmulatorNotFound, command)
}

// findPortable looks in Emulators/<command>/ for an entry whose base
// name, minus a platform executable suffix, matches the command.
func (r *Resolver) findPortable(command string) (string, bool) {
	dir := filepath.Join(r.emulatorsDir, command)

	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		for _, suffix := range r.exeSuffixes {
			if !strings.EqualFold(entry.Name(), command+suffix) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if r.isExecutable(entry, suffix) {
				return path, true
			}
		}
	}

	return "", false
}

func (r *Resolver) isExecutable(info os.FileInfo, suffix string) bool {
	// macOS .app bundles are directories launched via open(1).
	if suffix == ".app" {
		return info.IsDir()
	}
	if info.IsDir() {
		return false
	}
	if suffix != "" {
		// Suffix-named platforms (Windows) have no exec bit to check.
		return true
	}
	return runtime.GOOS == "windows" || info.Mode()&0o111 != 0
}
