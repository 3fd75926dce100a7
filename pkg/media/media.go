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

// Package media implements game discovery and launching: enumerating
// storage sources, scanning them for ROM files, maintaining the catalog
// of discovered games and resolving/spawning the matching emulator.
package media

import (
	"path/filepath"
	"strings"
)

// SourceKind identifies where a scan root comes from.
type SourceKind int

const (
	// SourceLocal is the fixed Games folder next to the launcher.
	SourceLocal SourceKind = iota
	// SourceRemovable is a hot-pluggable "cartridge" volume.
	SourceRemovable
)

func (k SourceKind) String() string {
	if k == SourceRemovable {
		return "removable"
	}
	return "local"
}

// Source is a single scan root produced by the enumerator.
type Source struct {
	Root  string
	Label string
	Kind  SourceKind
}

// Game is a discovered ROM file. Identity is the normalized absolute
// path: two Games with the same Path are the same entity regardless of
// which scan produced them.
type Game struct {
	Title       string
	Path        string
	Ext         string
	SourceLabel string
	Source      SourceKind
}

// Origin says where a resolved emulator executable came from.
type Origin int

const (
	// OriginPortable is a bundled copy under Emulators/<command>/.
	OriginPortable Origin = iota
	// OriginSystem is an executable found on the system PATH.
	OriginSystem
)

func (o Origin) String() string {
	if o == OriginSystem {
		return "system"
	}
	return "portable"
}

// ResolvedEmulator is the result of a path resolution. It is derived at
// launch time and never cached, since removable media may change
// between scans.
type ResolvedEmulator struct {
	Path   string
	Origin Origin
}

// NormalizeExt lowercases a file extension and guarantees a leading
// dot, so profile lookups are case- and format-insensitive.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// titleFromPath derives a display title from a ROM file path: the base
// name with its extension stripped.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
