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

// Package platforms abstracts the host OS: removable volume listing,
// executable naming rules and detached process spawning. The core
// consumes these through small interfaces so it can be tested against
// fakes.
package platforms

const (
	PlatformIDLinux   = "linux"
	PlatformIDMac     = "mac"
	PlatformIDWindows = "windows"
)

// Volume is a mounted removable storage volume.
type Volume struct {
	Mount      string
	Label      string
	TotalBytes uint64
	FreeBytes  uint64
}

// Platform is the host OS abstraction consumed by the media core.
type Platform interface {
	// ID is the platform identifier, visible in logs.
	ID() string
	// RemovableVolumes lists currently mounted removable volumes,
	// excluding the system/boot volume. Unreadable mounts are skipped,
	// not fatal.
	RemovableVolumes() ([]Volume, error)
	// ExeSuffixes are the filename suffixes that mark an executable on
	// this platform, in preference order. Empty string means files
	// with no suffix are acceptable (Unix-likes, via the exec bit).
	ExeSuffixes() []string
}
