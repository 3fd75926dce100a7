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

//go:build linux

package platforms

import (
	"strings"
)

type linuxPlatform struct{}

// New returns the Platform implementation for the current OS.
func New() Platform {
	return &linuxPlatform{}
}

func (*linuxPlatform) ID() string { return PlatformIDLinux }

// Unix executables are identified by the exec bit, not a suffix.
func (*linuxPlatform) ExeSuffixes() []string { return []string{""} }

// removableMountPrefixes are where desktop Linux auto-mounts external
// media.
var removableMountPrefixes = []string{"/media/", "/run/media/", "/mnt/usb"}

func (*linuxPlatform) RemovableVolumes() ([]Volume, error) {
	return listVolumes(func(mount, _ string, opts []string) bool {
		for _, prefix := range removableMountPrefixes {
			if strings.HasPrefix(mount, prefix) {
				return true
			}
		}
		return hasOpt(opts, "removable")
	})
}
