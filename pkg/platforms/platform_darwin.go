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

//go:build darwin

package platforms

import (
	"strings"
)

type macPlatform struct{}

// New returns the Platform implementation for the current OS.
func New() Platform {
	return &macPlatform{}
}

func (*macPlatform) ID() string { return PlatformIDMac }

// App bundles are matched as directories by the resolver; plain
// binaries rely on the exec bit.
func (*macPlatform) ExeSuffixes() []string { return []string{"", ".app"} }

func (*macPlatform) RemovableVolumes() ([]Volume, error) {
	return listVolumes(func(mount, device string, _ []string) bool {
		if !strings.HasPrefix(mount, "/Volumes/") {
			return false
		}
		// The boot volume is also mounted under /Volumes via a
		// firmlink; it shares the root device.
		return device != rootDevice()
	})
}
