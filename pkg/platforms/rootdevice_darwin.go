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
	"sync"

	"github.com/shirou/gopsutil/v4/disk"
)

var rootDeviceOnce = sync.OnceValue(func() string {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return ""
	}
	for _, part := range partitions {
		if part.Mountpoint == "/" {
			return part.Device
		}
	}
	return ""
})

// rootDevice returns the device backing the boot volume. The boot
// device never changes at runtime, so one lookup is enough.
func rootDevice() string {
	return rootDeviceOnce()
}
