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

package platforms

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/disk"
)

// listVolumes enumerates mounted partitions and keeps the ones the
// platform predicate accepts. Partitions whose usage cannot be read
// (unmounted mid-enumeration, permission denied) are skipped with a
// warning rather than failing the listing.
func listVolumes(isRemovable func(mount, device string, opts []string) bool) ([]Volume, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	var volumes []Volume
	for _, part := range partitions {
		if !isRemovable(part.Mountpoint, part.Device, part.Opts) {
			continue
		}

		usage, err := disk.Usage(part.Mountpoint)
		if err != nil {
			log.Warn().
				Err(err).
				Str("mount", part.Mountpoint).
				Msg("skipping unreadable volume")
			continue
		}

		volumes = append(volumes, Volume{
			Mount:      part.Mountpoint,
			Label:      volumeLabel(part.Mountpoint),
			TotalBytes: usage.Total,
			FreeBytes:  usage.Free,
		})
	}

	return volumes, nil
}

// volumeLabel derives a display label from a mount point, e.g.
// "/media/user/SDCARD" -> "SDCARD", "E:\" -> "E:".
func volumeLabel(mount string) string {
	label := filepath.Base(strings.TrimRight(mount, `\/`))
	if label == "" || label == "." {
		return mount
	}
	return label
}

func hasOpt(opts []string, want string) bool {
	for _, opt := range opts {
		if strings.EqualFold(opt, want) {
			return true
		}
	}
	return false
}
