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
	"github.com/rs/zerolog/log"

	"github.com/ifndefbros/retroflow/pkg/platforms"
)

// VolumeLister reports currently mounted removable volumes. Satisfied
// by platforms.Platform; faked in tests.
type VolumeLister interface {
	RemovableVolumes() ([]platforms.Volume, error)
}

// Enumerator produces the scan roots for one rebuild: the fixed local
// Games folder first, then every acceptable removable volume. It holds
// no state between calls, so hot-plugged drives appear and removed
// drives disappear on the next run.
type Enumerator struct {
	volumes  VolumeLister
	gamesDir string
	minBytes uint64
}

// NewEnumerator creates an Enumerator over the local gamesDir and the
// given volume lister. Removable volumes smaller than minBytes are
// ignored.
func NewEnumerator(gamesDir string, volumes VolumeLister, minBytes uint64) *Enumerator {
	return &Enumerator{
		volumes:  volumes,
		gamesDir: gamesDir,
		minBytes: minBytes,
	}
}

// Enumerate returns the sources for this rebuild in scan order: local
// before removable. A failing volume listing degrades to local-only.
func (e *Enumerator) Enumerate() []Source {
	sources := []Source{{
		Root:  e.gamesDir,
		Label: "Local",
		Kind:  SourceLocal,
	}}

	volumes, err := e.volumes.RemovableVolumes()
	if err != nil {
		log.Warn().Err(err).Msg("removable volume listing failed, scanning local only")
		return sources
	}

	for _, vol := range volumes {
		if vol.TotalBytes < e.minBytes {
			log.Debug().
				Str("mount", vol.Mount).
				Uint64("totalBytes", vol.TotalBytes).
				Msg("ignoring undersized volume")
			continue
		}
		sources = append(sources, Source{
			Root:  vol.Mount,
			Label: vol.Label,
			Kind:  SourceRemovable,
		})
	}

	return sources
}
