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

import "errors"

var (
	// ErrUnsupportedFormat means no emulator profile exists for a
	// game's extension. Local and non-fatal: the game just isn't
	// launchable.
	ErrUnsupportedFormat = errors.New("no emulator profile for extension")

	// ErrEmulatorNotFound means a profile exists but no executable
	// could be resolved, neither portable nor on the system PATH.
	ErrEmulatorNotFound = errors.New("emulator executable not found")

	// ErrLaunchFailed means a spawn was attempted but the OS rejected
	// it. The underlying OS error is wrapped.
	ErrLaunchFailed = errors.New("emulator launch failed")

	// ErrScanIO means a source root was unreadable. Per-source only:
	// the overall rebuild continues over remaining sources.
	ErrScanIO = errors.New("scan i/o error")

	// ErrRescanInProgress is returned when a rebuild is requested
	// while another one is still running.
	ErrRescanInProgress = errors.New("rescan already in progress")

	// ErrGameNotFound is returned by catalog lookups with an index
	// outside the current snapshot.
	ErrGameNotFound = errors.New("no game with that number")
)
