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
	"context"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// DetachedStarter spawns processes detached from the launcher:
// fire-and-forget, no post-spawn tracking. Only spawn-time errors are
// reported.
type DetachedStarter struct{}

// Start launches name with args as an independent process. The child
// is released immediately; its lifetime is not tied to the launcher's.
func (*DetachedStarter) Start(ctx context.Context, name string, args ...string) error {
	// The context only gates the spawn itself. A cancellation after
	// Start must not kill a running game, so plain exec.Command is
	// used instead of exec.CommandContext.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	cmd := exec.Command(name, args...) //nolint:gosec // argv comes from validated config
	cmd.SysProcAttr = detachAttrs()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		log.Warn().Err(err).Int("pid", pid).Msg("could not release process handle")
	}

	log.Debug().Int("pid", pid).Str("exe", name).Msg("spawned detached process")
	return nil
}
