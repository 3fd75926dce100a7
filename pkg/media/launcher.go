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
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ifndefbros/retroflow/pkg/config"
)

// CommandStarter spawns a detached process. Satisfied by
// platforms.DetachedStarter; faked in tests.
type CommandStarter interface {
	Start(ctx context.Context, name string, args ...string) error
}

// ProfileLookup finds the emulator profile for a normalized extension.
// Satisfied by config.Instance.
type ProfileLookup interface {
	LookupProfile(ext string) (config.Profile, bool)
}

// Coordinator launches games: profile lookup, emulator resolution,
// argv construction and detached spawn. Launch failures never touch
// the catalog and are reported once, without retry.
type Coordinator struct {
	profiles ProfileLookup
	resolver *Resolver
	starter  CommandStarter
}

// NewCoordinator wires a launch coordinator.
func NewCoordinator(profiles ProfileLookup, resolver *Resolver, starter CommandStarter) *Coordinator {
	return &Coordinator{
		profiles: profiles,
		resolver: resolver,
		starter:  starter,
	}
}

// LaunchInfo describes how a game would be or was launched.
type LaunchInfo struct {
	Emulator ResolvedEmulator
	System   string
	Argv     []string
}

// Launch resolves and spawns the emulator for game. The emulator is
// re-resolved on every launch; portable copies on removable media may
// have changed since the last scan.
func (c *Coordinator) Launch(ctx context.Context, game Game) (LaunchInfo, error) {
	profile, ok := c.profiles.LookupProfile(game.Ext)
	if !ok {
		return LaunchInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, game.Ext)
	}

	emulator, err := c.resolver.Resolve(profile.Command)
	if err != nil {
		return LaunchInfo{}, err
	}

	name, args := buildInvocation(emulator.Path, profile.Args, game.Path)
	info := LaunchInfo{
		Emulator: emulator,
		System:   profile.System,
		Argv:     append([]string{name}, args...),
	}

	log.Info().
		Str("title", game.Title).
		Str("emulator", emulator.Path).
		Str("origin", emulator.Origin.String()).
		Strs("argv", info.Argv).
		Msg("launching game")

	if err := c.starter.Start(ctx, name, args...); err != nil {
		return info, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	return info, nil
}

// buildInvocation expands the profile's argument template: every
// {path} placeholder is replaced with the game path, and if the
// template has none the path is appended last. Template order is
// preserved verbatim per emulator.
func buildInvocation(exe string, argTemplate []string, gamePath string) (string, []string) {
	args := make([]string, 0, len(argTemplate)+1)
	substituted := false
	for _, arg := range argTemplate {
		if strings.Contains(arg, config.PathPlaceholder) {
			arg = strings.ReplaceAll(arg, config.PathPlaceholder, gamePath)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, gamePath)
	}

	// macOS app bundles cannot be exec'd directly.
	if runtime.GOOS == "darwin" && strings.HasSuffix(exe, ".app") {
		return "open", append([]string{"-a", exe, "--args"}, args...)
	}

	return exe, args
}
