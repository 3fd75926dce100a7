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
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifndefbros/retroflow/pkg/config"
)

type fakeProfiles map[string]config.Profile

func (f fakeProfiles) LookupProfile(ext string) (config.Profile, bool) {
	p, ok := f[ext]
	return p, ok
}

type fakeStarter struct {
	err  error
	name string
	args []string
	runs int
}

func (f *fakeStarter) Start(_ context.Context, name string, args ...string) error {
	f.runs++
	f.name = name
	f.args = args
	return f.err
}

func nesProfiles() fakeProfiles {
	return fakeProfiles{
		".nes": {Command: "fceux", System: "NES", Args: []string{config.PathPlaceholder}},
	}
}

func TestLaunchPortableEmulator(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeExecutable(t, fsys, "/root/Emulators/fceux/fceux")

	starter := &fakeStarter{}
	coordinator := NewCoordinator(nesProfiles(),
		NewResolver(fsys, "/root/Emulators", []string{""}), starter)

	g := Game{Title: "mario", Path: "/root/Games/mario.nes", Ext: ".nes", Source: SourceLocal}
	info, err := coordinator.Launch(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, OriginPortable, info.Emulator.Origin)
	assert.Equal(t, "NES", info.System)
	assert.Equal(t, filepath.Join("/root/Emulators", "fceux", "fceux"), starter.name)
	assert.Equal(t, []string{"/root/Games/mario.nes"}, starter.args)
	assert.Equal(t, 1, starter.runs)
}

func TestLaunchUnsupportedFormat(t *testing.T) {
	t.Parallel()

	starter := &fakeStarter{}
	coordinator := NewCoordinator(nesProfiles(),
		NewResolver(afero.NewMemMapFs(), "/e", []string{""}), starter)

	g := Game{Title: "movie", Path: "/root/Games/movie.iso", Ext: ".iso"}
	_, err := coordinator.Launch(context.Background(), g)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, starter.runs, "nothing may be spawned without a profile")
}

func TestLaunchEmulatorNotFound(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(afero.NewMemMapFs(), "/e", []string{""})
	resolver.lookPath = func(string) (string, error) {
		return "", errors.New("not found")
	}

	starter := &fakeStarter{}
	coordinator := NewCoordinator(nesProfiles(), resolver, starter)

	g := Game{Title: "mario", Path: "/root/Games/mario.nes", Ext: ".nes"}
	_, err := coordinator.Launch(context.Background(), g)
	assert.ErrorIs(t, err, ErrEmulatorNotFound)
	assert.Zero(t, starter.runs)
}

func TestLaunchSpawnFailure(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeExecutable(t, fsys, "/e/fceux/fceux")

	starter := &fakeStarter{err: errors.New("exec format error")}
	coordinator := NewCoordinator(nesProfiles(),
		NewResolver(fsys, "/e", []string{""}), starter)

	g := Game{Title: "mario", Path: "/g/mario.nes", Ext: ".nes"}
	_, err := coordinator.Launch(context.Background(), g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLaunchFailed)
	assert.Contains(t, err.Error(), "exec format error")
	assert.Equal(t, 1, starter.runs, "spawn failures are reported once, no retry")
}

func TestBuildInvocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template []string
		want     []string
	}{
		{
			name:     "placeholder substituted in place",
			template: []string{"-iwad", config.PathPlaceholder},
			want:     []string{"-iwad", "/g/doom.wad"},
		},
		{
			name:     "path appended when template has no placeholder",
			template: []string{"-fullscreen"},
			want:     []string{"-fullscreen", "/g/doom.wad"},
		},
		{
			name:     "empty template gets bare path",
			template: nil,
			want:     []string{"/g/doom.wad"},
		},
		{
			name:     "placeholder before flags preserved verbatim",
			template: []string{config.PathPlaceholder, "-exit"},
			want:     []string{"/g/doom.wad", "-exit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, args := buildInvocation("/e/gzdoom/gzdoom", tt.template, "/g/doom.wad")
			assert.Equal(t, "/e/gzdoom/gzdoom", name)
			assert.Equal(t, tt.want, args)
		})
	}
}
