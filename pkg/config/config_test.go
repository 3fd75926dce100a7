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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(content), 0o600))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	profile, ok := cfg.LookupProfile(".nes")
	require.True(t, ok)
	assert.Equal(t, "fceux", profile.Command)

	assert.Equal(t, filepath.Join(dir, "Games"), cfg.GamesDir())
	assert.Equal(t, filepath.Join(dir, "Emulators"), cfg.EmulatorsDir())
	assert.Equal(t, uint64(100*1024*1024), cfg.MinDriveSizeBytes())

	// The defaults are persisted for the user to edit.
	assert.FileExists(t, filepath.Join(dir, CfgFile))
}

func TestLoadCustomProfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
[profiles.".pce"]
command = "mednafen"
system = "PC Engine"
args = ["-force_module", "pce", "{path}"]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	profile, ok := cfg.LookupProfile(".pce")
	require.True(t, ok)
	assert.Equal(t, "mednafen", profile.Command)
	assert.Equal(t, []string{"-force_module", "pce", "{path}"}, profile.Args)

	// Built-in profiles survive alongside user additions.
	_, ok = cfg.LookupProfile(".gba")
	assert.True(t, ok)
}

func TestLoadNormalizesExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
[profiles."SMS"]
command = "fusion"
system = "Master System"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	_, ok := cfg.LookupProfile(".sms")
	assert.True(t, ok, "extensions are lowercased and dot-prefixed")
}

func TestLoadRejectsMalformedProfiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing command",
			content: `
[profiles.".pce"]
system = "PC Engine"
`,
		},
		{
			name: "missing system",
			content: `
[profiles.".pce"]
command = "mednafen"
`,
		},
		{
			name: "blank extension",
			content: `
[profiles."."]
command = "mednafen"
system = "PC Engine"
`,
		},
		{
			name:    "invalid toml",
			content: `profiles = what`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(dir)
			assert.Error(t, err, "malformed config must fail at load time")
		})
	}
}

func TestSetAPIKeyPersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	require.NoError(t, cfg.SetAPIKey("sk-test-123"))
	assert.Equal(t, "sk-test-123", cfg.AssistantConfig().APIKey)

	reloaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", reloaded.AssistantConfig().APIKey)
}

func TestAbsoluteDirOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
[media]
games_dir = "/srv/roms"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/roms", cfg.GamesDir())
}
