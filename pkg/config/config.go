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

// Package config loads and validates the retroflow.toml configuration:
// emulator profiles keyed by ROM extension, directory layout, assistant
// credentials and audio settings. Profiles are validated eagerly at
// load time; a malformed config is fatal to the process.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	CfgFile = "retroflow.toml"
	LogFile = "retroflow.log"

	// PathPlaceholder marks where the game path is substituted into a
	// profile's argument template.
	PathPlaceholder = "{path}"
)

// Profile maps one ROM file extension to the emulator that runs it.
// Command is both the Emulators/ subfolder name and the executable
// base name. Args is the argument template passed to the emulator;
// every {path} occurrence is replaced with the game's absolute path,
// and if no placeholder is present the path is appended last.
type Profile struct {
	Command string   `toml:"command" validate:"required"`
	System  string   `toml:"system"  validate:"required"`
	Args    []string `toml:"args,omitempty"`
}

// Media configures game discovery.
type Media struct {
	GamesDir       string `toml:"games_dir,omitempty"`
	EmulatorsDir   string `toml:"emulators_dir,omitempty"`
	MinDriveSizeMB int    `toml:"min_drive_size_mb,omitempty" validate:"gte=0"`
}

// Assistant configures the AI chat proxy.
type Assistant struct {
	APIKey             string `toml:"api_key,omitempty"`
	Model              string `toml:"model,omitempty"`
	BaseURL            string `toml:"base_url,omitempty"`
	MaxRequestsPerHour int    `toml:"max_requests_per_hour,omitempty" validate:"gte=0"`
}

// Audio configures event sound playback.
type Audio struct {
	Sounds    map[string]string `toml:"sounds,omitempty"`
	SoundsDir string            `toml:"sounds_dir,omitempty"`
	Enabled   bool              `toml:"enabled"`
}

// Online configures the catalog server connection.
type Online struct {
	ServerURL string `toml:"server_url,omitempty"`
}

// Values is the on-disk TOML schema.
type Values struct {
	Profiles     map[string]Profile `toml:"profiles,omitempty" validate:"dive"`
	Media        Media              `toml:"media,omitempty"`
	Assistant    Assistant          `toml:"assistant,omitempty"`
	Audio        Audio              `toml:"audio,omitempty"`
	Online       Online             `toml:"online,omitempty"`
	DebugLogging bool               `toml:"debug_logging"`
}

// Instance is a loaded configuration. Values are read-mostly; the
// mutex exists for the few runtime mutations (API key updates).
type Instance struct {
	rootDir string
	cfgPath string
	vals    Values
	mu      sync.RWMutex
}

var validate = validator.New()

// Load reads the config file under rootDir, creating it with defaults
// if it does not exist. Profile extensions are normalized to lowercase
// with a leading dot. Any malformed profile fails the load.
func Load(rootDir string) (*Instance, error) {
	cfgPath := filepath.Join(rootDir, CfgFile)

	inst := &Instance{
		rootDir: rootDir,
		cfgPath: cfgPath,
		vals:    Defaults(),
	}

	data, err := os.ReadFile(cfgPath) //nolint:gosec // path is app-owned
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info().Str("path", cfgPath).Msg("no config file, writing defaults")
		if saveErr := inst.save(); saveErr != nil {
			log.Warn().Err(saveErr).Msg("could not write default config")
		}
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		vals := Defaults()
		if err := toml.Unmarshal(data, &vals); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		inst.vals = vals
	}

	normalized, err := normalizeProfiles(inst.vals.Profiles)
	if err != nil {
		return nil, err
	}
	inst.vals.Profiles = normalized

	if err := validate.Struct(&inst.vals); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return inst, nil
}

func normalizeProfiles(profiles map[string]Profile) (map[string]Profile, error) {
	normalized := make(map[string]Profile, len(profiles))
	for ext, profile := range profiles {
		key := strings.ToLower(strings.TrimSpace(ext))
		if key == "" || key == "." {
			return nil, fmt.Errorf("invalid profile extension %q", ext)
		}
		if !strings.HasPrefix(key, ".") {
			key = "." + key
		}
		if _, ok := normalized[key]; ok {
			return nil, fmt.Errorf("duplicate profile extension %q", key)
		}
		if err := validate.Struct(&profile); err != nil {
			return nil, fmt.Errorf("invalid profile for %q: %w", key, err)
		}
		normalized[key] = profile
	}
	return normalized, nil
}

func (i *Instance) save() error {
	data, err := toml.Marshal(&i.vals)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(i.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// RootDir is the directory the launcher treats as its home: config,
// Games/, Emulators/ and Sounds/ all live under it.
func (i *Instance) RootDir() string { return i.rootDir }

func (i *Instance) resolveDir(configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(i.rootDir, configured)
}

// GamesDir is the fixed local scan root.
func (i *Instance) GamesDir() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.resolveDir(i.vals.Media.GamesDir, "Games")
}

// EmulatorsDir holds portable emulator bundles, one subfolder per
// profile command.
func (i *Instance) EmulatorsDir() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.resolveDir(i.vals.Media.EmulatorsDir, "Emulators")
}

// SoundsDir holds the event sound files.
func (i *Instance) SoundsDir() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.resolveDir(i.vals.Audio.SoundsDir, "Sounds")
}

// MinDriveSizeBytes is the smallest removable volume treated as a
// cartridge.
func (i *Instance) MinDriveSizeBytes() uint64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return uint64(i.vals.Media.MinDriveSizeMB) * 1024 * 1024 //nolint:gosec // validated gte=0
}

// Profiles returns a copy of the emulator profile map keyed by
// normalized extension.
func (i *Instance) Profiles() map[string]Profile {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make(map[string]Profile, len(i.vals.Profiles))
	for k, v := range i.vals.Profiles {
		out[k] = v
	}
	return out
}

// LookupProfile finds the profile for a normalized extension.
func (i *Instance) LookupProfile(ext string) (Profile, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	p, ok := i.vals.Profiles[strings.ToLower(ext)]
	return p, ok
}

// AssistantConfig returns the assistant section.
func (i *Instance) AssistantConfig() Assistant {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.vals.Assistant
}

// SetAPIKey updates the assistant API key and persists the config.
func (i *Instance) SetAPIKey(key string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.vals.Assistant.APIKey = key
	return i.save()
}

// AudioConfig returns the audio section.
func (i *Instance) AudioConfig() Audio {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.vals.Audio
}

// OnlineServerURL is the base URL of the online catalog server.
func (i *Instance) OnlineServerURL() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.vals.Online.ServerURL
}

// DebugLogging reports whether debug level logging is enabled.
func (i *Instance) DebugLogging() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.vals.DebugLogging
}
