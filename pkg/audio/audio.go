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

// Package audio plays short event sounds (startup, launch, error)
// through beep. Audio is strictly best-effort: a missing file or a
// failed device init logs a warning and the launcher stays silent.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog/log"

	"github.com/ifndefbros/retroflow/pkg/config"
)

const sampleRate = beep.SampleRate(44100)

// Player plays a named event sound without blocking.
type Player interface {
	Play(event string)
	Close() error
}

// NopPlayer is the silent Player used when audio is disabled or the
// device could not be initialized.
type NopPlayer struct{}

func (NopPlayer) Play(string) {}

func (NopPlayer) Close() error { return nil }

// BeepPlayer plays event sounds from the configured sounds directory.
type BeepPlayer struct {
	sounds    map[string]string
	soundsDir string
}

// New builds a Player from the audio config. Any init failure degrades
// to a NopPlayer.
func New(cfg *config.Instance) Player {
	audioCfg := cfg.AudioConfig()
	if !audioCfg.Enabled {
		return NopPlayer{}
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Warn().Err(err).Msg("audio init failed, running silent")
		return NopPlayer{}
	}

	return &BeepPlayer{
		sounds:    audioCfg.Sounds,
		soundsDir: cfg.SoundsDir(),
	}
}

// Play decodes and plays the sound mapped to event. Unknown events and
// missing files only log.
func (p *BeepPlayer) Play(event string) {
	filename, ok := p.sounds[event]
	if !ok {
		log.Warn().Str("event", event).Msg("no sound configured for event")
		return
	}

	path := filepath.Join(p.soundsDir, filename)
	streamer, format, err := decode(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not play sound")
		return
	}

	resampled := beep.Resample(4, format.SampleRate, sampleRate, streamer)
	speaker.Play(beep.Seq(resampled, beep.Callback(func() {
		if err := streamer.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close sound streamer")
		}
	})))
}

// Close stops all playback.
func (*BeepPlayer) Close() error {
	speaker.Clear()
	return nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path) //nolint:gosec // path is app-owned
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open sound: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported sound format: %s", path)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode sound: %w", err)
	}
	return streamer, format, nil
}
