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

package online

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ifndefbros/retroflow/pkg/config"
	"github.com/ifndefbros/retroflow/pkg/media"
)

// Store is the server-side catalog: an in-memory index over ROM files
// in a served directory, keyed by a stable incrementing ID. Files are
// matched by the same profile extension rules the launcher uses.
type Store struct {
	fs       afero.Fs
	dir      string
	profiles map[string]config.Profile
	byID     map[int]CatalogGame
	games    []CatalogGame
	nextID   int
	mu       sync.RWMutex
}

// NewStore creates a Store serving files from dir.
func NewStore(fsys afero.Fs, dir string, profiles map[string]config.Profile) *Store {
	return &Store{
		fs:       fsys,
		dir:      dir,
		profiles: profiles,
		byID:     make(map[int]CatalogGame),
		nextID:   1,
	}
}

// Scan walks the served directory and indexes any ROM file not already
// known (keyed by filename). Existing IDs are stable across scans.
func (s *Store) Scan() (ScanReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]struct{}, len(s.games))
	for _, g := range s.games {
		known[g.Filename] = struct{}{}
	}

	added := 0
	err := afero.Walk(s.fs, s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path during catalog scan")
			return nil
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		ext := media.NormalizeExt(filepath.Ext(info.Name()))
		profile, ok := s.profiles[ext]
		if !ok {
			return nil
		}
		if _, dup := known[info.Name()]; dup {
			return nil
		}

		game := CatalogGame{
			ID:        s.nextID,
			Name:      strings.TrimSuffix(info.Name(), filepath.Ext(info.Name())),
			System:    profile.System,
			Filename:  info.Name(),
			SizeBytes: info.Size(),
		}
		s.nextID++
		s.games = append(s.games, game)
		s.byID[game.ID] = game
		known[game.Filename] = struct{}{}
		added++
		return nil
	})
	if err != nil {
		return ScanReport{}, fmt.Errorf("scan catalog dir: %w", err)
	}

	sort.Slice(s.games, func(i, j int) bool { return s.games[i].ID < s.games[j].ID })
	log.Info().Int("added", added).Int("total", len(s.games)).Msg("catalog store scan complete")
	return ScanReport{Added: added, Total: len(s.games)}, nil
}

// Games returns the full catalog in ID order.
func (s *Store) Games() []CatalogGame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CatalogGame, len(s.games))
	copy(out, s.games)
	return out
}

// Search returns games whose name or system contains the query,
// case-insensitively.
func (s *Store) Search(query string) []CatalogGame {
	query = strings.ToLower(strings.TrimSpace(query))
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]CatalogGame, 0)
	for _, g := range s.games {
		if strings.Contains(strings.ToLower(g.Name), query) ||
			strings.Contains(strings.ToLower(g.System), query) {
			matches = append(matches, g)
		}
	}
	return matches
}

// Get looks up one game by ID.
func (s *Store) Get(id int) (CatalogGame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.byID[id]
	return g, ok
}

// FilePath returns the on-disk path for a catalog game.
func (s *Store) FilePath(game CatalogGame) string {
	return filepath.Join(s.dir, game.Filename)
}
