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
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ifndefbros/retroflow/pkg/config"
)

// Scanner walks a source root and matches files against the emulator
// profile map by extension. Traversal is lexicographic per directory,
// so catalog ordering is reproducible across runs over an unchanged
// filesystem.
type Scanner struct {
	fs       afero.Fs
	profiles map[string]config.Profile
	realPath func(string) (string, error)
}

// NewScanner creates a Scanner over fsys matching the given profiles.
func NewScanner(fsys afero.Fs, profiles map[string]config.Profile) *Scanner {
	return &Scanner{
		fs:       fsys,
		profiles: profiles,
		realPath: defaultRealPath,
	}
}

// defaultRealPath normalizes a path to its absolute, symlink-resolved
// form. Paths whose links cannot be resolved (in-memory filesystems,
// dangling links) fall back to lexical cleaning.
func defaultRealPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}

// Scan walks src.Root and returns every matched game in deterministic
// order. An unreadable root is a per-source ErrScanIO; unreadable
// subdirectories are logged and skipped. Symlink cycles are broken by
// tracking visited real directory paths.
func (s *Scanner) Scan(ctx context.Context, src Source) ([]Game, error) {
	root, err := s.realPath(src.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScanIO, src.Root, err)
	}

	if _, err := s.fs.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScanIO, src.Root, err)
	}

	games := make([]Game, 0)
	visited := make(map[string]struct{})
	if err := s.walk(ctx, root, src, true, visited, &games); err != nil {
		return nil, err
	}

	log.Debug().
		Str("root", root).
		Str("kind", src.Kind.String()).
		Int("games", len(games)).
		Msg("source scan complete")
	return games, nil
}

func (s *Scanner) walk(
	ctx context.Context, dir string, src Source,
	isRoot bool, visited map[string]struct{}, games *[]Game,
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan cancelled: %w", err)
	}

	real, err := s.realPath(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("skipping unresolvable directory")
		return nil
	}
	if _, seen := visited[real]; seen {
		return nil
	}
	visited[real] = struct{}{}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if isRoot {
			return fmt.Errorf("%w: %s: %v", ErrScanIO, dir, err)
		}
		log.Warn().Err(err).Str("dir", dir).Msg("skipping unreadable directory")
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			// Follow the link for type detection; the visited set
			// above keeps link cycles finite.
			target, err := s.fs.Stat(path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("skipping broken symlink")
				continue
			}
			info = target
		}

		if info.IsDir() {
			if err := s.walk(ctx, path, src, false, visited, games); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		ext := NormalizeExt(filepath.Ext(entry.Name()))
		if _, ok := s.profiles[ext]; !ok {
			continue
		}

		gamePath, err := s.realPath(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unresolvable file")
			continue
		}

		*games = append(*games, Game{
			Title:       titleFromPath(entry.Name()),
			Path:        gamePath,
			Ext:         ext,
			Source:      src.Kind,
			SourceLabel: src.Label,
		})
	}

	return nil
}
