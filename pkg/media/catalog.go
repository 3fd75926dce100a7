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
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Catalog is one immutable snapshot of discovered games, in discovery
// order: local sources before removable, each source in traversal
// order. No two entries share a normalized path.
type Catalog struct {
	games []Game
}

// List returns the games in display order. The slice is a copy; Game
// values are immutable.
func (c *Catalog) List() []Game {
	out := make([]Game, len(c.games))
	copy(out, c.games)
	return out
}

// Len is the number of games in the snapshot.
func (c *Catalog) Len() int { return len(c.games) }

// Get returns the game with the given 1-based display number.
func (c *Catalog) Get(n int) (Game, error) {
	if n < 1 || n > len(c.games) {
		return Game{}, fmt.Errorf("%w: %d", ErrGameNotFound, n)
	}
	return c.games[n-1], nil
}

type catalogBuilder struct {
	seen  map[string]struct{}
	games []Game
}

func newCatalogBuilder() *catalogBuilder {
	return &catalogBuilder{seen: make(map[string]struct{})}
}

// add appends games, skipping any path already present. First
// occurrence wins, so enumeration order (local before removable) is
// the dedup tie-break.
func (b *catalogBuilder) add(games []Game) {
	for _, game := range games {
		if _, dup := b.seen[game.Path]; dup {
			log.Debug().Str("path", game.Path).Msg("skipping duplicate game path")
			continue
		}
		b.seen[game.Path] = struct{}{}
		b.games = append(b.games, game)
	}
}

func (b *catalogBuilder) build() *Catalog {
	return &Catalog{games: b.games}
}

type sourceEnumerator interface {
	Enumerate() []Source
}

type sourceScanner interface {
	Scan(ctx context.Context, src Source) ([]Game, error)
}

// Library owns the current catalog snapshot. Rebuilds are atomic: a
// new catalog is constructed fully, then published with one pointer
// swap, so readers always see either the old or the new snapshot and
// never a partial one. Stale entries from removed media cannot survive
// a rebuild.
type Library struct {
	enumerator sourceEnumerator
	scanner    sourceScanner
	current    atomic.Pointer[Catalog]
	rebuilding atomic.Bool
}

// NewLibrary creates a Library with an empty initial snapshot.
func NewLibrary(enumerator sourceEnumerator, scanner sourceScanner) *Library {
	l := &Library{
		enumerator: enumerator,
		scanner:    scanner,
	}
	l.current.Store(&Catalog{})
	return l
}

// Snapshot returns the current complete catalog. Never nil.
func (l *Library) Snapshot() *Catalog {
	return l.current.Load()
}

// Rebuild re-enumerates all sources, scans them and publishes a new
// catalog. A rebuild requested while another is running is rejected
// with ErrRescanInProgress rather than interleaving partial catalogs.
// Per-source scan failures are logged and skipped; only cancellation
// aborts the whole rebuild (leaving the previous snapshot in place).
func (l *Library) Rebuild(ctx context.Context) (*Catalog, error) {
	if !l.rebuilding.CompareAndSwap(false, true) {
		return nil, ErrRescanInProgress
	}
	defer l.rebuilding.Store(false)

	builder := newCatalogBuilder()
	for _, src := range l.enumerator.Enumerate() {
		games, err := l.scanner.Scan(ctx, src)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("rebuild aborted: %w", err)
			}
			log.Warn().
				Err(err).
				Str("root", src.Root).
				Str("label", src.Label).
				Msg("source scan failed, continuing rebuild")
			continue
		}
		builder.add(games)
	}

	catalog := builder.build()
	l.current.Store(catalog)

	log.Info().Int("games", catalog.Len()).Msg("catalog rebuilt")
	return catalog, nil
}
