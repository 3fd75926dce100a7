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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnumerator struct {
	mu      sync.Mutex
	sources []Source
}

func (f *fakeEnumerator) Enumerate() []Source {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Source(nil), f.sources...)
}

func (f *fakeEnumerator) set(sources []Source) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = sources
}

type fakeScanner struct {
	games map[string][]Game
	errs  map[string]error
}

func (f *fakeScanner) Scan(_ context.Context, src Source) ([]Game, error) {
	if err, ok := f.errs[src.Root]; ok {
		return nil, err
	}
	return f.games[src.Root], nil
}

func game(path string, kind SourceKind, label string) Game {
	return Game{
		Title:       titleFromPath(path),
		Path:        path,
		Ext:         ".nes",
		Source:      kind,
		SourceLabel: label,
	}
}

func TestLibraryRebuildOrderAndIndexing(t *testing.T) {
	t.Parallel()

	enum := &fakeEnumerator{sources: []Source{
		{Root: "/games", Label: "Local", Kind: SourceLocal},
		{Root: "/mnt/cart", Label: "CART", Kind: SourceRemovable},
	}}
	scanner := &fakeScanner{games: map[string][]Game{
		"/games":    {game("/games/a.nes", SourceLocal, "Local"), game("/games/b.nes", SourceLocal, "Local")},
		"/mnt/cart": {game("/mnt/cart/c.nes", SourceRemovable, "CART")},
	}}

	library := NewLibrary(enum, scanner)
	catalog, err := library.Rebuild(context.Background())
	require.NoError(t, err)

	games := catalog.List()
	require.Len(t, games, 3)
	assert.Equal(t, "/games/a.nes", games[0].Path, "local sources come first")
	assert.Equal(t, "/mnt/cart/c.nes", games[2].Path)

	got, err := catalog.Get(1)
	require.NoError(t, err)
	assert.Equal(t, games[0], got, "display numbering is 1-based")

	_, err = catalog.Get(0)
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = catalog.Get(4)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestLibraryDeduplicatesByPath(t *testing.T) {
	t.Parallel()

	// Two removable volumes exposing the same real path via symlinks.
	enum := &fakeEnumerator{sources: []Source{
		{Root: "/games", Label: "Local", Kind: SourceLocal},
		{Root: "/mnt/a", Label: "A", Kind: SourceRemovable},
		{Root: "/mnt/b", Label: "B", Kind: SourceRemovable},
	}}
	shared := game("/mnt/real/dup.nes", SourceRemovable, "A")
	sharedFromB := shared
	sharedFromB.SourceLabel = "B"
	scanner := &fakeScanner{games: map[string][]Game{
		"/games": {game("/games/a.nes", SourceLocal, "Local")},
		"/mnt/a": {shared},
		"/mnt/b": {sharedFromB},
	}}

	catalog, err := NewLibrary(enum, scanner).Rebuild(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, catalog.Len())
	games := catalog.List()
	assert.Equal(t, "A", games[1].SourceLabel, "first occurrence wins")

	seen := make(map[string]struct{})
	for _, g := range games {
		_, dup := seen[g.Path]
		assert.False(t, dup, "no two games may share a path")
		seen[g.Path] = struct{}{}
	}
}

func TestLibraryRebuildReplacesStaleEntries(t *testing.T) {
	t.Parallel()

	enum := &fakeEnumerator{sources: []Source{
		{Root: "/games", Label: "Local", Kind: SourceLocal},
		{Root: "/mnt/cart", Label: "CART", Kind: SourceRemovable},
	}}
	scanner := &fakeScanner{games: map[string][]Game{
		"/games":    {game("/games/a.nes", SourceLocal, "Local")},
		"/mnt/cart": {game("/mnt/cart/c.nes", SourceRemovable, "CART")},
	}}

	library := NewLibrary(enum, scanner)
	_, err := library.Rebuild(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, library.Snapshot().Len())

	// Cartridge removed: the next rebuild must not carry stale games.
	enum.set([]Source{{Root: "/games", Label: "Local", Kind: SourceLocal}})
	catalog, err := library.Rebuild(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Len())
	assert.Equal(t, "/games/a.nes", catalog.List()[0].Path)
}

func TestLibraryContinuesPastFailedSource(t *testing.T) {
	t.Parallel()

	enum := &fakeEnumerator{sources: []Source{
		{Root: "/games", Label: "Local", Kind: SourceLocal},
		{Root: "/mnt/gone", Label: "GONE", Kind: SourceRemovable},
		{Root: "/mnt/cart", Label: "CART", Kind: SourceRemovable},
	}}
	scanner := &fakeScanner{
		games: map[string][]Game{
			"/games":    {game("/games/a.nes", SourceLocal, "Local")},
			"/mnt/cart": {game("/mnt/cart/c.nes", SourceRemovable, "CART")},
		},
		errs: map[string]error{
			"/mnt/gone": fmt.Errorf("%w: /mnt/gone: unmounted", ErrScanIO),
		},
	}

	catalog, err := NewLibrary(enum, scanner).Rebuild(context.Background())
	require.NoError(t, err, "a vanished source must not abort the rebuild")
	assert.Equal(t, 2, catalog.Len())
}

// blockingScanner parks inside Scan until released, so tests can hold
// a rebuild in progress.
type blockingScanner struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingScanner) Scan(_ context.Context, _ Source) ([]Game, error) {
	close(b.entered)
	<-b.release
	return []Game{game("/games/new.nes", SourceLocal, "Local")}, nil
}

func TestLibraryRejectsConcurrentRebuild(t *testing.T) {
	t.Parallel()

	enum := &fakeEnumerator{sources: []Source{
		{Root: "/games", Label: "Local", Kind: SourceLocal},
	}}
	scanner := &blockingScanner{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}

	library := NewLibrary(enum, scanner)
	before := library.Snapshot()

	done := make(chan error, 1)
	go func() {
		_, err := library.Rebuild(context.Background())
		done <- err
	}()

	select {
	case <-scanner.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild never started scanning")
	}

	_, err := library.Rebuild(context.Background())
	assert.ErrorIs(t, err, ErrRescanInProgress)

	// Readers still see the previous complete snapshot.
	assert.Same(t, before, library.Snapshot())

	close(scanner.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, library.Snapshot().Len())
}

func TestLibraryRebuildAllowedAfterCompletion(t *testing.T) {
	t.Parallel()

	enum := &fakeEnumerator{sources: []Source{
		{Root: "/games", Label: "Local", Kind: SourceLocal},
	}}
	scanner := &fakeScanner{games: map[string][]Game{
		"/games": {game("/games/a.nes", SourceLocal, "Local")},
	}}

	library := NewLibrary(enum, scanner)
	_, err := library.Rebuild(context.Background())
	require.NoError(t, err)

	// The in-progress flag must clear once a rebuild finishes.
	_, err = library.Rebuild(context.Background())
	require.NoError(t, err)
}
