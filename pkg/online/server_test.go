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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifndefbros/retroflow/pkg/config"
)

func serverProfiles() map[string]config.Profile {
	return map[string]config.Profile{
		".nes": {Command: "fceux", System: "NES"},
		".gb":  {Command: "mgba", System: "Game Boy"},
	}
}

func seedStore(t *testing.T) *Store {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/served/mario.nes", []byte("mario-rom"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/served/tetris.gb", []byte("tetris-rom"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/served/readme.txt", []byte("not a rom"), 0o644))

	store := NewStore(fsys, "/served", serverProfiles())
	report, err := store.Scan()
	require.NoError(t, err)
	require.Equal(t, 2, report.Added)
	return store
}

func TestStoreScanStableIDs(t *testing.T) {
	t.Parallel()

	store := seedStore(t)
	first := store.Games()
	require.Len(t, first, 2)

	require.NoError(t, afero.WriteFile(store.fs, "/served/zelda.nes", []byte("zelda-rom"), 0o644))
	report, err := store.Scan()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 3, report.Total)

	second := store.Games()
	require.Len(t, second, 3)
	assert.Equal(t, first[0], second[0], "existing IDs survive a rescan")
	assert.Equal(t, first[1], second[1])
}

func TestStoreSearch(t *testing.T) {
	t.Parallel()

	store := seedStore(t)

	byName := store.Search("MARIO")
	require.Len(t, byName, 1)
	assert.Equal(t, "mario", byName[0].Name)

	bySystem := store.Search("game boy")
	require.Len(t, bySystem, 1)
	assert.Equal(t, "tetris", bySystem[0].Name)

	assert.Empty(t, store.Search("doom"))
}

func TestServerEndpoints(t *testing.T) {
	t.Parallel()

	store := seedStore(t)
	ts := httptest.NewServer(NewServer(store).Router())
	t.Cleanup(ts.Close)

	t.Run("health", func(t *testing.T) {
		t.Parallel()
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("games", func(t *testing.T) {
		t.Parallel()
		resp, err := http.Get(ts.URL + "/games")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var games []CatalogGame
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&games))
		assert.Len(t, games, 2)
	})

	t.Run("search requires query", func(t *testing.T) {
		t.Parallel()
		resp, err := http.Get(ts.URL + "/games/search")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("game by id", func(t *testing.T) {
		t.Parallel()
		resp, err := http.Get(ts.URL + "/games/1")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var game CatalogGame
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&game))
		assert.Equal(t, 1, game.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		resp, err := http.Get(ts.URL + "/games/99")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		resp, err := http.Get(ts.URL + "/games/mario")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
