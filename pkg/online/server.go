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
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Server exposes the catalog store over REST.
type Server struct {
	store *Store
}

// NewServer creates a Server over store.
func NewServer(store *Store) *Server {
	return &Server{store: store}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/games", s.handleGames)
	r.Get("/games/search", s.handleSearch)
	r.Get("/games/{id}", s.handleGame)
	r.Post("/download/{id}", s.handleDownload)
	r.Post("/admin/scan-games", s.handleScan)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode json response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (*Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Games())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Search(query))
}

func (s *Server) gameFromURL(w http.ResponseWriter, r *http.Request) (CatalogGame, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return CatalogGame{}, false
	}
	game, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return CatalogGame{}, false
	}
	return game, true
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	game, ok := s.gameFromURL(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	game, ok := s.gameFromURL(w, r)
	if !ok {
		return
	}

	file, err := s.store.fs.Open(s.store.FilePath(game))
	if err != nil {
		log.Warn().Err(err).Str("file", game.Filename).Msg("catalog file missing on disk")
		writeError(w, http.StatusNotFound, "game file unavailable")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close catalog file")
		}
	}()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(game.SizeBytes, 10))
	http.ServeContent(w, r, game.Filename, modTime(file), file)
}

func (s *Server) handleScan(w http.ResponseWriter, _ *http.Request) {
	report, err := s.store.Scan()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func modTime(file afero.File) (t time.Time) {
	if info, err := file.Stat(); err == nil {
		t = info.ModTime()
	}
	return t
}
