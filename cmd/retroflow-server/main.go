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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ifndefbros/retroflow/pkg/config"
	"github.com/ifndefbros/retroflow/pkg/helpers"
	"github.com/ifndefbros/retroflow/pkg/online"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootDir := flag.String("root", ".", "server root directory")
	addr := flag.String("addr", ":8000", "listen address")
	gamesDir := flag.String("games", "", "served games directory (default <root>/OnlineGames)")
	flag.Parse()

	if err := helpers.InitLogging(*rootDir, "retroflow-server.log", false,
		zerolog.ConsoleWriter{Out: os.Stderr}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	cfg, err := config.Load(*rootDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dir := *gamesDir
	if dir == "" {
		dir = filepath.Join(*rootDir, "OnlineGames")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create games dir: %w", err)
	}

	store := online.NewStore(afero.NewOsFs(), dir, cfg.Profiles())
	if report, err := store.Scan(); err != nil {
		log.Warn().Err(err).Msg("initial catalog scan failed")
	} else {
		log.Info().Int("games", report.Total).Msg("catalog ready")
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           online.NewServer(store).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", *addr).Msg("catalog server listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
