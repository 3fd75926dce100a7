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
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ifndefbros/retroflow/pkg/assistant"
	"github.com/ifndefbros/retroflow/pkg/audio"
	"github.com/ifndefbros/retroflow/pkg/config"
	"github.com/ifndefbros/retroflow/pkg/helpers"
	"github.com/ifndefbros/retroflow/pkg/media"
	"github.com/ifndefbros/retroflow/pkg/online"
	"github.com/ifndefbros/retroflow/pkg/platforms"
	"github.com/ifndefbros/retroflow/pkg/ui"
)

const logDisplayLines = 25

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func defaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func run() error {
	rootDir := flag.String("root", defaultRoot(), "launcher root directory")
	verbose := flag.Bool("verbose", false, "also log to the console")
	flag.Parse()

	var extra []io.Writer
	if *verbose {
		extra = append(extra, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if err := helpers.InitLogging(*rootDir, config.LogFile, false, extra...); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	cfg, err := config.Load(*rootDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	for _, dir := range []string{cfg.GamesDir(), cfg.EmulatorsDir(), cfg.SoundsDir()} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("could not create directory")
		}
	}

	log.Info().Msg("--- RetroFlow application start ---")

	app := newApp(cfg, platforms.New())
	defer app.close()

	return app.loop()
}

type app struct {
	cfg       *config.Instance
	platform  platforms.Platform
	library   *media.Library
	launcher  *media.Coordinator
	chat      *assistant.Client
	player    audio.Player
	onlineCli *online.Client
	out       *os.File
}

func newApp(cfg *config.Instance, pl platforms.Platform) *app {
	fsys := afero.NewOsFs()

	enumerator := media.NewEnumerator(cfg.GamesDir(), pl, cfg.MinDriveSizeBytes())
	scanner := media.NewScanner(fsys, cfg.Profiles())
	resolver := media.NewResolver(fsys, cfg.EmulatorsDir(), pl.ExeSuffixes())

	a := &app{
		cfg:      cfg,
		platform: pl,
		library:  media.NewLibrary(enumerator, scanner),
		launcher: media.NewCoordinator(cfg, resolver, &platforms.DetachedStarter{}),
		chat:     assistant.NewClient(cfg, clockwork.NewRealClock()),
		player:   audio.New(cfg),
		out:      os.Stdout,
	}
	if url := cfg.OnlineServerURL(); url != "" {
		a.onlineCli = online.NewClient(fsys, url, cfg.GamesDir())
	}
	return a
}

func (a *app) close() {
	if err := a.player.Close(); err != nil {
		log.Warn().Err(err).Msg("audio shutdown failed")
	}
	log.Info().Msg("--- RetroFlow application shutdown ---")
}

func (a *app) loop() error {
	ctx := context.Background()

	a.clear()
	fmt.Fprintln(a.out, ui.Banner)
	a.player.Play("startup")

	fmt.Fprintln(a.out, "Performing initial scan...")
	if _, err := a.library.Rebuild(ctx); err != nil {
		log.Warn().Err(err).Msg("initial scan failed")
	}

	a.clear()
	ui.Welcome(a.out)

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(a.out, "\nC:\\RETROFLOW> ")
		if !in.Scan() {
			break
		}

		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		command, args, _ := strings.Cut(line, " ")
		command = strings.ToLower(command)
		args = strings.TrimSpace(args)

		if command == "exit" {
			break
		}
		a.dispatch(ctx, command, args)
	}

	fmt.Fprintln(a.out, "\nShutting down RetroFlow. Goodbye!")
	return nil
}

func (a *app) dispatch(ctx context.Context, command, args string) {
	switch command {
	case "clear", "cls":
		a.clear()
		ui.Welcome(a.out)
	case "help":
		a.player.Play("menu_select")
		ui.Help(a.out)
	case "list":
		a.player.Play("menu_select")
		a.showList()
	case "scan":
		a.player.Play("scan")
		a.rescan(ctx)
	case "play":
		a.play(ctx, args)
	case "info":
		a.info(args)
	case "drives":
		a.player.Play("menu_select")
		a.drives()
	case "ai":
		a.ask(ctx, args)
	case "apikey":
		a.setAPIKey(args)
	case "online":
		a.online(ctx)
	case "search":
		a.search(ctx, args)
	case "download":
		a.download(ctx, args)
	case "settings":
		a.player.Play("menu_select")
		a.settings()
	case "log":
		a.showLog()
	default:
		fmt.Fprintf(a.out, "Unknown command: %q. Type 'help' for a list of commands.\n", command)
		a.player.Play("error")
	}
}

func (a *app) clear() {
	fmt.Fprint(a.out, "\033[2J\033[H")
}

func (a *app) systemFor(game media.Game) string {
	if profile, ok := a.cfg.LookupProfile(game.Ext); ok {
		return profile.System
	}
	return "Unknown"
}

func (a *app) showList() {
	ui.GameList(a.out, a.library.Snapshot().List(), a.systemFor)
}

func (a *app) rescan(ctx context.Context) {
	fmt.Fprintln(a.out, "Scanning for games and cartridges...")
	if _, err := a.library.Rebuild(ctx); err != nil {
		fmt.Fprintf(a.out, "Scan failed: %s\n", err)
		a.player.Play("error")
		return
	}
	a.showList()
	fmt.Fprintln(a.out, "Scan complete.")
}

func (a *app) gameFromArg(args string) (media.Game, bool) {
	n, err := strconv.Atoi(args)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid game number: %q.\n", args)
		a.player.Play("error")
		return media.Game{}, false
	}
	game, err := a.library.Snapshot().Get(n)
	if err != nil {
		fmt.Fprintf(a.out, "%s.\n", err)
		a.player.Play("error")
		return media.Game{}, false
	}
	return game, true
}

func (a *app) play(ctx context.Context, args string) {
	if args == "" {
		fmt.Fprintln(a.out, "Usage: play <number>")
		a.player.Play("error")
		return
	}
	game, ok := a.gameFromArg(args)
	if !ok {
		return
	}

	info, err := a.launcher.Launch(ctx, game)
	if err != nil {
		fmt.Fprintf(a.out, "Could not launch %s: %s\n", game.Title, err)
		a.player.Play("error")
		return
	}
	fmt.Fprintf(a.out, "Launching %s (%s, %s emulator)...\n",
		game.Title, info.System, info.Emulator.Origin)
	a.player.Play("launch_game")
}

func (a *app) info(args string) {
	if args == "" {
		fmt.Fprintln(a.out, "Usage: info <number>")
		a.player.Play("error")
		return
	}
	game, ok := a.gameFromArg(args)
	if !ok {
		return
	}
	a.player.Play("menu_select")

	emulator := "not found"
	if profile, okP := a.cfg.LookupProfile(game.Ext); okP {
		if resolved, err := media.NewResolver(afero.NewOsFs(), a.cfg.EmulatorsDir(),
			a.platform.ExeSuffixes()).Resolve(profile.Command); err == nil {
			emulator = fmt.Sprintf("%s (%s)", resolved.Path, resolved.Origin)
		}
	}
	ui.GameInfo(a.out, game, a.systemFor(game), emulator)
}

func (a *app) drives() {
	volumes, err := a.platform.RemovableVolumes()
	if err != nil {
		fmt.Fprintf(a.out, "Could not list drives: %s\n", err)
		a.player.Play("error")
		return
	}
	ui.DriveList(a.out, volumes)
}

func (a *app) ask(ctx context.Context, args string) {
	if args == "" {
		fmt.Fprintln(a.out, "Usage: ai <your question>")
		a.player.Play("error")
		return
	}
	if !a.chat.Ready() {
		fmt.Fprintln(a.out, "Assistant offline: set a key with 'apikey <key>'.")
		a.player.Play("error")
		return
	}

	a.player.Play("chat_enter")
	fmt.Fprintln(a.out, "\nFlowey is thinking...")
	reply, err := a.chat.Ask(ctx, args)
	if err != nil {
		fmt.Fprintf(a.out, "Ugh, my head hurts... (%s)\n", err)
		a.player.Play("error")
		return
	}
	fmt.Fprintf(a.out, "\nFlowey says: %s\n", reply)
}

func (a *app) setAPIKey(args string) {
	if args == "" {
		fmt.Fprintln(a.out, "Usage: apikey <key>")
		a.player.Play("error")
		return
	}
	if err := a.cfg.SetAPIKey(args); err != nil {
		fmt.Fprintf(a.out, "Could not save API key: %s\n", err)
		a.player.Play("error")
		return
	}
	a.chat.Reset()
	a.player.Play("menu_select")
	fmt.Fprintln(a.out, "API key saved. Flowey is online!")
}

func (a *app) online(ctx context.Context) {
	if a.onlineCli == nil {
		fmt.Fprintln(a.out, "No online server configured (set [online] server_url).")
		return
	}
	games, err := a.onlineCli.Games(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Online catalog unavailable: %s\n", err)
		a.player.Play("error")
		return
	}
	a.printCatalog(games)
}

func (a *app) search(ctx context.Context, args string) {
	if a.onlineCli == nil {
		fmt.Fprintln(a.out, "No online server configured (set [online] server_url).")
		return
	}
	if args == "" {
		fmt.Fprintln(a.out, "Usage: search <text>")
		return
	}
	games, err := a.onlineCli.Search(ctx, args)
	if err != nil {
		fmt.Fprintf(a.out, "Search failed: %s\n", err)
		a.player.Play("error")
		return
	}
	a.printCatalog(games)
}

func (a *app) printCatalog(games []online.CatalogGame) {
	if len(games) == 0 {
		fmt.Fprintln(a.out, "No games in the online catalog.")
		return
	}
	fmt.Fprintf(a.out, "  %-6s %-36s %s\n", "ID", "Name", "System")
	for _, g := range games {
		fmt.Fprintf(a.out, "  %-6d %-36s %s\n", g.ID, g.Name, g.System)
	}
}

func (a *app) download(ctx context.Context, args string) {
	if a.onlineCli == nil {
		fmt.Fprintln(a.out, "No online server configured (set [online] server_url).")
		return
	}
	id, err := strconv.Atoi(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: download <id>")
		return
	}

	fmt.Fprintln(a.out, "Downloading...")
	path, err := a.onlineCli.Download(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Download failed: %s\n", err)
		a.player.Play("error")
		return
	}
	fmt.Fprintf(a.out, "Saved to %s. Run 'scan' to pick it up.\n", path)
}

func (a *app) settings() {
	ui.Settings(a.out, [][2]string{
		{"Root Directory", a.cfg.RootDir()},
		{"Games Directory", a.cfg.GamesDir()},
		{"Emulators Dir", a.cfg.EmulatorsDir()},
		{"Sounds Directory", a.cfg.SoundsDir()},
		{"Platform", a.platform.ID()},
	})
}

func (a *app) showLog() {
	lines, err := helpers.TailLog(filepath.Join(a.cfg.RootDir(), config.LogFile), logDisplayLines)
	if err != nil {
		fmt.Fprintf(a.out, "Could not read log: %s\n", err)
		return
	}
	for _, line := range lines {
		fmt.Fprintln(a.out, line)
	}
}
