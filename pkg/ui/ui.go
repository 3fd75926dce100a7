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

// Package ui renders the terminal output for the command loop: game
// list, game info, drive list and help tables. Plain text only, no
// escape-sequence dependencies beyond clear.
package ui

import (
	"fmt"
	"io"

	"github.com/ifndefbros/retroflow/pkg/media"
	"github.com/ifndefbros/retroflow/pkg/platforms"
)

// Banner is the splash header printed at startup.
const Banner = `
 ____      _             _____ _
|  _ \ ___| |_ _ __ ___ |  ___| | _____      __
| |_) / _ \ __| '__/ _ \| |_  | |/ _ \ \ /\ / /
|  _ <  __/ |_| | | (_) |  _| | | (_) \ V  V /
|_| \_\___|\__|_|  \___/|_|   |_|\___/ \_/\_/

        A Dynamic Retro Game Launcher
`

// Welcome prints the post-clear greeting.
func Welcome(w io.Writer) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "  Welcome to the RetroFlow Terminal!")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Type 'help' for available commands.")
}

// GameList prints the catalog as a numbered table, local games first.
func GameList(w io.Writer, games []media.Game, systemFor func(media.Game) string) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games found. Place ROMs in the Games folder or insert a cartridge.")
		return
	}

	fmt.Fprintf(w, "  %-4s %-36s %-24s %s\n", "#", "Game Title", "System", "Source")
	fmt.Fprintf(w, "  %-4s %-36s %-24s %s\n", "----", "------------------------------------",
		"------------------------", "------")
	for i, game := range games {
		fmt.Fprintf(w, "  %-4d %-36s %-24s %s\n",
			i+1, clip(game.Title, 36), clip(systemFor(game), 24), sourceText(game))
	}
	fmt.Fprintf(w, "\nTotal games: %d\n", len(games))
}

// GameInfo prints the detail view for one game.
func GameInfo(w io.Writer, game media.Game, system string, emulator string) {
	rows := []struct{ k, v string }{
		{"Game Title", game.Title},
		{"System", system},
		{"Full Path", game.Path},
		{"Extension", game.Ext},
		{"Source", sourceText(game)},
		{"Emulator", emulator},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-12s %s\n", row.k, row.v)
	}
}

// DriveList prints detected removable volumes with their sizes.
func DriveList(w io.Writer, volumes []platforms.Volume) {
	if len(volumes) == 0 {
		fmt.Fprintln(w, "No removable drives detected.")
		return
	}

	fmt.Fprintf(w, "  %-28s %12s %12s\n", "Mount Point", "Total", "Free")
	fmt.Fprintf(w, "  %-28s %12s %12s\n", "----------------------------",
		"------------", "------------")
	for _, vol := range volumes {
		fmt.Fprintf(w, "  %-28s %12s %12s\n",
			clip(vol.Mount, 28), formatBytes(vol.TotalBytes), formatBytes(vol.FreeBytes))
	}
}

// Settings prints the current configuration paths.
func Settings(w io.Writer, rows [][2]string) {
	fmt.Fprintf(w, "  %-20s %s\n", "Setting", "Value")
	fmt.Fprintf(w, "  %-20s %s\n", "--------------------",
		"------------------------------------------------")
	for _, row := range rows {
		fmt.Fprintf(w, "  %-20s %s\n", row[0], row[1])
	}
}

// Help prints the command reference.
func Help(w io.Writer) {
	commands := []struct{ cmd, desc string }{
		{"list", "Display all discovered games"},
		{"play <number>", "Launch a game by its list number"},
		{"info <number>", "Show details for a game"},
		{"scan", "Rescan local and removable storage"},
		{"drives", "List detected cartridge drives"},
		{"ai <prompt>", "Ask the assistant a question"},
		{"apikey <key>", "Set the assistant API key"},
		{"online", "List the online catalog"},
		{"search <text>", "Search the online catalog"},
		{"download <id>", "Download a game from the online catalog"},
		{"settings", "Show current configuration"},
		{"log", "Show recent log entries"},
		{"clear / cls", "Clear the screen"},
		{"help", "Show this message"},
		{"exit", "Quit RetroFlow"},
	}
	fmt.Fprintf(w, "  %-16s %s\n", "Command", "Description")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-16s %s\n", c.cmd, c.desc)
	}
	fmt.Fprintln(w, "\nGame numbers change when cartridges are inserted or removed.")
}

func sourceText(game media.Game) string {
	if game.Source == media.SourceRemovable {
		return "Cartridge: " + game.SourceLabel
	}
	return "Local"
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatBytes(b uint64) string {
	const gb = 1024 * 1024 * 1024
	const mb = 1024 * 1024
	if b >= gb {
		return fmt.Sprintf("%.2f GB", float64(b)/float64(gb))
	}
	return fmt.Sprintf("%.1f MB", float64(b)/float64(mb))
}
