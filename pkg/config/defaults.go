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

package config

// Defaults returns the built-in configuration: the stock emulator
// profile set plus conservative discovery and assistant settings.
func Defaults() Values {
	return Values{
		Profiles: map[string]Profile{
			// Nintendo
			".nes": {Command: "fceux", System: "Nintendo Entertainment System"},
			".smc": {Command: "snes9x", System: "Super Nintendo"},
			".sfc": {Command: "snes9x", System: "Super Nintendo"},
			".gb":  {Command: "mgba", System: "Game Boy"},
			".gbc": {Command: "mgba", System: "Game Boy Color"},
			".gba": {Command: "mgba", System: "Game Boy Advance"},
			".n64": {Command: "project64", System: "Nintendo 64"},
			".z64": {Command: "project64", System: "Nintendo 64"},

			// Sega
			".md":  {Command: "gens", System: "Sega Genesis"},
			".gen": {Command: "gens", System: "Sega Genesis"},

			// Sony
			".ps1": {Command: "epsxe", System: "PlayStation"},
			".bin": {Command: "epsxe", System: "PlayStation"},

			// PC / other
			".wad": {Command: "gzdoom", System: "Doom Engine", Args: []string{"-iwad", PathPlaceholder}},
			".exe": {Command: "dosbox", System: "MS-DOS", Args: []string{PathPlaceholder, "-exit"}},
		},
		Media: Media{
			MinDriveSizeMB: 100,
		},
		Assistant: Assistant{
			Model:              "claude-3-5-haiku-latest",
			BaseURL:            "https://api.anthropic.com",
			MaxRequestsPerHour: 60,
		},
		Audio: Audio{
			Enabled: true,
			Sounds: map[string]string{
				"startup":     "startup.mp3",
				"launch_game": "launch.mp3",
				"error":       "error.mp3",
				"menu_select": "select.mp3",
				"chat_enter":  "chat.mp3",
				"scan":        "scan.mp3",
			},
		},
	}
}
