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

// Package online implements the optional online game catalog: a REST
// client used by the launcher's download commands and the matching
// server hosted by cmd/retroflow-server.
package online

// CatalogGame is one downloadable entry in the online catalog.
type CatalogGame struct {
	Name      string `json:"name"`
	System    string `json:"system"`
	Filename  string `json:"filename"`
	ID        int    `json:"id"`
	SizeBytes int64  `json:"size_bytes"`
}

// ScanReport summarizes an admin-triggered incoming-folder scan.
type ScanReport struct {
	Added int `json:"added"`
	Total int `json:"total"`
}
