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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	clientUserAgent = "RetroFlowClient/1.0"
	healthTimeout   = 3 * time.Second
)

// Client talks to a catalog server and saves downloads into the local
// games directory, where the next rescan picks them up.
type Client struct {
	fs         afero.Fs
	httpClient *http.Client
	baseURL    string
	gamesDir   string
}

// NewClient creates a catalog client for baseURL, saving downloads
// under gamesDir.
func NewClient(fsys afero.Fs, baseURL, gamesDir string) *Client {
	return &Client{
		fs:         fsys,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    baseURL,
		gamesDir:   gamesDir,
	}
}

// Health checks whether the server is reachable and responsive.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	resp, err := c.get(ctx, "/health", nil)
	if err != nil {
		return err
	}
	return drainClose(resp)
}

// Games fetches the full online catalog.
func (c *Client) Games(ctx context.Context) ([]CatalogGame, error) {
	var games []CatalogGame
	if err := c.getJSON(ctx, "/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Search queries the catalog for games matching query.
func (c *Client) Search(ctx context.Context, query string) ([]CatalogGame, error) {
	var games []CatalogGame
	params := url.Values{"q": {query}}
	if err := c.getJSON(ctx, "/games/search", params, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Download fetches a game by ID into the games directory and returns
// the saved path.
func (c *Client) Download(ctx context.Context, id int) (string, error) {
	var game CatalogGame
	if err := c.getJSON(ctx, fmt.Sprintf("/games/%d", id), nil, &game); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+fmt.Sprintf("/download/%d", id), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("User-Agent", clientUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close download body")
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	if err := c.fs.MkdirAll(c.gamesDir, 0o750); err != nil {
		return "", fmt.Errorf("create games dir: %w", err)
	}

	// Filename comes from the server; keep only its base name so a
	// hostile server cannot write outside the games directory.
	dest := filepath.Join(c.gamesDir, filepath.Base(game.Filename))
	out, err := c.fs.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}

	written, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil {
		return "", fmt.Errorf("save download: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("close download: %w", closeErr)
	}

	log.Info().Str("path", dest).Int64("bytes", written).Msg("download complete")
	return dest, nil
}

// RequestScan asks the server to index newly added files.
func (c *Client) RequestScan(ctx context.Context) (ScanReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/admin/scan-games", http.NoBody)
	if err != nil {
		return ScanReport{}, fmt.Errorf("build scan request: %w", err)
	}
	req.Header.Set("User-Agent", clientUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ScanReport{}, fmt.Errorf("scan request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close scan response body")
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return ScanReport{}, fmt.Errorf("scan request failed: status %d", resp.StatusCode)
	}

	var report ScanReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return ScanReport{}, fmt.Errorf("decode scan report: %w", err)
	}
	return report, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", clientUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = drainClose(resp)
		return nil, fmt.Errorf("request %s failed: status %d", path, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	resp, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func drainClose(resp *http.Response) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}
