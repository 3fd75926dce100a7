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

// Package assistant proxies free-text prompts from the command loop to
// a remote messages-style chat API, with a rolling session history and
// client-side rate limiting.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ifndefbros/retroflow/pkg/config"
)

const (
	messagesPath   = "/v1/messages"
	apiVersion     = "2023-06-01"
	userAgent      = "RetroFlow/1.0"
	maxTokens      = 1024
	maxHistory     = 20
	requestTimeout = 30 * time.Second
)

// Persona is the system instruction giving the assistant its in-game
// character.
const Persona = "You are Flowey the Flower from Undertale, now serving as a " +
	"retro gaming assistant in a DOS-like terminal. You maintain your " +
	"manipulative, sarcastic personality but are genuinely helpful with " +
	"gaming advice. You have extensive knowledge of retro games, emulators, " +
	"and gaming history. Keep responses concise but personality-rich. " +
	"You're fascinated by the user's 'DETERMINATION' to play old games."

// ErrNotConfigured means no API key is set; the `apikey` command fixes
// it.
var ErrNotConfigured = errors.New("assistant not configured, set an API key")

// ErrRateLimited means the client-side request budget for the current
// window is spent.
var ErrRateLimited = errors.New("assistant rate limit exceeded, try again later")

// AssistantConfig supplies assistant settings; satisfied by
// config.Instance so key updates take effect without restarting.
type AssistantConfig interface {
	AssistantConfig() config.Assistant
}

// Client is a chat client with one rolling session. Safe for use from
// the single command loop goroutine; a mutex still guards history for
// callers that schedule prompts in the background.
type Client struct {
	cfg        AssistantConfig
	httpClient *http.Client
	limiter    *rateLimiter
	sessionID  string
	history    []Message
	mu         sync.Mutex
}

// NewClient creates an assistant client. The clock is injectable for
// rate limiter tests.
func NewClient(cfg AssistantConfig, clock clockwork.Clock) *Client {
	settings := cfg.AssistantConfig()
	maxPerHour := settings.MaxRequestsPerHour
	if maxPerHour <= 0 {
		maxPerHour = 60
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    newRateLimiter(maxPerHour, time.Hour, clock),
		sessionID:  uuid.NewString(),
	}
}

// Ready reports whether an API key is configured.
func (c *Client) Ready() bool {
	return c.cfg.AssistantConfig().APIKey != ""
}

// Ask sends prompt with the rolling session history and returns the
// assistant's reply. The exchange is appended to the history, which is
// trimmed to the most recent turns.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	settings := c.cfg.AssistantConfig()
	if settings.APIKey == "" {
		return "", ErrNotConfigured
	}
	if !c.limiter.allow() {
		log.Info().Str("session", c.sessionID).Msg("assistant request denied by rate limiter")
		return "", ErrRateLimited
	}

	c.mu.Lock()
	messages := append(append([]Message{}, c.history...), Message{Role: "user", Content: prompt})
	c.mu.Unlock()

	reply, err := c.send(ctx, settings, messages)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.history = append(c.history,
		Message{Role: "user", Content: prompt},
		Message{Role: "assistant", Content: reply})
	if len(c.history) > maxHistory {
		c.history = c.history[len(c.history)-maxHistory:]
	}
	c.mu.Unlock()

	return reply, nil
}

// Reset drops the session history and starts a new session.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
	c.sessionID = uuid.NewString()
}

func (c *Client) send(ctx context.Context, settings config.Assistant, messages []Message) (string, error) {
	payload := messagesRequest{
		Model:     settings.Model,
		System:    Persona,
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	body, err := json.Marshal(&payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		settings.BaseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Api-Key", settings.APIKey)
	req.Header.Set("Anthropic-Version", apiVersion)
	req.Header.Set("X-Session-Id", c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close chat response body")
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("chat api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("chat api error: status %d", resp.StatusCode)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", errors.New("chat api returned empty content")
	}

	log.Info().
		Str("session", c.sessionID).
		Int("inputTokens", parsed.Usage.InputTokens).
		Int("outputTokens", parsed.Usage.OutputTokens).
		Msg("assistant reply received")

	return parsed.Content[0].Text, nil
}
