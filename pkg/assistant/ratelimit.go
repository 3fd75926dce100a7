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

package assistant

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// rateLimiter is a sliding-window limiter keeping remote API usage
// bounded regardless of how fast the user types.
type rateLimiter struct {
	clock    clockwork.Clock
	requests []time.Time
	max      int
	window   time.Duration
	mu       sync.Mutex
}

func newRateLimiter(maxRequests int, window time.Duration, clock clockwork.Clock) *rateLimiter {
	return &rateLimiter{
		clock:  clock,
		max:    maxRequests,
		window: window,
	}
}

// allow records a request if the window has room and reports whether
// it was admitted.
func (r *rateLimiter) allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	cutoff := now.Add(-r.window)

	kept := r.requests[:0]
	for _, t := range r.requests {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	r.requests = kept

	if len(r.requests) >= r.max {
		return false
	}

	r.requests = append(r.requests, now)
	return true
}
