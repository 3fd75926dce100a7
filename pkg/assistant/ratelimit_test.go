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
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAdmitsUpToMax(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	limiter := newRateLimiter(3, time.Hour, clock)

	assert.True(t, limiter.allow())
	assert.True(t, limiter.allow())
	assert.True(t, limiter.allow())
	assert.False(t, limiter.allow(), "fourth request in the window must be denied")
}

func TestRateLimiterSlidesWindow(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	limiter := newRateLimiter(2, time.Hour, clock)

	assert.True(t, limiter.allow())
	clock.Advance(30 * time.Minute)
	assert.True(t, limiter.allow())
	assert.False(t, limiter.allow())

	// The first request ages out; the second is still in the window.
	clock.Advance(31 * time.Minute)
	assert.True(t, limiter.allow())
	assert.False(t, limiter.allow())
}

func TestRateLimiterDeniedRequestsDoNotConsumeBudget(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	limiter := newRateLimiter(1, time.Hour, clock)

	assert.True(t, limiter.allow())
	assert.False(t, limiter.allow())
	assert.False(t, limiter.allow())

	clock.Advance(time.Hour + time.Second)
	assert.True(t, limiter.allow(), "denied attempts must not extend the lockout")
}
