/*
 *
 * Copyright 2014 gRPC authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package transport

import "sync/atomic"

// StreamOpened records that a new stream started on the connection and
// returns the function to call exactly once when that stream ends.
// Safe to call from any goroutine: the counter is atomic, and the
// zero-crossing notification is re-dispatched onto the event loop rather
// than acted on inline, since an arbitrary caller's goroutine must never
// touch FSM state directly.
func (m *Manager) StreamOpened() (closeFunc func()) {
	atomic.AddInt64(&m.activeStreams, 1)
	m.metrics.addActiveStreams(m.bgCtx, 1)
	var closed atomic.Bool
	return func() {
		if !closed.CompareAndSwap(false, true) {
			return
		}
		m.metrics.addActiveStreams(m.bgCtx, -1)
		remaining := atomic.AddInt64(&m.activeStreams, -1)
		if remaining < 0 {
			m.log.Errorf("%s: stream close notification without a matching open (count=%d)", m.id, remaining)
			return
		}
		if remaining == 0 {
			m.disp.Post(m.streamCountReachedZero)
		}
	}
}

// activeStreamCount reads the current active-stream count. Safe from any
// goroutine; callers on the event loop that need a value consistent with
// the slots they're about to inspect should prefer reading it from inside
// a dispatched task, since a concurrent StreamOpened/close can change it
// between the read and the slot check otherwise.
func (m *Manager) activeStreamCount() int64 {
	return atomic.LoadInt64(&m.activeStreams)
}

// streamCountReachedZero runs on the event loop after the last active
// stream closes. It only matters to the graceful-close machine: a
// zero-crossing while graceful close hasn't started, or has already
// finished, is a no-op.
func (m *Manager) streamCountReachedZero() {
	if m.state.gracefulClose.kind != slotSecondGoAwaySent {
		return
	}
	if m.activeStreamCount() != 0 {
		// A new stream opened before this task ran and is still active.
		return
	}
	m.gracefulCloseComplete(nil)
}
