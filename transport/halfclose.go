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

// NotifyInputHalfClosed tells the manager the peer has half-closed its
// output, observed here as EOF on our input. Safe to call from any
// goroutine; handling is dispatched onto the event loop.
func (m *Manager) NotifyInputHalfClosed() {
	m.disp.Post(m.inputHalfClosed)
}

// inputHalfClosed has two very different meanings depending on timing.
// If the graceful-close drain already reached the point where our own
// output is shutting down, this is the expected other half of the
// duplex handshake, and it's safe to finish closing. If graceful close
// hasn't gotten that far — or hasn't started at all — the peer has
// jumped ahead of the protocol, and there is no safe way to keep reading
// from a connection whose write side we might still need.
func (m *Manager) inputHalfClosed() {
	if m.state.closed() {
		return
	}
	if m.duplex == nil {
		m.closeWithCause(newIllegalStateError("input half-closed on a non-duplex channel"))
		return
	}
	if m.state.gracefulClose.kind == slotSecondGoAwaySent && m.outputShuttingDown {
		if m.state.inputShutdownTimer != nil {
			m.state.inputShutdownTimer.Cancel()
			m.state.inputShutdownTimer = nil
		}
		m.closeWithCause(nil)
		return
	}
	m.closeWithCause(newIllegalStateError("peer half-closed its output before graceful close reached the output-shutdown phase"))
}

// outputHalfClosed runs once our own output shutdown, issued by the
// shutdown sequencer, actually completes. It arms the wait for the
// peer's reciprocal half-close, unless the peer has already half-closed
// its own output by the time we get here.
func (m *Manager) outputHalfClosed() {
	if m.state.closed() {
		return
	}
	m.outputShuttingDown = true
	if m.duplex != nil && m.duplex.IsInputShutdown() {
		m.closeWithCause(nil)
		return
	}
	m.state.inputShutdownTimer = m.scheduler.AfterDuration(m.inputShutdownTimeoutFired, m.cfg.AckTimeout)
}

func (m *Manager) inputShutdownTimeoutFired() {
	if m.state.inputShutdownTimer == nil {
		return
	}
	m.state.inputShutdownTimer = nil
	if m.duplex != nil && m.duplex.IsInputShutdown() {
		return
	}
	m.closeWithCause(newTimeoutError("input-shutdown", "peer never half-closed its output after our output shutdown"))
}
