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

import "golang.org/x/net/http2"

// idleDetected fires when the IdlenessDetector observes the connection
// has been silent for cfg.IdleDuration. A second firing while a
// keep-alive PING is still outstanding (possible whenever AckTimeout is
// longer than IdleDuration) is a no-op: only an Idle slot sends a probe.
func (m *Manager) idleDetected() {
	if m.state.closed() || m.state.keepAlive.kind != slotIdle {
		return
	}
	if m.activeStreamCount() == 0 && !m.cfg.WithoutActiveStreams {
		return
	}
	// The timer is armed before the write is even issued, so a
	// synchronously-arriving ack — a fake Channel in a test, or a very
	// fast real one — always lands on an InFlight slot rather than racing
	// ahead of it.
	timer := m.scheduler.AfterDuration(m.keepAliveAckTimeoutFired, m.cfg.AckTimeout)
	m.state.keepAlive = inFlightSlot(timer)
	m.writeAndFlushPing(keepAlivePingContent, "keepalive", m.keepAlivePingWriteCompleted)
}

// keepAlivePingWriteCompleted only needs to act on failure: on success
// the InFlight slot and its timer, already in place, are exactly the
// state that should hold until the ack or the timeout.
func (m *Manager) keepAlivePingWriteCompleted(err error) {
	if err != nil {
		m.closeWithCause(err)
	}
}

// keepAlivePingAckReceived matches the ack against the current slot
// rather than assuming one is outstanding: a late ack arriving after the
// wait already timed out is a stray, not an error.
func (m *Manager) keepAlivePingAckReceived() {
	if m.state.keepAlive.kind != slotInFlight {
		m.log.Debugf("%s: stray keep-alive PING ack in state %s", m.id, m.state.keepAlive.kind)
		return
	}
	cancelIfTimer(m.state.keepAlive)
	m.state.keepAlive = idleSlot()
	m.log.Tracef("%s: keep-alive PING ack received", m.id)
	m.metrics.incPingAcksReceived(m.bgCtx, "keepalive")
}

// keepAliveAckTimeoutFired is fatal: an HTTP/2 peer that doesn't answer a
// PING within the configured window is assumed dead. Rather than close
// with no warning, a GOAWAY naming the timeout is written and flushed
// first, and the connection is torn down once that write settles. A
// write failure on top of the timeout is composed as the primary cause
// with the timeout attached as suppressed, per addSuppressed.
func (m *Manager) keepAliveAckTimeoutFired() {
	if m.state.keepAlive.kind != slotInFlight {
		return
	}
	m.state.keepAlive = timedOutSlot()
	m.metrics.incAckTimeouts(m.bgCtx, "keepalive")
	cause := newTimeoutError("keepalive", "no PING ack within the configured window")
	g := GoAwayFrame{LastStreamID: maxStreamID, ErrorCode: http2.ErrCodeNo, DebugData: dup(debugKeepAliveTimeout)}
	m.channel.WriteAndFlushGoAway(g, func(err error) {
		if err != nil {
			m.closeWithCause(addSuppressed(err, cause))
			return
		}
		m.metrics.incGoAwaysSent(m.bgCtx, "keepalive_timeout")
		m.closeWithCause(cause)
	})
}
