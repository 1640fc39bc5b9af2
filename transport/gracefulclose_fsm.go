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

// InitiateGracefulClose starts the two-GOAWAY graceful shutdown described
// by RFC 7540 §6.8: a first GOAWAY fencing new streams, followed by a
// PING whose ack tells us the peer has processed it, followed by a
// second GOAWAY once it's safe to report the true last-processed stream.
// local distinguishes why the close started: true for a locally-initiated
// shutdown (the first GOAWAY carries debugLocal), false for one triggered
// by something the peer did (debugRemote). onInitiated, if non-nil, is
// invoked exactly once, on the event loop, the first time graceful close
// actually starts for this connection. Safe to call from any goroutine
// and safe to call more than once; only the first call has an effect.
func (m *Manager) InitiateGracefulClose(local bool, onInitiated func()) {
	m.disp.Post(func() { m.startGracefulClose(local, onInitiated) })
}

// GracefulCloseInitiated reports whether graceful close has started.
// Safe to call from any goroutine without dispatching onto the event
// loop, since it only reads an atomic flag set the moment graceful close
// actually begins.
func (m *Manager) GracefulCloseInitiated() bool {
	return m.gracefulCloseStarted.Load()
}

func (m *Manager) startGracefulClose(local bool, onInitiated func()) {
	if m.state.closed() {
		return
	}
	if m.state.gracefulClose.kind != slotIdle {
		return
	}
	m.gracefulCloseStarted.Store(true)
	if onInitiated != nil {
		onInitiated()
	}
	debug, purpose := debugLocal, "local"
	if !local {
		debug, purpose = debugRemote, "remote"
	}
	first := GoAwayFrame{LastStreamID: maxStreamID, ErrorCode: http2.ErrCodeNo, DebugData: dup(debug)}
	if err := m.channel.WriteGoAway(first); err != nil {
		m.closeWithCause(err)
		return
	}
	m.metrics.incGoAwaysSent(m.bgCtx, purpose)
	timer := m.scheduler.AfterDuration(m.gracefulCloseAckTimeoutFired, m.cfg.AckTimeout)
	m.state.gracefulClose = inFlightSlot(timer)
	m.writeAndFlushPing(gracefulClosePingContent, "graceful_close", m.gracefulClosePingWriteCompleted)
}

func (m *Manager) gracefulClosePingWriteCompleted(err error) {
	if err != nil {
		m.closeWithCause(err)
	}
}

// gracefulClosePingAckReceived means the peer has observed the first
// GOAWAY and processed everything ordered before the PING: any stream
// the peer might still open is already doomed, so the second GOAWAY is
// sent now. Its last-stream ID comes from lastProcessedStreamID, which
// always returns maxStreamID; the connection's actual last-processed
// stream is not reported.
func (m *Manager) gracefulClosePingAckReceived() {
	if m.state.gracefulClose.kind != slotInFlight {
		m.log.Debugf("%s: stray graceful-close PING ack in state %s", m.id, m.state.gracefulClose.kind)
		return
	}
	cancelIfTimer(m.state.gracefulClose)
	m.sendSecondGoAway(false, http2.ErrCodeNo, debugSecond, nil)
}

// gracefulCloseAckTimeoutFired means the peer never acked the first
// PING. Rather than hang indefinitely, the second GOAWAY is sent anyway,
// but per the decision recorded in DESIGN.md a peer that won't even ack a
// PING isn't trusted to act on a stream-count-aware drain, or indeed to
// complete close_notify/half-close cleanly: the connection closes with
// the timeout cause as soon as the second GOAWAY is flushed, bypassing
// the rest of the shutdown sequence entirely.
func (m *Manager) gracefulCloseAckTimeoutFired() {
	if m.state.gracefulClose.kind != slotInFlight {
		return
	}
	m.metrics.incAckTimeouts(m.bgCtx, "graceful_close")
	cause := newTimeoutError("graceful_close", "no PING ack within the configured window")
	m.sendSecondGoAway(true, http2.ErrCodeNo, debugGracefulCloseTimeout, cause)
}

// sendSecondGoAway writes the fencing GOAWAY that concludes the drain.
// timeoutCause is non-nil only on the timeout path, where it both waives
// the active-stream-count requirement in tryCompleteGracefulClose and
// becomes the cause the connection closes with once the GOAWAY settles —
// a write failure on top of it is composed as the primary cause with the
// timeout attached as suppressed, per addSuppressed.
func (m *Manager) sendSecondGoAway(timeoutPath bool, code http2.ErrCode, debug []byte, timeoutCause error) {
	m.state.gracefulClose = secondGoAwaySlot()
	m.secondGoAwayIsTimeoutPath = timeoutPath
	m.secondGoAwayFlushed = false
	m.secondGoAwayTimeoutCause = timeoutCause
	last := m.lastProcessedStreamID()
	g := GoAwayFrame{LastStreamID: last, ErrorCode: code, DebugData: dup(debug)}
	m.channel.WriteAndFlushGoAway(g, m.secondGoAwayWriteCompleted)
}

func (m *Manager) secondGoAwayWriteCompleted(err error) {
	if err != nil {
		m.closeWithCause(addSuppressed(err, m.secondGoAwayTimeoutCause))
		return
	}
	m.metrics.incGoAwaysSent(m.bgCtx, "second")
	m.secondGoAwayFlushed = true
	m.tryCompleteGracefulClose()
}

// tryCompleteGracefulClose is the join point for the second GOAWAY's own
// write completion and for the active-stream count reaching zero: both
// must be satisfied (or the timeout path, which skips the stream-count
// requirement) before the drain is considered done.
func (m *Manager) tryCompleteGracefulClose() {
	if m.state.gracefulClose.kind != slotSecondGoAwaySent || !m.secondGoAwayFlushed {
		return
	}
	if !m.secondGoAwayIsTimeoutPath && m.activeStreamCount() != 0 {
		return
	}
	m.gracefulCloseComplete(m.secondGoAwayTimeoutCause)
}

// gracefulCloseComplete concludes the drain. A non-nil cause means the
// drain ended via the ack-timeout path: the connection closes with that
// cause immediately, the same as any other fatal error, skipping
// close_notify and the half-close handshake entirely, since a peer that
// never acked the PING cannot be trusted to participate in them. A nil
// cause hands off to the shutdown sequencer, which owns TLS close_notify
// and the half-close dance before the channel fully closes. Guarded so a
// second zero-crossing of the active-stream count arriving after the
// sequencer has already started can't kick it off twice.
func (m *Manager) gracefulCloseComplete(cause error) {
	if m.shutdownStarted {
		return
	}
	m.shutdownStarted = true
	if cause != nil {
		m.closeWithCause(cause)
		return
	}
	m.beginGracefulShutdown()
}

// lastProcessedStreamID is a placeholder hook: a real Channel exposes the
// highest stream ID it has dispatched to the application so the second
// GOAWAY can report it precisely. Until that's wired through the Channel
// interface, the fence stays at maxStreamID, matching the first GOAWAY —
// correct but conservative: it fences at the same point twice instead of
// the (potentially lower) true last-processed stream.
func (m *Manager) lastProcessedStreamID() uint32 {
	return maxStreamID
}
