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

// beginGracefulShutdown runs once the two-GOAWAY drain is done: the
// second GOAWAY has flushed and either the stream count is zero or the
// timeout path waived that requirement. It flushes anything still queued,
// sends TLS close_notify if a TLSEngine was configured, then shuts down
// our output and waits for the peer's half of the handshake.
//
// A non-duplex channel can't half-close, so there's nothing to wait for:
// the sequence collapses to a flush, an optional close_notify, and a
// full close.
func (m *Manager) beginGracefulShutdown() {
	if m.state.closed() {
		return
	}
	m.channel.WriteAndFlushEmpty(func(err error) {
		if err != nil {
			m.closeWithCause(err)
			return
		}
		m.sendCloseNotify()
	})
}

func (m *Manager) sendCloseNotify() {
	if m.tls == nil {
		m.shutdownOutput()
		return
	}
	m.tls.CloseOutbound(func(err error) {
		if err != nil {
			m.closeWithCause(err)
			return
		}
		m.shutdownOutput()
	})
}

func (m *Manager) shutdownOutput() {
	if m.duplex == nil {
		m.closeWithCause(nil)
		return
	}
	m.duplex.ShutdownOutput(func(err error) {
		if err != nil {
			m.closeWithCause(err)
			return
		}
		m.outputHalfClosed()
	})
}

// ChannelClosed notifies the manager that the underlying channel has
// fully closed, for any reason, including one the manager didn't drive
// itself (a reset from the peer, an I/O error on a read). Safe to call
// from any goroutine, and safe to call more than once.
func (m *Manager) ChannelClosed() {
	m.disp.Post(func() { m.closeWithCause(nil) })
}

// closeWithCause is the single terminal transition for both state
// machines: cancel every outstanding timer, mark both slots Closed, and
// ask the channel to close, attributing cause if non-nil. Idempotent —
// a second call after the state is already Closed is a no-op — so every
// path that can observe a failure (a write error, a timeout, an illegal
// half-close) can call it without first checking whether someone else
// got there first.
func (m *Manager) closeWithCause(cause error) {
	if m.state.closed() {
		return
	}
	m.state.closeAll()
	if cause != nil {
		m.log.Debugf("%s: closing connection: %v", m.id, cause)
		m.channel.CloseWithCause(cause)
	} else {
		m.channel.Close()
	}
	m.stopOnce.Do(func() { close(m.stop) })
}
