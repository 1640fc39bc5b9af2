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

// PingReceived notifies the manager of a PING frame observed on the
// connection, ack or not. Safe to call from any goroutine; the actual
// handling is dispatched onto the event loop.
func (m *Manager) PingReceived(p PingFrame) {
	m.disp.Post(func() { m.receivePing(p) })
}

// receivePing demultiplexes an observed PING by its ack flag and, for
// acks, by which of the two magic payloads it carries. Must run on the
// event loop.
func (m *Manager) receivePing(p PingFrame) {
	if m.state.closed() {
		return
	}
	if !p.Ack {
		m.echoPingAck(p.Payload)
		return
	}
	switch p.Payload {
	case keepAlivePingContent:
		m.keepAlivePingAckReceived()
	case gracefulClosePingContent:
		m.gracefulClosePingAckReceived()
	default:
		m.log.Debugf("%s: ignoring PING ack with unrecognized payload %x", m.id, p.Payload)
	}
}

// echoPingAck answers a peer-initiated PING with an ack carrying the same
// payload. A failed echo is treated like any other frame-write failure:
// fatal for the connection.
func (m *Manager) echoPingAck(payload uint64) {
	if m.state.closed() {
		return
	}
	m.channel.WriteAndFlushPing(PingFrame{Payload: payload, Ack: true}, func(err error) {
		if err != nil {
			m.closeWithCause(err)
		}
	})
}

// writeAndFlushPing sends a fresh, non-ack PING and records it against
// purpose for metrics. done is invoked on the event loop, per the Channel
// contract.
func (m *Manager) writeAndFlushPing(payload uint64, purpose string, done func(error)) {
	m.metrics.incPingsSent(m.bgCtx, purpose)
	m.channel.WriteAndFlushPing(PingFrame{Payload: payload}, done)
}
