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

import "time"

// TimerHandle is returned by Scheduler.AfterDuration. Cancel is
// best-effort: if the task has already been dequeued for execution, Cancel
// has no effect, and the task's own state check at that point is the real
// safety net.
type TimerHandle interface {
	Cancel()
}

// Scheduler runs tasks after a delay, on the connection's event-loop
// goroutine. It is the only source of time the manager consults; there is
// no direct use of time.AfterFunc inside the FSMs so that tests can
// substitute a fake.
type Scheduler interface {
	AfterDuration(task func(), delay time.Duration) TimerHandle
}

// IdlenessDetector watches a channel for a period with no read and no
// write activity and invokes onIdle, on the event-loop goroutine, once
// that period elapses. Configure is called at most once per Manager.
type IdlenessDetector interface {
	Configure(idleThreshold time.Duration, onIdle func())
}

// Channel is the transport collaborator the manager writes PING and
// GOAWAY frames to. Write queues a frame without flushing; WriteAndFlush*
// writes and flushes, invoking done (with a nil error on success) once
// the write settles. done is always invoked on the event-loop goroutine
// — implementations backed by a real async transport must trampoline
// their completion callback the same way EventDispatcher does.
type Channel interface {
	// WriteGoAway queues g without flushing. Used for the first GOAWAY of
	// a graceful close, which is immediately followed by a flushed PING.
	WriteGoAway(g GoAwayFrame) error

	// WriteAndFlushPing writes and flushes p, reporting the result via done.
	WriteAndFlushPing(p PingFrame, done func(error))

	// WriteAndFlushGoAway writes and flushes g, reporting the result via done.
	WriteAndFlushGoAway(g GoAwayFrame, done func(error))

	// WriteAndFlushEmpty flushes anything already queued behind prior
	// writes without adding a new frame. Used by the shutdown sequencer
	// to guarantee queued frames are observed before the channel closes.
	WriteAndFlushEmpty(done func(error))

	// Close closes the channel immediately, with no specific cause.
	Close()

	// CloseWithCause closes the channel immediately, attributing the
	// closure to cause for logging and for any error surfaced to callers
	// blocked on the channel.
	CloseWithCause(cause error)

	// IsDuplex reports whether this channel supports independent
	// half-close of input and output. When false, any observed half-close
	// is treated as a full close.
	IsDuplex() bool
}

// DuplexChannel is implemented by a Channel that also satisfies IsDuplex.
// A Channel that returns true from IsDuplex MUST also implement this
// interface; the manager asserts for it once at construction.
type DuplexChannel interface {
	Channel

	// ShutdownOutput half-closes the write side. done reports the result.
	ShutdownOutput(done func(error))

	IsInputShutdown() bool
	IsOutputShutdown() bool
}

// TLSEngine is the optional TLS collaborator. When a Manager is
// constructed with a non-nil TLSEngine, the shutdown sequencer sends
// close_notify (RFC 5246 §7.2.1) before shutting down transport output.
type TLSEngine interface {
	// CloseOutbound emits close_notify and invokes done once the write
	// that carries it has flushed.
	CloseOutbound(done func(error))
}
