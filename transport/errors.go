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

import "fmt"

// StacklessTimeoutError is a TimeoutError-shaped value used for the three
// timeouts this manager can trigger: the keep-alive PING(ACK) wait, the
// graceful-close PING(ACK) wait, and the post-output-shutdown wait for the
// peer's reciprocal input-shutdown. It carries no stack trace — Go errors
// never capture one unless explicitly asked to, so there's nothing to
// elide here.
type StacklessTimeoutError struct {
	Op  string
	Msg string
}

func (e *StacklessTimeoutError) Error() string {
	return fmt.Sprintf("transport: %s: %s", e.Op, e.Msg)
}

// Timeout reports true, satisfying the conventional `interface{ Timeout() bool }`
// check many callers use to distinguish timeouts from other failures.
func (e *StacklessTimeoutError) Timeout() bool { return true }

func newTimeoutError(op, msg string) *StacklessTimeoutError {
	return &StacklessTimeoutError{Op: op, Msg: msg}
}

// IllegalStateError signals a state the manager cannot recover from: the
// half-close race where the peer shuts down its output (our input) before
// graceful close has reached its output-shutdown phase, meaning we cannot
// legally keep reading; an input half-close on a non-duplex channel; and,
// from NewManager, a channel that reports IsDuplex without implementing
// DuplexChannel.
type IllegalStateError struct {
	Msg string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("transport: illegal state: %s", e.Msg)
}

func newIllegalStateError(msg string) *IllegalStateError {
	return &IllegalStateError{Msg: msg}
}

// CompositeError composes a primary cause with causes that occurred while
// handling it: when a timeout is followed by a write failure, the write
// failure is primary and the timeout is recorded as suppressed so neither
// is lost.
type CompositeError struct {
	Cause      error
	Suppressed []error
}

func (e *CompositeError) Error() string {
	if len(e.Suppressed) == 0 {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s (suppressed: %s)", e.Cause.Error(), e.Suppressed[0].Error())
}

func (e *CompositeError) Unwrap() error { return e.Cause }

// addSuppressed attaches suppressed to primary's error chain. If primary
// is nil, suppressed becomes the (sole) cause — there is nothing to be
// primary over.
func addSuppressed(primary, suppressed error) error {
	if suppressed == nil {
		return primary
	}
	if primary == nil {
		return suppressed
	}
	if ce, ok := primary.(*CompositeError); ok {
		ce.Suppressed = append(ce.Suppressed, suppressed)
		return ce
	}
	return &CompositeError{Cause: primary, Suppressed: []error{suppressed}}
}
