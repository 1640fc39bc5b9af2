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

import "testing"

func TestInputHalfCloseBeforeGracefulCloseIsIllegalState(t *testing.T) {
	ch := newFakeChannel(true)
	sched := newFakeScheduler()
	idle := &fakeIdlenessDetector{}
	m := newTestManager(t, testConfig(), ch, sched, idle)

	// The peer half-closes before we've even started a graceful close.
	m.NotifyInputHalfClosed()
	drainLoop(m)

	_, _, closed, cause := ch.snapshot()
	if !closed {
		t.Fatalf("an out-of-sequence input half-close must close the connection")
	}
	if _, ok := cause.(*IllegalStateError); !ok {
		t.Fatalf("close cause = %T, want *IllegalStateError", cause)
	}
}

func TestInputHalfCloseOnNonDuplexChannelIsIllegalState(t *testing.T) {
	ch := newFakeChannel(false)
	sched := newFakeScheduler()
	idle := &fakeIdlenessDetector{}
	m := newTestManager(t, testConfig(), ch, sched, idle)

	m.NotifyInputHalfClosed()
	drainLoop(m)

	_, _, closed, cause := ch.snapshot()
	if !closed {
		t.Fatalf("input half-close on a non-duplex channel must close the connection")
	}
	if _, ok := cause.(*IllegalStateError); !ok {
		t.Fatalf("close cause = %T, want *IllegalStateError", cause)
	}
}

func TestHalfCloseSequencedAfterGracefulCloseCompletes(t *testing.T) {
	ch := newFakeChannel(true)
	sched := newFakeScheduler()
	idle := &fakeIdlenessDetector{}
	m := newTestManager(t, testConfig(), ch, sched, idle)

	m.InitiateGracefulClose(true, nil)
	drainLoop(m)
	_, pings, _, _ := ch.snapshot()
	m.PingReceived(PingFrame{Payload: pings[0].Payload, Ack: true})
	drainLoop(m)

	if !ch.IsOutputShutdown() {
		t.Fatalf("output must be shut down once graceful close completes on a duplex channel")
	}
	if _, _, closed, _ := ch.snapshot(); closed {
		t.Fatalf("connection must not fully close until the peer's reciprocal half-close is observed")
	}

	ch.setInputShutdown(true)
	m.NotifyInputHalfClosed()
	drainLoop(m)

	_, _, closed, cause := ch.snapshot()
	if !closed {
		t.Fatalf("connection must close once both halves are shut down")
	}
	if cause != nil {
		t.Fatalf("close cause = %v, want nil for a clean sequenced close", cause)
	}
}

func TestInputShutdownTimeoutFiresWhenPeerNeverHalfCloses(t *testing.T) {
	ch := newFakeChannel(true)
	sched := newFakeScheduler()
	idle := &fakeIdlenessDetector{}
	m := newTestManager(t, testConfig(), ch, sched, idle)

	m.InitiateGracefulClose(true, nil)
	drainLoop(m)
	_, pings, _, _ := ch.snapshot()
	m.PingReceived(PingFrame{Payload: pings[0].Payload, Ack: true})
	drainLoop(m)

	if !sched.fireLatest(m) {
		t.Fatalf("expected an input-shutdown-timeout task to be scheduled after output shutdown")
	}

	_, _, closed, cause := ch.snapshot()
	if !closed {
		t.Fatalf("connection must close once the input-shutdown wait times out")
	}
	if _, ok := cause.(*StacklessTimeoutError); !ok {
		t.Fatalf("close cause = %T, want *StacklessTimeoutError", cause)
	}
}
