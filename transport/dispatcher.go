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

import "sync"

// eventDispatcher is an unbounded, ordered mailbox of tasks drained by a
// single goroutine. The queue shape — a mutex-guarded backlog plus a
// buffered-by-one channel — guarantees Post never blocks the caller,
// which matters because some callers (a timer firing, a write-completion
// callback) may themselves be running on the loop goroutine while posting
// a follow-up event.
//
// Every call to Post goes through the same unbounded queue regardless of
// which goroutine calls it, rather than branching on whether the caller
// happens to already be the loop goroutine: Go has no supported way to
// ask "is the calling goroutine the one running my loop?", so there is no
// inline-execution fast path here, only the queue. That preserves the one
// invariant that actually matters for correctness — exactly one task
// executes at a time, so all FSM state is mutated by a single goroutine.
// See DESIGN.md.
type eventDispatcher struct {
	c    chan func()
	mu   sync.Mutex
	back []func()
}

func newEventDispatcher() *eventDispatcher {
	return &eventDispatcher{c: make(chan func(), 1)}
}

// Post enqueues fn to run on the loop goroutine. Safe to call from any
// goroutine, including the loop goroutine itself.
func (d *eventDispatcher) Post(fn func()) {
	d.mu.Lock()
	if len(d.back) == 0 {
		select {
		case d.c <- fn:
			d.mu.Unlock()
			return
		default:
		}
	}
	d.back = append(d.back, fn)
	d.mu.Unlock()
}

// load moves the next backlogged task onto the channel, if any and if
// there's room. Called by the loop goroutine after it receives a task.
func (d *eventDispatcher) load() {
	d.mu.Lock()
	if len(d.back) > 0 {
		select {
		case d.c <- d.back[0]:
			d.back[0] = nil
			d.back = d.back[1:]
		default:
		}
	}
	d.mu.Unlock()
}

// run is the loop goroutine's body. It returns when stop is closed; any
// tasks still queued at that point are dropped, since no further state
// transitions are legal once the manager has closed.
func (d *eventDispatcher) run(stop <-chan struct{}) {
	for {
		select {
		case fn := <-d.c:
			d.load()
			fn()
		case <-stop:
			return
		}
	}
}
