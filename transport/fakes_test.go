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

import (
	"sync"
	"time"
)

// fakeTimer is the TimerHandle returned by fakeScheduler.AfterDuration.
type fakeTimer struct {
	cancelled bool
}

func (t *fakeTimer) Cancel() { t.cancelled = true }

type fakeScheduledTask struct {
	task  func()
	timer *fakeTimer
	fired bool
}

// fakeScheduler lets a test fire a scheduled task on demand instead of
// waiting out a real timer.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeScheduledTask
}

func newFakeScheduler() *fakeScheduler { return &fakeScheduler{} }

func (s *fakeScheduler) AfterDuration(task func(), delay time.Duration) TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeScheduledTask{task: task, timer: &fakeTimer{}}
	s.tasks = append(s.tasks, t)
	return t.timer
}

// fireLatest runs the most recently scheduled task that hasn't fired or
// been cancelled, dispatching it onto m's event loop and blocking until
// it has run (or until the manager's loop has stopped, which drops it),
// the way a real Scheduler's own goroutine would deliver it.
// Reports false if there was nothing eligible to fire.
func (s *fakeScheduler) fireLatest(m *Manager) bool {
	s.mu.Lock()
	var t *fakeScheduledTask
	for i := len(s.tasks) - 1; i >= 0; i-- {
		if !s.tasks[i].fired && !s.tasks[i].timer.cancelled {
			t = s.tasks[i]
			break
		}
	}
	s.mu.Unlock()
	if t == nil {
		return false
	}
	t.fired = true
	done := make(chan struct{})
	m.disp.Post(func() {
		t.task()
		close(done)
	})
	select {
	case <-done:
	case <-m.stop:
	}
	return true
}

// fakeIdlenessDetector lets a test trigger idleness on demand.
type fakeIdlenessDetector struct {
	onIdle func()
}

func (d *fakeIdlenessDetector) Configure(_ time.Duration, onIdle func()) {
	d.onIdle = onIdle
}

func (d *fakeIdlenessDetector) fire() {
	if d.onIdle != nil {
		d.onIdle()
	}
}

// fakeChannel is a Channel and DuplexChannel double that records every
// frame written and lets a test script the next write's failure.
type fakeChannel struct {
	mu sync.Mutex

	duplex         bool
	inputShutdown  bool
	outputShutdown bool

	goAways []GoAwayFrame
	pings   []PingFrame

	closed     bool
	closeCause error

	failNextPing           error
	failNextGoAway         error
	failNextEmpty          error
	failNextShutdownOutput error
}

func newFakeChannel(duplex bool) *fakeChannel { return &fakeChannel{duplex: duplex} }

func (c *fakeChannel) WriteGoAway(g GoAwayFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failNextGoAway != nil {
		err := c.failNextGoAway
		c.failNextGoAway = nil
		return err
	}
	c.goAways = append(c.goAways, g)
	return nil
}

func (c *fakeChannel) WriteAndFlushPing(p PingFrame, done func(error)) {
	c.mu.Lock()
	c.pings = append(c.pings, p)
	var err error
	if c.failNextPing != nil {
		err = c.failNextPing
		c.failNextPing = nil
	}
	c.mu.Unlock()
	done(err)
}

func (c *fakeChannel) WriteAndFlushGoAway(g GoAwayFrame, done func(error)) {
	c.mu.Lock()
	var err error
	if c.failNextGoAway != nil {
		err = c.failNextGoAway
		c.failNextGoAway = nil
	} else {
		c.goAways = append(c.goAways, g)
	}
	c.mu.Unlock()
	done(err)
}

func (c *fakeChannel) WriteAndFlushEmpty(done func(error)) {
	c.mu.Lock()
	var err error
	if c.failNextEmpty != nil {
		err = c.failNextEmpty
		c.failNextEmpty = nil
	}
	c.mu.Unlock()
	done(err)
}

func (c *fakeChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeChannel) CloseWithCause(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closeCause = cause
}

func (c *fakeChannel) IsDuplex() bool { return c.duplex }

func (c *fakeChannel) ShutdownOutput(done func(error)) {
	c.mu.Lock()
	var err error
	if c.failNextShutdownOutput != nil {
		err = c.failNextShutdownOutput
		c.failNextShutdownOutput = nil
	} else {
		c.outputShutdown = true
	}
	c.mu.Unlock()
	done(err)
}

func (c *fakeChannel) IsInputShutdown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputShutdown
}

func (c *fakeChannel) IsOutputShutdown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outputShutdown
}

func (c *fakeChannel) setInputShutdown(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputShutdown = v
}

func (c *fakeChannel) snapshot() (goAways []GoAwayFrame, pings []PingFrame, closed bool, closeCause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]GoAwayFrame(nil), c.goAways...), append([]PingFrame(nil), c.pings...), c.closed, c.closeCause
}

// fakeTLSEngine is a TLSEngine double.
type fakeTLSEngine struct {
	mu                  sync.Mutex
	closeOutboundCalled bool
	failNext            error
}

func (t *fakeTLSEngine) CloseOutbound(done func(error)) {
	t.mu.Lock()
	t.closeOutboundCalled = true
	var err error
	if t.failNext != nil {
		err = t.failNext
		t.failNext = nil
	}
	t.mu.Unlock()
	done(err)
}

// drainLoop blocks until every task posted to m's event loop before this
// call has run, by posting a marker task and waiting for it. Once the
// manager has closed, its loop stops and drops queued tasks, so drainLoop
// also returns as soon as the loop has been stopped.
func drainLoop(m *Manager) {
	done := make(chan struct{})
	m.disp.Post(func() { close(done) })
	select {
	case <-done:
	case <-m.stop:
	}
}
