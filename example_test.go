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

package keepalive_test

import (
	"fmt"
	"time"

	keepalive "github.com/h2ka/keepalive"
	"github.com/h2ka/keepalive/transport"
)

// A minimal Channel that just counts what it's asked to write. A real
// implementation would forward these calls to an HTTP/2 connection.
type countingChannel struct {
	pings, goAways int
}

func (c *countingChannel) WriteGoAway(transport.GoAwayFrame) error { c.goAways++; return nil }
func (c *countingChannel) WriteAndFlushPing(p transport.PingFrame, done func(error)) {
	c.pings++
	done(nil)
}
func (c *countingChannel) WriteAndFlushGoAway(g transport.GoAwayFrame, done func(error)) {
	c.goAways++
	done(nil)
}
func (c *countingChannel) WriteAndFlushEmpty(done func(error)) { done(nil) }
func (c *countingChannel) Close()                              {}
func (c *countingChannel) CloseWithCause(error)                {}
func (c *countingChannel) IsDuplex() bool                      { return false }

type immediateScheduler struct{}

func (immediateScheduler) AfterDuration(func(), time.Duration) transport.TimerHandle {
	return noopTimer{}
}

type noopTimer struct{}

func (noopTimer) Cancel() {}

type noopIdlenessDetector struct{}

func (noopIdlenessDetector) Configure(time.Duration, func()) {}

// Example demonstrates wiring a Manager to a connection-owning type's own
// Channel, Scheduler, and IdlenessDetector implementations, then driving
// a graceful close.
func Example() {
	cfg := keepalive.DefaultConfig()
	cfg.AckTimeout = 5 * time.Second

	ch := &countingChannel{}
	m, err := transport.NewManager(cfg, ch, immediateScheduler{}, noopIdlenessDetector{})
	if err != nil {
		fmt.Println("new manager:", err)
		return
	}

	closeStream := m.StreamOpened()
	closeStream()

	started := make(chan struct{})
	m.InitiateGracefulClose(true, func() {
		fmt.Println("graceful close started")
		close(started)
	})
	<-started

	// Output:
	// graceful close started
}
