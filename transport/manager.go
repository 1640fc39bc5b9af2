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

// Package transport implements the per-connection keep-alive and
// graceful-close state machines behind the keepalive package's Config.
package transport

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	keepalive "github.com/h2ka/keepalive"
	"github.com/h2ka/keepalive/internal/connlog"
)

var mgrLog = connlog.Component("transport")

// Manager runs the keep-alive and graceful-close state machines for a
// single connection. All of its state is owned by one goroutine, reached
// exclusively through the methods below; every one of them is safe to
// call from any goroutine because they either only touch atomics or post
// onto the event loop rather than mutating state directly.
type Manager struct {
	id  string
	cfg keepalive.Config

	channel   Channel
	duplex    DuplexChannel
	scheduler Scheduler
	idleness  IdlenessDetector
	tls       TLSEngine

	disp     *eventDispatcher
	stop     chan struct{}
	stopOnce sync.Once
	state    *stateStore
	metrics  *connMetrics
	log      *connlog.Tagged
	bgCtx    context.Context

	activeStreams int64

	gracefulCloseStarted      atomic.Bool
	secondGoAwayIsTimeoutPath bool
	secondGoAwayFlushed       bool
	secondGoAwayTimeoutCause  error
	shutdownStarted           bool
	outputShuttingDown        bool
}

// Option customizes a Manager at construction.
type Option func(*Manager)

// WithTLSEngine configures close_notify sequencing before output
// shutdown. Omit it for a plaintext connection.
func WithTLSEngine(tls TLSEngine) Option {
	return func(m *Manager) { m.tls = tls }
}

// NewManager constructs a Manager and starts its event loop goroutine.
// channel, scheduler, and idleness are required; cfg is validated before
// anything else happens.
func NewManager(cfg keepalive.Config, channel Channel, scheduler Scheduler, idleness IdlenessDetector, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Manager{
		id:        uuid.NewString(),
		cfg:       cfg,
		channel:   channel,
		scheduler: scheduler,
		idleness:  idleness,
		disp:      newEventDispatcher(),
		stop:      make(chan struct{}),
		state:     newStateStore(),
		metrics:   newConnMetrics(),
		log:       mgrLog,
		bgCtx:     context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if channel.IsDuplex() {
		dc, ok := channel.(DuplexChannel)
		if !ok {
			return nil, newIllegalStateError("channel reports IsDuplex but does not implement DuplexChannel")
		}
		m.duplex = dc
	}
	if cfg.IdleDuration > 0 {
		idleness.Configure(cfg.IdleDuration, func() { m.disp.Post(m.idleDetected) })
	}
	duplexDesc := "non-duplex"
	if m.duplex != nil {
		duplexDesc = "duplex"
	}
	tlsDesc := "no TLS"
	if m.tls != nil {
		tlsDesc = "TLS"
	}
	m.log.Debugf("%s: configured for %s channel (%s), idleDuration=%s ackTimeout=%s withoutActiveStreams=%t",
		m.id, duplexDesc, tlsDesc, cfg.IdleDuration, cfg.AckTimeout, cfg.WithoutActiveStreams)
	go m.disp.run(m.stop)
	return m, nil
}
