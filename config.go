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

// Package keepalive configures the per-connection keep-alive and
// graceful-close manager implemented in the transport subpackage.
package keepalive

import (
	"errors"
	"math"
	"time"
)

var errAckTimeoutNotPositive = errors.New("keepalive: AckTimeout must be positive")

// infinity disables idle-probing when used as Config.IdleDuration: no
// amount of quiescence will ever exceed it.
const infinity = time.Duration(math.MaxInt64)

// DefaultAckTimeout is used by DefaultConfig, and governs the keep-alive
// PING(ACK) wait, the graceful-close PING(ACK) wait, and the
// post-output-shutdown wait for the peer's reciprocal input-shutdown.
const DefaultAckTimeout = 20 * time.Second

// Config configures a Manager: everything its two state machines need to
// know, gathered into one value rather than scattered across separate
// policy objects.
type Config struct {
	// IdleDuration is the idleness threshold after which a keep-alive PING
	// is emitted. A value <= 0 disables keep-alive probing entirely,
	// while still allowing AckTimeout to govern graceful close and
	// input-shutdown waits.
	IdleDuration time.Duration

	// AckTimeout bounds how long the manager waits for a PING(ACK),
	// whether the PING was sent for keep-alive or for graceful close, and
	// also bounds how long it waits for the peer's reciprocal
	// input-shutdown after the manager shuts down its own output.
	AckTimeout time.Duration

	// WithoutActiveStreams, when true, allows idle keep-alive probing
	// even while the connection has zero active streams. When false,
	// idleness detected with zero active streams is a no-op.
	WithoutActiveStreams bool
}

// DefaultConfig returns conservative defaults: keep-alive probing
// disabled (IdleDuration is infinity, i.e. never fires), a 20s ack
// timeout, and keep-alive suppressed while idle with no active streams.
func DefaultConfig() Config {
	return Config{
		IdleDuration:         infinity,
		AckTimeout:           DefaultAckTimeout,
		WithoutActiveStreams: false,
	}
}

// Validate reports a non-nil error if the configuration cannot be used to
// construct a Manager, e.g. a non-positive ack timeout, which would make
// every timer fire immediately.
func (c Config) Validate() error {
	if c.AckTimeout <= 0 {
		return errAckTimeoutNotPositive
	}
	return nil
}
