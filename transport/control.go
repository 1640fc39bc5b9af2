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
	"math/rand"

	"golang.org/x/net/http2"
)

// PingFrame is the manager's view of an HTTP/2 PING frame: an 8-byte
// opaque payload and the ack flag. Encoding it onto the wire is the
// Channel implementation's job; the manager only ever constructs and
// inspects these values.
type PingFrame struct {
	Payload uint64
	Ack     bool
}

// GoAwayFrame is the manager's view of an HTTP/2 GOAWAY frame.
type GoAwayFrame struct {
	LastStreamID uint32
	ErrorCode    http2.ErrCode
	DebugData    []byte
}

// maxStreamID is 2^31-1, the maximum possible HTTP/2 stream ID. The first
// GOAWAY of a graceful close always fences with this value so the peer
// knows no new stream will be honored.
const maxStreamID uint32 = (1 << 31) - 1

// Keep-alive and graceful-close PING frames carry one of these two magic
// 64-bit payloads, chosen once at process start. The low bit distinguishes
// them (even = keep-alive, odd = graceful-close) so the two sub-protocols
// are unambiguously demultiplexed on ACK receipt and visually
// distinguishable in a hex frame trace.
var (
	keepAlivePingContent     = rand.Uint64() &^ 1 // even
	gracefulClosePingContent = rand.Uint64() | 1   // odd
)

// GOAWAY debug payloads: read-only byte slices, duplicated into a fresh
// slice (never by handing out the backing array) on each send. The
// package-level slices are never mutated, so duplicating them is just a
// defensive copy for a caller that might retain and later edit the slice
// it was handed.
var (
	debugLocal                = []byte("0.local")
	debugRemote               = []byte("1.remote")
	debugSecond               = []byte("2.second")
	debugGracefulCloseTimeout = []byte("3.graceful-close-timeout")
	debugKeepAliveTimeout     = []byte("4.keep-alive-timeout")
)

// dup returns a fresh copy of a static debug payload so a GoAwayFrame
// never aliases package-level storage.
func dup(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
