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

// Package keepalive is the top-level entry point for the per-connection
// keep-alive and graceful-close manager. It holds only configuration
// (Config); the state machines themselves live in the transport
// subpackage, which a connection owner constructs by calling
// transport.NewManager with a Config and the collaborator interfaces it
// implements (transport.Channel, transport.Scheduler, and
// transport.IdlenessDetector).
//
// A Manager probes an idle HTTP/2 connection with PING frames to detect a
// dead peer, and tears a connection down using the two-GOAWAY procedure
// from RFC 7540 §6.8 when asked to close gracefully. It does not parse or
// encode HTTP/2 frames, multiplex streams, or run a TLS engine; those stay
// with the caller and are reached through the collaborator interfaces.
package keepalive
