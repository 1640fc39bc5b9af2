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
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName identifies this package's instruments to whatever
// MeterProvider the host process has installed. With no MeterProvider
// installed, otel.Meter returns a no-op implementation, so recording
// metrics costs nothing beyond the call itself.
const instrumentationName = "github.com/h2ka/keepalive/transport"

// connMetrics are the OpenTelemetry instruments for frames sent and
// acked, ack timeouts, and the active-stream count. PINGs sent and
// GOAWAYs sent are recorded here only; no log line is written for them.
type connMetrics struct {
	pingsSent        metric.Int64Counter
	pingAcksReceived metric.Int64Counter
	ackTimeouts      metric.Int64Counter
	goAwaysSent      metric.Int64Counter
	activeStreams    metric.Int64UpDownCounter
}

func newConnMetrics() *connMetrics {
	meter := otel.Meter(instrumentationName)
	m := &connMetrics{}
	// Errors from instrument creation are only possible for malformed
	// static instrument names, which is a programmer error, not a
	// runtime condition to recover from; the recording helpers below skip
	// a nil instrument, so a failed creation only disables that metric.
	m.pingsSent, _ = meter.Int64Counter("h2ka.pings_sent")
	m.pingAcksReceived, _ = meter.Int64Counter("h2ka.ping_acks_received")
	m.ackTimeouts, _ = meter.Int64Counter("h2ka.ack_timeouts")
	m.goAwaysSent, _ = meter.Int64Counter("h2ka.goaways_sent")
	m.activeStreams, _ = meter.Int64UpDownCounter("h2ka.active_streams")
	return m
}

func (m *connMetrics) incPingsSent(ctx context.Context, purpose string) {
	if m.pingsSent == nil {
		return
	}
	m.pingsSent.Add(ctx, 1, metric.WithAttributes(purposeAttr(purpose)))
}

func (m *connMetrics) incPingAcksReceived(ctx context.Context, purpose string) {
	if m.pingAcksReceived == nil {
		return
	}
	m.pingAcksReceived.Add(ctx, 1, metric.WithAttributes(purposeAttr(purpose)))
}

func (m *connMetrics) incAckTimeouts(ctx context.Context, purpose string) {
	if m.ackTimeouts == nil {
		return
	}
	m.ackTimeouts.Add(ctx, 1, metric.WithAttributes(purposeAttr(purpose)))
}

func (m *connMetrics) incGoAwaysSent(ctx context.Context, debug string) {
	if m.goAwaysSent == nil {
		return
	}
	m.goAwaysSent.Add(ctx, 1, metric.WithAttributes(debugAttr(debug)))
}

func (m *connMetrics) addActiveStreams(ctx context.Context, delta int64) {
	if m.activeStreams == nil {
		return
	}
	m.activeStreams.Add(ctx, delta)
}

func purposeAttr(purpose string) attribute.KeyValue {
	return attribute.String("purpose", purpose)
}

func debugAttr(debug string) attribute.KeyValue {
	return attribute.String("debug_data", debug)
}
