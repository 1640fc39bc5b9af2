/*
 *
 * Copyright 2015 gRPC authors.
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

// Package connlog defines the logging facade used by the keep-alive and
// graceful-close manager. It follows the same shape as grpc-go's grpclog
// package: a small Logger interface, a process-wide default implementation,
// and a SetLogger hook so a host process can redirect output to whatever
// backend it prefers (see the glogadapter subpackage for one such backend).
package connlog

import (
	"log"
	"os"
)

// Level identifies the verbosity level used by V.
type Level int32

const (
	// LevelDebug covers lifecycle events. The manager logs at this level
	// its resolved configuration at construction, stray or unrecognized
	// PING acks, and a channel closure that carries a cause. Idleness
	// detection, graceful-close start, timeouts as such, and a closure
	// without a cause are not logged.
	LevelDebug Level = 0
	// LevelTrace covers high-volume, expected events: successful keep-alive
	// PING(ACK) receipt.
	LevelTrace Level = 1
)

// Logger does the underlying logging work for connlog.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Trace(args ...any)
	Tracef(format string, args ...any)
	Warning(args ...any)
	Warningf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	// V reports whether verbosity level l is enabled.
	V(l Level) bool
}

// SetLogger installs l as the package-wide logger. Not mutex-protected;
// call before constructing any Manager.
func SetLogger(l Logger) {
	logger = l
}

const (
	debugLog int = iota
	traceLog
	warningLog
	errorLog
)

var severityName = []string{
	debugLog:   "DEBUG",
	traceLog:   "TRACE",
	warningLog: "WARNING",
	errorLog:   "ERROR",
}

// stdLogger is the default Logger, backed by the standard library's log
// package. It enables LevelDebug but not LevelTrace: TRACE is reserved
// for the noisiest, most-expected events.
type stdLogger struct {
	m []*log.Logger
}

func newStdLogger() Logger {
	m := make([]*log.Logger, len(severityName))
	for s := range severityName {
		m[s] = log.New(os.Stderr, severityName[s]+": ", log.LstdFlags)
	}
	return &stdLogger{m: m}
}

func (g *stdLogger) Debug(args ...any)                 { g.m[debugLog].Print(args...) }
func (g *stdLogger) Debugf(format string, args ...any)  { g.m[debugLog].Printf(format, args...) }
func (g *stdLogger) Trace(args ...any)                 { g.m[traceLog].Print(args...) }
func (g *stdLogger) Tracef(format string, args ...any) { g.m[traceLog].Printf(format, args...) }
func (g *stdLogger) Warning(args ...any)                { g.m[warningLog].Print(args...) }
func (g *stdLogger) Warningf(format string, args ...any) { g.m[warningLog].Printf(format, args...) }
func (g *stdLogger) Error(args ...any)                 { g.m[errorLog].Print(args...) }
func (g *stdLogger) Errorf(format string, args ...any) { g.m[errorLog].Printf(format, args...) }

func (g *stdLogger) V(l Level) bool {
	return l == LevelDebug
}

var logger = newStdLogger()

// V reports whether verbosity level l is enabled by the installed logger.
func V(l Level) bool {
	return logger.V(l)
}

// Debug logs to the DEBUG log.
func Debug(args ...any) { logger.Debug(args...) }

// Debugf logs to the DEBUG log. Arguments are handled in the manner of fmt.Printf.
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }

// Trace logs to the TRACE log, gated on V(LevelTrace).
func Trace(args ...any) {
	if logger.V(LevelTrace) {
		logger.Trace(args...)
	}
}

// Tracef logs to the TRACE log, gated on V(LevelTrace).
func Tracef(format string, args ...any) {
	if logger.V(LevelTrace) {
		logger.Tracef(format, args...)
	}
}

// Warning logs to the WARNING log.
func Warning(args ...any) { logger.Warning(args...) }

// Warningf logs to the WARNING log. Arguments are handled in the manner of fmt.Printf.
func Warningf(format string, args ...any) { logger.Warningf(format, args...) }

// Error logs to the ERROR log.
func Error(args ...any) { logger.Error(args...) }

// Errorf logs to the ERROR log. Arguments are handled in the manner of fmt.Printf.
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
