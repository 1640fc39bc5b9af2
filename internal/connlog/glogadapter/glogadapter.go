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

// Package glogadapter adapts github.com/golang/glog to the connlog.Logger
// interface. Install it with:
//
//	connlog.SetLogger(glogadapter.New())
package glogadapter

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/h2ka/keepalive/internal/connlog"
)

// traceVerbosity is the glog -v level that enables connlog's TRACE lines.
const traceVerbosity = 2

type adapter struct{}

// New returns a connlog.Logger backed by glog.
func New() connlog.Logger {
	return adapter{}
}

func (adapter) Debug(args ...any) {
	glog.InfoDepth(1, args...)
}

func (adapter) Debugf(format string, args ...any) {
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}

func (adapter) Trace(args ...any) {
	glog.V(traceVerbosity).Info(args...)
}

func (adapter) Tracef(format string, args ...any) {
	glog.V(traceVerbosity).Infof(format, args...)
}

func (adapter) Warning(args ...any) {
	glog.WarningDepth(1, args...)
}

func (adapter) Warningf(format string, args ...any) {
	glog.WarningDepth(1, fmt.Sprintf(format, args...))
}

func (adapter) Error(args ...any) {
	glog.ErrorDepth(1, args...)
}

func (adapter) Errorf(format string, args ...any) {
	glog.ErrorDepth(1, fmt.Sprintf(format, args...))
}

func (adapter) V(l connlog.Level) bool {
	if l == connlog.LevelTrace {
		return bool(glog.V(traceVerbosity))
	}
	return true
}
