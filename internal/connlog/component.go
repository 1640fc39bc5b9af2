/*
 *
 * Copyright 2020 gRPC authors.
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

package connlog

import "fmt"

// Tagged is a Logger that prefixes every line with a fixed tag, e.g. the
// connection's correlation ID or the sub-protocol ("keepalive",
// "gracefulclose") that produced the line. The manager's state machines
// all log through one Tagged logger named "transport"; the connection's
// correlation ID is added to the message at each call site.
type Tagged struct {
	tag string
}

// Component returns a Tagged logger prefixed with name.
func Component(name string) *Tagged {
	return &Tagged{tag: name}
}

func (c *Tagged) prefix(args []any) []any {
	return append([]any{"[" + c.tag + "]"}, args...)
}

func (c *Tagged) Debug(args ...any) {
	Debug(c.prefix(args)...)
}

func (c *Tagged) Debugf(format string, args ...any) {
	Debug("[" + c.tag + "] " + fmt.Sprintf(format, args...))
}

func (c *Tagged) Trace(args ...any) {
	Trace(c.prefix(args)...)
}

func (c *Tagged) Tracef(format string, args ...any) {
	Trace("[" + c.tag + "] " + fmt.Sprintf(format, args...))
}

func (c *Tagged) Warning(args ...any) {
	Warning(c.prefix(args)...)
}

func (c *Tagged) Warningf(format string, args ...any) {
	Warning("[" + c.tag + "] " + fmt.Sprintf(format, args...))
}

func (c *Tagged) Error(args ...any) {
	Error(c.prefix(args)...)
}

func (c *Tagged) Errorf(format string, args ...any) {
	Error("[" + c.tag + "] " + fmt.Sprintf(format, args...))
}
