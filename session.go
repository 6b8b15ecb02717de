/*
  The MIT License (MIT)

  Copyright (c) 2015 Nirbhay Choubey

  Permission is hereby granted, free of charge, to any person obtaining a copy
  of this software and associated documentation files (the "Software"), to deal
  in the Software without restriction, including without limitation the rights
  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
  copies of the Software, and to permit persons to whom the Software is
  furnished to do so, subject to the following conditions:

  The above copyright notice and this permission notice shall be included in all
  copies or substantial portions of the Software.

  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
  SOFTWARE.
*/

package mysql

import (
	"log"
	"sync"
)

// TraceLogger, when set, receives a line for every window fetch, drain,
// displacement and abort of a streaming result.
var TraceLogger *log.Logger

func trace(format string, a ...interface{}) {
	if TraceLogger != nil {
		TraceLogger.Printf(format, a...)
	}
}

// Session is the state results on one physical connection share: the
// connection lock, the runtime rows are read from and the slot of the one
// result allowed to stream from the wire.
type Session struct {
	// serializes every read from the runtime
	mu sync.Mutex

	runtime Runtime
	opts    *Options

	// the streaming result currently owning the wire
	active *Rows
}

// NewSession returns a session reading from rt. A nil opts selects the
// defaults.
func NewSession(rt Runtime, opts *Options) *Session {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Session{runtime: rt, opts: opts}
}

// Options returns the configuration results of the session are built with.
func (s *Session) Options() *Options {
	return s.opts
}

// ActiveStreaming returns the result currently streaming from the
// connection, or nil.
func (s *Session) ActiveStreaming() *Rows {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// displaceLocked loads the active streaming result fully, freeing the wire
// for another result. r is left alone. Must hold s.mu.
func (s *Session) displaceLocked(r *Rows) error {
	prev := s.active
	if prev == nil || prev == r {
		return nil
	}
	trace("mysql: displacing streaming result %p", prev)

	s.active = nil
	return prev.loadFullyLocked()
}

// registerLocked makes r the active streaming result. Must hold s.mu.
func (s *Session) registerLocked(r *Rows) error {
	if err := s.displaceLocked(r); err != nil {
		return err
	}
	s.active = r
	return nil
}

// releaseLocked clears the active streaming slot if r holds it. Must hold
// s.mu.
func (s *Session) releaseLocked(r *Rows) {
	if s.active == r {
		s.active = nil
	}
}

// Cancel cancels the in-flight query of the connection. A result still
// streaming is drained instead and its remaining rows discarded; the
// server is not involved.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r := s.active; r != nil && !r.isClosedLocked() && !r.isEOF {
		trace("mysql: cancel drains streaming result %p", r)
		return r.skipRemainingLocked(true)
	}
	return s.runtime.Cancel()
}
