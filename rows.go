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
	"math"
	"math/big"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// ResultSetType is the cursor capability of a result.
type ResultSetType int

const (
	// ForwardOnly results only move forward; rows of a finished window
	// are dropped.
	ForwardOnly ResultSetType = iota
	// ScrollInsensitive results keep every fetched row and may be
	// positioned freely.
	ScrollInsensitive
	// ScrollSensitive behaves like ScrollInsensitive.
	ScrollSensitive
)

func (t ResultSetType) String() string {
	switch t {
	case ForwardOnly:
		return "FORWARD_ONLY"
	case ScrollInsensitive:
		return "SCROLL_INSENSITIVE"
	case ScrollSensitive:
		return "SCROLL_SENSITIVE"
	}
	return "UNKNOWN"
}

// Owner is notified when a result it created is closed, so that it can
// close itself on completion.
type Owner interface {
	ResultClosed(r *Rows)
}

// RowsConfig describes how a result is read.
type RowsConfig struct {
	// Binary selects the binary row protocol (prepared statements).
	Binary bool
	// FetchSize is the number of rows read per window; 0 reads the whole
	// result upfront, a negative value uses the session default.
	FetchSize int
	Type      ResultSetType
	// Callable marks the result of a stored procedure call, which is
	// always read upfront.
	Callable bool
	Owner    Owner
}

type rowsState uint8

const (
	stateUnpopulated rowsState = iota
	stateBuffering
	stateStreaming
	stateFullyLoaded
	stateClosed
	stateAborted
)

// Rows is a result set: a cursor over rows fetched from a Session, or
// built in memory, with typed access to the columns of the current row.
//
// Columns are numbered from 1. Rows is not safe for concurrent use, except
// for Abort. Every method that touches rows or the connection holds the
// session lock, so results of one session never interleave their reads
// and decoding.
type Rows struct {
	session *Session
	columns []*ColumnDefinition
	opts    *Options
	loc     *time.Location

	dec   rowDecoder
	store rowStore

	resultType ResultSetType
	fetchSize  int
	callable   bool
	owner      Owner

	state     rowsState
	streaming bool
	isEOF     bool

	// -1 before the first row, store.Len() after the last one
	rowPointer    int
	dataFetchTime int
	// rows dropped by earlier windows of a forward-only result
	discarded int
	// index of the row the decoder has been given, -1 for none
	loaded int

	names       map[string]int
	statusFlags uint16
	warnings    uint16
	outParams   bool

	// set by Abort, from any goroutine; the rows are freed by the next
	// holder of the session lock
	aborted  atomic.Bool
	notified atomic.Bool
}

func newRows(columns []*ColumnDefinition, opts *Options, binary bool) *Rows {
	if opts == nil {
		opts = DefaultOptions()
	}
	r := &Rows{
		columns:    columns,
		opts:       opts,
		loc:        time.UTC,
		rowPointer: -1,
		loaded:     -1,
	}
	if binary {
		r.dec = newBinaryDecoder(columns, opts)
	} else {
		r.dec = newTextDecoder(columns, opts)
	}
	return r
}

func maxRowBuffer(o *Options) int {
	if o.MaxRowBuffer <= 0 {
		return _DEFAULT_MAX_ROW_BUFFER
	}
	return o.MaxRowBuffer
}

// lock takes the connection lock of the session. In-memory results have
// none.
func (r *Rows) lock() {
	if r.session != nil {
		r.session.mu.Lock()
	}
}

func (r *Rows) unlock() {
	if r.session != nil {
		r.session.mu.Unlock()
	}
}

// NewRows creates the result of a query whose column definitions have been
// read from s. Its rows are read from the session's runtime: all of them
// right away when the fetch size is 0 or the result is callable, one
// window at a time otherwise. A streaming result becomes the session's
// active one; the previous active result is loaded fully first.
func NewRows(s *Session, columns []*ColumnDefinition, cfg RowsConfig) (*Rows, error) {
	if s == nil {
		return nil, myError(ErrUsage, "result without session")
	}

	r := newRows(columns, s.opts, cfg.Binary)
	r.session = s
	r.resultType = cfg.Type
	r.callable = cfg.Callable
	r.owner = cfg.Owner

	r.fetchSize = cfg.FetchSize
	if r.fetchSize < 0 {
		r.fetchSize = s.opts.DefaultFetchSize
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r.fetchSize == 0 || r.callable {
		if err := s.displaceLocked(nil); err != nil {
			return nil, err
		}
		r.store = newMaterializedStore(10, maxRowBuffer(r.opts))
		r.state = stateBuffering
		if err := r.fetchAllLocked(); err != nil {
			return nil, err
		}
		return r, nil
	}

	if r.resultType == ForwardOnly && r.fetchSize == 1 {
		r.store = new(liveStore)
	} else {
		r.store = newMaterializedStore(max10(r.fetchSize), maxRowBuffer(r.opts))
	}
	r.streaming = true
	r.state = stateStreaming

	if err := s.registerLocked(r); err != nil {
		return nil, err
	}
	if err := r.addStreamingValueLocked(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewStaticRows creates a fully loaded, scrollable result from in-memory
// data, as used for metadata results. Values are given as Go values (nil
// for NULL) and read back through the text protocol decoder.
func NewStaticRows(names []string, types []ColumnType, data [][]interface{}, opts *Options) (*Rows, error) {
	if len(names) != len(types) {
		return nil, myError(ErrUsage, "column names and types differ in number")
	}

	columns := make([]*ColumnDefinition, len(names))
	for i := range names {
		columns[i] = NewColumnDefinition(names[i], types[i])
	}

	r := newRows(columns, opts, false)
	r.resultType = ScrollSensitive
	r.store = newMaterializedStore(max10(len(data)), maxRowBuffer(r.opts))

	var b []byte
	for _, values := range data {
		if len(values) != len(columns) {
			return nil, myError(ErrUsage, "row width differs from column count")
		}
		b = appendTextRow(b[:0], columns, values)
		if err := r.store.Append(b); err != nil {
			return nil, err
		}
	}

	r.isEOF = true
	r.dataFetchTime = 1
	r.state = stateFullyLoaded
	return r, nil
}

// <!-- fetching -->

// readNextValueLocked reads one row into the store. It reports false once
// the server has sent the last row. Must hold the session lock.
func (r *Rows) readNextValueLocked() (bool, error) {
	if r.aborted.Load() {
		r.abortLocked()
		return false, myError(ErrCursor)
	}

	status, b, err := r.session.runtime.FetchRow()
	if err != nil {
		return false, r.failLocked(err)
	}

	switch status {
	case NoMoreData:
		r.endOfDataLocked()
		return false, nil
	case TruncatedWithWarning:
		if r.warnings < math.MaxUint16 {
			r.warnings++
		}
	}

	if err = r.store.Append(b); err != nil {
		return false, r.failLocked(err)
	}
	r.loaded = -1
	return true, nil
}

// endOfDataLocked records the server status sent after the last row and
// frees the connection unless more results follow.
func (r *Rows) endOfDataLocked() {
	r.isEOF = true
	r.state = stateFullyLoaded

	statusFlags, warnings := r.session.runtime.ServerStatus()
	r.statusFlags = statusFlags
	if int(r.warnings)+int(warnings) > math.MaxUint16 {
		r.warnings = math.MaxUint16
	} else {
		r.warnings += warnings
	}
	if statusFlags&_SERVER_PS_OUT_PARAMS != 0 {
		r.outParams = true
	}
	if statusFlags&_SERVER_MORE_RESULTS_EXISTS == 0 {
		r.session.releaseLocked(r)
	}
}

// failLocked closes the result after a failed read. Server errors are
// returned as they are; anything else becomes a protocol error.
func (r *Rows) failLocked(err error) error {
	trace("mysql: result %p invalidated: %v", r, err)

	r.isEOF = true
	r.state = stateClosed
	if r.session != nil {
		r.session.releaseLocked(r)
	}
	r.store.Release()
	r.loaded = -1
	r.notifyOwner()

	var e *Error
	if errors.As(err, &e) && (e.code < ErrUnknown || e.code == ErrProtocol ||
		e.code == ErrInvalidPacket) {
		return err
	}
	return protocolError(err, "reading rows")
}

func (r *Rows) fetchAllLocked() error {
	for !r.isEOF {
		if _, err := r.readNextValueLocked(); err != nil {
			return err
		}
	}
	r.dataFetchTime++
	return nil
}

// addStreamingValueLocked reads the next window of up to fetchSize rows,
// appending them to the store.
func (r *Rows) addStreamingValueLocked() error {
	for n := r.fetchSize; n > 0; n-- {
		ok, err := r.readNextValueLocked()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	r.dataFetchTime++
	trace("mysql: result %p window %d: %d rows buffered, eof=%v", r,
		r.dataFetchTime, r.store.Len(), r.isEOF)
	return nil
}

// nextStreamingValueLocked moves to the next window. Forward-only results
// drop the rows of the current one.
func (r *Rows) nextStreamingValueLocked() error {
	if r.resultType == ForwardOnly {
		r.discarded += r.store.Len()
		r.store.Reset()
		r.loaded = -1
	}
	return r.addStreamingValueLocked()
}

// retainLocked switches a live store to a materialized one, before reads
// that must not overwrite the current row.
func (r *Rows) retainLocked() error {
	if _, ok := r.store.(*liveStore); !ok {
		return nil
	}
	m, err := materialize(r.store, maxRowBuffer(r.opts))
	if err != nil {
		return err
	}
	r.store = m
	r.loaded = -1
	return nil
}

func (r *Rows) fetchRemainingLocked() error {
	if r.isEOF {
		return nil
	}
	if err := r.retainLocked(); err != nil {
		return err
	}
	for !r.isEOF {
		if err := r.addStreamingValueLocked(); err != nil {
			return err
		}
	}
	return nil
}

// loadFullyLocked reads the rest of a displaced result so the connection
// can serve another one.
func (r *Rows) loadFullyLocked() error {
	if r.isClosedLocked() {
		return nil
	}
	return r.fetchRemainingLocked()
}

// skipRemainingLocked reads and discards the rows the server has not sent
// yet. Rows already fetched are kept if retain is set.
func (r *Rows) skipRemainingLocked(retain bool) error {
	if retain {
		if err := r.retainLocked(); err != nil {
			return err
		}
	}
	for !r.isEOF {
		status, _, err := r.session.runtime.FetchRow()
		if err != nil {
			return r.failLocked(err)
		}
		if status == NoMoreData {
			r.endOfDataLocked()
		}
	}
	return nil
}

// FetchRemaining reads all the rows the server has not sent yet.
func (r *Rows) FetchRemaining() error {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return err
	}
	return r.fetchRemainingLocked()
}

// FetchSize returns the number of rows read per window.
func (r *Rows) FetchSize() int {
	r.lock()
	defer r.unlock()
	return r.fetchSize
}

// SetFetchSize changes the number of rows read per window. 0 makes a
// streaming result read all its remaining rows now.
func (r *Rows) SetFetchSize(n int) error {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return err
	}
	if n < 0 {
		return myError(ErrUsage, "negative fetch size")
	}

	if r.streaming && !r.isEOF {
		var err error
		if n == 0 {
			err = r.fetchRemainingLocked()
		} else if n != 1 {
			err = r.retainLocked()
		}
		if err != nil {
			return err
		}
	}
	if n == 0 {
		r.streaming = false
	}
	r.fetchSize = n
	return nil
}

// <!-- closing -->

func (r *Rows) notifyOwner() {
	if o := r.owner; o != nil && r.notified.CompareAndSwap(false, true) {
		o.ResultClosed(r)
	}
}

// Close reads and discards the rows the server has not sent yet, then
// frees the result. Closing a closed result does nothing.
func (r *Rows) Close() error {
	r.lock()
	defer r.unlock()

	if r.isClosedLocked() {
		return nil
	}

	var err error
	if r.session != nil {
		if !r.isEOF {
			trace("mysql: closing result %p, draining", r)
			err = r.skipRemainingLocked(false)
		}
		r.session.releaseLocked(r)
	}

	r.state = stateClosed
	r.store.Release()
	r.loaded = -1
	r.notifyOwner()

	if err == nil && r.opts.ReportWarnings && r.warnings > 0 {
		e := myError(ErrWarning)
		e.warnings = r.warnings
		return e
	}
	return err
}

// Abort invalidates the result without reading anything more from the
// connection. It may be called from any goroutine. When a read holds the
// connection, the rows are freed once that read returns.
func (r *Rows) Abort() {
	if r.aborted.Swap(true) {
		return
	}
	trace("mysql: aborting result %p", r)

	if s := r.session; s == nil {
		r.abortLocked()
	} else if s.mu.TryLock() {
		r.abortLocked()
		s.mu.Unlock()
	}
	r.notifyOwner()
}

// abortLocked frees an aborted result. Must hold the session lock.
func (r *Rows) abortLocked() {
	if r.state == stateClosed || r.state == stateAborted {
		return
	}
	r.state = stateAborted
	if r.session != nil {
		r.session.releaseLocked(r)
	}
	r.store.Release()
	r.loaded = -1
}

// IsClosed reports whether the result was closed or aborted.
func (r *Rows) IsClosed() bool {
	r.lock()
	defer r.unlock()
	return r.isClosedLocked()
}

func (r *Rows) isClosedLocked() bool {
	if r.aborted.Load() {
		r.abortLocked()
	}
	return r.state == stateClosed || r.state == stateAborted
}

func (r *Rows) checkClose() error {
	if r.isClosedLocked() {
		return myError(ErrCursor)
	}
	return nil
}

func (r *Rows) checkScrollable() error {
	if err := r.checkClose(); err != nil {
		return err
	}
	if r.resultType == ForwardOnly {
		return myError(ErrForwardOnly)
	}
	return nil
}

// <!-- positioning -->

// Next moves to the next row, fetching the next window when the current
// one is exhausted. It reports false after the last row.
func (r *Rows) Next() (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return false, err
	}

	if r.rowPointer < r.store.Len()-1 {
		r.rowPointer++
		return true, nil
	}

	if r.streaming && !r.isEOF {
		if err := r.nextStreamingValueLocked(); err != nil {
			return false, err
		}

		if r.resultType == ForwardOnly {
			// first row of the new window
			r.rowPointer = 0
			return r.store.Len() > 0, nil
		}
		r.rowPointer++
		return r.rowPointer < r.store.Len(), nil
	}

	// all rows read, pointer is after the last one
	r.rowPointer = r.store.Len()
	return false, nil
}

// Previous moves to the previous row.
func (r *Rows) Previous() (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkScrollable(); err != nil {
		return false, err
	}
	if r.rowPointer > -1 {
		r.rowPointer--
		return r.rowPointer != -1, nil
	}
	return false, nil
}

// First moves to the first row.
func (r *Rows) First() (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkScrollable(); err != nil {
		return false, err
	}
	r.rowPointer = 0
	return r.store.Len() > 0, nil
}

// Last reads the whole result and moves to its last row.
func (r *Rows) Last() (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkScrollable(); err != nil {
		return false, err
	}
	if err := r.fetchRemainingLocked(); err != nil {
		return false, err
	}
	r.rowPointer = r.store.Len() - 1
	return r.store.Len() > 0, nil
}

// BeforeFirst moves before the first row.
func (r *Rows) BeforeFirst() error {
	r.lock()
	defer r.unlock()

	if err := r.checkScrollable(); err != nil {
		return err
	}
	r.rowPointer = -1
	return nil
}

// AfterLast moves after the last row. A forward-only result discards the
// rows it skips.
func (r *Rows) AfterLast() error {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return err
	}

	if r.resultType == ForwardOnly && !r.isEOF {
		r.discarded += r.store.Len()
		r.store.Reset()
		r.loaded = -1
		if err := r.skipRemainingLocked(false); err != nil {
			return err
		}
	} else if err := r.fetchRemainingLocked(); err != nil {
		return err
	}

	r.rowPointer = r.store.Len()
	return nil
}

// Absolute moves to row n, counting from 1. A negative n counts back from
// the last row (-1 is the last row). Positions outside the result leave the
// cursor before the first or after the last row and report false; so does
// n = 0.
func (r *Rows) Absolute(n int) (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkScrollable(); err != nil {
		return false, err
	}

	if n == 0 {
		r.rowPointer = -1
		return false, nil
	}
	if n > 0 && n <= r.store.Len() {
		r.rowPointer = n - 1
		return true, nil
	}

	// the total size is needed
	if err := r.fetchRemainingLocked(); err != nil {
		return false, err
	}

	dataSize := r.store.Len()
	if n > 0 {
		if n <= dataSize {
			r.rowPointer = n - 1
			return true, nil
		}
		r.rowPointer = dataSize
		return false, nil
	}

	if dataSize+n >= 0 {
		// counted back from the end
		r.rowPointer = dataSize + n
		return true, nil
	}
	r.rowPointer = -1
	return false, nil
}

// Relative moves n rows forward, or back when n is negative.
func (r *Rows) Relative(n int) (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkScrollable(); err != nil {
		return false, err
	}

	pos := r.rowPointer + n
	if pos >= r.store.Len() && r.streaming && !r.isEOF {
		var err error
		for pos >= r.store.Len() && !r.isEOF && err == nil {
			err = r.addStreamingValueLocked()
		}
		if err != nil {
			return false, err
		}
	}

	switch {
	case pos <= -1:
		r.rowPointer = -1
		return false, nil
	case pos >= r.store.Len():
		r.rowPointer = r.store.Len()
		return false, nil
	}
	r.rowPointer = pos
	return true, nil
}

// Row returns the number of the current row, counting from 1, or 0 when
// there is no current row.
func (r *Rows) Row() (int, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return 0, err
	}
	if r.rowPointer < 0 || r.rowPointer >= r.store.Len() {
		return 0, nil
	}
	if r.resultType == ForwardOnly {
		return r.discarded + r.rowPointer + 1, nil
	}
	return r.rowPointer + 1, nil
}

// IsBeforeFirst reports whether the cursor is before the first row of a
// non-empty result.
func (r *Rows) IsBeforeFirst() (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return false, err
	}
	return r.rowPointer == -1 && r.discarded == 0 && r.store.Len() > 0, nil
}

// IsFirst reports whether the cursor is on the first row.
func (r *Rows) IsFirst() (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return false, err
	}
	return r.rowPointer == 0 && r.discarded == 0 && r.store.Len() > 0, nil
}

// IsLast reports whether the cursor is on the last row. At the end of a
// window of a streaming result this reads one more window.
func (r *Rows) IsLast() (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return false, err
	}

	if r.rowPointer < r.store.Len()-1 {
		return false, nil
	}
	if !r.isEOF {
		// the next packet tells whether more rows follow
		err := r.retainLocked()
		if err == nil {
			err = r.addStreamingValueLocked()
		}
		if err != nil {
			return false, err
		}
		if !r.isEOF {
			return false, nil
		}
	}
	return r.rowPointer == r.store.Len()-1 && r.store.Len() > 0, nil
}

// IsAfterLast reports whether the cursor is after the last row of a
// non-empty result. At the end of a window of a streaming result this
// reads one more window.
func (r *Rows) IsAfterLast() (bool, error) {
	r.lock()
	defer r.unlock()

	if err := r.checkClose(); err != nil {
		return false, err
	}

	if r.rowPointer < r.store.Len() {
		return false, nil
	}
	if r.streaming && !r.isEOF {
		err := r.retainLocked()
		if err == nil {
			err = r.addStreamingValueLocked()
		}
		if err != nil {
			return false, err
		}
		return r.store.Len() == r.rowPointer, nil
	}
	return r.store.Len() > 0 || r.discarded > 0, nil
}

// <!-- result state -->

// Type returns the cursor capability of the result.
func (r *Rows) Type() ResultSetType {
	return r.resultType
}

// IsStreaming reports whether rows are still read window by window.
func (r *Rows) IsStreaming() bool {
	r.lock()
	defer r.unlock()
	return r.streaming && !r.isEOF
}

// IsFullyLoaded reports whether the server has sent all rows.
func (r *Rows) IsFullyLoaded() bool {
	r.lock()
	defer r.unlock()
	return r.isEOF
}

// Warnings returns the warning count of the result: server warnings plus
// rows truncated by the runtime.
func (r *Rows) Warnings() uint16 {
	r.lock()
	defer r.unlock()
	return r.warnings
}

// OutParams reports whether the result holds the output parameters of a
// stored procedure call.
func (r *Rows) OutParams() bool {
	r.lock()
	defer r.unlock()
	return r.outParams
}

// MoreResults reports whether the server announced another result after
// this one.
func (r *Rows) MoreResults() bool {
	r.lock()
	defer r.unlock()
	return r.isEOF && r.statusFlags&_SERVER_MORE_RESULTS_EXISTS != 0
}

// Location returns the time zone DATETIME and TIMESTAMP values are read in.
func (r *Rows) Location() *time.Location {
	return r.loc
}

// SetLocation changes the time zone DATETIME and TIMESTAMP values are read
// in. The default is UTC.
func (r *Rows) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	r.loc = loc
}

// Columns returns the column labels.
func (r *Rows) Columns() []string {
	columns := make([]string, 0, len(r.columns))
	for _, col := range r.columns {
		columns = append(columns, col.Name())
	}
	return columns
}

// ColumnDefinitions returns the column definitions of the result.
func (r *Rows) ColumnDefinitions() []*ColumnDefinition {
	return r.columns
}

// MetaData returns a view of the column definitions.
func (r *Rows) MetaData() *ResultMetaData {
	return newResultMetaData(r.columns, r.opts)
}

// FindColumn returns the number of the column with the given label,
// ignoring case. "table.column" and original column names are matched
// too, after labels.
func (r *Rows) FindColumn(name string) (int, error) {
	if r.names == nil {
		r.names = make(map[string]int, 2*len(r.columns))
		add := func(key string, i int) {
			key = strings.ToLower(key)
			if _, ok := r.names[key]; !ok && key != "" {
				r.names[key] = i
			}
		}
		for i, col := range r.columns {
			add(col.Name(), i)
		}
		for i, col := range r.columns {
			if col.Table() != "" {
				add(col.Table()+"."+col.Name(), i)
			}
			add(col.OrgName(), i)
		}
	}

	if i, ok := r.names[strings.ToLower(name)]; ok {
		return i + 1, nil
	}
	return 0, myError(ErrColumnName, name)
}

// <!-- column access -->

// position points the decoder at column i of the current row. Must hold
// the session lock until the value is decoded.
func (r *Rows) position(i int) (rowDecoder, error) {
	if err := r.checkClose(); err != nil {
		return nil, err
	}
	if i < 1 || i > len(r.columns) {
		return nil, myError(ErrColumnIndex, i, len(r.columns))
	}
	if r.rowPointer < 0 {
		return nil, myError(ErrUsage, "current position is before the first row")
	}
	if r.rowPointer >= r.store.Len() {
		return nil, myError(ErrUsage, "current position is after the last row")
	}

	if r.loaded != r.rowPointer {
		if err := r.dec.setRow(r.store.Row(r.rowPointer)); err != nil {
			return nil, r.failLocked(err)
		}
		r.loaded = r.rowPointer
	}
	if err := r.dec.setPosition(i - 1); err != nil {
		return nil, err
	}
	return r.dec, nil
}

// WasNull reports whether the last column read was SQL NULL. The flag is
// only changed by the next read.
func (r *Rows) WasNull() bool {
	r.lock()
	defer r.unlock()
	return r.dec.field().lastNull
}

// IsZeroDate reports whether the last column read held the all-zero date
// the server uses for invalid dates. Such values read as the zero
// time.Time and are not NULL.
func (r *Rows) IsZeroDate() bool {
	r.lock()
	defer r.unlock()
	return r.dec.field().zeroDate
}

// GetString returns the value of column i in its text form.
func (r *Rows) GetString(i int) (string, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return "", err
	}
	return decodeString(d)
}

// GetBytes returns a copy of the raw value of column i.
func (r *Rows) GetBytes(i int) ([]byte, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return nil, err
	}
	return decodeBytes(d)
}

func (r *Rows) GetBool(i int) (bool, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return false, err
	}
	return decodeBool(d)
}

func (r *Rows) GetInt8(i int) (int8, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	v, err := decodeInt(d, "int8", math.MinInt8, math.MaxInt8)
	return int8(v), err
}

func (r *Rows) GetInt16(i int) (int16, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	v, err := decodeInt(d, "int16", math.MinInt16, math.MaxInt16)
	return int16(v), err
}

func (r *Rows) GetInt32(i int) (int32, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	v, err := decodeInt(d, "int32", math.MinInt32, math.MaxInt32)
	return int32(v), err
}

func (r *Rows) GetInt64(i int) (int64, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	return decodeInt(d, "int64", math.MinInt64, math.MaxInt64)
}

func (r *Rows) GetUint32(i int) (uint32, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	v, err := decodeUint(d, "uint32", math.MaxUint32)
	return uint32(v), err
}

func (r *Rows) GetUint64(i int) (uint64, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	return decodeUint(d, "uint64", math.MaxUint64)
}

// GetBigInt returns the integer part of column i at any width; nil for
// NULL.
func (r *Rows) GetBigInt(i int) (*big.Int, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return nil, err
	}
	return decodeBigInt(d)
}

func (r *Rows) GetFloat32(i int) (float32, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	return decodeFloat32(d)
}

func (r *Rows) GetFloat64(i int) (float64, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	return decodeFloat64(d)
}

// GetDecimal returns column i as an exact decimal; nil for NULL.
func (r *Rows) GetDecimal(i int) (*big.Rat, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return nil, err
	}
	return decodeDecimal(d)
}

// GetDate returns the date of column i at midnight.
func (r *Rows) GetDate(i int) (time.Time, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return time.Time{}, err
	}
	return decodeDate(d, r.loc)
}

// GetTime returns a TIME column, or the time of day of a DATETIME column.
func (r *Rows) GetTime(i int) (time.Duration, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return 0, err
	}
	return decodeTime(d)
}

func (r *Rows) GetTimestamp(i int) (time.Time, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return time.Time{}, err
	}
	return decodeTimestamp(d, r.loc)
}

// GetObject returns column i as the Go type HostRepresentation gives for
// it, or nil.
func (r *Rows) GetObject(i int) (interface{}, error) {
	r.lock()
	defer r.unlock()

	d, err := r.position(i)
	if err != nil {
		return nil, err
	}
	return decodeObject(d, r.opts, r.loc)
}

func (r *Rows) GetStringByName(name string) (string, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return "", err
	}
	return r.GetString(i)
}

func (r *Rows) GetBytesByName(name string) ([]byte, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return nil, err
	}
	return r.GetBytes(i)
}

func (r *Rows) GetBoolByName(name string) (bool, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return false, err
	}
	return r.GetBool(i)
}

func (r *Rows) GetInt8ByName(name string) (int8, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetInt8(i)
}

func (r *Rows) GetInt16ByName(name string) (int16, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetInt16(i)
}

func (r *Rows) GetInt32ByName(name string) (int32, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetInt32(i)
}

func (r *Rows) GetInt64ByName(name string) (int64, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetInt64(i)
}

func (r *Rows) GetUint32ByName(name string) (uint32, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetUint32(i)
}

func (r *Rows) GetUint64ByName(name string) (uint64, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetUint64(i)
}

func (r *Rows) GetBigIntByName(name string) (*big.Int, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return nil, err
	}
	return r.GetBigInt(i)
}

func (r *Rows) GetFloat32ByName(name string) (float32, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetFloat32(i)
}

func (r *Rows) GetFloat64ByName(name string) (float64, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetFloat64(i)
}

func (r *Rows) GetDecimalByName(name string) (*big.Rat, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return nil, err
	}
	return r.GetDecimal(i)
}

func (r *Rows) GetDateByName(name string) (time.Time, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return time.Time{}, err
	}
	return r.GetDate(i)
}

func (r *Rows) GetTimeByName(name string) (time.Duration, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return 0, err
	}
	return r.GetTime(i)
}

func (r *Rows) GetTimestampByName(name string) (time.Time, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return time.Time{}, err
	}
	return r.GetTimestamp(i)
}

func (r *Rows) GetObjectByName(name string) (interface{}, error) {
	i, err := r.FindColumn(name)
	if err != nil {
		return nil, err
	}
	return r.GetObject(i)
}
