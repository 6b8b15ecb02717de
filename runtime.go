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
	"io"
)

// FetchStatus is the outcome of one row fetch from the client runtime.
type FetchStatus int

const (
	// RowAvailable means a row payload was returned.
	RowAvailable FetchStatus = iota
	// NoMoreData means the server has sent the last row of the result.
	NoMoreData
	// TruncatedWithWarning means a row payload was returned but some value
	// in it did not fit the bound buffer.
	TruncatedWithWarning
)

func (s FetchStatus) String() string {
	switch s {
	case RowAvailable:
		return "RowAvailable"
	case NoMoreData:
		return "NoMoreData"
	case TruncatedWithWarning:
		return "TruncatedWithWarning"
	}
	return "FetchStatus(?)"
}

// Runtime is the underlying client runtime a result reads its rows from.
// It has already performed the handshake and dispatched the query.
type Runtime interface {
	// FetchRow returns the payload of the next row of the current result.
	// The payload is only valid until the next call.
	FetchRow() (FetchStatus, []byte, error)

	// ServerStatus returns the status flags and warning count sent by the
	// server with the end of the last result.
	ServerStatus() (statusFlags, warnings uint16)

	// Cancel asks the server to stop executing the in-flight query.
	Cancel() error
}

// PacketRuntime is a Runtime over a stream of protocol packets.
type PacketRuntime struct {
	r      PacketReader
	cancel func() error

	statusFlags uint16
	warnings    uint16
	eof         bool
}

// NewPacketRuntime returns a Runtime reading rows from r. cancel, if not
// nil, is used to cancel the in-flight query (usually a KILL QUERY issued
// on another connection).
func NewPacketRuntime(r PacketReader, cancel func() error) *PacketRuntime {
	return &PacketRuntime{r: r, cancel: cancel}
}

func (p *PacketRuntime) FetchRow() (FetchStatus, []byte, error) {
	if p.eof {
		return NoMoreData, nil, nil
	}

	b, err := p.r.ReadPacket()
	if err != nil {
		return NoMoreData, nil, err
	}
	if len(b) == 0 {
		return NoMoreData, nil, myError(ErrInvalidPacket, "empty row packet")
	}

	switch {
	case isEOFPacket(b):
		p.warnings, p.statusFlags = parseEOFPacket(b)
		p.eof = true
		return NoMoreData, nil, nil
	case b[0] == _PACKET_ERR:
		p.eof = true
		p.statusFlags &^= _SERVER_MORE_RESULTS_EXISTS
		return NoMoreData, nil, parseErrPacket(b)
	}
	return RowAvailable, b, nil
}

func (p *PacketRuntime) ServerStatus() (uint16, uint16) {
	return p.statusFlags, p.warnings
}

func (p *PacketRuntime) Cancel() error {
	if p.cancel == nil {
		return myError(ErrUsage, "cancel not supported")
	}
	return p.cancel()
}

// MoreResults reports whether another result set follows the one just
// read.
func (p *PacketRuntime) MoreResults() bool {
	return p.eof && p.statusFlags&_SERVER_MORE_RESULTS_EXISTS != 0
}

// NextResultSet reads the header of the next result set of a multi-result
// response. It returns io.EOF when there is none.
func (p *PacketRuntime) NextResultSet() ([]*ColumnDefinition, error) {
	if !p.MoreResults() {
		return nil, io.EOF
	}
	p.eof = false
	p.statusFlags, p.warnings = 0, 0

	columns, statusFlags, err := readResultSetHeader(p.r)
	if err == nil && columns == nil {
		// an OK packet: nothing to read rows from
		p.eof = true
		p.statusFlags = statusFlags
	}
	return columns, err
}
