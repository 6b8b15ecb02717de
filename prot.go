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
	"encoding/binary"
	"strconv"

	"github.com/pkg/errors"
)

// server status flags (unexported)
const (
	_SERVER_STATUS_IN_TRANS = 1 << iota
	_SERVER_STATUS_AUTOCOMMIT
	_ // unassigned, 4
	_SERVER_MORE_RESULTS_EXISTS
	_SERVER_STATUS_NO_GOOD_INDEX_USED
	_SERVER_STATUS_NO_INDEX_USED
	_SERVER_STATUS_CURSOR_EXISTS
	_SERVER_STATUS_LAST_ROW_SENT
	_SERVER_STATUS_DB_DROPPED
	_SERVER_STATUS_NO_BACKSHASH_ESCAPES
	_SERVER_STATUS_METADATA_CHANGED
	_SERVER_QUERY_WAS_SLOW
	_SERVER_PS_OUT_PARAMS
	_SERVER_STATUS_IN_TRANS_READONLY
	_SERVER_SESSION_STATE_CHANGED
)

// Server status flags a Runtime reports after the last row of a result.
const (
	StatusMoreResultsExists = _SERVER_MORE_RESULTS_EXISTS
	StatusPSOutParams       = _SERVER_PS_OUT_PARAMS
)

// generic response packets (unexported)
const (
	_PACKET_OK         = 0x00
	_PACKET_ERR        = 0xff
	_PACKET_EOF        = 0xfe
	_PACKET_INFILE_REQ = 0xfb
)

// column count limit of a table; a larger count is a corrupt header
const _MAX_COLUMN_COUNT = 4096

// PacketReader yields the payloads of consecutive protocol packets, with
// framing (and compression) already removed.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// isEOFPacket tells an EOF packet apart from a row starting with 0xfe,
// which is always at least 9 bytes long.
func isEOFPacket(b []byte) bool {
	return len(b) > 0 && b[0] == _PACKET_EOF && len(b) < 9
}

// parseEOFPacket parses the EOF packet received from the server.
func parseEOFPacket(b []byte) (warnings, statusFlags uint16) {
	var off int

	off++ // [fe] the EOF header (= _PACKET_EOF)
	if len(b) < off+4 {
		// pre-4.1 servers send a bare header
		return 0, 0
	}
	warnings = binary.LittleEndian.Uint16(b[off : off+2])
	off += 2
	statusFlags = binary.LittleEndian.Uint16(b[off : off+2])
	return
}

// parseErrPacket parses the ERR packet received from the server.
func parseErrPacket(b []byte) *Error {
	var off int

	off++ // [ff] the ERR header (= _PACKET_ERR)
	if len(b) < off+2 {
		return myError(ErrInvalidPacket, "truncated ERR packet")
	}
	code := binary.LittleEndian.Uint16(b[off : off+2])
	off += 2

	sqlState := "HY000"
	if len(b) >= off+6 && b[off] == '#' {
		off++ // '#' the sql-state marker
		sqlState = string(b[off : off+5])
		off += 5
	}
	return serverError(code, sqlState, string(b[off:]))
}

// ReadColumnDefinitions reads count column definition packets and the EOF
// packet that closes the list.
func ReadColumnDefinitions(r PacketReader, count int) ([]*ColumnDefinition, error) {
	var (
		b   []byte
		err error
	)

	if count < 0 || count > _MAX_COLUMN_COUNT {
		return nil, myError(ErrInvalidPacket, "column count "+strconv.Itoa(count))
	}
	columns := make([]*ColumnDefinition, 0, count)

	// read column definition packets
	for i := 0; i < count; i++ {
		if b, err = r.ReadPacket(); err != nil {
			return nil, protocolError(err, "reading column definition "+strconv.Itoa(i+1))
		}
		if len(b) > 0 && b[0] == _PACKET_ERR {
			return nil, parseErrPacket(b)
		}

		col, err := ParseColumnDefinition(b)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	// read EOF packet
	if b, err = r.ReadPacket(); err != nil {
		return nil, protocolError(err, "reading end of column definitions")
	}
	if !isEOFPacket(b) {
		return nil, myError(ErrInvalidPacket, "expected EOF after column definitions")
	}
	return columns, nil
}

// parseOkPacket parses the OK packet received from the server.
func parseOkPacket(b []byte) (statusFlags, warnings uint16) {
	var off, n int

	off++ // [00] the OK header (= _PACKET_OK)
	_, n = getLenencInt(b[off:]) // affected rows
	off += n
	_, n = getLenencInt(b[off:]) // last insert id
	off += n

	if n == 0 || len(b) < off+4 {
		return 0, 0
	}
	statusFlags = binary.LittleEndian.Uint16(b[off : off+2])
	off += 2
	warnings = binary.LittleEndian.Uint16(b[off : off+2])
	return
}

// ReadResultSetHeader reads the response to a query up to the first row.
// It returns no columns and no error when the query produced no result
// set.
func ReadResultSetHeader(r PacketReader) ([]*ColumnDefinition, error) {
	columns, _, err := readResultSetHeader(r)
	return columns, err
}

// readResultSetHeader is ReadResultSetHeader that also returns the status
// flags of an OK packet.
func readResultSetHeader(r PacketReader) ([]*ColumnDefinition, uint16, error) {
	b, err := r.ReadPacket()
	if err != nil {
		return nil, 0, protocolError(err, "reading query response")
	}
	if len(b) == 0 {
		return nil, 0, myError(ErrInvalidPacket, "empty query response")
	}

	switch b[0] {
	case _PACKET_ERR: // expected
		return nil, 0, parseErrPacket(b)

	case _PACKET_OK: // no result set
		statusFlags, _ := parseOkPacket(b)
		return nil, statusFlags, nil

	case _PACKET_INFILE_REQ: // unexpected!
		return nil, 0, myError(ErrInvalidPacket, "LOCAL INFILE request")

	default: // expected
		// break and handle result set
		break
	}

	columnCount, n := getLenencInt(b)
	if n == 0 || columnCount == 0 || columnCount > _MAX_COLUMN_COUNT {
		return nil, 0, myError(ErrInvalidPacket, "column count")
	}
	columns, err := ReadColumnDefinitions(r, int(columnCount))
	return columns, 0, errors.Wrapf(err, "result set with %d columns", columnCount)
}
