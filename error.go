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
	"fmt"
	"time"

	"github.com/pkg/errors"
)

type Error struct {
	code     uint16
	sqlState string
	message  string
	warnings uint16
	when     time.Time
	cause    error
}

// client error codes
const (
	ErrWarning = 0
	ErrUnknown = 9000 + iota
	ErrInvalidType
	ErrInvalidProperty
	ErrCursor
	ErrInvalidPacket
	ErrFormat
	ErrRange
	ErrUnsupportedConversion
	ErrProtocol
	ErrUsage
	ErrForwardOnly
	ErrColumnIndex
	ErrColumnName
	ErrServer
)

var errFormat = map[uint16]string{
	ErrWarning:               "Execution of last statement resulted in warning(s)",
	ErrUnknown:               "Unknown error",
	ErrInvalidType:           "Invalid type (%s)",
	ErrInvalidProperty:       "Invalid value for property '%s' (%s)",
	ErrCursor:                "Operation not permitted on a closed result set",
	ErrInvalidPacket:         "Invalid/unexpected packet received (%s)",
	ErrFormat:                "Incorrect format for column '%s' : value '%s' is not a valid %s",
	ErrRange:                 "Out of range value for column '%s' : value %s is not in %s range",
	ErrUnsupportedConversion: "Conversion to %s not available for column '%s' of type %s",
	ErrProtocol:              "Server has closed the connection (%s). Please check net_read_timeout/net_write_timeout/wait_timeout server variables; a streaming result set must be read off relatively fast, consider increasing net_read_timeout or processing rows faster",
	ErrUsage:                 "Invalid operation (%s)",
	ErrForwardOnly:           "Invalid operation for result set type FORWARD_ONLY",
	ErrColumnIndex:           "No such column: %d (result has %d columns)",
	ErrColumnName:            "No such column: '%s'",
	ErrServer:                "%s",
}

var errState = map[uint16]string{
	ErrWarning:               "01000",
	ErrFormat:                "22018",
	ErrRange:                 "22003",
	ErrUnsupportedConversion: "07006",
	ErrProtocol:              "08000",
	ErrInvalidPacket:         "08000",
	ErrCursor:                "24000",
	ErrForwardOnly:           "24000",
	ErrColumnIndex:           "42S22",
	ErrColumnName:            "42S22",
}

func myError(code uint16, a ...interface{}) *Error {
	state, ok := errState[code]
	if !ok {
		state = "HY000"
	}
	return &Error{code: code,
		sqlState: state,
		message:  fmt.Sprintf(errFormat[code], a...),
		when:     time.Now()}
}

// protocolError invalidates a result set; the original failure is kept as
// the cause.
func protocolError(cause error, context string) *Error {
	e := myError(ErrProtocol, context)
	e.cause = cause
	return e
}

// serverError reports an ERR packet received in place of a row.
func serverError(code uint16, sqlState, message string) *Error {
	return &Error{code: code,
		sqlState: sqlState,
		message:  message,
		when:     time.Now()}
}

// Error returns the formatted error message. (also required by Go's error
// interface)
func (e *Error) Error() string {
	var s string
	if e.code == ErrWarning || e.code >= ErrUnknown {
		// client error
		s = fmt.Sprintf("[mysql] %d : %s", e.code, e.message)
	} else {
		// server error
		s = fmt.Sprintf("[mysqld] %d (%s): %s", e.code, e.sqlState, e.message)
	}
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

// Unwrap returns the transport failure behind a ProtocolError, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the error number.
func (e *Error) Code() uint16 {
	return e.code
}

// SqlState returns the SQL STATE
func (e *Error) SqlState() string {
	return e.sqlState
}

// Message returns the error message.
func (e *Error) Message() string {
	return e.message
}

// When returns time when error occurred.
func (e *Error) When() time.Time {
	return e.when
}

func (e *Error) Warnings() uint16 {
	return e.warnings
}

func hasCode(err error, codes ...uint16) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	for _, c := range codes {
		if e.code == c {
			return true
		}
	}
	return false
}

// IsFormatError reports whether err is a text value that could not be parsed
// as the requested type.
func IsFormatError(err error) bool {
	return hasCode(err, ErrFormat)
}

// IsRangeError reports whether err is a value outside the bounds of the
// requested type.
func IsRangeError(err error) bool {
	return hasCode(err, ErrRange)
}

// IsUnsupportedConversion reports whether err is a request to read a column
// through an accessor its type can't be converted to.
func IsUnsupportedConversion(err error) bool {
	return hasCode(err, ErrUnsupportedConversion)
}

// IsProtocolError reports whether err invalidated the whole result set.
func IsProtocolError(err error) bool {
	return hasCode(err, ErrProtocol, ErrInvalidPacket)
}

// IsUsageError reports whether err is a cursor misuse that left the result
// usable.
func IsUsageError(err error) bool {
	return hasCode(err, ErrUsage, ErrCursor, ErrForwardOnly, ErrColumnIndex, ErrColumnName)
}
