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
)

// for internal use only
type nullString struct {
	value string
	valid bool // valid is true if 'the string' is not NULL
}

// getUint24 converts 3-byte byte little-endian slice into uint32
func getUint24(b []byte) uint32 {
	return uint32(b[0]) |
		uint32(b[1])<<8 |
		uint32(b[2])<<16
}

func getInt16(b []byte) int16 {
	return int16(b[0]) |
		int16(b[1])<<8
}

func getInt32(b []byte) int32 {
	return int32(b[0]) |
		int32(b[1])<<8 |
		int32(b[2])<<16 |
		int32(b[3])<<24
}

func getInt64(b []byte) int64 {
	return int64(b[0]) |
		int64(b[1])<<8 |
		int64(b[2])<<16 |
		int64(b[3])<<24 |
		int64(b[4])<<32 |
		int64(b[5])<<40 |
		int64(b[6])<<48 |
		int64(b[7])<<56
}

// putUint24 stores the given uint32 into the specified 3-byte byte slice in little-endian
func putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// getLenencInt retrieves the number from the specified buffer stored in
// length-encoded integer format and returns the number of bytes read. n is 0
// when the buffer is too short to hold the encoded number.
func getLenencInt(b []byte) (v uint64, n int) {
	if len(b) == 0 {
		return 0, 0
	}
	first := b[0]

	switch {
	// 1-byte
	case first <= 0xfb:
		v = uint64(first)
		n = 1
	// 2-byte
	case first == 0xfc:
		if len(b) < 3 {
			return 0, 0
		}
		v = uint64(binary.LittleEndian.Uint16(b[1:3]))
		n = 3
	// 3-byte
	case first == 0xfd:
		if len(b) < 4 {
			return 0, 0
		}
		v = uint64(getUint24(b[1:4]))
		n = 4
	// 8-byte
	case first == 0xfe:
		if len(b) < 9 {
			return 0, 0
		}
		v = binary.LittleEndian.Uint64(b[1:9])
		n = 9
	default: // 0xff is never a valid length prefix
	}
	return
}

// putLenencInt stores the given number into the specified buffer using
// length-encoded integer format and returns the number of bytes written.
func putLenencInt(b []byte, v uint64) (n int) {
	switch {
	case v < 251:
		b[0] = byte(v)
		n = 1
	case v < 1<<16:
		b[0] = 0xfc
		binary.LittleEndian.PutUint16(b[1:3], uint16(v))
		n = 3
	case v < 1<<24:
		b[0] = 0xfd
		putUint24(b[1:4], uint32(v))
		n = 4
	default:
		b[0] = 0xfe
		binary.LittleEndian.PutUint64(b[1:9], v)
		n = 9
	}
	return
}

// getLenencBytes returns the length-encoded byte span at the start of b
// without copying. null is set for the 0xfb marker; n is 0 when b is
// truncated.
func getLenencBytes(b []byte) (v []byte, null bool, n int) {
	if len(b) > 0 && b[0] == 0xfb { // NULL
		return nil, true, 1
	}

	length, n := getLenencInt(b)
	if n == 0 || uint64(len(b)-n) < length {
		return nil, false, 0
	}
	return b[n : n+int(length)], false, n + int(length)
}

// length-encoded string
func getLenencString(b []byte) (s nullString, n int) {
	v, null, n := getLenencBytes(b)
	if null {
		s.valid = false
	} else {
		s.value = string(v)
		s.valid = true
	}
	return
}

// isNull returns whether the column at the given position is NULL; the first
// column's position is 0.
func isNull(bitmap []byte, pos, offset int) bool {
	// for binary protocol, result set row offset = 2
	pos += offset

	if (bitmap[pos/8] & (1 << uint(pos%8))) != 0 {
		return true // null
	}
	return false // not null
}

// setNull marks the column at the given position as NULL.
func setNull(bitmap []byte, pos, offset int) {
	pos += offset
	bitmap[pos/8] |= 1 << uint(pos%8)
}
