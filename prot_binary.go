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
	"math"
	"strconv"
)

// binaryDecoder decodes rows of the binary protocol, used for the results
// of prepared statements. Each row packet carries a [00] header, a null
// bitmap with an offset of 2 and the non-NULL values in column order.
type binaryDecoder struct {
	decoderBase
}

func newBinaryDecoder(columns []*ColumnDefinition, opts *Options) *binaryDecoder {
	return &binaryDecoder{decoderBase: newDecoderBase(columns, opts)}
}

// setRow locates the value of every column in b. A payload that does not
// add up to the column list is a protocol error.
func (d *binaryDecoder) setRow(b []byte) error {
	var (
		nullBitmapSize int
		off            int
	)

	d.payload = nil
	d.fv.reset()

	columnCount := len(d.columns)

	if len(b) == 0 || b[0] != _PACKET_OK {
		return protocolError(nil, "binary row header")
	}
	off++ // packet header [00]

	// null bitmap, size = (columnCount + 7 + 2) / 8
	nullBitmapSize = (columnCount + 9) / 8
	if len(b) < off+nullBitmapSize {
		return protocolError(nil, "binary row null bitmap")
	}
	nullBitmap := b[off : off+nullBitmapSize]
	off += nullBitmapSize

	for i, col := range d.columns {
		if isNull(nullBitmap, i, 2) {
			d.starts[i], d.ends[i] = -1, -1
			continue
		}

		start, end, ok := binaryValueSpan(col.columnType.id, b, off)
		if !ok {
			return protocolError(nil, "binary row value of column '"+col.Name()+"'")
		}
		d.starts[i], d.ends[i] = start, end
		off = end
	}

	d.payload = b
	return nil
}

// binaryValueSpan returns the bounds of the value of wire type id at off.
// Temporal values keep their length byte.
func binaryValueSpan(id uint8, b []byte, off int) (start, end int, ok bool) {
	var size int

	switch id {
	case TypeNull:
		return off, off, true
	case TypeTiny:
		size = 1
	case TypeShort, TypeYear:
		size = 2
	case TypeLong, TypeInt24, TypeFloat:
		size = 4
	case TypeLongLong, TypeDouble:
		size = 8

	case TypeDate, TypeNewDate, TypeDatetime, TypeDatetime2,
		TypeTimestamp, TypeTimestamp2:
		if off >= len(b) {
			return 0, 0, false
		}
		switch b[off] {
		case 0, 4, 7, 11:
		default:
			return 0, 0, false
		}
		size = binaryTemporalSize(b[off:])

	case TypeTime, TypeTime2:
		if off >= len(b) {
			return 0, 0, false
		}
		switch b[off] {
		case 0, 8, 12:
		default:
			return 0, 0, false
		}
		size = binaryTemporalSize(b[off:])

	default:
		// length-encoded: strings, decimals, bit, enum, set, blobs, json,
		// geometry
		length, n := getLenencInt(b[off:])
		if n == 0 || b[off] == 0xfb || uint64(len(b)-off-n) < length {
			return 0, 0, false
		}
		return off + n, off + n + int(length), true
	}

	if len(b) < off+size {
		return 0, 0, false
	}
	return off, off + size, true
}

func (d *binaryDecoder) setPosition(i int) error {
	if err := d.seek(i); err != nil {
		return err
	}
	markZeroDate(d)
	return nil
}

// number decodes fixed-width integers and floats directly and parses the
// text of everything else. An UNSIGNED column's bit pattern is read as
// unsigned.
func (d *binaryDecoder) number(target string) (numeric, error) {
	col := d.fv.col
	b := d.fv.data
	unsigned := col.IsUnsigned()

	switch col.columnType.id {
	case TypeTiny:
		if unsigned {
			return numeric{kind: numUint, u: uint64(b[0])}, nil
		}
		return numeric{kind: numInt, i: int64(int8(b[0]))}, nil

	case TypeShort:
		if unsigned {
			return numeric{kind: numUint, u: uint64(binary.LittleEndian.Uint16(b))}, nil
		}
		return numeric{kind: numInt, i: int64(getInt16(b))}, nil

	case TypeYear:
		return numeric{kind: numInt, i: int64(binary.LittleEndian.Uint16(b))}, nil

	case TypeLong, TypeInt24:
		if unsigned {
			return numeric{kind: numUint, u: uint64(binary.LittleEndian.Uint32(b))}, nil
		}
		return numeric{kind: numInt, i: int64(getInt32(b))}, nil

	case TypeLongLong:
		if unsigned {
			return numeric{kind: numUint, u: binary.LittleEndian.Uint64(b)}, nil
		}
		return numeric{kind: numInt, i: getInt64(b)}, nil

	case TypeFloat:
		f := math.Float32frombits(binary.LittleEndian.Uint32(b))
		return numeric{kind: numFloat, f: float64(f), bits: 32}, nil

	case TypeDouble:
		f := math.Float64frombits(binary.LittleEndian.Uint64(b))
		return numeric{kind: numFloat, f: f, bits: 64}, nil

	case TypeBit:
		return numeric{kind: numUint, u: parseBit(b)}, nil

	case TypeDecimal, TypeNewDecimal:
		return d.parseNumber(b, target)
	}

	if isTextual(col.columnType) {
		return d.parseNumber(b, target)
	}
	return numeric{}, unsupported(col, target)
}

func (d *binaryDecoder) temporal(target string) (temporal, temporalKind, error) {
	var (
		t  temporal
		ok bool
	)
	col := d.fv.col
	b := d.fv.data

	switch col.columnType.id {
	case TypeDate, TypeNewDate:
		t, _, ok = parseBinaryDate(b)
		t.hour, t.minute, t.second, t.micro = 0, 0, 0, 0
		return t, kindDate, d.checkTemporal(ok)

	case TypeDatetime, TypeDatetime2, TypeTimestamp, TypeTimestamp2:
		t, _, ok = parseBinaryDate(b)
		return t, kindDatetime, d.checkTemporal(ok)

	case TypeTime, TypeTime2:
		t, _, ok = parseBinaryTime(b)
		return t, kindTime, d.checkTemporal(ok)

	case TypeYear:
		y := int(binary.LittleEndian.Uint16(b))
		return temporal{year: d.year(y), month: 1, day: 1}, kindYear, nil
	}

	if isTextual(col.columnType) {
		return d.parseTemporal(b, target)
	}
	return t, 0, unsupported(col, target)
}

// checkTemporal reports a malformed temporal value; setRow has already
// vetted the length byte so this only fires on corrupted rows.
func (d *binaryDecoder) checkTemporal(ok bool) error {
	if !ok {
		return protocolError(nil, "binary temporal value of column '"+d.fv.col.Name()+"'")
	}
	return nil
}

// text returns the value the way the server would print it in a text
// protocol result.
func (d *binaryDecoder) text() (string, error) {
	col := d.fv.col
	b := d.fv.data

	switch col.columnType.id {
	case TypeTiny, TypeShort, TypeLong, TypeInt24, TypeLongLong:
		n, err := d.number("string")
		if err != nil {
			return "", err
		}
		return zeroFill(n.String(), col), nil

	case TypeFloat, TypeDouble:
		n, err := d.number("string")
		if err != nil {
			return "", err
		}
		return zeroFill(strconv.FormatFloat(n.f, 'g', -1, n.bits), col), nil

	case TypeDecimal, TypeNewDecimal:
		return zeroFill(string(b), col), nil

	case TypeBit:
		return strconv.FormatUint(parseBit(b), 10), nil

	case TypeYear:
		if !d.opts.YearIsDateType {
			y := int(binary.LittleEndian.Uint16(b))
			return zeroFill(strconv.Itoa(y), col), nil
		}
		fallthrough
	case TypeDate, TypeNewDate, TypeDatetime, TypeDatetime2, TypeTimestamp,
		TypeTimestamp2, TypeTime, TypeTime2:
		t, kind, err := d.temporal("string")
		if err != nil {
			return "", err
		}
		return d.formatTemporal(&t, kind), nil

	case TypeGeometry:
		return string(b), nil
	}
	return d.chars(b)
}
