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
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"
)

// textDecoder decodes rows of the text protocol: one length-encoded string
// per column, with 0xfb standing for NULL. Every typed read parses the text.
type textDecoder struct {
	decoderBase
}

func newTextDecoder(columns []*ColumnDefinition, opts *Options) *textDecoder {
	return &textDecoder{decoderBase: newDecoderBase(columns, opts)}
}

func (d *textDecoder) setRow(b []byte) error {
	var off int

	d.payload = nil
	d.fv.reset()

	for i, col := range d.columns {
		v, null, n := getLenencBytes(b[off:])
		if n == 0 {
			return protocolError(nil, "text row value of column '"+col.Name()+"'")
		}
		if null {
			d.starts[i], d.ends[i] = -1, -1
		} else {
			d.starts[i] = off + n - len(v)
			d.ends[i] = off + n
		}
		off += n
	}

	d.payload = b
	return nil
}

func (d *textDecoder) setPosition(i int) error {
	if err := d.seek(i); err != nil {
		return err
	}
	markZeroDate(d)
	return nil
}

func (d *textDecoder) number(target string) (numeric, error) {
	col := d.fv.col

	switch {
	case col.columnType.id == TypeBit:
		// BIT travels as raw bytes even in the text protocol
		return numeric{kind: numUint, u: parseBit(d.fv.data)}, nil
	case col.columnType.id == TypeYear:
	case isTemporal(col.columnType), col.columnType.id == TypeGeometry:
		return numeric{}, unsupported(col, target)
	}
	return d.parseNumber(d.fv.data, target)
}

func (d *textDecoder) temporal(target string) (temporal, temporalKind, error) {
	return d.parseTemporal(d.fv.data, target)
}

func (d *textDecoder) text() (string, error) {
	col := d.fv.col
	b := d.fv.data

	switch col.columnType.id {
	case TypeTiny, TypeShort, TypeLong, TypeInt24, TypeLongLong,
		TypeDecimal, TypeNewDecimal, TypeFloat, TypeDouble:
		return zeroFill(string(b), col), nil

	case TypeBit:
		return strconv.FormatUint(parseBit(b), 10), nil

	case TypeYear:
		if !d.opts.YearIsDateType {
			return string(b), nil
		}
		fallthrough
	case TypeDate, TypeNewDate, TypeDatetime, TypeDatetime2, TypeTimestamp,
		TypeTimestamp2, TypeTime, TypeTime2:
		t, kind, err := d.temporal("string")
		if err != nil {
			// print what the server sent
			return string(b), nil
		}
		return d.formatTemporal(&t, kind), nil

	case TypeGeometry:
		return string(b), nil
	}
	return d.chars(b)
}

// appendTextRow encodes values as a text protocol row, for results built
// from in-memory data. nil becomes NULL.
func appendTextRow(b []byte, columns []*ColumnDefinition, values []interface{}) []byte {
	var lenenc [9]byte

	for i, v := range values {
		if vr, ok := v.(driver.Valuer); ok {
			if v, _ = vr.Value(); v == nil {
				b = append(b, 0xfb)
				continue
			}
		}
		if v == nil {
			b = append(b, 0xfb)
			continue
		}

		var s string
		if i < len(columns) && columns[i].columnType.id == TypeBit {
			s = string(bitBytes(v))
		} else {
			s = stringify(v)
		}
		n := putLenencInt(lenenc[:], uint64(len(s)))
		b = append(b, lenenc[:n]...)
		b = append(b, s...)
	}
	return b
}

// bitBytes returns the big-endian form of a BIT value given as a bool or an
// integer; byte strings are taken as they are.
func bitBytes(d interface{}) []byte {
	var u uint64

	switch v := d.(type) {
	case []byte:
		return v
	case bool:
		if v {
			u = 1
		}
	default:
		rv := reflect.ValueOf(d)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			u = uint64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u = rv.Uint()
		default:
			return []byte(stringify(d))
		}
	}

	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, u)
	i := 0
	for i < 7 && b[i] == 0 {
		i++
	}
	return b[i:]
}

// stringify returns the text protocol form of a Go value.
func stringify(d interface{}) string {
	switch v := d.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		t := temporal{year: v.Year(), month: int(v.Month()), day: v.Day(),
			hour: v.Hour(), minute: v.Minute(), second: v.Second(),
			micro: v.Nanosecond() / 1000}
		if t.micro != 0 {
			return formatDatetime(&t, 6)
		}
		return formatDatetime(&t, 0)
	case time.Duration:
		return FormatDuration(v)
	case *big.Rat:
		return decimalString(v)
	case *big.Int:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(d)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	}
	return fmt.Sprintf("%v", d)
}
