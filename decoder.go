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
	"time"
)

// rowDecoder turns one row payload into typed values, one positioned field
// at a time. The binary and text protocols each have an implementation; a
// result picks one when it is created and keeps it.
type rowDecoder interface {
	// setRow makes payload the current row.
	setRow(payload []byte) error
	// setPosition positions the field view at the i-th (0-based) column.
	setPosition(i int) error
	field() *fieldView

	// text returns the canonical text form of the positioned value.
	text() (string, error)
	// number decodes the positioned value as a number.
	number(target string) (numeric, error)
	// temporal decodes the positioned value as date and/or time fields.
	temporal(target string) (temporal, temporalKind, error)
}

type temporalKind uint8

const (
	kindDate temporalKind = iota
	kindDatetime
	kindTime
	kindYear
)

// decoderBase holds what both protocol variants share: the column list,
// span offsets of the current row and the single field view.
type decoderBase struct {
	columns []*ColumnDefinition
	opts    *Options

	payload []byte
	starts  []int // -1 for NULL
	ends    []int

	fv fieldView
}

func newDecoderBase(columns []*ColumnDefinition, opts *Options) decoderBase {
	if opts == nil {
		opts = &defaultOptions
	}
	d := decoderBase{
		columns: columns,
		opts:    opts,
		starts:  make([]int, len(columns)),
		ends:    make([]int, len(columns)),
	}
	d.fv.reset()
	return d
}

func (d *decoderBase) field() *fieldView {
	return &d.fv
}

// seek points the field view at column i of the current row.
func (d *decoderBase) seek(i int) error {
	if d.payload == nil {
		return myError(ErrUsage, "no current row")
	}
	if i < 0 || i >= len(d.columns) {
		return myError(ErrColumnIndex, i+1, len(d.columns))
	}

	d.fv.col = d.columns[i]
	d.fv.index = i
	d.fv.zeroDate = false
	if d.starts[i] < 0 {
		d.fv.data = nil
		d.fv.lastNull = true
		return nil
	}
	d.fv.data = d.payload[d.starts[i]:d.ends[i]]
	d.fv.lastNull = false
	return nil
}

// chars decodes character data of the positioned column to UTF-8.
func (d *decoderBase) chars(b []byte) (string, error) {
	col := d.fv.col
	if !d.opts.DecodeCharset || col.IsBinary() {
		return string(b), nil
	}
	s, err := decodeText(col.charset, b)
	if err != nil {
		return "", myError(ErrFormat, col.Name(), string(b), "string")
	}
	return s, nil
}

// year applies the century inference of 2-digit YEAR columns.
func (d *decoderBase) year(y int) int {
	if d.fv.col.Length() == 2 && y < 100 {
		if y < 70 {
			return y + 2000
		}
		return y + 1900
	}
	return y
}

func unsupported(col *ColumnDefinition, target string) error {
	return myError(ErrUnsupportedConversion, target, col.Name(), col.typeName())
}

// The decode functions below expect the decoder to be positioned. A NULL
// value decodes to the zero value of the target type.

func decodeString(d rowDecoder) (string, error) {
	if d.field().lastNull {
		return "", nil
	}
	return d.text()
}

func decodeBytes(d rowDecoder) ([]byte, error) {
	f := d.field()
	if f.lastNull {
		return nil, nil
	}
	b := make([]byte, len(f.data))
	copy(b, f.data)
	return b, nil
}

func decodeBool(d rowDecoder) (bool, error) {
	f := d.field()
	if f.lastNull {
		return false, nil
	}

	if isTextual(f.col.columnType) {
		s, err := d.text()
		if err != nil {
			return false, err
		}
		return textBool(s), nil
	}

	n, err := d.number("bool")
	if err != nil {
		return false, err
	}
	return !n.isZero(), nil
}

func decodeInt(d rowDecoder, target string, min, max int64) (int64, error) {
	f := d.field()
	if f.lastNull {
		return 0, nil
	}
	n, err := d.number(target)
	if err != nil {
		return 0, err
	}
	return n.toInt(f.col, target, min, max)
}

func decodeUint(d rowDecoder, target string, max uint64) (uint64, error) {
	f := d.field()
	if f.lastNull {
		return 0, nil
	}
	n, err := d.number(target)
	if err != nil {
		return 0, err
	}
	return n.toUint(f.col, target, max)
}

func decodeBigInt(d rowDecoder) (*big.Int, error) {
	f := d.field()
	if f.lastNull {
		return nil, nil
	}
	n, err := d.number("big.Int")
	if err != nil {
		return nil, err
	}
	return n.truncated(f.col, "big.Int")
}

func decodeFloat64(d rowDecoder) (float64, error) {
	if d.field().lastNull {
		return 0, nil
	}
	n, err := d.number("float64")
	if err != nil {
		return 0, err
	}
	return n.toFloat64(), nil
}

func decodeFloat32(d rowDecoder) (float32, error) {
	f := d.field()
	if f.lastNull {
		return 0, nil
	}
	n, err := d.number("float32")
	if err != nil {
		return 0, err
	}
	return n.toFloat32(f.col)
}

func decodeDecimal(d rowDecoder) (*big.Rat, error) {
	f := d.field()
	if f.lastNull {
		return nil, nil
	}
	n, err := d.number("decimal")
	if err != nil {
		return nil, err
	}
	return n.toDecimal(f.col)
}

// decodeDate returns the date part at midnight. The zero-date sentinel
// decodes to the zero time.Time with the zero-date flag set.
func decodeDate(d rowDecoder, loc *time.Location) (time.Time, error) {
	f := d.field()
	if f.lastNull {
		return time.Time{}, nil
	}
	t, kind, err := d.temporal("date")
	if err != nil {
		return time.Time{}, err
	}
	if kind == kindTime {
		return time.Time{}, unsupported(f.col, "date")
	}
	if t.zeroDate() {
		f.zeroDate = true
		return time.Time{}, nil
	}
	return time.Date(t.year, time.Month(t.month), t.day, 0, 0, 0, 0, loc), nil
}

// decodeTime returns a TIME value, or the time of day of a DATETIME.
func decodeTime(d rowDecoder) (time.Duration, error) {
	f := d.field()
	if f.lastNull {
		return 0, nil
	}
	t, kind, err := d.temporal("time")
	if err != nil {
		return 0, err
	}
	if kind == kindDate || kind == kindYear {
		return 0, unsupported(f.col, "time")
	}
	if kind == kindDatetime {
		t.year, t.month, t.day, t.neg = 0, 0, 0, false
	}
	if !t.fitsDuration() {
		return 0, myError(ErrRange, f.col.Name(), formatTime(&t, 0), "time.Duration")
	}
	return t.toDuration(), nil
}

// decodeTimestamp returns a point in time. TIME values are taken as an
// offset from the epoch.
func decodeTimestamp(d rowDecoder, loc *time.Location) (time.Time, error) {
	f := d.field()
	if f.lastNull {
		return time.Time{}, nil
	}
	t, kind, err := d.temporal("timestamp")
	if err != nil {
		return time.Time{}, err
	}
	if kind == kindTime {
		if !t.fitsDuration() {
			return time.Time{}, myError(ErrRange, f.col.Name(), formatTime(&t, 0), "time.Duration")
		}
		return time.Date(1970, time.January, 1, 0, 0, 0, 0, loc).Add(t.toDuration()), nil
	}
	if t.zeroDate() {
		f.zeroDate = true
		return time.Time{}, nil
	}
	return t.toTime(loc), nil
}

// decodeObject returns the value as the Go type HostRepresentation names
// for the column; nil for NULL and for the zero-date sentinel.
func decodeObject(d rowDecoder, opts *Options, loc *time.Location) (interface{}, error) {
	f := d.field()
	if f.lastNull {
		return nil, nil
	}
	col := f.col

	switch HostRepresentation(col.columnType, col.Length(), col.IsSigned(), col.IsBinary(), opts) {
	case typeBool:
		return decodeBool(d)
	case typeInt8:
		v, err := decodeInt(d, "int8", math.MinInt8, math.MaxInt8)
		return int8(v), err
	case typeInt16:
		v, err := decodeInt(d, "int16", math.MinInt16, math.MaxInt16)
		return int16(v), err
	case typeInt32:
		v, err := decodeInt(d, "int32", math.MinInt32, math.MaxInt32)
		return int32(v), err
	case typeInt64:
		return decodeInt(d, "int64", math.MinInt64, math.MaxInt64)
	case typeUint8:
		v, err := decodeUint(d, "uint8", math.MaxUint8)
		return uint8(v), err
	case typeUint16:
		v, err := decodeUint(d, "uint16", math.MaxUint16)
		return uint16(v), err
	case typeUint32:
		v, err := decodeUint(d, "uint32", math.MaxUint32)
		return uint32(v), err
	case typeUint64:
		return decodeUint(d, "uint64", math.MaxUint64)
	case typeFloat32:
		return decodeFloat32(d)
	case typeFloat64:
		return decodeFloat64(d)
	case typeDecimal:
		return decodeDecimal(d)
	case typeTime:
		var (
			v   time.Time
			err error
		)
		if col.columnType.id == TypeDate || col.columnType.id == TypeNewDate ||
			col.columnType.id == TypeYear {
			v, err = decodeDate(d, loc)
		} else {
			v, err = decodeTimestamp(d, loc)
		}
		if err != nil || f.zeroDate {
			return nil, err
		}
		return v, nil
	case typeDuration:
		return decodeTime(d)
	case typeString:
		return decodeString(d)
	}
	return decodeBytes(d)
}

// parseNumber parses the text form of a number held by the positioned
// column. FLOAT and DOUBLE columns parse to binary floats; everything else
// stays exact.
func (d *decoderBase) parseNumber(b []byte, target string) (numeric, error) {
	col := d.fv.col

	bits := 0
	switch col.columnType.id {
	case TypeFloat:
		bits = 32
	case TypeDouble:
		bits = 64
	}

	n, ok := parseTextNumber(trimSpace(b), bits)
	if !ok {
		return numeric{}, myError(ErrFormat, col.Name(), string(b), target)
	}
	return n, nil
}

// parseTemporal parses the text form of a temporal value. kind follows the
// column type; for character columns it is inferred from the text.
func (d *decoderBase) parseTemporal(b []byte, target string) (temporal, temporalKind, error) {
	var (
		t    temporal
		kind temporalKind
		ok   bool
	)
	col := d.fv.col

	switch col.columnType.id {
	case TypeDate, TypeNewDate:
		kind = kindDate
		t, ok = parseTextDate(b)
		ok = ok && len(b) == 10
	case TypeDatetime, TypeDatetime2, TypeTimestamp, TypeTimestamp2:
		kind = kindDatetime
		t, ok = parseTextDate(b)
	case TypeTime, TypeTime2:
		kind = kindTime
		t, ok = parseTextTime(b)
	case TypeYear:
		kind = kindYear
		var y int
		if y, ok = parseDigits(b); ok {
			t = temporal{year: d.year(y), month: 1, day: 1}
		}
	default:
		if !isTextual(col.columnType) {
			return t, 0, unsupported(col, target)
		}
		b = trimSpace(b)
		if t, ok = parseTextDate(b); ok {
			kind = kindDatetime
			if len(b) == 10 {
				kind = kindDate
			}
		} else {
			kind = kindTime
			t, ok = parseTextTime(b)
		}
	}

	if !ok {
		return t, 0, myError(ErrFormat, col.Name(), string(b), target)
	}
	return t, kind, nil
}

// formatTemporal renders t the way the server prints the column type.
func (d *decoderBase) formatTemporal(t *temporal, kind temporalKind) string {
	decimals := d.fv.col.Decimals()

	switch kind {
	case kindDate:
		return formatDate(t)
	case kindTime:
		return formatTime(t, decimals)
	case kindYear:
		if d.opts.YearIsDateType {
			return formatDate(t)
		}
		return string(appendPadded(nil, t.year, 4))
	}
	if t.year == 0 && t.zeroDate() && t.hour == 0 && t.minute == 0 &&
		t.second == 0 && t.micro == 0 {
		return "0000-00-00 00:00:00"
	}
	return formatDatetime(t, decimals)
}

// markZeroDate sets the zero-date flag of the field view when the
// positioned value is a date that can't be represented.
func markZeroDate(d rowDecoder) {
	f := d.field()
	if f.lastNull {
		return
	}
	switch f.col.columnType.id {
	case TypeDate, TypeNewDate, TypeDatetime, TypeDatetime2, TypeTimestamp,
		TypeTimestamp2:
	default:
		return
	}
	if t, _, err := d.temporal(""); err == nil && t.zeroDate() {
		f.zeroDate = true
	}
}
