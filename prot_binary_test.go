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
	"math/big"
	"testing"
	"time"
)

// testColumn returns a synthetic column definition with extra flags set.
func testColumn(name string, t ColumnType, flags uint16) *ColumnDefinition {
	col := NewColumnDefinition(name, t)
	col.flags |= flags
	return col
}

func writeUint64(b []byte, v uint64) (n int) {
	binary.LittleEndian.PutUint64(b[:8], v)
	return 8
}

func writeUint32(b []byte, v uint32) (n int) {
	binary.LittleEndian.PutUint32(b[:4], v)
	return 4
}

func writeUint16(b []byte, v uint16) (n int) {
	binary.LittleEndian.PutUint16(b[:2], v)
	return 2
}

func writeDouble(b []byte, v float64) (n int) {
	binary.LittleEndian.PutUint64(b[:8], math.Float64bits(v))
	return 8
}

func writeFloat(b []byte, v float32) (n int) {
	binary.LittleEndian.PutUint32(b[:4], math.Float32bits(v))
	return 4
}

// writeDate writes a DATE/DATETIME/TIMESTAMP value with its length byte.
// The zero date is written as raw bytes by the callers.
func writeDate(b []byte, v time.Time) int {
	var length uint8
	micro := uint32(v.Nanosecond() / 1000)

	switch {
	case v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && micro == 0:
		length = 4
	case micro == 0:
		length = 7
	default:
		length = 11
	}

	b[0] = length
	off := 1
	off += writeUint16(b[off:], uint16(v.Year()))
	b[off] = uint8(v.Month())
	b[off+1] = uint8(v.Day())
	off += 2
	if length >= 7 {
		b[off] = uint8(v.Hour())
		b[off+1] = uint8(v.Minute())
		b[off+2] = uint8(v.Second())
		off += 3
	}
	if length == 11 {
		off += writeUint32(b[off:], micro)
	}
	return off
}

// writeTime writes a TIME value with its length byte.
func writeTime(b []byte, v time.Duration) int {
	var neg uint8

	if v < 0 {
		neg = 1
		v = -v
	}
	days := uint32(v / (24 * time.Hour))
	v %= 24 * time.Hour
	hours := uint8(v / time.Hour)
	v %= time.Hour
	mins := uint8(v / time.Minute)
	v %= time.Minute
	secs := uint8(v / time.Second)
	v %= time.Second
	micro := uint32(v / time.Microsecond)

	b[0] = 8
	if micro != 0 {
		b[0] = 12
	}
	b[1] = neg
	off := 2
	off += writeUint32(b[off:], days)
	b[off] = hours
	b[off+1] = mins
	b[off+2] = secs
	off += 3
	if micro != 0 {
		off += writeUint32(b[off:], micro)
	}
	return off
}

// integer returns the two's complement bit pattern of an integer value.
func integer(v interface{}) uint64 {
	switch v := v.(type) {
	case int:
		return uint64(int64(v))
	case int64:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	}
	panic("not an integer")
}

// binaryRow encodes values (nil for NULL) as a binary protocol row of
// columns. Temporal columns take a time.Time, a time.Duration or raw bytes
// starting at the length byte.
func binaryRow(columns []*ColumnDefinition, values ...interface{}) []byte {
	var tmp [32]byte

	b := make([]byte, 1+(len(columns)+9)/8)
	for i, v := range values {
		if v == nil {
			setNull(b[1:], i, 2)
		}
	}

	for i, v := range values {
		if v == nil {
			continue
		}

		var n int
		switch columns[i].columnType.id {
		case TypeTiny:
			tmp[0] = byte(integer(v))
			n = 1
		case TypeShort, TypeYear:
			n = writeUint16(tmp[:], uint16(integer(v)))
		case TypeLong, TypeInt24:
			n = writeUint32(tmp[:], uint32(integer(v)))
		case TypeLongLong:
			n = writeUint64(tmp[:], integer(v))
		case TypeFloat:
			n = writeFloat(tmp[:], v.(float32))
		case TypeDouble:
			n = writeDouble(tmp[:], v.(float64))
		case TypeDate, TypeDatetime, TypeTimestamp, TypeTime:
			switch v := v.(type) {
			case []byte:
				b = append(b, v...)
				continue
			case time.Time:
				n = writeDate(tmp[:], v)
			case time.Duration:
				n = writeTime(tmp[:], v)
			}
		default:
			var s string
			switch v := v.(type) {
			case string:
				s = v
			case []byte:
				s = string(v)
			}
			n = putLenencInt(tmp[:], uint64(len(s)))
			b = append(b, tmp[:n]...)
			b = append(b, s...)
			continue
		}
		b = append(b, tmp[:n]...)
	}
	return b
}

// binaryRows returns a result positioned on a single binary row.
func binaryRows(t *testing.T, opts *Options, columns []*ColumnDefinition, values ...interface{}) *Rows {
	t.Helper()

	rt := newFakeRuntime(binaryRow(columns, values...))
	r, err := NewRows(NewSession(rt, opts), columns, RowsConfig{Binary: true, FetchSize: 0})
	if err != nil {
		t.Fatalf("NewRows failed: %v", err)
	}
	if ok, err := r.Next(); !ok || err != nil {
		t.Fatalf("Next = %v, %v", ok, err)
	}
	return r
}

func TestBinaryUnsignedInt(t *testing.T) {
	columns := []*ColumnDefinition{
		testColumn("c", ColumnTypeLong, flagUnsigned),
	}
	r := binaryRows(t, nil, columns, uint32(0xffffffff))

	v64, err := r.GetInt64(1)
	if err != nil || v64 != 4294967295 {
		t.Fatalf("GetInt64 = %d, %v; want 4294967295", v64, err)
	}
	if _, err = r.GetInt32(1); !IsRangeError(err) {
		t.Fatalf("GetInt32 error = %v; want range error", err)
	}
	if s, err := r.GetString(1); err != nil || s != "4294967295" {
		t.Fatalf("GetString = %q, %v", s, err)
	}
	if v, err := r.GetUint32(1); err != nil || v != math.MaxUint32 {
		t.Fatalf("GetUint32 = %d, %v", v, err)
	}
	if v, err := r.GetObject(1); err != nil || v != uint32(math.MaxUint32) {
		t.Fatalf("GetObject = %#v, %v", v, err)
	}
}

func TestBinaryUnsignedBigint(t *testing.T) {
	columns := []*ColumnDefinition{
		testColumn("a", ColumnTypeLongLong, flagUnsigned),
		testColumn("b", ColumnTypeLongLong, flagUnsigned),
		testColumn("c", ColumnTypeLongLong, flagUnsigned),
		testColumn("d", ColumnTypeLongLong, 0),
	}
	r := binaryRows(t, nil, columns,
		uint64(1<<63), uint64(1<<63-1), uint64(math.MaxUint64), int64(-1))

	// 2^63 does not fit a signed 64-bit integer
	if _, err := r.GetInt64(1); !IsRangeError(err) {
		t.Fatalf("GetInt64(2^63) error = %v; want range error", err)
	}
	if v, err := r.GetUint64(1); err != nil || v != 1<<63 {
		t.Fatalf("GetUint64(2^63) = %d, %v", v, err)
	}
	if v, err := r.GetBigInt(1); err != nil || v.String() != "9223372036854775808" {
		t.Fatalf("GetBigInt(2^63) = %v, %v", v, err)
	}
	if v, err := r.GetDecimal(1); err != nil || v.Cmp(new(big.Rat).SetUint64(1<<63)) != 0 {
		t.Fatalf("GetDecimal(2^63) = %v, %v", v, err)
	}
	if s, err := r.GetString(1); err != nil || s != "9223372036854775808" {
		t.Fatalf("GetString(2^63) = %q, %v", s, err)
	}

	if v, err := r.GetInt64(2); err != nil || v != math.MaxInt64 {
		t.Fatalf("GetInt64(2^63-1) = %d, %v", v, err)
	}

	if v, err := r.GetUint64(3); err != nil || v != math.MaxUint64 {
		t.Fatalf("GetUint64(2^64-1) = %d, %v", v, err)
	}
	if v, err := r.GetFloat64(3); err != nil || v != float64(math.MaxUint64) {
		t.Fatalf("GetFloat64(2^64-1) = %g, %v", v, err)
	}

	if v, err := r.GetInt64(4); err != nil || v != -1 {
		t.Fatalf("GetInt64(-1) = %d, %v", v, err)
	}
	if _, err := r.GetUint64(4); !IsRangeError(err) {
		t.Fatalf("GetUint64(-1) error = %v; want range error", err)
	}
}

func TestBinaryNarrowing(t *testing.T) {
	columns := []*ColumnDefinition{
		NewColumnDefinition("i", ColumnTypeLong),
		NewColumnDefinition("s", ColumnTypeShort),
		NewColumnDefinition("t", ColumnTypeTiny),
	}
	r := binaryRows(t, nil, columns, 70000, -300, -128)

	tests := []struct {
		col     int
		get     func(int) (int64, error)
		want    int64
		inRange bool
	}{
		{1, func(i int) (int64, error) { v, err := r.GetInt16(i); return int64(v), err }, 0, false},
		{1, func(i int) (int64, error) { v, err := r.GetInt32(i); return int64(v), err }, 70000, true},
		{2, func(i int) (int64, error) { v, err := r.GetInt8(i); return int64(v), err }, 0, false},
		{2, func(i int) (int64, error) { v, err := r.GetInt16(i); return int64(v), err }, -300, true},
		{3, func(i int) (int64, error) { v, err := r.GetInt8(i); return int64(v), err }, -128, true},
		{3, r.GetInt64, -128, true},
	}

	for i, tt := range tests {
		v, err := tt.get(tt.col)
		if !tt.inRange {
			if !IsRangeError(err) {
				t.Errorf("#%d: error = %v; want range error", i, err)
			}
			continue
		}
		if err != nil || v != tt.want {
			t.Errorf("#%d: got %d, %v; want %d", i, v, err, tt.want)
		}
	}
}

func TestBinaryFloatAndDecimal(t *testing.T) {
	columns := []*ColumnDefinition{
		NewColumnDefinition("f", ColumnTypeFloat),
		NewColumnDefinition("d", ColumnTypeDouble),
		NewColumnDefinition("n", ColumnTypeNewDecimal),
		NewColumnDefinition("m", ColumnTypeNewDecimal),
	}
	r := binaryRows(t, nil, columns, float32(1.5), float64(-2.75), "123.4500", "-9.99")

	if v, err := r.GetFloat32(1); err != nil || v != 1.5 {
		t.Fatalf("GetFloat32 = %g, %v", v, err)
	}
	if s, err := r.GetString(1); err != nil || s != "1.5" {
		t.Fatalf("GetString(float) = %q, %v", s, err)
	}
	if v, err := r.GetDecimal(1); err != nil || v.RatString() != "3/2" {
		t.Fatalf("GetDecimal(float) = %v, %v", v, err)
	}
	if v, err := r.GetInt64(1); err != nil || v != 1 {
		t.Fatalf("GetInt64(float) = %d, %v", v, err)
	}

	if v, err := r.GetFloat64(2); err != nil || v != -2.75 {
		t.Fatalf("GetFloat64 = %g, %v", v, err)
	}
	if v, err := r.GetInt32(2); err != nil || v != -2 {
		t.Fatalf("GetInt32(double) = %d, %v", v, err)
	}

	if s, err := r.GetString(3); err != nil || s != "123.4500" {
		t.Fatalf("GetString(decimal) = %q, %v", s, err)
	}
	if v, err := r.GetDecimal(3); err != nil || v.Cmp(big.NewRat(12345, 100)) != 0 {
		t.Fatalf("GetDecimal = %v, %v", v, err)
	}
	if v, err := r.GetInt32(3); err != nil || v != 123 {
		t.Fatalf("GetInt32(decimal) = %d, %v", v, err)
	}
	if v, err := r.GetInt8(4); err != nil || v != -9 {
		t.Fatalf("GetInt8(-9.99) = %d, %v", v, err)
	}
	if v, err := r.GetBool(4); err != nil || !v {
		t.Fatalf("GetBool(-9.99) = %v, %v", v, err)
	}
}

func TestBinaryZeroDate(t *testing.T) {
	columns := []*ColumnDefinition{
		NewColumnDefinition("d", ColumnTypeDate),
		NewColumnDefinition("dt", ColumnTypeDatetime),
	}
	r := binaryRows(t, nil, columns, []byte{0}, []byte{0})

	if s, err := r.GetString(1); err != nil || s != "0000-00-00" {
		t.Fatalf("GetString(date) = %q, %v", s, err)
	}
	if !r.IsZeroDate() {
		t.Fatalf("IsZeroDate = false after reading a zero date")
	}

	v, err := r.GetDate(1)
	if err != nil || !v.IsZero() {
		t.Fatalf("GetDate = %v, %v; want zero time", v, err)
	}
	if r.WasNull() {
		t.Fatalf("WasNull = true for a zero date")
	}
	if !r.IsZeroDate() {
		t.Fatalf("IsZeroDate = false")
	}

	if s, err := r.GetString(2); err != nil || s != "0000-00-00 00:00:00" {
		t.Fatalf("GetString(datetime) = %q, %v", s, err)
	}
	if v, err := r.GetObject(2); err != nil || v != nil {
		t.Fatalf("GetObject(datetime) = %v, %v; want nil", v, err)
	}
	if !r.IsZeroDate() || r.WasNull() {
		t.Fatalf("IsZeroDate = %v, WasNull = %v", r.IsZeroDate(), r.WasNull())
	}
}

func TestBinaryTemporal(t *testing.T) {
	timeCol := NewColumnDefinition("t", ColumnTypeTime)
	timeCol.decimals = 3
	dtCol := NewColumnDefinition("dt", ColumnTypeDatetime)
	dtCol.decimals = 6

	columns := []*ColumnDefinition{
		NewColumnDefinition("d", ColumnTypeDate),
		dtCol,
		timeCol,
		NewColumnDefinition("min", ColumnTypeTime),
		NewColumnDefinition("max", ColumnTypeTime),
	}
	dt := time.Date(2024, 1, 5, 10, 20, 30, 123456000, time.UTC)
	r := binaryRows(t, nil, columns,
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), dt,
		500*time.Millisecond, MinDuration, MaxDuration)

	if s, err := r.GetString(1); err != nil || s != "2024-01-05" {
		t.Fatalf("GetString(date) = %q, %v", s, err)
	}
	if v, err := r.GetDate(1); err != nil || !v.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("GetDate = %v, %v", v, err)
	}
	if r.IsZeroDate() {
		t.Fatalf("IsZeroDate = true for 2024-01-05")
	}
	if _, err := r.GetTime(1); !IsUnsupportedConversion(err) {
		t.Fatalf("GetTime(date) error = %v; want unsupported conversion", err)
	}
	if _, err := r.GetInt64(1); !IsUnsupportedConversion(err) {
		t.Fatalf("GetInt64(date) error = %v; want unsupported conversion", err)
	}

	if s, err := r.GetString(2); err != nil || s != "2024-01-05 10:20:30.123456" {
		t.Fatalf("GetString(datetime) = %q, %v", s, err)
	}
	if v, err := r.GetTimestamp(2); err != nil || !v.Equal(dt) {
		t.Fatalf("GetTimestamp = %v, %v", v, err)
	}
	want := 10*time.Hour + 20*time.Minute + 30*time.Second + 123456*time.Microsecond
	if v, err := r.GetTime(2); err != nil || v != want {
		t.Fatalf("GetTime(datetime) = %v, %v; want %v", v, err, want)
	}

	if s, err := r.GetString(3); err != nil || s != "00:00:00.500" {
		t.Fatalf("GetString(time) = %q, %v", s, err)
	}
	if v, err := r.GetTimestamp(3); err != nil ||
		!v.Equal(time.Date(1970, 1, 1, 0, 0, 0, 500000000, time.UTC)) {
		t.Fatalf("GetTimestamp(time) = %v, %v", v, err)
	}
	if _, err := r.GetDate(3); !IsUnsupportedConversion(err) {
		t.Fatalf("GetDate(time) error = %v; want unsupported conversion", err)
	}

	if s, err := r.GetString(4); err != nil || s != "-838:59:59" {
		t.Fatalf("GetString(min) = %q, %v", s, err)
	}
	if v, err := r.GetTime(4); err != nil || v != MinDuration {
		t.Fatalf("GetTime(min) = %v, %v", v, err)
	}
	if s, err := r.GetString(5); err != nil || s != "838:59:59" {
		t.Fatalf("GetString(max) = %q, %v", s, err)
	}
	if v, err := r.GetObject(5); err != nil || v != MaxDuration {
		t.Fatalf("GetObject(max) = %v, %v", v, err)
	}
}

func TestBinaryTimestampLocation(t *testing.T) {
	columns := []*ColumnDefinition{NewColumnDefinition("ts", ColumnTypeTimestamp)}
	r := binaryRows(t, nil, columns, time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC))

	loc := time.FixedZone("UTC+2", 2*60*60)
	r.SetLocation(loc)
	v, err := r.GetTimestamp(1)
	if err != nil {
		t.Fatalf("GetTimestamp failed: %v", err)
	}
	if v.Location() != loc || v.Hour() != 12 {
		t.Fatalf("GetTimestamp = %v; want 12:00 in %v", v, loc)
	}
}

func TestBinaryYear(t *testing.T) {
	short := NewColumnDefinition("y2", ColumnTypeYear)
	short.columnLength = 2
	long := NewColumnDefinition("y4", ColumnTypeYear)
	long.columnLength = 4

	columns := []*ColumnDefinition{short, short, long}

	r := binaryRows(t, nil, columns, 69, 70, 1999)
	tests := []struct {
		col  int
		want int
	}{
		{1, 2069},
		{2, 1970},
		{3, 1999},
	}
	for _, tt := range tests {
		v, err := r.GetDate(tt.col)
		if err != nil || v.Year() != tt.want || v.Month() != time.January || v.Day() != 1 {
			t.Errorf("GetDate(%d) = %v, %v; want %d-01-01", tt.col, v, err, tt.want)
		}
	}
	if s, err := r.GetString(3); err != nil || s != "1999-01-01" {
		t.Fatalf("GetString(year) = %q, %v", s, err)
	}

	opts := DefaultOptions()
	opts.YearIsDateType = false
	r = binaryRows(t, opts, columns, 69, 70, 1999)
	if v, err := r.GetObject(1); err != nil || v != int16(69) {
		t.Fatalf("GetObject(year) = %#v, %v; want int16(69)", v, err)
	}
	if s, err := r.GetString(3); err != nil || s != "1999" {
		t.Fatalf("GetString(year) = %q, %v", s, err)
	}
}

func TestBinaryNull(t *testing.T) {
	columns := []*ColumnDefinition{
		NewColumnDefinition("a", ColumnTypeLong),
		NewColumnDefinition("b", ColumnTypeVarchar),
		NewColumnDefinition("c", ColumnTypeDate),
	}
	r := binaryRows(t, nil, columns, nil, "x", nil)

	if v, err := r.GetInt32(1); err != nil || v != 0 {
		t.Fatalf("GetInt32(NULL) = %d, %v", v, err)
	}
	if !r.WasNull() || !r.WasNull() {
		t.Fatalf("WasNull = false after reading NULL")
	}

	// a failed read leaves the flag alone
	if _, err := r.GetString(4); !IsUsageError(err) {
		t.Fatalf("GetString(4) error = %v; want usage error", err)
	}
	if !r.WasNull() {
		t.Fatalf("WasNull changed by a failed read")
	}

	if s, err := r.GetString(2); err != nil || s != "x" {
		t.Fatalf("GetString = %q, %v", s, err)
	}
	if r.WasNull() {
		t.Fatalf("WasNull = true after reading a value")
	}

	if v, err := r.GetDate(3); err != nil || !v.IsZero() {
		t.Fatalf("GetDate(NULL) = %v, %v", v, err)
	}
	if !r.WasNull() || r.IsZeroDate() {
		t.Fatalf("WasNull = %v, IsZeroDate = %v; want true, false", r.WasNull(), r.IsZeroDate())
	}
	if v, err := r.GetObject(3); err != nil || v != nil {
		t.Fatalf("GetObject(NULL) = %v, %v", v, err)
	}
	if v, err := r.GetBytes(1); err != nil || v != nil {
		t.Fatalf("GetBytes(NULL) = %v, %v", v, err)
	}
	if v, err := r.GetDecimal(1); err != nil || v != nil {
		t.Fatalf("GetDecimal(NULL) = %v, %v", v, err)
	}
}

func TestBinaryBit(t *testing.T) {
	flag := NewColumnDefinition("f", ColumnTypeBit)
	bits := NewColumnDefinition("b", ColumnTypeBit)
	bits.columnLength = 16

	columns := []*ColumnDefinition{flag, bits}
	r := binaryRows(t, nil, columns, []byte{1}, []byte{0x01, 0x02})

	if v, err := r.GetObject(1); err != nil || v != true {
		t.Fatalf("GetObject(bit(1)) = %#v, %v", v, err)
	}
	if v, err := r.GetInt32(2); err != nil || v != 258 {
		t.Fatalf("GetInt32(bit(16)) = %d, %v", v, err)
	}
	if s, err := r.GetString(2); err != nil || s != "258" {
		t.Fatalf("GetString(bit(16)) = %q, %v", s, err)
	}
	if v, err := r.GetBytes(2); err != nil || string(v) != "\x01\x02" {
		t.Fatalf("GetBytes(bit(16)) = %v, %v", v, err)
	}
}

func TestBinaryZeroFill(t *testing.T) {
	col := testColumn("z", ColumnTypeLong, flagZeroFill|flagUnsigned)
	col.columnLength = 5

	r := binaryRows(t, nil, []*ColumnDefinition{col}, 42)
	if s, err := r.GetString(1); err != nil || s != "00042" {
		t.Fatalf("GetString = %q, %v; want 00042", s, err)
	}
	if v, err := r.GetInt32(1); err != nil || v != 42 {
		t.Fatalf("GetInt32 = %d, %v", v, err)
	}
}

func TestBinaryMalformedRow(t *testing.T) {
	columns := []*ColumnDefinition{
		NewColumnDefinition("a", ColumnTypeLong),
		NewColumnDefinition("b", ColumnTypeVarchar),
	}

	tests := [][]byte{
		{0x01, 0x00, 1, 0, 0, 0, 0},       // bad header
		{0x00},                            // no null bitmap
		{0x00, 0x00, 1, 0},                // short integer
		{0x00, 0x00, 1, 0, 0, 0, 5, 'a'}, // short string
	}

	for i, row := range tests {
		rt := newFakeRuntime(row)
		r, err := NewRows(NewSession(rt, nil), columns, RowsConfig{Binary: true})
		if err != nil {
			t.Fatalf("#%d: NewRows failed: %v", i, err)
		}
		if ok, err := r.Next(); !ok || err != nil {
			t.Fatalf("#%d: Next = %v, %v", i, ok, err)
		}
		if _, err = r.GetInt32(1); !IsProtocolError(err) {
			t.Errorf("#%d: error = %v; want protocol error", i, err)
		}
		if !r.IsClosed() {
			t.Errorf("#%d: result not closed after a malformed row", i)
		}
	}
}

func TestBinaryBadTemporalLength(t *testing.T) {
	columns := []*ColumnDefinition{NewColumnDefinition("d", ColumnTypeDatetime)}
	row := binaryRow(columns, []byte{5, 0xe8, 0x07, 1, 1, 0})

	d := newBinaryDecoder(columns, nil)
	if err := d.setRow(row); !IsProtocolError(err) {
		t.Fatalf("setRow error = %v; want protocol error", err)
	}
}
