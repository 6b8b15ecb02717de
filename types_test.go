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
	"reflect"
	"testing"
)

func TestFromServer(t *testing.T) {
	tests := []struct {
		id      uint8
		charset uint16
		want    ColumnType
	}{
		{TypeLong, 63, ColumnTypeLong},
		{TypeBlob, 33, ColumnTypeVarchar},
		{TypeTinyBlob, 45, ColumnTypeVarchar},
		{TypeBlob, binaryCharset, ColumnTypeBlob},
		{TypeLongBlob, binaryCharset, ColumnTypeLongBlob},
		{TypeGeometry, 33, ColumnTypeGeometry},
		{TypeJSON, 63, ColumnTypeJSON},
		{TypeDatetime2, 63, ColumnTypeDatetime2},
		{200, 33, ColumnTypeBlob},
	}

	for _, tt := range tests {
		if got := FromServer(tt.id, tt.charset); got != tt.want {
			t.Errorf("FromServer(%d, %d) = %v; want %v", tt.id, tt.charset, got, tt.want)
		}
	}
}

func TestToServer(t *testing.T) {
	tests := []struct {
		sqlType SQLType
		want    ColumnType
	}{
		{SQLInteger, ColumnTypeLong},
		{SQLBigInt, ColumnTypeLongLong},
		{SQLDecimal, ColumnTypeOldDecimal},
		{SQLTimestamp, ColumnTypeTimestamp},
		{SQLVarChar, ColumnTypeVarchar},
		{SQLBit, ColumnTypeBit},
		{SQLType(9999), ColumnTypeBlob},
	}

	for _, tt := range tests {
		if got := ToServer(tt.sqlType); got != tt.want {
			t.Errorf("ToServer(%d) = %v; want %v", tt.sqlType, got, tt.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	numeric := []ColumnType{ColumnTypeTiny, ColumnTypeLongLong, ColumnTypeDouble,
		ColumnTypeNewDecimal, ColumnTypeBit}
	for _, ct := range numeric {
		if !IsNumeric(ct) {
			t.Errorf("IsNumeric(%v) = false", ct)
		}
	}

	other := []ColumnType{ColumnTypeYear, ColumnTypeVarchar, ColumnTypeDate, ColumnTypeBlob}
	for _, ct := range other {
		if IsNumeric(ct) {
			t.Errorf("IsNumeric(%v) = true", ct)
		}
	}
}

func TestColumnTypeName(t *testing.T) {
	tests := []struct {
		t          ColumnType
		length     int64
		charLength int64
		signed     bool
		binary     bool
		want       string
	}{
		{ColumnTypeLong, 11, 11, true, true, "INTEGER"},
		{ColumnTypeLong, 10, 10, false, true, "INTEGER UNSIGNED"},
		{ColumnTypeTiny, 3, 3, false, true, "TINYINT UNSIGNED"},
		{ColumnTypeFloat, 12, 12, false, true, "FLOAT"},
		{ColumnTypeBlob, 255, 85, true, false, "TINYTEXT"},
		{ColumnTypeBlob, 65535, 21845, true, false, "TEXT"},
		{ColumnTypeBlob, 16777215, 5592405, true, false, "MEDIUMTEXT"},
		{ColumnTypeBlob, 1<<32 - 1, 1<<32 - 1, true, true, "LONGBLOB"},
		{ColumnTypeBlob, 65535, 65535, true, true, "BLOB"},
		{ColumnTypeBlob, -1, -1, true, true, "LONGBLOB"},
		{ColumnTypeVarchar, 192, 64, true, false, "VARCHAR"},
		{ColumnTypeVarchar, 196605, 65535, true, false, "TEXT"},
		{ColumnTypeVarchar, 1 << 31, 1 << 29, true, false, "LONGTEXT"},
		{ColumnTypeVarString, 16, 16, true, true, "VARBINARY"},
		{ColumnTypeString, 16, 16, true, true, "BINARY"},
		{ColumnTypeString, 48, 16, true, false, "CHAR"},
		{ColumnTypeDatetime2, 19, 19, true, true, "DATETIME"},
	}

	for _, tt := range tests {
		got := ColumnTypeName(tt.t, tt.length, tt.charLength, tt.signed, tt.binary)
		if got != tt.want {
			t.Errorf("ColumnTypeName(%v, %d, %d, %v, %v) = %q; want %q",
				tt.t, tt.length, tt.charLength, tt.signed, tt.binary, got, tt.want)
		}
	}
}

func TestHostRepresentation(t *testing.T) {
	noBit := DefaultOptions()
	noBit.TinyInt1IsBit = false
	noBit.YearIsDateType = false

	tests := []struct {
		t      ColumnType
		length int64
		signed bool
		binary bool
		opts   *Options
		want   reflect.Type
	}{
		{ColumnTypeTiny, 1, true, false, nil, typeBool},
		{ColumnTypeTiny, 1, true, false, noBit, typeInt8},
		{ColumnTypeTiny, 3, false, false, nil, typeUint8},
		{ColumnTypeShort, 6, true, false, nil, typeInt16},
		{ColumnTypeInt24, 9, false, false, nil, typeUint32},
		{ColumnTypeLongLong, 20, false, false, nil, typeUint64},
		{ColumnTypeYear, 4, false, false, nil, typeTime},
		{ColumnTypeYear, 4, false, false, noBit, typeInt16},
		{ColumnTypeFloat, 12, true, false, nil, typeFloat32},
		{ColumnTypeNewDecimal, 12, true, false, nil, typeDecimal},
		{ColumnTypeBit, 1, false, true, nil, typeBool},
		{ColumnTypeBit, 16, false, true, nil, typeBytes},
		{ColumnTypeTimestamp2, 19, true, true, nil, typeTime},
		{ColumnTypeTime2, 10, true, true, nil, typeDuration},
		{ColumnTypeVarchar, 192, true, false, nil, typeString},
		{ColumnTypeVarchar, 64, true, true, nil, typeBytes},
		{ColumnTypeJSON, 1 << 30, true, false, nil, typeString},
		{ColumnTypeGeometry, 1 << 30, true, true, nil, typeBytes},
	}

	for i, tt := range tests {
		if got := HostRepresentation(tt.t, tt.length, tt.signed, tt.binary, tt.opts); got != tt.want {
			t.Errorf("#%d: HostRepresentation(%v) = %v; want %v", i, tt.t, got, tt.want)
		}
	}
}
