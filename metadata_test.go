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

func TestResultMetaData(t *testing.T) {
	flag := NewColumnDefinition("flag", ColumnTypeTiny)
	flag.columnLength = 1
	id := testColumn("id", ColumnTypeLong, flagUnsigned|flagNotNull|flagAutoIncrement)
	id.table = nullString{"p", true}
	id.orgTable = nullString{"people", true}
	id.schema = nullString{"test", true}
	id.catalog = nullString{"def", true}
	computed := NewColumnDefinition("total", ColumnTypeNewDecimal)
	computed.orgName = nullString{}
	computed.columnLength = 12
	computed.decimals = 2
	bin := NewColumnDefinition("hash", ColumnTypeVarchar)
	bin.charset = binaryCharset
	bits := NewColumnDefinition("bits", ColumnTypeBit)
	bits.columnLength = 8
	year := NewColumnDefinition("y", ColumnTypeYear)

	m := newResultMetaData([]*ColumnDefinition{flag, id, computed, bin, bits, year}, DefaultOptions())

	if m.ColumnCount() != 6 {
		t.Fatalf("ColumnCount = %d", m.ColumnCount())
	}

	sqlTypes := []SQLType{SQLBit, SQLInteger, SQLDecimal, SQLVarBinary, SQLVarBinary, SQLDate}
	for i, want := range sqlTypes {
		if got, err := m.ColumnType(i + 1); err != nil || got != want {
			t.Errorf("ColumnType(%d) = %v, %v; want %v", i+1, got, err, want)
		}
	}

	names := []string{"TINYINT", "INTEGER UNSIGNED", "DECIMAL", "VARBINARY", "BIT", "YEAR"}
	for i, want := range names {
		if got, err := m.ColumnTypeName(i + 1); err != nil || got != want {
			t.Errorf("ColumnTypeName(%d) = %q, %v; want %q", i+1, got, err, want)
		}
	}

	scanTypes := []reflect.Type{typeBool, typeUint32, typeDecimal, typeBytes, typeBytes, typeTime}
	for i, want := range scanTypes {
		if got, err := m.ColumnScanType(i + 1); err != nil || got != want {
			t.Errorf("ColumnScanType(%d) = %v, %v; want %v", i+1, got, err, want)
		}
	}
	if name, _ := m.ColumnClassName(3); name != "*big.Rat" {
		t.Errorf("ColumnClassName(3) = %q", name)
	}

	if v, _ := m.TableName(2); v != "people" {
		t.Errorf("TableName = %q", v)
	}
	if v, _ := m.SchemaName(2); v != "test" {
		t.Errorf("SchemaName = %q", v)
	}
	if v, _ := m.CatalogName(2); v != "def" {
		t.Errorf("CatalogName = %q", v)
	}
	if v, _ := m.ColumnName(3); v != "total" {
		t.Errorf("ColumnName(computed) = %q", v)
	}
	if v, _ := m.ColumnLabel(2); v != "id" {
		t.Errorf("ColumnLabel = %q", v)
	}

	if v, _ := m.IsNullable(2); v != ColumnNoNulls {
		t.Errorf("IsNullable(id) = %d", v)
	}
	if v, _ := m.IsNullable(3); v != ColumnNullable {
		t.Errorf("IsNullable(total) = %d", v)
	}
	if v, _ := m.IsSigned(2); v {
		t.Errorf("IsSigned(id) = true")
	}
	if v, _ := m.IsAutoIncrement(2); !v {
		t.Errorf("IsAutoIncrement(id) = false")
	}
	if v, _ := m.IsReadOnly(3); !v {
		t.Errorf("IsReadOnly(computed) = false")
	}
	if v, _ := m.IsCaseSensitive(4); !v {
		t.Errorf("IsCaseSensitive(binary) = false")
	}
	if v, _ := m.Precision(3); v != 10 {
		t.Errorf("Precision(decimal(10,2)) = %d", v)
	}
	if v, _ := m.Scale(3); v != 2 {
		t.Errorf("Scale = %d", v)
	}
	if v, _ := m.ColumnDisplaySize(2); v != 11 {
		t.Errorf("ColumnDisplaySize = %d", v)
	}

	for _, i := range []int{0, 7} {
		if _, err := m.ColumnName(i); !hasCode(err, ErrColumnIndex) {
			t.Errorf("ColumnName(%d) error = %v", i, err)
		}
	}
}

func TestMetaDataOptions(t *testing.T) {
	flag := NewColumnDefinition("flag", ColumnTypeTiny)
	flag.columnLength = 1
	year := NewColumnDefinition("y", ColumnTypeYear)

	opts := DefaultOptions()
	opts.TinyInt1IsBit = false
	opts.YearIsDateType = false
	m := newResultMetaData([]*ColumnDefinition{flag, year}, opts)

	if v, _ := m.ColumnType(1); v != SQLTinyInt {
		t.Errorf("ColumnType(tinyint(1)) = %v", v)
	}
	if v, _ := m.ColumnScanType(1); v != typeInt8 {
		t.Errorf("ColumnScanType(tinyint(1)) = %v", v)
	}
	if v, _ := m.ColumnType(2); v != SQLSmallInt {
		t.Errorf("ColumnType(year) = %v", v)
	}
	if v, _ := m.ColumnScanType(2); v != typeInt16 {
		t.Errorf("ColumnScanType(year) = %v", v)
	}
}
