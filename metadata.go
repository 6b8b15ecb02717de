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
)

// Nullability of a column, as reported by ResultMetaData.IsNullable.
const (
	ColumnNoNulls  = 0
	ColumnNullable = 1
)

// ResultMetaData describes the columns of a result. Columns are numbered
// from 1.
type ResultMetaData struct {
	columns []*ColumnDefinition
	opts    *Options
}

func newResultMetaData(columns []*ColumnDefinition, opts *Options) *ResultMetaData {
	return &ResultMetaData{columns: columns, opts: opts}
}

func (m *ResultMetaData) column(i int) (*ColumnDefinition, error) {
	if i < 1 || i > len(m.columns) {
		return nil, myError(ErrColumnIndex, i, len(m.columns))
	}
	return m.columns[i-1], nil
}

func (m *ResultMetaData) ColumnCount() int {
	return len(m.columns)
}

// ColumnName returns the name of the underlying table column, or the label
// for computed columns.
func (m *ResultMetaData) ColumnName(i int) (string, error) {
	col, err := m.column(i)
	if err != nil {
		return "", err
	}
	if col.OrgName() != "" {
		return col.OrgName(), nil
	}
	return col.Name(), nil
}

// ColumnLabel returns the label of the column (its alias, if any).
func (m *ResultMetaData) ColumnLabel(i int) (string, error) {
	col, err := m.column(i)
	if err != nil {
		return "", err
	}
	return col.Name(), nil
}

func (m *ResultMetaData) TableName(i int) (string, error) {
	col, err := m.column(i)
	if err != nil {
		return "", err
	}
	return col.OrgTable(), nil
}

func (m *ResultMetaData) SchemaName(i int) (string, error) {
	col, err := m.column(i)
	if err != nil {
		return "", err
	}
	return col.Schema(), nil
}

func (m *ResultMetaData) CatalogName(i int) (string, error) {
	col, err := m.column(i)
	if err != nil {
		return "", err
	}
	return col.Catalog(), nil
}

// ColumnType returns the generic SQL type of the column. TINYINT(1) and
// BIT(1) report BIT when they surface as bool.
func (m *ResultMetaData) ColumnType(i int) (SQLType, error) {
	col, err := m.column(i)
	if err != nil {
		return 0, err
	}
	switch col.Type().ID() {
	case TypeTiny:
		if col.Length() == 1 && m.opts.TinyInt1IsBit {
			return SQLBit, nil
		}
	case TypeYear:
		if m.opts.YearIsDateType {
			return SQLDate, nil
		}
		return SQLSmallInt, nil
	case TypeBit:
		if col.Length() > 1 {
			return SQLVarBinary, nil
		}
	case TypeVarchar, TypeVarString:
		if col.IsBinary() {
			return SQLVarBinary, nil
		}
	case TypeString:
		if col.IsBinary() {
			return SQLBinary, nil
		}
	}
	return col.Type().SQLType(), nil
}

// ColumnTypeName returns the database type name, such as "INTEGER
// UNSIGNED" or "MEDIUMTEXT".
func (m *ResultMetaData) ColumnTypeName(i int) (string, error) {
	col, err := m.column(i)
	if err != nil {
		return "", err
	}
	return col.typeName(), nil
}

// ColumnScanType returns the Go type values of the column are read as.
func (m *ResultMetaData) ColumnScanType(i int) (reflect.Type, error) {
	col, err := m.column(i)
	if err != nil {
		return nil, err
	}
	return HostRepresentation(col.Type(), col.Length(), col.IsSigned(), col.IsBinary(), m.opts), nil
}

// ColumnClassName returns the name of the Go type values of the column
// are read as.
func (m *ResultMetaData) ColumnClassName(i int) (string, error) {
	t, err := m.ColumnScanType(i)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

func (m *ResultMetaData) Precision(i int) (int64, error) {
	col, err := m.column(i)
	if err != nil {
		return 0, err
	}
	return col.Precision(), nil
}

func (m *ResultMetaData) Scale(i int) (int, error) {
	col, err := m.column(i)
	if err != nil {
		return 0, err
	}
	return col.Decimals(), nil
}

func (m *ResultMetaData) ColumnDisplaySize(i int) (int64, error) {
	col, err := m.column(i)
	if err != nil {
		return 0, err
	}
	return col.DisplaySize(), nil
}

// IsNullable returns ColumnNoNulls or ColumnNullable.
func (m *ResultMetaData) IsNullable(i int) (int, error) {
	col, err := m.column(i)
	if err != nil {
		return 0, err
	}
	if col.IsNotNull() {
		return ColumnNoNulls, nil
	}
	return ColumnNullable, nil
}

func (m *ResultMetaData) IsSigned(i int) (bool, error) {
	col, err := m.column(i)
	if err != nil {
		return false, err
	}
	return col.IsSigned(), nil
}

func (m *ResultMetaData) IsAutoIncrement(i int) (bool, error) {
	col, err := m.column(i)
	if err != nil {
		return false, err
	}
	return col.IsAutoIncrement(), nil
}

func (m *ResultMetaData) IsReadOnly(i int) (bool, error) {
	col, err := m.column(i)
	if err != nil {
		return false, err
	}
	return col.IsReadOnly(), nil
}

// IsCaseSensitive reports whether comparisons on the column are case
// sensitive: true for binary strings and non-text types.
func (m *ResultMetaData) IsCaseSensitive(i int) (bool, error) {
	col, err := m.column(i)
	if err != nil {
		return false, err
	}
	if isTextual(col.Type()) {
		return col.IsBinary(), nil
	}
	return true, nil
}
