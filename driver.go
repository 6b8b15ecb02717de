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
	"io"
	"math"
	"math/big"
	"reflect"
	"time"
)

// driverRows exposes a result through database/sql/driver.
type driverRows struct {
	r *Rows
}

// DriverRows returns a driver.Rows reading from r, so that a result can be
// handed to database/sql. Columns surface as int64, float64, bool, []byte,
// string or time.Time; TIME values and DECIMALs become strings.
func DriverRows(r *Rows) driver.Rows {
	return &driverRows{r: r}
}

func (d *driverRows) Columns() []string {
	return d.r.Columns()
}

func (d *driverRows) Close() error {
	return d.r.Close()
}

func (d *driverRows) Next(dest []driver.Value) error {
	ok, err := d.r.Next()
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	for i := range dest {
		v, err := d.r.GetObject(i + 1)
		if err != nil {
			return err
		}
		dest[i] = driverValue(v)
	}
	return nil
}

// driverValue narrows a GetObject value to the driver.Value types.
func driverValue(v interface{}) driver.Value {
	switch v := v.(type) {
	case nil:
		return nil
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return stringify(v)
		}
		return int64(v)
	case float32:
		return float64(v)
	case *big.Rat:
		return decimalString(v)
	case time.Duration:
		return FormatDuration(v)
	}
	return v
}

func (d *driverRows) ColumnTypeScanType(i int) reflect.Type {
	t, err := d.r.MetaData().ColumnScanType(i + 1)
	if err != nil {
		return typeBytes
	}
	return t
}

func (d *driverRows) ColumnTypeDatabaseTypeName(i int) string {
	name, _ := d.r.MetaData().ColumnTypeName(i + 1)
	return name
}

func (d *driverRows) ColumnTypeNullable(i int) (nullable, ok bool) {
	n, err := d.r.MetaData().IsNullable(i + 1)
	if err != nil {
		return false, false
	}
	return n == ColumnNullable, true
}

func (d *driverRows) ColumnTypeLength(i int) (int64, bool) {
	col := d.r.columns[i]
	switch col.Type().ID() {
	case TypeVarchar, TypeVarString, TypeString, TypeEnum, TypeSet, TypeJSON,
		TypeTinyBlob, TypeMediumBlob, TypeLongBlob, TypeBlob, TypeGeometry:
		return col.DisplaySize(), true
	}
	return 0, false
}

func (d *driverRows) ColumnTypePrecisionScale(i int) (precision, scale int64, ok bool) {
	col := d.r.columns[i]
	switch col.Type().ID() {
	case TypeDecimal, TypeNewDecimal:
		return col.Precision(), int64(col.Decimals()), true
	}
	return 0, 0, false
}

// NullTime represents a Time type the may be null.
type NullTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements the scanner interface.
func (nt *NullTime) Scan(value interface{}) error {
	if value == nil {
		nt.Time, nt.Valid = time.Time{}, false
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		nt.Time, nt.Valid = v, true
		return nil
	case string:
		return nt.scanText([]byte(v))
	case []byte:
		return nt.scanText(v)
	}
	return myError(ErrInvalidType, reflect.TypeOf(value).String())
}

func (nt *NullTime) scanText(b []byte) error {
	t, ok := parseTextDate(b)
	if !ok {
		return myError(ErrInvalidType, string(b))
	}
	if t.zeroDate() {
		nt.Time, nt.Valid = time.Time{}, false
		return nil
	}
	nt.Time, nt.Valid = t.toTime(time.UTC), true
	return nil
}

// Value implements the driver's Valuer interface.
func (nt NullTime) Value() (driver.Value, error) {
	if !nt.Valid {
		return nil, nil
	}
	return nt.Time, nil
}

// NullDuration represents a TIME value that may be null.
type NullDuration struct {
	Duration time.Duration
	Valid    bool
}

// Scan implements the scanner interface.
func (nd *NullDuration) Scan(value interface{}) error {
	var err error

	if value == nil {
		nd.Duration, nd.Valid = 0, false
		return nil
	}

	switch v := value.(type) {
	case string:
		if nd.Duration, err = ParseDuration(v); err != nil {
			nd.Duration, nd.Valid = 0, false
			return err
		}
		nd.Valid = true
	case []byte:
		return nd.Scan(string(v))
	case time.Duration:
		nd.Duration, nd.Valid = v, true
	case int64:
		nd.Duration, nd.Valid = time.Duration(v), true
	default:
		return myError(ErrInvalidType, reflect.TypeOf(value).String())
	}
	return nil
}

// Value implements the driver's Valuer interface.
func (nd NullDuration) Value() (driver.Value, error) {
	if !nd.Valid {
		return nil, nil
	}
	return FormatDuration(nd.Duration), nil
}

// DefaultParameterConverter converts the nullable types of this package
// and time.Duration, and defers to driver.DefaultParameterConverter for
// everything else.
type DefaultParameterConverter struct{}

func (DefaultParameterConverter) ConvertValue(v interface{}) (driver.Value, error) {
	switch s := v.(type) {
	case NullTime:
		if !s.Valid {
			return nil, nil
		}
		return s.Time, nil
	case time.Duration:
		return FormatDuration(s), nil
	case NullDuration:
		if !s.Valid {
			return nil, nil
		}
		return FormatDuration(s.Duration), nil
	case *big.Rat:
		return decimalString(s), nil
	case *big.Int:
		return s.String(), nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}
