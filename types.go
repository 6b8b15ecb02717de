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
	"math/big"
	"reflect"
	"time"
)

// mysql data types
const (
	TypeDecimal = iota
	TypeTiny
	TypeShort
	TypeLong
	TypeFloat
	TypeDouble
	TypeNull
	TypeTimestamp
	TypeLongLong
	TypeInt24
	TypeDate
	TypeTime
	TypeDatetime
	TypeYear
	TypeNewDate
	TypeVarchar
	TypeBit
	TypeTimestamp2
	TypeDatetime2
	TypeTime2
	// ...
	TypeJSON       = 245
	TypeNewDecimal = 246
	TypeEnum       = 247
	TypeSet        = 248
	TypeTinyBlob   = 249
	TypeMediumBlob = 250
	TypeLongBlob   = 251
	TypeBlob       = 252
	TypeVarString  = 253
	TypeString     = 254
	TypeGeometry   = 255
)

// column definition flags
const (
	flagNotNull = 1 << iota
	flagPrimaryKey
	flagUniqueKey
	flagMultipleKey
	flagBlob
	flagUnsigned
	flagZeroFill
	flagBinary
	flagEnum
	flagAutoIncrement
	flagTimestamp
	flagSet
)

// charset number of the binary pseudo-charset
const binaryCharset = 63

// SQLType is the generic (wire-independent) SQL type of a column.
type SQLType int

const (
	SQLBit           SQLType = -7
	SQLTinyInt       SQLType = -6
	SQLSmallInt      SQLType = 5
	SQLInteger       SQLType = 4
	SQLBigInt        SQLType = -5
	SQLReal          SQLType = 7
	SQLDouble        SQLType = 8
	SQLDecimal       SQLType = 3
	SQLChar          SQLType = 1
	SQLVarChar       SQLType = 12
	SQLLongVarChar   SQLType = -1
	SQLDate          SQLType = 91
	SQLTime          SQLType = 92
	SQLTimestamp     SQLType = 93
	SQLBinary        SQLType = -2
	SQLVarBinary     SQLType = -3
	SQLLongVarBinary SQLType = -4
	SQLNull          SQLType = 0
	SQLOther         SQLType = 1111
)

// ColumnType describes one server wire type. Values are immutable and
// compared by identity of their wire id.
type ColumnType struct {
	id        uint8
	sqlType   SQLType
	name      string
	className string
}

// ID returns the wire type id.
func (t ColumnType) ID() uint8 { return t.id }

// SQLType returns the generic SQL type.
func (t ColumnType) SQLType() SQLType { return t.sqlType }

// Name returns the server-side type name.
func (t ColumnType) Name() string { return t.name }

// ClassName returns the name of the Go type values of this wire type decode
// to by default.
func (t ColumnType) ClassName() string { return t.className }

func (t ColumnType) String() string { return t.name }

var (
	ColumnTypeOldDecimal = ColumnType{TypeDecimal, SQLDecimal, "DECIMAL", "*big.Rat"}
	ColumnTypeTiny       = ColumnType{TypeTiny, SQLTinyInt, "TINYINT", "int8"}
	ColumnTypeShort      = ColumnType{TypeShort, SQLSmallInt, "SMALLINT", "int16"}
	ColumnTypeLong       = ColumnType{TypeLong, SQLInteger, "INTEGER", "int32"}
	ColumnTypeFloat      = ColumnType{TypeFloat, SQLReal, "FLOAT", "float32"}
	ColumnTypeDouble     = ColumnType{TypeDouble, SQLDouble, "DOUBLE", "float64"}
	ColumnTypeNull       = ColumnType{TypeNull, SQLNull, "NULL", "string"}
	ColumnTypeTimestamp  = ColumnType{TypeTimestamp, SQLTimestamp, "TIMESTAMP", "time.Time"}
	ColumnTypeLongLong   = ColumnType{TypeLongLong, SQLBigInt, "BIGINT", "int64"}
	ColumnTypeInt24      = ColumnType{TypeInt24, SQLInteger, "MEDIUMINT", "int32"}
	ColumnTypeDate       = ColumnType{TypeDate, SQLDate, "DATE", "time.Time"}
	ColumnTypeTime       = ColumnType{TypeTime, SQLTime, "TIME", "time.Duration"}
	ColumnTypeDatetime   = ColumnType{TypeDatetime, SQLTimestamp, "DATETIME", "time.Time"}
	ColumnTypeYear       = ColumnType{TypeYear, SQLSmallInt, "YEAR", "int16"}
	ColumnTypeNewDate    = ColumnType{TypeNewDate, SQLDate, "DATE", "time.Time"}
	ColumnTypeVarchar    = ColumnType{TypeVarchar, SQLVarChar, "VARCHAR", "string"}
	ColumnTypeBit        = ColumnType{TypeBit, SQLBit, "BIT", "[]uint8"}
	ColumnTypeTimestamp2 = ColumnType{TypeTimestamp2, SQLTimestamp, "TIMESTAMP", "time.Time"}
	ColumnTypeDatetime2  = ColumnType{TypeDatetime2, SQLTimestamp, "DATETIME", "time.Time"}
	ColumnTypeTime2      = ColumnType{TypeTime2, SQLTime, "TIME", "time.Duration"}
	ColumnTypeJSON       = ColumnType{TypeJSON, SQLVarChar, "JSON", "string"}
	ColumnTypeNewDecimal = ColumnType{TypeNewDecimal, SQLDecimal, "DECIMAL", "*big.Rat"}
	ColumnTypeEnum       = ColumnType{TypeEnum, SQLVarChar, "ENUM", "string"}
	ColumnTypeSet        = ColumnType{TypeSet, SQLVarChar, "SET", "string"}
	ColumnTypeTinyBlob   = ColumnType{TypeTinyBlob, SQLVarBinary, "TINYBLOB", "[]uint8"}
	ColumnTypeMediumBlob = ColumnType{TypeMediumBlob, SQLLongVarBinary, "MEDIUMBLOB", "[]uint8"}
	ColumnTypeLongBlob   = ColumnType{TypeLongBlob, SQLLongVarBinary, "LONGBLOB", "[]uint8"}
	ColumnTypeBlob       = ColumnType{TypeBlob, SQLLongVarBinary, "BLOB", "[]uint8"}
	ColumnTypeVarString  = ColumnType{TypeVarString, SQLVarChar, "VARCHAR", "string"}
	ColumnTypeString     = ColumnType{TypeString, SQLChar, "CHAR", "string"}
	ColumnTypeGeometry   = ColumnType{TypeGeometry, SQLBinary, "GEOMETRY", "[]uint8"}
)

// columnTypes lists every supported wire type in declaration order; ToServer
// relies on that order.
var columnTypes = [...]ColumnType{
	ColumnTypeOldDecimal,
	ColumnTypeTiny,
	ColumnTypeShort,
	ColumnTypeLong,
	ColumnTypeFloat,
	ColumnTypeDouble,
	ColumnTypeNull,
	ColumnTypeTimestamp,
	ColumnTypeLongLong,
	ColumnTypeInt24,
	ColumnTypeDate,
	ColumnTypeTime,
	ColumnTypeDatetime,
	ColumnTypeYear,
	ColumnTypeNewDate,
	ColumnTypeVarchar,
	ColumnTypeBit,
	ColumnTypeTimestamp2,
	ColumnTypeDatetime2,
	ColumnTypeTime2,
	ColumnTypeJSON,
	ColumnTypeNewDecimal,
	ColumnTypeEnum,
	ColumnTypeSet,
	ColumnTypeTinyBlob,
	ColumnTypeMediumBlob,
	ColumnTypeLongBlob,
	ColumnTypeBlob,
	ColumnTypeVarString,
	ColumnTypeString,
	ColumnTypeGeometry,
}

var (
	typeMap   [256]*ColumnType
	sqlTypeOf = map[SQLType]*ColumnType{}
)

func init() {
	for i := range columnTypes {
		t := &columnTypes[i]
		typeMap[t.id] = t
		if _, ok := sqlTypeOf[t.sqlType]; !ok {
			sqlTypeOf[t.sqlType] = t
		}
	}
}

// FromServer maps a wire type id to its column type. The blob family is
// reported by the server for TEXT columns too; a non-binary charset turns
// them into VARCHAR.
func FromServer(id uint8, charset uint16) ColumnType {
	t := typeMap[id]
	if t == nil {
		return ColumnTypeBlob
	}

	if charset != binaryCharset && id >= TypeTinyBlob && id <= TypeBlob {
		return ColumnTypeVarchar
	}
	return *t
}

// ToServer returns the first wire type that maps to the given generic SQL
// type, or BLOB.
func ToServer(sqlType SQLType) ColumnType {
	if t, ok := sqlTypeOf[sqlType]; ok {
		return *t
	}
	return ColumnTypeBlob
}

// IsNumeric reports whether values of the type are numbers. YEAR is not.
func IsNumeric(t ColumnType) bool {
	switch t.id {
	case TypeDecimal, TypeNewDecimal, TypeTiny, TypeShort, TypeLong,
		TypeInt24, TypeLongLong, TypeFloat, TypeDouble, TypeBit:
		return true
	}
	return false
}

// isTemporal reports whether the wire type carries a date and/or time.
func isTemporal(t ColumnType) bool {
	switch t.id {
	case TypeDate, TypeNewDate, TypeTime, TypeTime2, TypeDatetime,
		TypeDatetime2, TypeTimestamp, TypeTimestamp2:
		return true
	}
	return false
}

// isTextual reports whether the wire type carries a character or byte string.
func isTextual(t ColumnType) bool {
	switch t.id {
	case TypeVarchar, TypeVarString, TypeString, TypeEnum, TypeSet,
		TypeTinyBlob, TypeMediumBlob, TypeLongBlob, TypeBlob, TypeJSON:
		return true
	}
	return false
}

// ColumnTypeName derives the display name of a column type, the way
// information_schema would spell it.
func ColumnTypeName(t ColumnType, length, charLength int64, signed, binary bool) string {
	switch t.id {
	case TypeTiny, TypeShort, TypeInt24, TypeLong, TypeLongLong:
		if !signed {
			return t.name + " UNSIGNED"
		}
		return t.name

	case TypeTinyBlob, TypeMediumBlob, TypeLongBlob, TypeBlob:
		suffix := "BLOB"
		if !binary {
			suffix = "TEXT"
		}
		switch {
		case length < 0:
			return "LONG" + suffix
		case length <= 255:
			return "TINY" + suffix
		case length <= 65535:
			return suffix
		case length <= 16777215:
			return "MEDIUM" + suffix
		}
		return "LONG" + suffix

	case TypeVarchar, TypeVarString:
		if binary {
			return "VARBINARY"
		}
		if charLength <= 0 {
			charLength = length
		}
		switch {
		case charLength <= 65532:
			return "VARCHAR"
		case charLength <= 65535:
			return "TEXT"
		case charLength <= 16777215:
			return "MEDIUMTEXT"
		}
		return "LONGTEXT"

	case TypeString:
		if binary {
			return "BINARY"
		}
		return "CHAR"
	}
	return t.name
}

var (
	typeBool     = reflect.TypeOf(false)
	typeInt8     = reflect.TypeOf(int8(0))
	typeInt16    = reflect.TypeOf(int16(0))
	typeInt32    = reflect.TypeOf(int32(0))
	typeInt64    = reflect.TypeOf(int64(0))
	typeUint8    = reflect.TypeOf(uint8(0))
	typeUint16   = reflect.TypeOf(uint16(0))
	typeUint32   = reflect.TypeOf(uint32(0))
	typeUint64   = reflect.TypeOf(uint64(0))
	typeFloat32  = reflect.TypeOf(float32(0))
	typeFloat64  = reflect.TypeOf(float64(0))
	typeString   = reflect.TypeOf("")
	typeBytes    = reflect.TypeOf([]byte(nil))
	typeTime     = reflect.TypeOf(time.Time{})
	typeDuration = reflect.TypeOf(time.Duration(0))
	typeDecimal  = reflect.TypeOf((*big.Rat)(nil))
)

// HostRepresentation returns the Go type a column surfaces as through
// GetObject and database/sql.
func HostRepresentation(t ColumnType, length int64, signed, binary bool, o *Options) reflect.Type {
	if o == nil {
		o = &defaultOptions
	}

	switch t.id {
	case TypeTiny:
		if length == 1 && o.TinyInt1IsBit {
			return typeBool
		}
		if signed {
			return typeInt8
		}
		return typeUint8
	case TypeShort:
		if signed {
			return typeInt16
		}
		return typeUint16
	case TypeYear:
		if o.YearIsDateType {
			return typeTime
		}
		return typeInt16
	case TypeInt24, TypeLong:
		if signed {
			return typeInt32
		}
		return typeUint32
	case TypeLongLong:
		if signed {
			return typeInt64
		}
		return typeUint64
	case TypeFloat:
		return typeFloat32
	case TypeDouble:
		return typeFloat64
	case TypeDecimal, TypeNewDecimal:
		return typeDecimal
	case TypeBit:
		if length == 1 {
			return typeBool
		}
		return typeBytes
	case TypeDate, TypeNewDate, TypeDatetime, TypeDatetime2,
		TypeTimestamp, TypeTimestamp2:
		return typeTime
	case TypeTime, TypeTime2:
		return typeDuration
	case TypeVarchar, TypeVarString, TypeString, TypeEnum, TypeSet, TypeJSON:
		if binary {
			return typeBytes
		}
		return typeString
	case TypeNull:
		return typeString
	}
	return typeBytes
}
