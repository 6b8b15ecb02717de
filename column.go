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

// ColumnDefinition is the server-supplied metadata of one result column. It
// is created once per result and shared, read-only, by every row.
type ColumnDefinition struct {
	catalog      nullString
	schema       nullString
	table        nullString
	orgTable     nullString
	name         nullString
	orgName      nullString
	charset      uint16
	columnLength uint32
	columnType   ColumnType
	flags        uint16
	decimals     uint8
}

// NewColumnDefinition creates the definition of a synthetic column, as used
// by results that are built in memory.
func NewColumnDefinition(name string, t ColumnType) *ColumnDefinition {
	col := &ColumnDefinition{
		name:       nullString{name, true},
		orgName:    nullString{name, true},
		columnType: t,
		charset:    33, // utf8_general_ci
	}

	switch t.id {
	case TypeString, TypeVarString, TypeVarchar:
		col.columnLength = 64 * 3
	case TypeTiny:
		col.columnLength = 4
	case TypeShort, TypeYear:
		col.columnLength = 6
	case TypeInt24:
		col.columnLength = 9
	case TypeLong:
		col.columnLength = 11
	case TypeLongLong:
		col.columnLength = 20
	case TypeFloat:
		col.columnLength = 12
		col.decimals = 31
	case TypeDouble:
		col.columnLength = 22
		col.decimals = 31
	case TypeDate, TypeNewDate:
		col.columnLength = 10
	case TypeTime, TypeTime2:
		col.columnLength = 10
	case TypeDatetime, TypeDatetime2, TypeTimestamp, TypeTimestamp2:
		col.columnLength = 19
	case TypeBit:
		col.columnLength = 1
	default:
		col.columnLength = 1<<32 - 1
	}

	switch t.id {
	case TypeTinyBlob, TypeMediumBlob, TypeLongBlob, TypeBlob, TypeGeometry:
		col.charset = binaryCharset
		col.flags |= flagBinary | flagBlob
	case TypeBit:
		col.charset = binaryCharset
		col.flags |= flagBinary
	}
	return col
}

// ParseColumnDefinition parses the column (field) definition packet
// (protocol 41).
func ParseColumnDefinition(b []byte) (*ColumnDefinition, error) {
	var off, n int

	// alloc a new ColumnDefinition object
	col := new(ColumnDefinition)

	fields := []*nullString{&col.catalog, &col.schema, &col.table,
		&col.orgTable, &col.name, &col.orgName}
	for _, f := range fields {
		if *f, n = getLenencString(b[off:]); n == 0 {
			return nil, myError(ErrInvalidPacket, "truncated column definition")
		}
		off += n
	}

	// length of the fixed-length fields, always 0x0c
	if _, n = getLenencInt(b[off:]); n == 0 || len(b) < off+n+12 {
		return nil, myError(ErrInvalidPacket, "truncated column definition")
	}
	off += n

	col.charset = binary.LittleEndian.Uint16(b[off : off+2])
	off += 2
	col.columnLength = binary.LittleEndian.Uint32(b[off : off+4])
	off += 4
	id := uint8(b[off])
	off++
	col.flags = binary.LittleEndian.Uint16(b[off : off+2])
	off += 2
	col.decimals = uint8(b[off])

	col.columnType = FromServer(id, col.charset)
	return col, nil
}

// Catalog returns the catalog name (always "def").
func (c *ColumnDefinition) Catalog() string { return c.catalog.value }

// Schema returns the database the column's table belongs to.
func (c *ColumnDefinition) Schema() string { return c.schema.value }

// Table returns the table alias.
func (c *ColumnDefinition) Table() string { return c.table.value }

// OrgTable returns the physical table name.
func (c *ColumnDefinition) OrgTable() string { return c.orgTable.value }

// Name returns the column alias (label).
func (c *ColumnDefinition) Name() string { return c.name.value }

// OrgName returns the physical column name.
func (c *ColumnDefinition) OrgName() string { return c.orgName.value }

// Charset returns the collation id of the column.
func (c *ColumnDefinition) Charset() uint16 { return c.charset }

// Length returns the declared column length in bytes.
func (c *ColumnDefinition) Length() int64 { return int64(c.columnLength) }

// Decimals returns the number of decimal digits (fractional seconds for
// temporal columns).
func (c *ColumnDefinition) Decimals() int { return int(c.decimals) }

// Type returns the column type.
func (c *ColumnDefinition) Type() ColumnType { return c.columnType }

// Flags returns the raw column flags.
func (c *ColumnDefinition) Flags() uint16 { return c.flags }

func (c *ColumnDefinition) IsNotNull() bool       { return c.flags&flagNotNull != 0 }
func (c *ColumnDefinition) IsPrimaryKey() bool    { return c.flags&flagPrimaryKey != 0 }
func (c *ColumnDefinition) IsUniqueKey() bool     { return c.flags&flagUniqueKey != 0 }
func (c *ColumnDefinition) IsMultipleKey() bool   { return c.flags&flagMultipleKey != 0 }
func (c *ColumnDefinition) IsBlob() bool          { return c.flags&flagBlob != 0 }
func (c *ColumnDefinition) IsUnsigned() bool      { return c.flags&flagUnsigned != 0 }
func (c *ColumnDefinition) IsSigned() bool        { return !c.IsUnsigned() }
func (c *ColumnDefinition) IsZeroFill() bool      { return c.flags&flagZeroFill != 0 }
func (c *ColumnDefinition) IsAutoIncrement() bool { return c.flags&flagAutoIncrement != 0 }

// IsBinary reports whether the column holds bytes rather than characters.
func (c *ColumnDefinition) IsBinary() bool { return c.charset == binaryCharset }

// IsReadOnly reports whether the column is computed, i.e. does not map to a
// physical column.
func (c *ColumnDefinition) IsReadOnly() bool { return c.orgName.value == "" }

// charLength returns the declared length in characters.
func (c *ColumnDefinition) charLength() int64 {
	return int64(c.columnLength) / int64(charsetMaxLen(c.charset))
}

// DisplaySize returns the maximum width, in characters, of the column's
// text form.
func (c *ColumnDefinition) DisplaySize() int64 {
	switch c.columnType.id {
	case TypeVarchar, TypeVarString, TypeString, TypeEnum, TypeSet, TypeJSON,
		TypeTinyBlob, TypeMediumBlob, TypeLongBlob, TypeBlob:
		return c.charLength()
	}
	return int64(c.columnLength)
}

// Precision returns the column precision: the number of digits for numeric
// columns, the character length for text, the byte length otherwise.
func (c *ColumnDefinition) Precision() int64 {
	switch c.columnType.id {
	case TypeDecimal, TypeNewDecimal:
		// the declared length includes the sign and the decimal point
		p := int64(c.columnLength)
		if c.decimals > 0 {
			p--
		}
		if c.IsSigned() {
			p--
		}
		return p
	case TypeVarchar, TypeVarString, TypeString, TypeEnum, TypeSet, TypeJSON:
		return c.charLength()
	}
	return int64(c.columnLength)
}

// typeName derives the display name of the column type.
func (c *ColumnDefinition) typeName() string {
	return ColumnTypeName(c.columnType, int64(c.columnLength), c.charLength(),
		c.IsSigned(), c.IsBinary())
}
