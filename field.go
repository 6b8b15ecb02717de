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
	"strconv"
	"strings"
)

// fieldView is the window onto the raw bytes of the column the decoder is
// positioned at. A decoder owns exactly one; every seek overwrites it,
// including the null and zero-date flags.
type fieldView struct {
	col   *ColumnDefinition
	index int
	data  []byte

	// lastNull is set when the positioned value is SQL NULL.
	lastNull bool
	// zeroDate is set when the positioned value is the all-zero temporal
	// sentinel. It is independent of lastNull.
	zeroDate bool
}

func (f *fieldView) reset() {
	f.col = nil
	f.index = -1
	f.data = nil
	f.lastNull = false
	f.zeroDate = false
}

type numKind uint8

const (
	numInt numKind = iota
	numUint
	numFloat
	numDecimal
)

// numeric is a decoded number in the widest form its source carries.
type numeric struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
	bits int // 32 or 64 for numFloat
	r    *big.Rat
}

func (n numeric) String() string {
	switch n.kind {
	case numInt:
		return strconv.FormatInt(n.i, 10)
	case numUint:
		return strconv.FormatUint(n.u, 10)
	case numFloat:
		return strconv.FormatFloat(n.f, 'g', -1, n.bits)
	}
	return decimalString(n.r)
}

func (n numeric) isZero() bool {
	switch n.kind {
	case numInt:
		return n.i == 0
	case numUint:
		return n.u == 0
	case numFloat:
		return n.f == 0
	}
	return n.r.Sign() == 0
}

// rangeCheck is the single bound check every narrowing getter goes
// through: value must lie within [min,max] of the target type.
func rangeCheck(col *ColumnDefinition, target string, min, max, value int64) (int64, error) {
	if value < min || value > max {
		return 0, myError(ErrRange, col.Name(), strconv.FormatInt(value, 10), target)
	}
	return value, nil
}

// uintRangeCheck is rangeCheck for unsigned targets.
func uintRangeCheck(col *ColumnDefinition, target string, max, value uint64) (uint64, error) {
	if value > max {
		return 0, myError(ErrRange, col.Name(), strconv.FormatUint(value, 10), target)
	}
	return value, nil
}

var (
	bigMinInt64  = new(big.Int).SetInt64(math.MinInt64)
	bigMaxInt64  = new(big.Int).SetInt64(math.MaxInt64)
	bigMaxUint64 = new(big.Int).SetUint64(math.MaxUint64)
)

// truncated returns the integer part of n, rounding toward zero.
func (n numeric) truncated(col *ColumnDefinition, target string) (*big.Int, error) {
	switch n.kind {
	case numInt:
		return big.NewInt(n.i), nil
	case numUint:
		return new(big.Int).SetUint64(n.u), nil
	case numFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return nil, myError(ErrRange, col.Name(), n.String(), target)
		}
		v, _ := big.NewFloat(math.Trunc(n.f)).Int(nil)
		return v, nil
	}
	return new(big.Int).Quo(n.r.Num(), n.r.Denom()), nil
}

// toInt converts n to a signed integer within [min,max].
func (n numeric) toInt(col *ColumnDefinition, target string, min, max int64) (int64, error) {
	switch n.kind {
	case numInt:
		return rangeCheck(col, target, min, max, n.i)
	case numUint:
		if n.u > math.MaxInt64 {
			return 0, myError(ErrRange, col.Name(), n.String(), target)
		}
		return rangeCheck(col, target, min, max, int64(n.u))
	}

	v, err := n.truncated(col, target)
	if err != nil {
		return 0, err
	}
	if v.Cmp(bigMinInt64) < 0 || v.Cmp(bigMaxInt64) > 0 {
		return 0, myError(ErrRange, col.Name(), n.String(), target)
	}
	return rangeCheck(col, target, min, max, v.Int64())
}

// toUint converts n to an unsigned integer no larger than max; negative
// values are out of range.
func (n numeric) toUint(col *ColumnDefinition, target string, max uint64) (uint64, error) {
	switch n.kind {
	case numInt:
		if n.i < 0 {
			return 0, myError(ErrRange, col.Name(), n.String(), target)
		}
		return uintRangeCheck(col, target, max, uint64(n.i))
	case numUint:
		return uintRangeCheck(col, target, max, n.u)
	}

	v, err := n.truncated(col, target)
	if err != nil {
		return 0, err
	}
	if v.Sign() < 0 || v.Cmp(bigMaxUint64) > 0 {
		return 0, myError(ErrRange, col.Name(), n.String(), target)
	}
	return uintRangeCheck(col, target, max, v.Uint64())
}

func (n numeric) toFloat64() float64 {
	switch n.kind {
	case numInt:
		return float64(n.i)
	case numUint:
		return float64(n.u)
	case numFloat:
		return n.f
	}
	f, _ := n.r.Float64()
	return f
}

func (n numeric) toFloat32(col *ColumnDefinition) (float32, error) {
	f := n.toFloat64()
	if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, myError(ErrRange, col.Name(), n.String(), "float32")
	}
	return float32(f), nil
}

func (n numeric) toDecimal(col *ColumnDefinition) (*big.Rat, error) {
	switch n.kind {
	case numInt:
		return new(big.Rat).SetInt64(n.i), nil
	case numUint:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(n.u)), nil
	case numFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return nil, myError(ErrRange, col.Name(), n.String(), "decimal")
		}
		// the shortest representation keeps FLOAT columns exact
		r, _ := new(big.Rat).SetString(strconv.FormatFloat(n.f, 'g', -1, n.bits))
		return r, nil
	}
	return new(big.Rat).Set(n.r), nil
}

// decimalString formats r without exponent, using as many fractional
// digits as r needs (r always comes from a finite decimal).
func decimalString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	prec := 0
	d := new(big.Int).Set(r.Denom())
	ten := big.NewInt(10)
	m := new(big.Int)
	for d.Cmp(big.NewInt(1)) != 0 && prec < 64 {
		// strip factors of 2 and 5
		if m.Mod(d, ten).Sign() == 0 {
			d.Quo(d, ten)
		} else if m.Mod(d, big.NewInt(2)).Sign() == 0 {
			d.Quo(d, big.NewInt(2))
		} else if m.Mod(d, big.NewInt(5)).Sign() == 0 {
			d.Quo(d, big.NewInt(5))
		} else {
			break
		}
		prec++
	}
	return r.FloatString(prec)
}

// validNumber checks b against -?(D+(.D*)?|.D+)([eE][+-]?D+)? and reports
// whether it is a plain integer.
func validNumber(b []byte) (integer, ok bool) {
	i := 0
	if i < len(b) && b[i] == '-' {
		i++
	}

	digits := 0
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
		digits++
	}

	integer = true
	if i < len(b) && b[i] == '.' {
		integer = false
		i++
		for i < len(b) && b[i] >= '0' && b[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false, false
	}

	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		integer = false
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		exp := 0
		for i < len(b) && b[i] >= '0' && b[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false, false
		}
	}
	return integer, i == len(b)
}

// parseTextNumber parses the text form of a number, locale independent.
// Integers stay exact at any width; floatBits selects a binary float
// result for FLOAT (32) and DOUBLE (64) columns.
func parseTextNumber(b []byte, floatBits int) (numeric, bool) {
	integer, ok := validNumber(b)
	if !ok {
		return numeric{}, false
	}
	s := string(b)

	if floatBits != 0 {
		f, err := strconv.ParseFloat(s, floatBits)
		if err != nil && !isRangeErr(err) {
			return numeric{}, false
		}
		return numeric{kind: numFloat, f: f, bits: floatBits}, true
	}

	if integer {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return numeric{kind: numInt, i: v}, true
		}
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return numeric{kind: numUint, u: v}, true
		}
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return numeric{}, false
	}
	return numeric{kind: numDecimal, r: r}, true
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// parseBit reads a BIT value, sent big-endian in up to 8 bytes.
func parseBit(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// zeroFill left-pads the text form of a number of a ZEROFILL column with
// '0' up to the column's display width.
func zeroFill(s string, col *ColumnDefinition) string {
	if !col.IsZeroFill() {
		return s
	}
	width := int(col.DisplaySize())
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// textBool interprets the text of a string column as a boolean.
func textBool(s string) bool {
	return !(s == "0" || strings.EqualFold(s, "false") || s == "")
}

// trimSpace strips the blanks CHAR columns are padded with.
func trimSpace(b []byte) []byte {
	i, j := 0, len(b)
	for i < j && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	for j > i && (b[j-1] == ' ' || b[j-1] == '\t') {
		j--
	}
	return b[i:j]
}
