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
	"strconv"
	"time"
)

var (
	// MaxDuration is the maximum allowable TIME value in MySQL '838:59:59.000000'
	MaxDuration time.Duration = 838*time.Hour + 59*time.Minute + 59*time.Second
	// MinDuration is the minimun allowable TIME value in MySQL '-838:59:59.000000'
	MinDuration time.Duration = -1 * MaxDuration
)

// only 6 fractional digits travel on the wire
const maxFractionDigits = 9

// temporal holds the broken-down fields of a DATE, DATETIME, TIMESTAMP or
// TIME value. For TIME, hour carries the day count folded in.
type temporal struct {
	year, month, day     int
	hour, minute, second int
	micro                int
	neg                  bool
}

// zeroDate reports whether the date part can't be represented as a calendar
// date: the all-zero sentinel or a date with a zero month or day.
func (t *temporal) zeroDate() bool {
	return t.month == 0 || t.day == 0
}

func (t *temporal) toTime(loc *time.Location) time.Time {
	return time.Date(t.year, time.Month(t.month), t.day, t.hour, t.minute,
		t.second, t.micro*1000, loc)
}

// hours of the longest TIME value a time.Duration holds
const maxDurationHours = int(math.MaxInt64/int64(time.Hour)) - 1

func (t *temporal) fitsDuration() bool {
	return t.hour <= maxDurationHours
}

func (t *temporal) toDuration() time.Duration {
	d := time.Duration(t.hour)*time.Hour +
		time.Duration(t.minute)*time.Minute +
		time.Duration(t.second)*time.Second +
		time.Duration(t.micro)*time.Microsecond
	if t.neg {
		return -d
	}
	return d
}

func durationToTemporal(d time.Duration) temporal {
	var t temporal

	if d < 0 {
		t.neg = true
		d = -d
	}
	t.hour = int(d / time.Hour)
	d %= time.Hour
	t.minute = int(d / time.Minute)
	d %= time.Minute
	t.second = int(d / time.Second)
	d %= time.Second
	t.micro = int(d / time.Microsecond)
	return t
}

// parseBinaryDate parses a binary protocol DATE, DATETIME or TIMESTAMP value
// starting at its length byte.
func parseBinaryDate(b []byte) (t temporal, n int, ok bool) {
	var off int

	if len(b) == 0 {
		return t, 0, false
	}
	length := int(b[off])
	off++

	if len(b) < 1+length {
		return t, 0, false
	}

	switch length {
	case 0, 4, 7, 11:
	default:
		return t, 0, false
	}

	if length >= 4 {
		t.year = int(binary.LittleEndian.Uint16(b[off : off+2]))
		off += 2
		t.month = int(b[off])
		off++
		t.day = int(b[off])
		off++
	}

	if length >= 7 {
		t.hour = int(b[off])
		off++
		t.minute = int(b[off])
		off++
		t.second = int(b[off])
		off++
	}

	if length == 11 {
		t.micro = int(binary.LittleEndian.Uint32(b[off : off+4]))
		off += 4
	}

	return t, off, true
}

// parseBinaryTime parses a binary protocol TIME value starting at its
// length byte. Days are folded into hours.
func parseBinaryTime(b []byte) (t temporal, n int, ok bool) {
	var off int

	if len(b) == 0 {
		return t, 0, false
	}
	length := int(b[off])
	off++

	if len(b) < 1+length {
		return t, 0, false
	}

	switch length {
	case 0, 8, 12:
	default:
		return t, 0, false
	}

	if length >= 8 {
		t.neg = b[off] == 1
		off++
		days := int(binary.LittleEndian.Uint32(b[off : off+4]))
		off += 4
		t.hour = days*24 + int(b[off])
		off++
		t.minute = int(b[off])
		off++
		t.second = int(b[off])
		off++
	}

	if length == 12 {
		t.micro = int(binary.LittleEndian.Uint32(b[off : off+4]))
		off += 4
	}

	return t, off, true
}

// binaryTemporalSize returns the encoded size of a binary temporal value
// including its length byte.
func binaryTemporalSize(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return 1 + int(b[0])
}

// parseDigits parses an unsigned decimal number made only of ASCII digits.
func parseDigits(b []byte) (int, bool) {
	if len(b) == 0 || len(b) > 9 {
		return 0, false
	}
	v := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

// parseFraction converts fractional-second digits to microseconds; digits
// past the sixth are dropped.
func parseFraction(b []byte) (int, bool) {
	if len(b) == 0 || len(b) > maxFractionDigits {
		return 0, false
	}
	micro := 0
	for i := 0; i < 6; i++ {
		micro *= 10
		if i < len(b) {
			c := b[i]
			if c < '0' || c > '9' {
				return 0, false
			}
			micro += int(c - '0')
		}
	}
	for _, c := range b[min(len(b), 6):] {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	return micro, true
}

// splitField cuts b at the first sep.
func splitField(b []byte, sep byte) (head, tail []byte, found bool) {
	for i, c := range b {
		if c == sep {
			return b[:i], b[i+1:], true
		}
	}
	return b, nil, false
}

// parseTextTimeOfDay parses "HH:MM:SS[.ffffff]"; hours may have more than
// two digits.
func parseTextTimeOfDay(b []byte, t *temporal) bool {
	var (
		h, m, s []byte
		found   bool
		ok      bool
	)

	if h, b, found = splitField(b, ':'); !found {
		return false
	}
	if m, b, found = splitField(b, ':'); !found {
		return false
	}
	s, frac, hasFrac := splitField(b, '.')

	if t.hour, ok = parseDigits(h); !ok {
		return false
	}
	if len(m) > 2 || len(s) > 2 {
		return false
	}
	if t.minute, ok = parseDigits(m); !ok || t.minute > 59 {
		return false
	}
	if t.second, ok = parseDigits(s); !ok || t.second > 59 {
		return false
	}
	if hasFrac {
		if t.micro, ok = parseFraction(frac); !ok {
			return false
		}
	}
	return true
}

// parseTextDate parses the text form of a DATE, DATETIME or TIMESTAMP value:
// "YYYY-MM-DD[( |T)HH:MM:SS[.ffffff]]".
func parseTextDate(b []byte) (t temporal, ok bool) {
	if len(b) < 10 || b[4] != '-' || b[7] != '-' {
		return t, false
	}
	if t.year, ok = parseDigits(b[0:4]); !ok {
		return t, false
	}
	if t.month, ok = parseDigits(b[5:7]); !ok || t.month > 12 {
		return t, false
	}
	if t.day, ok = parseDigits(b[8:10]); !ok || t.day > 31 {
		return t, false
	}

	if len(b) == 10 {
		return t, true
	}
	if b[10] != ' ' && b[10] != 'T' {
		return t, false
	}
	if !parseTextTimeOfDay(b[11:], &t) || t.hour > 23 {
		return t, false
	}
	return t, true
}

// parseTextTime parses the text form of a TIME value: "[-]H+:MM:SS[.ffffff]".
func parseTextTime(b []byte) (t temporal, ok bool) {
	if len(b) > 0 && b[0] == '-' {
		t.neg = true
		b = b[1:]
	}
	if !parseTextTimeOfDay(b, &t) {
		return t, false
	}
	return t, true
}

func appendPadded(b []byte, v, width int) []byte {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, s...)
}

// appendFraction appends the fractional seconds of micro, padded or
// truncated to decimals digits. Columns without a fixed scale (decimals
// above 9) print all 6 digits when the fraction is non-zero.
func appendFraction(b []byte, micro, decimals int) []byte {
	if decimals > maxFractionDigits {
		if micro == 0 {
			return b
		}
		decimals = 6
	}
	if decimals <= 0 {
		return b
	}

	var digits [maxFractionDigits]byte
	for i := range digits {
		digits[i] = '0'
	}
	for i, v := 5, micro; i >= 0; i-- {
		digits[i] = byte('0' + v%10)
		v /= 10
	}

	b = append(b, '.')
	return append(b, digits[:decimals]...)
}

// formatDate formats a DATE as "YYYY-MM-DD".
func formatDate(t *temporal) string {
	b := make([]byte, 0, 10)
	b = appendPadded(b, t.year, 4)
	b = append(b, '-')
	b = appendPadded(b, t.month, 2)
	b = append(b, '-')
	b = appendPadded(b, t.day, 2)
	return string(b)
}

// formatDatetime formats a DATETIME or TIMESTAMP as
// "YYYY-MM-DD HH:MM:SS[.fraction]".
func formatDatetime(t *temporal, decimals int) string {
	b := make([]byte, 0, 26)
	b = appendPadded(b, t.year, 4)
	b = append(b, '-')
	b = appendPadded(b, t.month, 2)
	b = append(b, '-')
	b = appendPadded(b, t.day, 2)
	b = append(b, ' ')
	b = appendPadded(b, t.hour, 2)
	b = append(b, ':')
	b = appendPadded(b, t.minute, 2)
	b = append(b, ':')
	b = appendPadded(b, t.second, 2)
	b = appendFraction(b, t.micro, decimals)
	return string(b)
}

// formatTime formats a TIME as "[-]HH:MM:SS[.fraction]".
func formatTime(t *temporal, decimals int) string {
	b := make([]byte, 0, 18)
	if t.neg {
		b = append(b, '-')
	}
	b = appendPadded(b, t.hour, 2)
	b = append(b, ':')
	b = appendPadded(b, t.minute, 2)
	b = append(b, ':')
	b = appendPadded(b, t.second, 2)
	b = appendFraction(b, t.micro, decimals)
	return string(b)
}

// ParseDuration parses the input specified in MySQL's TIME format into a
// time.Duration.
func ParseDuration(s string) (time.Duration, error) {
	t, ok := parseTextTime([]byte(s))
	if !ok {
		return 0, myError(ErrInvalidType, s)
	}
	if !t.fitsDuration() {
		return 0, myError(ErrRange, "", s, "time.Duration")
	}
	return t.toDuration(), nil
}

// FormatDuration formats the specified time.Duration in MySQL TIME format,
// with microseconds when the duration has a fractional second.
func FormatDuration(d time.Duration) string {
	t := durationToTemporal(d)
	if t.micro == 0 {
		return formatTime(&t, 0)
	}
	return formatTime(&t, 6)
}
