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

// buffer is an append-only arena of row payloads. Rows are stored back to
// back in buff and addressed by index through rows.
type buffer struct {
	// the buffer
	buff []byte

	// bounds of each row in buff
	rows []span

	// maximum number of rows the buffer may hold
	max int
}

type span struct {
	off, end int
}

// growCapacity returns the capacity to grow to when old can't hold needed
// entries: old + old/2, at least needed, never more than max.
func growCapacity(old, needed, max int) (int, error) {
	if needed > max {
		return 0, myError(ErrUsage, "row buffer limit reached")
	}
	n := old + old/2
	if n < needed {
		n = needed
	}
	if n > max || n < 0 {
		n = max
	}
	return n, nil
}

func (b *buffer) New(rows, max int) {
	if rows > max {
		rows = max
	}
	b.max = max
	b.rows = make([]span, 0, rows)
	b.buff = make([]byte, 0, rows*64)
}

func (b *buffer) Len() int {
	return len(b.rows)
}

func (b *buffer) Cap() int {
	return cap(b.rows)
}

// Reset drops all rows and keeps the allocated space.
func (b *buffer) Reset() {
	b.rows = b.rows[:0]
	b.buff = b.buff[:0]
}

// Release drops all rows and the allocated space.
func (b *buffer) Release() {
	b.rows = nil
	b.buff = nil
}

// Read returns the i-th row. The slice stays valid until the next Reset.
func (b *buffer) Read(i int) []byte {
	r := b.rows[i]
	return b.buff[r.off:r.end:r.end]
}

// Write appends a copy of p as a new row.
func (b *buffer) Write(p []byte) (int, error) {
	if len(b.rows) == cap(b.rows) {
		n, err := growCapacity(cap(b.rows), len(b.rows)+1, b.max)
		if err != nil {
			return 0, err
		}
		rows := make([]span, len(b.rows), n)
		copy(rows, b.rows)
		b.rows = rows
	}

	if len(b.buff)+len(p) > cap(b.buff) {
		n := cap(b.buff) + cap(b.buff)/2
		if n < len(b.buff)+len(p) {
			n = len(b.buff) + len(p)
		}
		// rows already handed out keep pointing into the old array
		buff := make([]byte, len(b.buff), n)
		copy(buff, b.buff)
		b.buff = buff
	}

	off := len(b.buff)
	b.buff = append(b.buff, p...)
	b.rows = append(b.rows, span{off, len(b.buff)})
	return len(p), nil
}
