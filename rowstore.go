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

// rowStore is where a result keeps the rows it has fetched. The cursor
// only ever goes through this interface.
type rowStore interface {
	// Len returns the number of rows held.
	Len() int
	// Row returns the payload of the i-th held row.
	Row(i int) []byte
	// Append adds a freshly fetched payload.
	Append(p []byte) error
	// Reset discards the held rows, for the next window.
	Reset()
	// Release frees the store.
	Release()
}

// materializedStore copies every row into a growable buffer.
type materializedStore struct {
	buf buffer
}

func newMaterializedStore(rows, max int) *materializedStore {
	s := new(materializedStore)
	s.buf.New(rows, max)
	return s
}

func (s *materializedStore) Len() int         { return s.buf.Len() }
func (s *materializedStore) Row(i int) []byte { return s.buf.Read(i) }
func (s *materializedStore) Reset()           { s.buf.Reset() }
func (s *materializedStore) Release()         { s.buf.Release() }

func (s *materializedStore) Append(p []byte) error {
	_, err := s.buf.Write(p)
	return err
}

// liveStore keeps no copy: it holds the payload last delivered by the
// runtime, valid only until the next fetch on the connection. It serves
// forward-only results read one row at a time.
type liveStore struct {
	current []byte
	held    bool
}

func (s *liveStore) Len() int {
	if s.held {
		return 1
	}
	return 0
}

func (s *liveStore) Row(i int) []byte {
	return s.current
}

func (s *liveStore) Append(p []byte) error {
	s.current, s.held = p, true
	return nil
}

func (s *liveStore) Reset() {
	s.current, s.held = nil, false
}

func (s *liveStore) Release() {
	s.Reset()
}

// materialize copies the rows of a live store into a materialized one so
// they survive further reads on the connection.
func materialize(s rowStore, max int) (*materializedStore, error) {
	if m, ok := s.(*materializedStore); ok {
		return m, nil
	}
	m := newMaterializedStore(max10(s.Len()), max)
	for i := 0; i < s.Len(); i++ {
		if err := m.Append(s.Row(i)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func max10(n int) int {
	if n < 10 {
		return 10
	}
	return n
}
