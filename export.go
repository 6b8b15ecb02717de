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
	stdjson "encoding/json"
	"io"
	"math/big"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONOption configures WriteJSON.
type JSONOption func(*jsonWriter)

type jsonWriter struct {
	newlineDelimited bool
	limit            int
}

// WithNewlineDelimited writes one object per line instead of an array.
func WithNewlineDelimited(isNewlineDelimited bool) JSONOption {
	return func(w *jsonWriter) {
		w.newlineDelimited = isNewlineDelimited
	}
}

// WithLimit stops after limit rows; a negative limit writes all of them.
func WithLimit(limit int) JSONOption {
	return func(w *jsonWriter) {
		w.limit = limit
	}
}

// WriteJSON writes the rows after the current position of r to w as JSON
// objects keyed by column label. JSON columns are embedded as they are,
// DECIMAL values are written as numbers and TIME values as strings.
func WriteJSON(w io.Writer, r *Rows, opts ...JSONOption) error {
	c := &jsonWriter{limit: -1}
	for _, opt := range opts {
		opt(c)
	}

	labels := r.Columns()
	rowID := 1
	defer func() {
		if !c.newlineDelimited && rowID != 1 {
			w.Write([]byte("\n]\n"))
		}
	}()
	if c.limit == 0 {
		return nil
	}

	for {
		ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		row := make(map[string]interface{}, len(labels))
		for i, label := range labels {
			v, err := jsonValue(r, i+1)
			if err != nil {
				return err
			}
			row[label] = v
		}

		data, err := json.Marshal(row)
		if err != nil {
			return errors.Wrapf(err, "row %d", rowID)
		}
		if !c.newlineDelimited {
			if rowID == 1 {
				w.Write([]byte("["))
			} else {
				w.Write([]byte(","))
			}
			w.Write([]byte("\n"))
			if _, err = w.Write(data); err != nil {
				return err
			}
		} else {
			if _, err = w.Write(data); err != nil {
				return err
			}
			w.Write([]byte("\n"))
		}
		if c.limit >= 0 && rowID >= c.limit {
			rowID++
			return nil
		}
		rowID++
	}
}

// jsonValue returns column i of the current row in a form the encoder
// writes the way the server prints it.
func jsonValue(r *Rows, i int) (interface{}, error) {
	if r.columns[i-1].Type().ID() == TypeJSON {
		b, err := r.GetBytes(i)
		if err != nil || b == nil {
			return nil, err
		}
		if json.Valid(b) {
			return stdjson.RawMessage(b), nil
		}
		return string(b), nil
	}

	v, err := r.GetObject(i)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case *big.Rat:
		return stdjson.Number(decimalString(v)), nil
	case time.Duration:
		return FormatDuration(v), nil
	}
	return v, nil
}

// ScanJSON unmarshals the JSON document held by column i into v. A NULL
// value leaves v untouched.
func (r *Rows) ScanJSON(i int, v interface{}) error {
	b, err := r.GetBytes(i)
	if err != nil {
		return err
	}
	if r.WasNull() {
		return nil
	}
	if err = json.Unmarshal(b, v); err != nil {
		e := myError(ErrFormat, r.columns[i-1].Name(), string(b), "json")
		e.cause = err
		return e
	}
	return nil
}
