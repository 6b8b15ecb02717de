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
	"net/url"
	"strconv"
	"strings"
)

// default properties (unexported)
const (
	_DEFAULT_FETCH_SIZE     = 0
	_DEFAULT_MAX_ROW_BUFFER = 1<<31 - 9 // largest row slice we agree to grow to
)

// Options control how column values are decoded and how results fetch
// rows. The zero value is not useful; start from DefaultOptions or
// ParseOptions.
type Options struct {
	// TinyInt1IsBit surfaces TINYINT(1) columns as bool.
	TinyInt1IsBit bool
	// YearIsDateType surfaces YEAR columns as dates (January 1st of the
	// year); otherwise they are small integers.
	YearIsDateType bool
	// DefaultFetchSize is the window size used by results that do not set
	// their own. 0 materializes whole results.
	DefaultFetchSize int
	// ReportWarnings makes Close return the server warnings of a drained
	// result as an error.
	ReportWarnings bool
	// DecodeCharset converts text of legacy single-byte charsets to UTF-8.
	DecodeCharset bool
	// MaxRowBuffer caps the number of rows a result holds in memory.
	MaxRowBuffer int
}

var defaultOptions = Options{
	TinyInt1IsBit:    true,
	YearIsDateType:   true,
	DefaultFetchSize: _DEFAULT_FETCH_SIZE,
	DecodeCharset:    true,
	MaxRowBuffer:     _DEFAULT_MAX_ROW_BUFFER,
}

// DefaultOptions returns a copy of the default options.
func DefaultOptions() *Options {
	o := defaultOptions
	return &o
}

// ParseOptions reads options from the query part of a DSN, for instance
// "mysql://host/db?TinyInt1IsBit=false&DefaultFetchSize=100". A bare query
// string is accepted too. Unknown keys are ignored.
func ParseOptions(dsn string) (*Options, error) {
	var (
		u   *url.URL
		err error
	)

	// initialize default properties
	p := DefaultOptions()

	if !strings.Contains(dsn, "?") && strings.Contains(dsn, "=") {
		dsn = "?" + dsn
	}

	if u, err = url.Parse(dsn); err != nil {
		return nil, myError(ErrInvalidProperty, "dsn", err)
	}

	query := u.Query()

	// TinyInt1IsBit
	if val := query.Get("TinyInt1IsBit"); val != "" {
		if v, err := strconv.ParseBool(val); err != nil {
			return nil, myError(ErrInvalidProperty, "TinyInt1IsBit", err)
		} else {
			p.TinyInt1IsBit = v
		}
	}

	// YearIsDateType
	if val := query.Get("YearIsDateType"); val != "" {
		if v, err := strconv.ParseBool(val); err != nil {
			return nil, myError(ErrInvalidProperty, "YearIsDateType", err)
		} else {
			p.YearIsDateType = v
		}
	}

	// DefaultFetchSize
	if val := query.Get("DefaultFetchSize"); val != "" {
		if v, err := strconv.ParseUint(val, 10, 31); err != nil {
			return nil, myError(ErrInvalidProperty, "DefaultFetchSize", err)
		} else {
			p.DefaultFetchSize = int(v)
		}
	}

	// ReportWarnings
	if val := query.Get("ReportWarnings"); val != "" {
		if v, err := strconv.ParseBool(val); err != nil {
			return nil, myError(ErrInvalidProperty, "ReportWarnings", err)
		} else {
			p.ReportWarnings = v
		}
	}

	// DecodeCharset
	if val := query.Get("DecodeCharset"); val != "" {
		if v, err := strconv.ParseBool(val); err != nil {
			return nil, myError(ErrInvalidProperty, "DecodeCharset", err)
		} else {
			p.DecodeCharset = v
		}
	}

	// MaxRowBuffer
	if val := query.Get("MaxRowBuffer"); val != "" {
		if v, err := strconv.ParseUint(val, 10, 31); err != nil {
			return nil, myError(ErrInvalidProperty, "MaxRowBuffer", err)
		} else if v < 1 {
			return nil, myError(ErrInvalidProperty, "MaxRowBuffer", "must be positive")
		} else {
			p.MaxRowBuffer = int(v)
		}
	}

	return p, nil
}
