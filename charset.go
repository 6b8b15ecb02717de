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
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

type charsetInfo struct {
	name   string
	maxLen int               // bytes per character
	enc    encoding.Encoding // nil for UTF-8 compatible charsets
}

var (
	charsetLatin1  = &charsetInfo{"latin1", 1, charmap.Windows1252}
	charsetLatin2  = &charsetInfo{"latin2", 1, charmap.ISO8859_2}
	charsetGreek   = &charsetInfo{"greek", 1, charmap.ISO8859_7}
	charsetHebrew  = &charsetInfo{"hebrew", 1, charmap.ISO8859_8}
	charsetCp1250  = &charsetInfo{"cp1250", 1, charmap.Windows1250}
	charsetCp1251  = &charsetInfo{"cp1251", 1, charmap.Windows1251}
	charsetCp1256  = &charsetInfo{"cp1256", 1, charmap.Windows1256}
	charsetCp1257  = &charsetInfo{"cp1257", 1, charmap.Windows1257}
	charsetKoi8r   = &charsetInfo{"koi8r", 1, charmap.KOI8R}
	charsetKoi8u   = &charsetInfo{"koi8u", 1, charmap.KOI8U}
	charsetASCII   = &charsetInfo{"ascii", 1, nil}
	charsetBinary  = &charsetInfo{"binary", 1, nil}
	charsetUtf8    = &charsetInfo{"utf8", 3, nil}
	charsetUtf8mb4 = &charsetInfo{"utf8mb4", 4, nil}
	charsetTwo     = &charsetInfo{"multibyte", 2, nil}
	charsetThree   = &charsetInfo{"multibyte", 3, nil}
	charsetFour    = &charsetInfo{"multibyte", 4, nil}
)

var charsets = map[uint16]*charsetInfo{}

func registerCharset(cs *charsetInfo, ids ...uint16) {
	for _, id := range ids {
		charsets[id] = cs
	}
}

func registerCharsetRange(cs *charsetInfo, from, to uint16) {
	for id := from; id <= to; id++ {
		charsets[id] = cs
	}
}

func init() {
	registerCharset(charsetLatin1, 5, 8, 15, 31, 47, 48, 49, 94)
	registerCharset(charsetLatin2, 2, 9, 21, 27, 77)
	registerCharset(charsetGreek, 25, 70)
	registerCharset(charsetHebrew, 16, 71)
	registerCharset(charsetCp1250, 26, 34, 44, 66, 99)
	registerCharset(charsetCp1251, 14, 23, 50, 51, 52)
	registerCharset(charsetCp1256, 57, 67)
	registerCharset(charsetCp1257, 29, 58, 59)
	registerCharset(charsetKoi8r, 7, 74)
	registerCharset(charsetKoi8u, 22, 75)
	registerCharset(charsetASCII, 11, 65)
	registerCharset(charsetBinary, binaryCharset)
	registerCharset(charsetUtf8, 33, 83)
	registerCharsetRange(charsetUtf8, 192, 215)
	registerCharset(charsetUtf8mb4, 45, 46)
	registerCharsetRange(charsetUtf8mb4, 224, 247)
	registerCharset(charsetTwo, 1, 13, 19, 24, 28, 35, 84, 85, 86, 87, 88, 90, 95, 96)
	registerCharsetRange(charsetTwo, 128, 151)
	registerCharset(charsetThree, 12, 91, 97, 98)
	registerCharset(charsetFour, 54, 55, 56, 60, 61, 62)
	registerCharsetRange(charsetFour, 101, 124)
	registerCharsetRange(charsetFour, 160, 183)
	registerCharsetRange(charsetFour, 248, 250)
}

// charsetMaxLen returns the maximum number of bytes a character of the given
// collation takes. Collations newer than the table (utf8mb4 0900 and up)
// count as 4.
func charsetMaxLen(id uint16) int {
	if cs, ok := charsets[id]; ok {
		return cs.maxLen
	}
	return 4
}

// decodeText converts column text in the given collation to UTF-8. Text of
// charsets without a registered decoder is returned as is.
func decodeText(id uint16, b []byte) (string, error) {
	cs, ok := charsets[id]
	if !ok || cs.enc == nil {
		return string(b), nil
	}

	v, err := cs.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(v), nil
}
