// Package encoding turns backup files written by other tools into UTF-8.
// Spreadsheet exports on Japanese systems are commonly Shift_JIS or EUC-JP.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 8192

var boms = []struct {
	prefix []byte
	enc    textenc.Encoding
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, enc: unicode.UTF8BOM},
	{prefix: []byte{0xFF, 0xFE}, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// charsets maps chardet names to decoders.
var charsets = map[string]textenc.Encoding{
	"Shift_JIS":    japanese.ShiftJIS,
	"EUC-JP":       japanese.EUCJP,
	"ISO-2022-JP":  japanese.ISO2022JP,
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// Detect picks the encoding of a document from its first bytes: a byte order
// mark first, then UTF-8 validity, then chardet, falling back to
// Windows-1252. It returns nil when buf is plain UTF-8.
func Detect(buf []byte) textenc.Encoding {
	for _, b := range boms {
		if bytes.HasPrefix(buf, b.prefix) {
			return b.enc
		}
	}

	if validUTF8Prefix(buf) {
		return nil
	}

	res, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		if res.Charset == "UTF-8" {
			return nil
		}

		if enc, ok := charsets[res.Charset]; ok {
			return enc
		}
	}

	return charmap.Windows1252
}

// NewUTF8Reader sniffs the start of r and returns a reader producing UTF-8.
// A UTF-8 byte order mark is stripped.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	enc := Detect(buf)
	if enc == nil {
		return br, nil
	}

	return transform.NewReader(br, enc.NewDecoder()), nil
}

// validUTF8Prefix reports whether buf is valid UTF-8, tolerating a multi-byte
// sequence cut off by the peek window.
func validUTF8Prefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.Valid(buf[:len(buf)-i]) && !utf8.FullRune(buf[len(buf)-i:]) {
			return true
		}
	}

	return false
}
