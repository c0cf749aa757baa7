// Package mbstr decodes byte strings of unknown multi-byte encoding.
package mbstr

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// ErrUndecodable is returned when no known codec decodes the input cleanly.
var ErrUndecodable = errors.New("undecodable byte string")

type codec struct {
	name string
	enc  encoding.Encoding
}

// Tried in order after UTF-8. Windows-1252 is last because it maps almost
// every byte.
var codecs = []codec{
	{"utf-16", unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)},
	{"shift_jis", japanese.ShiftJIS},
	{"euc-jp", japanese.EUCJP},
	{"iso-2022-jp", japanese.ISO2022JP},
	{"euc-kr", korean.EUCKR},
	{"gb18030", simplifiedchinese.GB18030},
	{"big5", traditionalchinese.Big5},
	{"windows-1252", charmap.Windows1252},
}

// Decode returns b as a string, trying UTF-8 first and then the known
// multi-byte codecs.
func Decode(b []byte) (string, error) {
	s, _, err := DecodeWithCodec(b)
	return s, err
}

// DecodeWithCodec is like Decode and also reports the codec name that
// succeeded.
func DecodeWithCodec(b []byte) (string, string, error) {
	if utf8.Valid(b) {
		return string(b), "utf-8", nil
	}
	for _, c := range codecs {
		out, err := c.enc.NewDecoder().Bytes(b)
		if err != nil {
			continue
		}
		s := string(out)
		if strings.ContainsRune(s, utf8.RuneError) {
			continue
		}
		return s, c.name, nil
	}
	return "", "", fmt.Errorf("%w: % x", ErrUndecodable, truncate(b, 16))
}

// String returns the text form of v: strings as-is, byte slices decoded,
// Stringers via String, nil as "", and anything else via fmt.Sprint.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		if s, err := Decode(x); err == nil {
			return s
		}
		return string(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
