package svg

import (
	"encoding/base64"
	"strings"
)

const (
	percentPrefix = "data:image/svg+xml,"
	base64Prefix  = "data:image/svg+xml;base64,"
	upperHex      = "0123456789ABCDEF"
)

// passThrough lists characters PercentEncode leaves as is in addition to
// RFC 3986 unreserved set. All of them are legal inside data URI placed in
// double quoted CSS url() and keep output readable.
var passThrough = [256]bool{
	' ': true, '=': true, ':': true, '/': true, ',': true,
	';': true, '(': true, ')': true, '#': true, '\'': true,
}

func keepByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return passThrough[c]
}

// PercentEncode returns data URI with markup percent-encoded in a single pass.
// Every byte outside of kept set becomes uppercase %XX, so decoding the
// payload with standard percent decoder restores input exactly.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(percentPrefix) + len(s)*3/2)
	b.WriteString(percentPrefix)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

// Base64Encode returns data URI with standard padded base64 payload.
func Base64Encode(s string) string {
	return base64Prefix + base64.StdEncoding.EncodeToString([]byte(s))
}

// BackgroundCSS wraps data URI into background-image declaration.
func BackgroundCSS(uri string) string {
	return `background-image: url("` + uri + `");`
}

// MaskCSS wraps data URI into standard and prefixed mask-image declarations,
// one per line.
func MaskCSS(uri string) string {
	return `mask-image: url("` + uri + `");` + "\n" + `-webkit-mask-image: url("` + uri + `");`
}
