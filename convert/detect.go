package convert

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"svgready/svg"
)

// how much of the input is looked at to decide what it is
const headSize = 4096

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUnknown:
		return "unknown"
	case encUTF8:
		return "utf8"
	case encUTF16BigEndian:
		return "utf16be"
	case encUTF16LittleEndian:
		return "utf16le"
	case encUTF32BigEndian:
		return "utf32be"
	case encUTF32LittleEndian:
		return "utf32le"
	}
	return fmt.Sprintf("srcEncoding(%d)", int(e))
}

var svgType = filetype.NewType("svg", "image/svg+xml")

// Comments, declaration and doctype may precede root element, the rest of the
// checks is done by conversion itself.
var svgHeadRe = regexp.MustCompile(`(?is)^\s*(?:<\?xml[^>]*>\s*)?(?:<!--.*?-->\s*|<!DOCTYPE[^>]*>\s*)*<svg[\s>/]`)

func init() {
	filetype.AddMatcher(svgType, func(buf []byte) bool {
		return svgHeadRe.Match(bytes.TrimPrefix(buf, []byte{0xEF, 0xBB, 0xBF}))
	})
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BEBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LEBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BEBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LEBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for byte order mark. UTF-32LE mark starts with UTF-16LE one,
// so longer marks are checked first.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BEBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LEBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BEBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LEBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 without byte order mark.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	}
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}

// classify decides if content with given name and head should be handed to
// conversion. Recognized binary formats are never SVG, unrecognized content
// is accepted by extension so conversion could report what is wrong with it.
func classify(name string, head []byte) (bool, srcEncoding) {
	enc := detectUTF(head)

	probe := head
	if enc != encUnknown && enc != encUTF8 {
		// partial characters at the end of head are of no importance here
		if decoded, _ := io.ReadAll(selectReader(bytes.NewReader(head), enc)); len(decoded) > 0 {
			probe = decoded
		}
	}
	if filetype.IsType(probe, svgType) {
		return true, enc
	}
	if _, ok := binaryKind(head); ok {
		return false, enc
	}
	return strings.EqualFold(filepath.Ext(name), ".svg"), enc
}

// binaryKind reports recognized non SVG format of head if any. Content with
// byte order mark is text.
func binaryKind(head []byte) (types.Type, bool) {
	if detectUTF(head) != encUnknown || filetype.IsType(head, svgType) {
		return filetype.Unknown, false
	}
	kind, _ := filetype.Match(head)
	return kind, kind != filetype.Unknown
}

var (
	xmlDeclRe  = regexp.MustCompile(`^\s*<\?xml\b[^>]*?\?>`)
	encodingRe = regexp.MustCompile(`\bencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
)

// readSource reads SVG text from r. Reading stops after limit bytes, anything
// longer than svg.MaxInputSize is returned as is and will be rejected by
// conversion. Byte order mark takes precedence over declared encoding. XML
// declaration describes bytes already decoded here and is dropped, root
// element must be the first thing conversion sees.
func readSource(r io.Reader, enc srcEncoding, limit int) (string, error) {
	data, err := io.ReadAll(io.LimitReader(selectReader(r, enc), int64(limit)))
	if err != nil {
		return "", fmt.Errorf("unable to read source: %w", err)
	}
	if len(data) > svg.MaxInputSize {
		return string(data), nil
	}

	decl := xmlDeclRe.Find(data)
	if decl == nil {
		return string(data), nil
	}
	if enc == encUnknown {
		if m := encodingRe.FindSubmatch(decl); m != nil {
			label := strings.ToLower(string(m[1]))
			if label != "utf-8" && label != "utf8" {
				rd, err := charset.NewReaderLabel(label, bytes.NewReader(data))
				if err != nil {
					return "", fmt.Errorf("unable to decode source: %w", err)
				}
				if data, err = io.ReadAll(rd); err != nil {
					return "", fmt.Errorf("unable to decode source from %s: %w", label, err)
				}
				if decl = xmlDeclRe.Find(data); decl == nil {
					return string(data), nil
				}
			}
		}
	}
	return string(data[len(decl):]), nil
}

// loadSource reads single SVG from r refusing recognizable binary content.
func loadSource(r io.Reader) (string, error) {
	br := bufio.NewReaderSize(r, headSize)
	head, _ := br.Peek(headSize)
	if kind, ok := binaryKind(head); ok {
		return "", fmt.Errorf("input is %s (%s), not SVG", kind.Extension, kind.MIME.Value)
	}
	return readSource(br, detectUTF(head), svg.MaxInputSize+1)
}

func isZip(head []byte) bool {
	return filetype.Is(head, "zip")
}
