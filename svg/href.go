package svg

import (
	"regexp"
	"strings"
)

var safeDataURIPrefixes = []string{
	"data:image/png",
	"data:image/gif",
	"data:image/jpg",
	"data:image/jpeg",
	"data:image/svg+xml",
}

// IsHrefSafe reports whether URI may be kept in href-like attribute: empty,
// fragment, site relative, http(s) or raster/svg image data URI. Everything
// else (other data: media types, file:, ftp:, javascript: ...) is unsafe.
//
// NOTE: absolute http(s) references are allowed, so output may still
// trigger requests when rendered (tracking pixels in <image>).
func IsHrefSafe(v string) bool {
	switch {
	case len(v) == 0:
		return true
	case strings.HasPrefix(v, "#"), strings.HasPrefix(v, "/"):
		return true
	case strings.HasPrefix(v, "https://"), strings.HasPrefix(v, "http://"):
		return true
	}
	for _, p := range safeDataURIPrefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}

var dangerousSchemeRe = regexp.MustCompile(`(?i)javascript:|data:text/html|vbscript:`)

// hasDangerousScheme checks any attribute value for script capable URI
// schemes. Browsers ignore ASCII whitespace and control characters inside
// scheme names ("java\tscript:"), so those are dropped before matching.
func hasDangerousScheme(v string) bool {
	compact := strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, v)
	return dangerousSchemeRe.MatchString(compact)
}

func isEventHandler(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on") && isASCIILetter(name[2])
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
