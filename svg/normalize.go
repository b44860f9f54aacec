package svg

import (
	"regexp"
	"strings"
)

// SVGNamespace is injected on root when markup does not declare default
// namespace, without it browsers refuse to render data URI.
const SVGNamespace = "http://www.w3.org/2000/svg"

var (
	xmlDeclRe   = regexp.MustCompile(`(?i)^\s*<\?xml[^>]*>\s*`)
	commentRe   = regexp.MustCompile(`(?s)<!--.*?-->`)
	rootOpenRe  = regexp.MustCompile(`(?i)<svg\b[^>]*>`)
	rootXmlnsRe = regexp.MustCompile(`(?i)\sxmlns\s*=`)
	trailingWS  = regexp.MustCompile(`\s+(/?>)$`)
	spacesRe    = regexp.MustCompile(`\s+`)

	rootSizeAttrs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\swidth\s*=\s*"[^"]*"`),
		regexp.MustCompile(`(?i)\swidth\s*=\s*'[^']*'`),
		regexp.MustCompile(`(?i)\sheight\s*=\s*"[^"]*"`),
		regexp.MustCompile(`(?i)\sheight\s*=\s*'[^']*'`),
	}
	rootClassAttrs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\sclass\s*=\s*"[^"]*"`),
		regexp.MustCompile(`(?i)\sclass\s*=\s*'[^']*'`),
	}
)

// Normalize produces canonical text form of sanitized markup: no BOM, XML
// declaration or comments, default namespace present, requested root
// attributes removed and whitespace collapsed. It only ever touches the root
// open tag attributes, never descendants. Result is deterministic and
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(s string, opts Options) string {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), byteOrderMark))
	if len(s) == 0 {
		return ""
	}

	s = xmlDeclRe.ReplaceAllString(s, "")
	s = commentRe.ReplaceAllString(s, "")

	if loc := rootOpenRe.FindStringIndex(s); loc != nil {
		open := rewriteRootTag(s[loc[0]:loc[1]], opts)
		s = s[:loc[0]] + open + s[loc[1]:]
	}

	s = spacesRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "> <", "><")
	return strings.TrimSpace(s)
}

func rewriteRootTag(open string, opts Options) string {
	if !rootXmlnsRe.MatchString(open) {
		open = injectAttr(open, `xmlns="`+SVGNamespace+`"`)
	}
	if opts.StripRootWidthHeight {
		for _, re := range rootSizeAttrs {
			open = re.ReplaceAllString(open, "")
		}
	}
	if opts.StripRootClass {
		for _, re := range rootClassAttrs {
			open = re.ReplaceAllString(open, "")
		}
	}
	return trailingWS.ReplaceAllString(open, "$1")
}

// injectAttr appends attribute to open tag, keeping self-closing form intact.
func injectAttr(open, attr string) string {
	body := strings.TrimSuffix(open, ">")
	closing := ">"
	if strings.HasSuffix(body, "/") {
		body, closing = strings.TrimSuffix(body, "/"), "/>"
	}
	return strings.TrimRight(body, " \t\r\n") + " " + attr + closing
}
