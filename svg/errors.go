package svg

import (
	"encoding/xml"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

// User facing messages. These are stable - callers may use them as default
// (English) text for the matching error code.
const (
	msgTooLarge         = "SVG too large (250 KB limit)."
	msgEmpty            = "Empty SVG content."
	msgMustStartWithSVG = "SVG must start with an <svg> tag."
	msgRootMustBeSVG    = "Invalid SVG: root element must be <svg>."
	msgNoRoot           = "SVG has no root element."
	msgNestingTooDeep   = "SVG contains excessive nesting in <use> elements."
	msgEventHandler     = "SVG contains invalid event handler attributes."
	msgDuplicateAttr    = "SVG has duplicate attributes."
	msgEntities         = "SVG references undefined entities."
	msgCouldNotParse    = "Could not parse SVG."
	msgServerError      = "Unexpected server error. Please try again."
)

// ConversionError describes why conversion of a single input failed.
type ConversionError struct {
	Kind    ErrorKind
	Message string
	// Detail holds raw parser diagnostic (or recovered fault description).
	// It is never part of Error() and is shown to users only on request.
	Detail string
	// InputLen is the length of the raw input in bytes.
	InputLen int
}

func newError(kind ErrorKind, msg string) *ConversionError {
	return &ConversionError{Kind: kind, Message: msg}
}

func newParserError(kind ErrorKind, msg, detail string) *ConversionError {
	return &ConversionError{Kind: kind, Message: msg, Detail: detail}
}

func (e *ConversionError) Error() string {
	return e.Kind.Code() + ": " + e.Message
}

// Is allows errors.Is(err, &ConversionError{Kind: ...}) to match on kind only.
func (e *ConversionError) Is(target error) bool {
	var t *ConversionError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// PublicError is what may be presented to the end user.
type PublicError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Debug   string `json:"debug,omitempty"`
}

// Public returns user facing view of the error, technical detail is included
// only when debug is requested.
func (e *ConversionError) Public(debug bool) PublicError {
	p := PublicError{Code: e.Kind.Code(), Message: e.Message}
	if debug && e.Kind != ErrorKindServerError {
		p.Debug = e.Detail
	}
	return p
}

// MarshalLogObject implements zapcore.ObjectMarshaler, so callers could log
// complete error with zap.Object().
func (e *ConversionError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("code", e.Kind.Code())
	enc.AddString("message", e.Message)
	if len(e.Detail) > 0 {
		enc.AddString("detail", e.Detail)
	}
	enc.AddInt("input_length", e.InputLen)
	return nil
}

type diagnosticMapping struct {
	re  *regexp.Regexp
	msg string
}

// Order matters - first match wins. Patterns cover both encoding/xml and
// etree diagnostics and the libxml2 phrasing users tend to paste from other
// tools.
var diagnosticMappings = []diagnosticMapping{
	{regexp.MustCompile(`(?i)attribute\s+on\w+`), msgEventHandler},
	{regexp.MustCompile(`(?i)specification\s+mandates\s+value\s+for\s+attribute\s+on`), msgEventHandler},

	{regexp.MustCompile(`(?i)opening\s+and\s+ending\s+tag\s+mismatch`), "SVG has mismatched tags."},
	{regexp.MustCompile(`(?i)end\s+tag\s+name`), "SVG has mismatched tags."},
	{regexp.MustCompile(`(?i)element\s+<[^>]*>\s+closed\s+by`), "SVG has mismatched tags."},
	{regexp.MustCompile(`(?i)unexpected\s+end\s+element`), "SVG has mismatched tags."},
	{regexp.MustCompile(`(?i)invalid\s+xml\s+format`), "SVG has mismatched tags."},

	{regexp.MustCompile(`(?i)invalid\s+character\s+entity`), msgEntities},
	{regexp.MustCompile(`(?i)entity\s+'?\w+'?\s+not\s+defined`), msgEntities},

	{regexp.MustCompile(`(?i)syntax\s+error`), "SVG has syntax errors."},
	{regexp.MustCompile(`(?i)not\s+well-formed`), "SVG is not well-formed."},
	{regexp.MustCompile(`(?i)unclosed\s+token`), "SVG has unclosed tags."},

	{regexp.MustCompile(`(?i)premature\s+end\s+of\s+data`), "SVG is incomplete or corrupted."},
	{regexp.MustCompile(`(?i)unexpected\s+end\s+of\s+data`), "SVG is incomplete or corrupted."},
	{regexp.MustCompile(`(?i)unexpected\s+end\s+tag`), "SVG is incomplete or corrupted."},
	{regexp.MustCompile(`(?i)unexpected\s+eof`), "SVG is incomplete or corrupted."},

	{regexp.MustCompile(`(?i)attribute\s+value\s+not\s+terminated`), "SVG has invalid attribute values."},
	{regexp.MustCompile(`(?i)unquoted\s+or\s+missing\s+attribute\s+value`), "SVG has invalid attribute values."},
	{regexp.MustCompile(`(?i)attribute\s+name\s+without\s+=`), "SVG has invalid attribute values."},
	{regexp.MustCompile(`(?i)required\s+attribute\s+missing`), "SVG is missing required attributes."},
}

// UserMessageForDiagnostic translates raw parser diagnostic into one of a
// small set of human readable phrases.
func UserMessageForDiagnostic(diag string) string {
	for _, m := range diagnosticMappings {
		if m.re.MatchString(diag) {
			return m.msg
		}
	}
	return msgCouldNotParse
}

// valuelessHandler finds on* attribute written without value, encoding/xml
// does not name the attribute in its diagnostic so we look at the source.
var valuelessHandler = regexp.MustCompile(`(?i)<[^>]*\son[a-z][\w-]*\s*(?:/?>|\s[\w:-]+\s*=)`)

// classifyParseError converts parser failure into taxonomy error keeping
// original diagnostic as detail.
func classifyParseError(err error, src string) *ConversionError {
	detail := strings.TrimSpace(err.Error())

	// NOTE: encoding/xml reports only syntax errors, etree adds structural
	// ones (unbalanced or missing elements) as plain errors.
	kind := ErrorKindMalformedXml
	diag := detail
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		kind = ErrorKindXmlParseError
		diag = se.Msg
	}

	msg := UserMessageForDiagnostic(diag)
	if strings.Contains(diag, "attribute name without =") && valuelessHandler.MatchString(src) {
		msg = msgEventHandler
	}
	return newParserError(kind, msg, detail)
}
