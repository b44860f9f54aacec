package svg

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestErrorKindCodes(t *testing.T) {
	want := []string{
		"too_large", "empty", "invalid_root", "malformed_xml",
		"invalid_attribute", "nesting_too_deep", "xml_parse_error", "server_error",
	}
	names := ErrorKindNames()
	if len(names) != len(want) {
		t.Fatalf("ErrorKindNames() = %v", names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("name %d = %q, want %q", i, names[i], name)
		}
		kind, err := ParseErrorKind(name)
		if err != nil {
			t.Errorf("ParseErrorKind(%q) error = %v", name, err)
			continue
		}
		if kind.Code() != name {
			t.Errorf("Code() = %q, want %q", kind.Code(), name)
		}
	}
	if _, err := ParseErrorKind("nope"); !errors.Is(err, ErrInvalidErrorKind) {
		t.Errorf("ParseErrorKind(nope) error = %v", err)
	}
	if ErrorKindServerError.InputRelated() {
		t.Error("server error reported as input related")
	}
	if !ErrorKindTooLarge.InputRelated() {
		t.Error("too_large not reported as input related")
	}
}

func TestConversionErrorViews(t *testing.T) {
	cerr := &ConversionError{
		Kind:     ErrorKindXmlParseError,
		Message:  "SVG has mismatched tags.",
		Detail:   "XML syntax error on line 1: element <g> closed by </svg>",
		InputLen: 42,
	}

	if got := cerr.Error(); got != "xml_parse_error: SVG has mismatched tags." {
		t.Errorf("Error() = %q", got)
	}

	var err error = fmt.Errorf("wrapped: %w", cerr)
	if !errors.Is(err, &ConversionError{Kind: ErrorKindXmlParseError}) {
		t.Error("errors.Is does not match on kind")
	}
	if errors.Is(err, &ConversionError{Kind: ErrorKindEmpty}) {
		t.Error("errors.Is matches different kind")
	}

	quiet, err2 := json.Marshal(cerr.Public(false))
	if err2 != nil {
		t.Fatal(err2)
	}
	if string(quiet) != `{"code":"xml_parse_error","message":"SVG has mismatched tags."}` {
		t.Errorf("Public(false) = %s", quiet)
	}
	if pub := cerr.Public(true); pub.Debug != cerr.Detail {
		t.Errorf("Public(true).Debug = %q", pub.Debug)
	}

	enc := zapcore.NewMapObjectEncoder()
	if err := cerr.MarshalLogObject(enc); err != nil {
		t.Fatal(err)
	}
	if enc.Fields["code"] != "xml_parse_error" || enc.Fields["input_length"] != 42 || enc.Fields["detail"] != cerr.Detail {
		t.Errorf("logged fields = %v", enc.Fields)
	}
}

func TestUserMessageForDiagnostic(t *testing.T) {
	tests := []struct {
		diag string
		want string
	}{
		{"Specification mandates value for attribute onload", msgEventHandler},
		{"Opening and ending tag mismatch: g line 1 and svg", "SVG has mismatched tags."},
		{"element <g> closed by </svg>", "SVG has mismatched tags."},
		{"unexpected end element </g>", "SVG has mismatched tags."},
		{"etree: invalid XML format", "SVG has mismatched tags."},
		{"invalid character entity &xxe;", msgEntities},
		{"Entity 'nbsp' not defined", msgEntities},
		{"syntax error", "SVG has syntax errors."},
		{"Document is not well-formed", "SVG is not well-formed."},
		{"unexpected EOF", "SVG is incomplete or corrupted."},
		{"Premature end of data in tag svg", "SVG is incomplete or corrupted."},
		{"unquoted or missing attribute value in element", "SVG has invalid attribute values."},
		{"attribute name without = in element", "SVG has invalid attribute values."},
		{"something else entirely", msgCouldNotParse},
	}

	for _, tt := range tests {
		if got := UserMessageForDiagnostic(tt.diag); got != tt.want {
			t.Errorf("UserMessageForDiagnostic(%q) = %q, want %q", tt.diag, got, tt.want)
		}
	}
}

func TestClassifyParseErrorValuelessHandler(t *testing.T) {
	src := `<svg><rect onclick x="1"/></svg>`
	_, cerr := parseDocument(src)
	if cerr == nil {
		t.Fatal("parseDocument() succeeded")
	}
	if cerr.Kind != ErrorKindInvalidAttribute || cerr.Message != msgEventHandler {
		t.Errorf("got %s %q, want invalid_attribute with event handler message", cerr.Kind, cerr.Message)
	}
}
