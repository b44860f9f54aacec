package css

import (
	"bytes"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Properties and functions which make browsers execute code or fetch
// bindings, regardless of value.
var (
	scriptedProperties = map[string]bool{
		"behavior":     true,
		"-moz-binding": true,
	}
	scriptedFunctions = map[string]bool{
		"expression(": true,
		"javascript(": true,
	}
)

// InlineStyle is the result of scanning declaration list from style
// attribute.
type InlineStyle struct {
	Properties []string // lower-cased property names in source order
	URLs       []string // url() references, unwrapped and unquoted
	Functions  []string // lower-cased function tokens including "("
	// Broken is set when some part of the value could not be reliably
	// interpreted: parse errors, bad url tokens or escaped url text.
	Broken bool
}

// ScanInline parses declaration list as found in style attribute.
func ScanInline(style string) InlineStyle {
	var res InlineStyle

	parser := css.NewParser(parse.NewInput(strings.NewReader(style)), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				res.Broken = true
			}
			return res

		case css.DeclarationGrammar:
			res.Properties = append(res.Properties, strings.ToLower(string(data)))
			res.scanValues(parser.Values())

		case css.CustomPropertyGrammar:
			// custom property value is kept as raw text, it may be substituted
			// anywhere with var() so it is treated as plain value
			res.Properties = append(res.Properties, string(data))
			for _, v := range parser.Values() {
				urls, ok := URLs(string(v.Data))
				res.URLs = append(res.URLs, urls...)
				res.Broken = res.Broken || !ok
			}
		}
	}
}

func (s *InlineStyle) scanValues(tokens []css.Token) {
	for _, t := range tokens {
		switch t.TokenType {
		case css.URLToken:
			u, ok := unwrapURL(t.Data)
			if !ok {
				s.Broken = true
				continue
			}
			s.URLs = append(s.URLs, u)
		case css.BadURLToken:
			s.Broken = true
		case css.FunctionToken:
			s.Functions = append(s.Functions, strings.ToLower(string(t.Data)))
		}
	}
}

// Safe reports whether declarations are free of script capable constructs
// and every referenced URL satisfies urlOK.
func (s InlineStyle) Safe(urlOK func(string) bool) bool {
	if s.Broken {
		return false
	}
	for _, p := range s.Properties {
		if scriptedProperties[p] {
			return false
		}
	}
	for _, f := range s.Functions {
		if scriptedFunctions[f] {
			return false
		}
	}
	for _, u := range s.URLs {
		if !urlOK(u) {
			return false
		}
	}
	return true
}

// URLs extracts url() references from any CSS value text (presentation
// attributes like fill="url(#gradient)"). ok is false when some reference
// could not be reliably extracted.
func URLs(value string) (urls []string, ok bool) {
	ok = true
	l := css.NewLexer(parse.NewInput(strings.NewReader(value)))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				ok = false
			}
			return urls, ok
		case css.URLToken:
			u, good := unwrapURL(data)
			if !good {
				ok = false
				continue
			}
			urls = append(urls, u)
		case css.BadURLToken:
			ok = false
		case css.FunctionToken:
			if scriptedFunctions[strings.ToLower(string(data))] {
				ok = false
			}
		}
	}
}

// unwrapURL turns `url( "x" )` token into x. CSS escapes are refused: the
// caller would have to decode them exactly as browser does to judge the
// result.
func unwrapURL(data []byte) (string, bool) {
	if len(data) < 5 || !bytes.EqualFold(data[:4], []byte("url(")) {
		return "", false
	}
	u := bytes.TrimSpace(bytes.TrimSuffix(data[4:], []byte(")")))
	if len(u) >= 2 && (u[0] == '"' || u[0] == '\'') && u[len(u)-1] == u[0] {
		u = u[1 : len(u)-1]
	}
	if bytes.IndexByte(u, '\\') >= 0 {
		return "", false
	}
	return string(u), true
}
