package svg

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

const byteOrderMark = "\ufeff"

var svgStartRe = regexp.MustCompile(`(?i)^<\s*svg\b`)

// prepareSource strips BOM and surrounding whitespace and performs cheap
// checks which do not require parser.
func prepareSource(s string) (string, *ConversionError) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), byteOrderMark))
	if len(s) == 0 {
		return "", newError(ErrorKindEmpty, msgEmpty)
	}
	if !svgStartRe.MatchString(s) {
		return "", newError(ErrorKindInvalidRoot, msgMustStartWithSVG)
	}
	return s, nil
}

// prescan lexes the source once looking for constructs encoding/xml would
// either silently accept or report without useful context: DTD declarations,
// repeated attributes and event handlers without value. It is linear in
// input size and never builds a tree. Lexer errors end the scan - full
// parser is responsible for diagnosing broken markup.
func prescan(src string) *ConversionError {
	l := xml.NewLexer(parse.NewInput(strings.NewReader(src)))

	seen := make(map[string]struct{})
	inPI := false // pseudo attributes of processing instruction are not checked
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			return nil
		case xml.DOCTYPEToken:
			decl := bytes.ToUpper(data)
			if bytes.Contains(decl, []byte("<!ENTITY")) || bytes.Contains(decl, []byte("SYSTEM")) || bytes.Contains(decl, []byte("PUBLIC")) {
				return newParserError(ErrorKindXmlParseError, msgCouldNotParse, "DTD entity declarations are not allowed")
			}
		case xml.StartTagToken:
			clear(seen)
			inPI = false
		case xml.StartTagPIToken:
			inPI = true
		case xml.StartTagClosePIToken:
			inPI = false
		case xml.AttributeToken:
			if inPI {
				continue
			}
			name := string(l.Text())
			if _, dup := seen[name]; dup {
				return newParserError(ErrorKindInvalidAttribute, msgDuplicateAttr, "attribute '"+name+"' redefined")
			}
			seen[name] = struct{}{}
			if len(l.AttrVal()) == 0 && isEventHandler(strings.ToLower(name)) {
				return newParserError(ErrorKindInvalidAttribute, msgEventHandler, "specification mandates value for attribute "+name)
			}
		}
	}
}

// parseDocument is the XML parser adapter. Only five predefined XML entities
// are ever resolved, DTDs are neither loaded nor interpreted and nothing
// outside of the passed string is accessed.
func parseDocument(src string) (*etree.Document, *ConversionError) {
	if cerr := prescan(src); cerr != nil {
		return nil, cerr
	}

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		Permissive:    false,
		PreserveCData: true,
		ValidateInput: true,
	}
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText: true,
	}
	if err := doc.ReadFromString(src); err != nil {
		return nil, classifyParseError(err, src)
	}

	root := doc.Root()
	if root == nil {
		return nil, newParserError(ErrorKindMalformedXml, msgNoRoot, "document has no root element")
	}
	for _, t := range doc.Child {
		switch v := t.(type) {
		case *etree.Element:
			if v != root {
				return nil, newParserError(ErrorKindMalformedXml, msgCouldNotParse, "extra content at the end of the document")
			}
		case *etree.CharData:
			if !v.IsWhitespace() {
				return nil, newParserError(ErrorKindMalformedXml, msgCouldNotParse, "extra content at the end of the document")
			}
		}
	}
	if !strings.EqualFold(root.FullTag(), "svg") {
		return nil, newError(ErrorKindInvalidRoot, msgRootMustBeSVG)
	}
	return doc, nil
}

// serialize writes root element only - declarations, directives and
// anything else at document level never leave the parser.
func serialize(doc *etree.Document) (string, error) {
	out := etree.NewDocument()
	out.WriteSettings = doc.WriteSettings
	out.SetRoot(doc.Root().Copy())
	return out.WriteToString()
}
