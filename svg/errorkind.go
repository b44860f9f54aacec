package svg

// Stable identifiers of conversion failures, suitable as localization keys.
// server_error is reserved for internal faults recovered at the conversion
// boundary and never describes input.
// ENUM(too_large, empty, invalid_root, malformed_xml, invalid_attribute, nesting_too_deep, xml_parse_error, server_error)
type ErrorKind int

// Code returns stable error code for the kind.
func (x ErrorKind) Code() string {
	return x.String()
}

// InputRelated reports whether failure was caused by the submitted markup
// itself (as opposed to an internal fault).
func (x ErrorKind) InputRelated() bool {
	return x.IsValid() && x != ErrorKindServerError
}

// ParserClass reports whether failure was produced while establishing that
// the input is well-formed SVG: root checks and XML parsing.
func (x ErrorKind) ParserClass() bool {
	switch x {
	case ErrorKindInvalidRoot, ErrorKindMalformedXml, ErrorKindXmlParseError, ErrorKindInvalidAttribute:
		return true
	}
	return false
}
