package svg

import (
	"slices"
	"strings"
)

// Whitelist is an immutable allow-list of element and attribute names. All
// names are kept lower-cased, lookups are case-insensitive.
type Whitelist struct {
	elements   map[string]struct{}
	attributes map[string]struct{}
}

// NewWhitelist builds whitelist from provided names.
func NewWhitelist(elements, attributes []string) *Whitelist {
	w := &Whitelist{
		elements:   make(map[string]struct{}, len(elements)),
		attributes: make(map[string]struct{}, len(attributes)),
	}
	for _, e := range elements {
		w.elements[strings.ToLower(e)] = struct{}{}
	}
	for _, a := range attributes {
		w.attributes[strings.ToLower(a)] = struct{}{}
	}
	return w
}

// Core SVG set. Anything else - including script, foreignObject, iframe,
// object, embed, link and style - is removed with its content.
var allowedElements = []string{
	"svg", "g", "path", "rect", "circle", "polygon", "line", "polyline", "ellipse",
	"defs", "use", "text", "tspan", "image", "clipPath", "mask", "pattern",
	"linearGradient", "radialGradient", "stop", "title", "desc", "a", "switch",
	"symbol", "view",
}

var allowedAttributes = []string{
	// common
	"id", "class", "style", "title", "lang", "xml:space",
	// geometry and presentation
	"x", "y", "width", "height", "viewBox", "preserveAspectRatio",
	"fill", "fill-opacity", "fill-rule",
	"stroke", "stroke-width", "stroke-opacity", "stroke-linecap", "stroke-linejoin",
	"transform", "opacity", "display", "visibility",
	// text
	"font-family", "font-size", "font-weight", "text-anchor",
	// links
	"href", "xlink:href", "target",
	// shapes and gradients
	"cx", "cy", "r", "rx", "ry", "x1", "y1", "x2", "y2", "points", "d",
	"offset", "stop-color", "stop-opacity",
	// namespaces
	"xmlns", "xmlns:xlink",
}

var defaultWhitelist = NewWhitelist(allowedElements, allowedAttributes)

// DefaultWhitelist returns process wide whitelist. It is built once and must
// not be modified.
func DefaultWhitelist() *Whitelist {
	return defaultWhitelist
}

// AllowsElement reports whether element with given (possibly prefixed) name
// may be kept.
func (w *Whitelist) AllowsElement(name string) bool {
	_, ok := w.elements[strings.ToLower(name)]
	return ok
}

// AllowsAttribute checks full attribute name and its namespace local part,
// aria-* and data-* attributes are always allowed.
func (w *Whitelist) AllowsAttribute(full, local string) bool {
	full, local = strings.ToLower(full), strings.ToLower(local)
	if _, ok := w.attributes[full]; ok {
		return true
	}
	if _, ok := w.attributes[local]; ok {
		return true
	}
	return strings.HasPrefix(full, "aria-") || strings.HasPrefix(full, "data-")
}

// Elements returns sorted list of allowed element names.
func (w *Whitelist) Elements() []string {
	return sortedKeys(w.elements)
}

// Attributes returns sorted list of allowed attribute names.
func (w *Whitelist) Attributes() []string {
	return sortedKeys(w.attributes)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
