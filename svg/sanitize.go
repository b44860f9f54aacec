package svg

import (
	"maps"
	"strings"

	"github.com/beevik/etree"

	"svgready/css"
)

const xlinkNamespace = "http://www.w3.org/1999/xlink"

// Sanitize walks tree starting at root and removes everything not explicitly
// allowed. It is the only stage which deletes nodes, tree is mutated in place.
func (w *Whitelist) Sanitize(root *etree.Element) {
	w.clean(root, 0)
	bindPrefixes(root)
}

// clean filters children of el in a single pass and recurses into kept
// elements. Root itself is validated by parser.
func (w *Whitelist) clean(el *etree.Element, depth int) {
	var drop []string
	for _, a := range el.Attr {
		if !w.keepAttr(a) {
			drop = append(drop, a.FullKey())
		}
	}
	for _, key := range drop {
		el.RemoveAttr(key)
	}

	for _, child := range w.filterChildren(el, depth+1) {
		w.clean(child, depth+1)
	}
}

// filterChildren rebuilds child list of el keeping only allowed elements
// (not deeper than MaxTreeDepth) and text. CDATA sections become plain text,
// so markup could not be smuggled through them, processing instructions and
// directives are dropped. Kept elements are returned.
func (w *Whitelist) filterChildren(el *etree.Element, depth int) []*etree.Element {
	kept := make([]etree.Token, 0, len(el.Child))
	var elements []*etree.Element
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if t.IsCData() {
				tok = etree.NewText(t.Data)
			}
		case *etree.ProcInst, *etree.Directive:
			continue
		case *etree.Element:
			if depth > MaxTreeDepth || !w.AllowsElement(t.FullTag()) {
				continue
			}
			elements = append(elements, t)
		}
		kept = append(kept, tok)
	}

	// Old index of every kept token is not less than its new position, so
	// removal from the old place inside AddChild is a no-op.
	el.Child = el.Child[:0]
	for _, tok := range kept {
		el.AddChild(tok)
	}
	return elements
}

func (w *Whitelist) keepAttr(a etree.Attr) bool {
	name, local := strings.ToLower(a.FullKey()), strings.ToLower(a.Key)

	if isEventHandler(name) || isEventHandler(local) {
		return false
	}
	if !w.AllowsAttribute(name, local) {
		return false
	}
	if strings.Contains(name, "href") && !IsHrefSafe(a.Value) {
		return false
	}
	if hasDangerousScheme(a.Value) {
		return false
	}
	if name == "style" {
		return css.ScanInline(a.Value).Safe(IsHrefSafe)
	}
	if strings.Contains(strings.ToLower(a.Value), "url(") {
		urls, ok := css.URLs(a.Value)
		if !ok {
			return false
		}
		for _, u := range urls {
			if !IsHrefSafe(u) {
				return false
			}
		}
	}
	return true
}

// bindPrefixes removes attributes which use namespace prefixes never declared
// in scope - output must stay namespace well-formed when embedded as data
// URI. Undeclared xlink prefix is so common in hand written SVG that it gets
// declared on root instead.
func bindPrefixes(root *etree.Element) {
	needXlink := false

	var walk func(el *etree.Element, scope map[string]bool)
	walk = func(el *etree.Element, scope map[string]bool) {
		cloned := false
		for _, a := range el.Attr {
			if a.Space == "xmlns" {
				if !cloned {
					scope, cloned = maps.Clone(scope), true
				}
				scope[a.Key] = true
			}
		}

		var drop []string
		for _, a := range el.Attr {
			switch {
			case a.Space == "", a.Space == "xml", a.Space == "xmlns", scope[a.Space]:
			case a.Space == "xlink":
				needXlink = true
			default:
				drop = append(drop, a.FullKey())
			}
		}
		for _, key := range drop {
			el.RemoveAttr(key)
		}

		for _, child := range el.ChildElements() {
			walk(child, scope)
		}
	}
	walk(root, map[string]bool{})

	if needXlink && root.SelectAttr("xmlns:xlink") == nil {
		root.CreateAttr("xmlns:xlink", xlinkNamespace)
	}
}
