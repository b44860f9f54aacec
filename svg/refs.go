package svg

import (
	"strings"

	"github.com/beevik/etree"
)

// chainLimit marks reference chain which went over the limit, including
// cyclic ones. It is never exceeded by computed values.
const chainLimit = MaxUseDepth + 1

// refGuard measures <use> reference chains. Depth increases only when
// walk follows fragment reference of a <use> element to its target,
// structural nesting keeps depth. Results are memoized per element, so the
// cost is linear in tree size even for fan-out reference graphs which would
// take exponential time to walk naively.
type refGuard struct {
	ids    map[string]*etree.Element
	memo   map[*etree.Element]int
	active map[*etree.Element]bool
}

// checkReferences fails when any <use> chain is longer than MaxUseDepth
// elements (starting <use> included) or references loop back. Limit is
// enforced rather than truncated - silently dropping references could hide
// an attack and would change rendering.
func checkReferences(root *etree.Element) *ConversionError {
	g := &refGuard{
		ids:    indexIDs(root),
		memo:   make(map[*etree.Element]int),
		active: make(map[*etree.Element]bool),
	}
	if g.hops(root)+1 > MaxUseDepth {
		return newError(ErrorKindNestingTooDeep, msgNestingTooDeep)
	}
	return nil
}

// hops returns the longest number of reference hops reachable from element,
// capped at chainLimit.
func (g *refGuard) hops(el *etree.Element) int {
	if v, ok := g.memo[el]; ok {
		return v
	}
	if g.active[el] {
		// reference loop, expansion would never end
		return chainLimit
	}
	g.active[el] = true
	defer delete(g.active, el)

	var v int
	if target := g.target(el); target != nil {
		v = min(1+g.hops(target), chainLimit)
	} else {
		for _, child := range el.ChildElements() {
			if v = max(v, g.hops(child)); v >= chainLimit {
				break
			}
		}
	}
	g.memo[el] = v
	return v
}

// target resolves fragment reference of <use> element.
func (g *refGuard) target(el *etree.Element) *etree.Element {
	if !strings.EqualFold(el.FullTag(), "use") {
		return nil
	}
	href := useHref(el)
	if !strings.HasPrefix(href, "#") {
		return nil
	}
	return g.ids[href[1:]]
}

// useHref prefers plain href over xlink:href, same as browsers do.
func useHref(el *etree.Element) string {
	var xlink string
	for _, a := range el.Attr {
		if a.Key != "href" {
			continue
		}
		if a.Space == "" {
			return a.Value
		}
		if len(xlink) == 0 {
			xlink = a.Value
		}
	}
	return xlink
}

// indexIDs maps id attribute values to elements, first one in document order
// wins.
func indexIDs(root *etree.Element) map[string]*etree.Element {
	ids := make(map[string]*etree.Element)
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if id := el.SelectAttrValue("id", ""); len(id) > 0 {
			if _, exists := ids[id]; !exists {
				ids[id] = el
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return ids
}
