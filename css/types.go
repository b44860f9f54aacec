package css

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
)

// Value represents CSS property value as written.
type Value struct {
	Raw string
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   string           // selector text, e.g. ".icon-home"
	Properties map[string]Value // property name -> value
	Comment    string           // optional comment written before the rule
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string // constructs skipped while parsing
}

// Set adds rule to the stylesheet replacing existing rule with the same
// selector in place.
func (s *Stylesheet) Set(rule Rule) {
	for i := range s.Rules {
		if s.Rules[i].Selector == rule.Selector {
			s.Rules[i] = rule
			return
		}
	}
	s.Rules = append(s.Rules, rule)
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector == selector {
			matches = append(matches, r)
		}
	}
	return matches
}

// SortFunc orders rules by selector using cmp, stable.
func (s *Stylesheet) SortFunc(less func(a, b string) bool) {
	slices.SortStableFunc(s.Rules, func(a, b Rule) int {
		switch {
		case less(a.Selector, b.Selector):
			return -1
		case less(b.Selector, a.Selector):
			return 1
		}
		return 0
	})
}

// WriteTo writes the stylesheet to w in rule order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between rules (except after last)
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	if rule.Comment != "" {
		n, err := fmt.Fprintf(w, "/* %s */\n", strings.ReplaceAll(rule.Comment, "*/", "* /"))
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]Value) (int, error) {
	// Sort property names for deterministic output
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		val := props[name]
		n, err := fmt.Fprintf(w, "  %s: %s;\n", name, val.Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
