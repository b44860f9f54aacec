package convert

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"svgready/config"
	"svgready/css"
	"svgready/svg"
)

// selectorData is available to selector template.
type selectorData struct {
	Name  string // source file name without directory and extension
	Slug  string // Name made safe for use in CSS class
	Index int    // 1 based position of the source in naturally sorted batch
}

func newSelectorData(name string, index int) selectorData {
	base := path.Base(filepath.ToSlash(name))
	base = strings.TrimSuffix(base, path.Ext(base))
	return selectorData{Name: base, Slug: slugify(base), Index: index}
}

func slugify(name string) string {
	if s := slug.Make(name); len(s) > 0 {
		return s
	}
	return "icon"
}

type selector struct {
	tmpl *template.Template
}

func newSelector(text string) (*selector, error) {
	tmpl, err := template.New("selector").Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse selector template: %w", err)
	}
	return &selector{tmpl: tmpl}, nil
}

func (s *selector) expand(d selectorData) (string, error) {
	var sb strings.Builder
	if err := s.tmpl.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("unable to expand selector template for %q: %w", d.Name, err)
	}
	sel := strings.TrimSpace(sb.String())
	if len(sel) == 0 {
		return "", fmt.Errorf("selector template produced empty selector for %q", d.Name)
	}
	if strings.ContainsAny(sel, "{};") || strings.Contains(sel, "/*") {
		return "", fmt.Errorf("selector template produced invalid selector %q for %q", sel, d.Name)
	}
	return sel, nil
}

// buildRule makes stylesheet rule carrying conversion result as image.
func buildRule(sel *selector, out *config.OutputConfig, d selectorData, res *svg.Result) (css.Rule, error) {
	name, err := sel.expand(d)
	if err != nil {
		return css.Rule{}, err
	}

	value := css.Value{Raw: `url("` + res.PercentEncodedURI + `")`}
	rule := css.Rule{Selector: name, Properties: make(map[string]css.Value)}
	switch out.Property {
	case config.CSSPropertyMask:
		rule.Properties["mask-image"] = value
		rule.Properties["-webkit-mask-image"] = value
	default:
		rule.Properties["background-image"] = value
	}
	if out.Comments {
		rule.Comment = fmt.Sprintf("%s: %d -> %d bytes", d.Name, res.SizeBefore, res.SizeAfter)
	}
	return rule, nil
}

// converted is successful conversion waiting to become stylesheet rule.
type converted struct {
	name string
	res  *svg.Result
}

// buildStylesheet adds rules for all conversions to sheet. Sources are
// numbered in natural order of their names, rules with the same selector
// replace each other and result is sorted naturally by selector.
func buildStylesheet(sheet *css.Stylesheet, out *config.OutputConfig, items []converted) (*css.Stylesheet, error) {
	sel, err := newSelector(out.SelectorTemplate)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		sheet = &css.Stylesheet{}
	}

	ordered := make([]converted, len(items))
	copy(ordered, items)
	sortConverted(ordered)

	var errs error
	owners := make(map[string]string, len(ordered))
	for i, item := range ordered {
		rule, err := buildRule(sel, out, newSelectorData(item.name, i+1), item.res)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if prev, ok := owners[rule.Selector]; ok {
			errs = multierr.Append(errs, fmt.Errorf("selector %q of %q is already used by %q", rule.Selector, item.name, prev))
			continue
		}
		owners[rule.Selector] = item.name
		sheet.Set(rule)
	}
	sheet.SortFunc(natural.Less)
	return sheet, errs
}

func sortConverted(items []converted) {
	slices.SortStableFunc(items, func(a, b converted) int {
		switch {
		case natural.Less(a.name, b.name):
			return -1
		case natural.Less(b.name, a.name):
			return 1
		}
		return 0
	})
}
