package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"svgready/config"
	"svgready/css"
	"svgready/svg"
)

// jsonResults mirrors what web front end expects from conversion endpoint.
type jsonResults struct {
	Normalized  string  `json:"normalized"`
	DataURICSS  string  `json:"data_uri_css"`
	BgSnippet   string  `json:"bg_snippet"`
	MaskSnippet string  `json:"mask_snippet"`
	DataURIB64  string  `json:"data_uri_b64"`
	ShowBase64  bool    `json:"show_base64"`
	Preview     string  `json:"preview"`
	InputKB     float64 `json:"input_kb"`
	OutputKB    float64 `json:"output_kb"`
	Percent     int     `json:"percent"`
}

type jsonResponse struct {
	Error   *svg.PublicError `json:"error"`
	Results *jsonResults     `json:"results"`
}

// sizeChange returns sizes in kilobytes rounded to two decimals and size
// reduction in whole percents (negative when output grew).
func sizeChange(before, after int) (inKB, outKB float64, percent int) {
	kb := func(n int) float64 {
		return math.Round(float64(n)/1024*100) / 100
	}
	if before > 0 {
		percent = int(math.Round(float64(before-after) / float64(before) * 100))
	}
	return kb(before), kb(after), percent
}

func formatPercent(percent int) string {
	if percent >= 0 {
		return fmt.Sprintf("-%d%%", percent)
	}
	return fmt.Sprintf("+%d%%", -percent)
}

// writeResult renders outcome of a single conversion. Exactly one of res and
// cerr is expected to be non nil.
func writeResult(w io.Writer, format config.OutputFormat, out *config.OutputConfig, name string, res *svg.Result, cerr *svg.ConversionError, opts svg.Options) error {
	switch format {
	case config.OutputFormatJson:
		return writeJSON(w, res, cerr, opts)
	case config.OutputFormatCss:
		if cerr != nil {
			_, err := fmt.Fprintf(w, "/* %s */\n", strings.ReplaceAll(name+": "+cerr.Error(), "*/", "* /"))
			return err
		}
		sel, err := newSelector(out.SelectorTemplate)
		if err != nil {
			return err
		}
		rule, err := buildRule(sel, out, newSelectorData(name, 1), res)
		if err != nil {
			return err
		}
		sheet := &css.Stylesheet{}
		sheet.Set(rule)
		_, err = sheet.WriteTo(w)
		return err
	}
	return writeText(w, res, cerr, opts)
}

func writeJSON(w io.Writer, res *svg.Result, cerr *svg.ConversionError, opts svg.Options) error {
	resp := jsonResponse{}
	if cerr != nil {
		pub := cerr.Public(opts.Debug)
		resp.Error = &pub
	} else {
		inKB, outKB, percent := sizeChange(res.SizeBefore, res.SizeAfter)
		resp.Results = &jsonResults{
			Normalized:  res.Normalized,
			DataURICSS:  res.PercentEncodedURI,
			BgSnippet:   res.BackgroundCSS,
			MaskSnippet: res.MaskCSS,
			DataURIB64:  res.Base64URI,
			ShowBase64:  opts.EmitBase64,
			Preview:     res.Preview(),
			InputKB:     inKB,
			OutputKB:    outKB,
			Percent:     percent,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func writeText(w io.Writer, res *svg.Result, cerr *svg.ConversionError, opts svg.Options) error {
	var sb strings.Builder
	if cerr != nil {
		pub := cerr.Public(opts.Debug)
		fmt.Fprintf(&sb, "Error [%s]: %s\n", pub.Code, pub.Message)
		if len(pub.Debug) > 0 {
			fmt.Fprintf(&sb, "Details: %s\n", pub.Debug)
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	inKB, outKB, percent := sizeChange(res.SizeBefore, res.SizeAfter)
	fmt.Fprintf(&sb, "Optimized: %.2f KB -> %.2f KB (%s)\n", inKB, outKB, formatPercent(percent))

	section := func(title, body string) {
		fmt.Fprintf(&sb, "\n%s:\n%s\n", title, body)
	}
	section("Normalized SVG", res.Normalized)
	section("Percent-encoded Data URI", res.PercentEncodedURI)
	section("Background Image CSS", res.BackgroundCSS)
	section("Mask Image CSS", res.MaskCSS)
	if opts.EmitBase64 && len(res.Base64URI) > 0 {
		section("Base64 Data URI", res.Base64URI)
	}
	fmt.Fprintf(&sb, "\nConverted in %s\n", res.Elapsed)

	_, err := io.WriteString(w, sb.String())
	return err
}
