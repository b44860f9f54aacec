package convert

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"svgready/config"
	"svgready/svg"
)

func sampleResult(t *testing.T, opts svg.Options) *svg.Result {
	t.Helper()
	res, err := svg.Convert(`<svg width="24" height="24" viewBox="0 0 24 24">  <circle cx="12" cy="12" r="10"/>  </svg>`, opts)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return res
}

func TestSizeChange(t *testing.T) {
	tests := []struct {
		before, after int
		inKB, outKB   float64
		percent       int
		text          string
	}{
		{2048, 1024, 2, 1, 50, "-50%"},
		{1000, 1000, 0.98, 0.98, 0, "-0%"},
		{100, 120, 0.1, 0.12, -20, "+20%"},
		{0, 10, 0, 0.01, 0, "-0%"},
	}
	for _, tt := range tests {
		inKB, outKB, percent := sizeChange(tt.before, tt.after)
		if inKB != tt.inKB || outKB != tt.outKB || percent != tt.percent {
			t.Errorf("sizeChange(%d, %d) = %v, %v, %v", tt.before, tt.after, inKB, outKB, percent)
		}
		if got := formatPercent(percent); got != tt.text {
			t.Errorf("formatPercent(%d) = %q, want %q", percent, got, tt.text)
		}
	}
}

func TestWriteText(t *testing.T) {
	out := config.OutputConfig{SelectorTemplate: ".icon-{{ .Slug }}"}

	t.Run("result", func(t *testing.T) {
		opts := svg.Options{EmitBase64: true}
		res := sampleResult(t, opts)
		var buf bytes.Buffer
		if err := writeResult(&buf, config.OutputFormatText, &out, "circle.svg", res, nil, opts); err != nil {
			t.Fatalf("writeResult() error = %v", err)
		}
		text := buf.String()
		for _, want := range []string{
			"Optimized: ",
			"\nNormalized SVG:\n" + res.Normalized + "\n",
			"\nPercent-encoded Data URI:\n" + res.PercentEncodedURI + "\n",
			"\nBackground Image CSS:\n" + res.BackgroundCSS + "\n",
			"\nMask Image CSS:\n" + res.MaskCSS + "\n",
			"\nBase64 Data URI:\n" + res.Base64URI + "\n",
			"\nConverted in ",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("output has no %q:\n%s", want, text)
			}
		}
	})

	t.Run("base64 not requested", func(t *testing.T) {
		res := sampleResult(t, svg.Options{})
		var buf bytes.Buffer
		if err := writeResult(&buf, config.OutputFormatText, &out, "circle.svg", res, nil, svg.Options{}); err != nil {
			t.Fatalf("writeResult() error = %v", err)
		}
		if strings.Contains(buf.String(), "Base64") {
			t.Errorf("unexpected base64 section:\n%s", buf.String())
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := svg.Convert(`<svg><use href="#a"/><g id="a"><use href="#a"/></g></svg>`, svg.Options{})
		cerr := err.(*svg.ConversionError)

		var buf bytes.Buffer
		if err := writeResult(&buf, config.OutputFormatText, &out, "loop.svg", nil, cerr, svg.Options{}); err != nil {
			t.Fatalf("writeResult() error = %v", err)
		}
		want := "Error [nesting_too_deep]: SVG contains excessive nesting in <use> elements.\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})
}

func TestWriteJSON(t *testing.T) {
	out := config.OutputConfig{SelectorTemplate: ".icon-{{ .Slug }}"}

	t.Run("result", func(t *testing.T) {
		res := sampleResult(t, svg.Options{})
		var buf bytes.Buffer
		if err := writeResult(&buf, config.OutputFormatJson, &out, "circle.svg", res, nil, svg.Options{}); err != nil {
			t.Fatalf("writeResult() error = %v", err)
		}
		var generic map[string]any
		if err := json.Unmarshal(buf.Bytes(), &generic); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if generic["error"] != nil {
			t.Errorf("error = %v, want null", generic["error"])
		}
		results := generic["results"].(map[string]any)
		if results["preview"] != res.Normalized || results["data_uri_css"] != res.PercentEncodedURI {
			t.Errorf("results = %v", results)
		}
		if results["show_base64"] != false || results["data_uri_b64"] != "" {
			t.Errorf("base64 = %v %v", results["show_base64"], results["data_uri_b64"])
		}
		// markup is not escaped for HTML
		if !strings.Contains(buf.String(), `"<svg xmlns=`) {
			t.Errorf("markup escaped:\n%s", buf.String())
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := svg.Convert(`<svg><rect x="1" x="2"/></svg>`, svg.Options{})
		cerr := err.(*svg.ConversionError)

		for _, debug := range []bool{false, true} {
			var buf bytes.Buffer
			if err := writeResult(&buf, config.OutputFormatJson, &out, "dup.svg", nil, cerr, svg.Options{Debug: debug}); err != nil {
				t.Fatalf("writeResult() error = %v", err)
			}
			var resp jsonResponse
			if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Results != nil || resp.Error == nil || resp.Error.Code != "invalid_attribute" {
				t.Fatalf("response = %s", buf.String())
			}
			if (len(resp.Error.Debug) > 0) != debug {
				t.Errorf("debug = %q with details %v", resp.Error.Debug, debug)
			}
		}
	})
}

func TestWriteCSS(t *testing.T) {
	res := sampleResult(t, svg.Options{})

	tests := []struct {
		name string
		out  config.OutputConfig
		want string
	}{
		{
			name: "background",
			out:  config.OutputConfig{SelectorTemplate: ".icon-{{ .Slug }}", Property: config.CSSPropertyBackground},
			want: ".icon-my-circle {\n  background-image: url(\"" + res.PercentEncodedURI + "\");\n}\n",
		},
		{
			name: "mask with comment",
			out:  config.OutputConfig{SelectorTemplate: "i.{{ .Name | lower }}", Property: config.CSSPropertyMask, Comments: true},
			want: "/* My Circle: " + strconv.Itoa(res.SizeBefore) + " -> " + strconv.Itoa(res.SizeAfter) + " bytes */\n" +
				"i.my circle {\n" +
				"  -webkit-mask-image: url(\"" + res.PercentEncodedURI + "\");\n" +
				"  mask-image: url(\"" + res.PercentEncodedURI + "\");\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeResult(&buf, config.OutputFormatCss, &tt.out, "icons/My Circle.svg", res, nil, svg.Options{}); err != nil {
				t.Fatalf("writeResult() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output =\n%s\nwant\n%s", buf.String(), tt.want)
			}
		})
	}

	t.Run("error", func(t *testing.T) {
		cerr := &svg.ConversionError{Kind: svg.ErrorKindEmpty, Message: "Empty SVG content."}
		var buf bytes.Buffer
		out := config.OutputConfig{SelectorTemplate: ".x"}
		if err := writeResult(&buf, config.OutputFormatCss, &out, "a*/b.svg", nil, cerr, svg.Options{}); err != nil {
			t.Fatalf("writeResult() error = %v", err)
		}
		if buf.String() != "/* a* /b.svg: empty: Empty SVG content. */\n" {
			t.Errorf("output = %q", buf.String())
		}
	})
}
