package svg

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
)

// Options control optional steps of conversion.
type Options struct {
	StripRootWidthHeight bool // remove width and height from root element
	StripRootClass       bool // remove class from root element
	EmitBase64           bool // produce base64 data URI in addition to percent-encoded one
	Debug                bool // caller intends to show technical error detail
}

// Result is produced once per successful conversion and never modified
// afterwards.
type Result struct {
	Normalized        string
	PercentEncodedURI string
	Base64URI         string // empty unless requested
	BackgroundCSS     string
	MaskCSS           string
	SizeBefore        int // raw input, bytes
	SizeAfter         int // normalized markup, bytes
	Elapsed           time.Duration
}

// Preview returns markup safe to be embedded into HTML page as is. It is the
// same sanitized markup encodings were made from.
func (r *Result) Preview() string {
	return r.Normalized
}

// Converter runs conversion pipeline using particular whitelist. It holds no
// mutable state and may be used concurrently.
type Converter struct {
	wl *Whitelist
	// parse is the parser adapter, replaceable in tests to observe pipeline
	parse func(src string) (*etree.Document, *ConversionError)
}

// NewConverter returns converter using wl, nil means default whitelist.
func NewConverter(wl *Whitelist) *Converter {
	if wl == nil {
		wl = DefaultWhitelist()
	}
	return &Converter{wl: wl, parse: parseDocument}
}

var defaultConverter = NewConverter(nil)

// Convert runs raw input through the complete pipeline using default
// whitelist. Returned error, if any, is always *ConversionError.
func Convert(raw string, opts Options) (*Result, error) {
	return defaultConverter.Convert(raw, opts)
}

// Convert runs raw input through the complete pipeline. Any stage failing
// stops processing, no partial result is ever returned. Returned error, if
// any, is always *ConversionError.
func (c *Converter) Convert(raw string, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, &ConversionError{
				Kind:     ErrorKindServerError,
				Message:  msgServerError,
				Detail:   fmt.Sprintf("%v", r),
				InputLen: len(raw),
			}
		}
	}()

	res, cerr := c.run(raw, opts)
	if cerr != nil {
		cerr.InputLen = len(raw)
		return nil, cerr
	}
	return res, nil
}

func (c *Converter) run(raw string, opts Options) (*Result, *ConversionError) {
	start := time.Now()

	if cerr := checkSize(raw); cerr != nil {
		return nil, cerr
	}

	src, cerr := prepareSource(Prefilter(raw))
	if cerr != nil {
		return nil, cerr
	}

	doc, cerr := c.parse(src)
	if cerr != nil {
		return nil, cerr
	}

	root := doc.Root()
	c.wl.Sanitize(root)

	if cerr := checkReferences(root); cerr != nil {
		return nil, cerr
	}

	sanitized, err := serialize(doc)
	if err != nil {
		return nil, newParserError(ErrorKindServerError, msgServerError, err.Error())
	}

	normalized := Normalize(sanitized, opts)
	uri := PercentEncode(normalized)

	res := &Result{
		Normalized:        normalized,
		PercentEncodedURI: uri,
		BackgroundCSS:     BackgroundCSS(uri),
		MaskCSS:           MaskCSS(uri),
		SizeBefore:        len(raw),
		SizeAfter:         len(normalized),
	}
	if opts.EmitBase64 {
		res.Base64URI = Base64Encode(normalized)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}
