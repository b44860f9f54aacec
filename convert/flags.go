package convert

import (
	"strings"

	cli "github.com/urfave/cli/v3"

	"svgready/config"
)

func conversionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "strip-wh", Usage: "remove width and height attributes from root element"},
		&cli.BoolFlag{Name: "strip-class", Usage: "remove class attribute from root element"},
		&cli.BoolFlag{Name: "base64", Aliases: []string{"b64"}, Usage: "produce base64 data URI in addition to percent-encoded one"},
		&cli.BoolFlag{Name: "details", Usage: "include technical parser diagnostic in error output"},
	}
}

// ConvertFlags returns flags of convert command.
func ConvertFlags() []cli.Flag {
	return append(conversionFlags(),
		&cli.StringFlag{Name: "format", Aliases: []string{"f"},
			Usage: "output `TYPE` (supported types: " + strings.Join(config.OutputFormatNames(), ", ") + "), overrides configuration"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write result to `FILE` instead of STDOUT"},
	)
}

// BatchFlags returns flags of batch command.
func BatchFlags() []cli.Flag {
	return append(conversionFlags(),
		&cli.StringFlag{Name: "property", Aliases: []string{"p"},
			Usage: "CSS `PROPERTY` to carry images (supported: " + strings.Join(config.CSSPropertyNames(), ", ") + "), overrides configuration"},
		&cli.BoolFlag{Name: "merge", Usage: "merge rules into existing destination stylesheet"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace existing destination stylesheet"},
		&cli.StringFlag{Name: "force-zip-cp",
			Usage: "Force `ENCODING` for ALL non UTF-8 file names in processed archives (see IANA.org for character set names)"},
	)
}
