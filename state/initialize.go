package state

import (
	"time"

	"svgready/svg"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:     time.Now(),
		Converter: svg.NewConverter(svg.DefaultWhitelist()),
	}
}
