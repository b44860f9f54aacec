package svg

const (
	// MaxInputSize is hard ceiling on raw input length in bytes. Anything
	// larger is rejected before parsing.
	MaxInputSize = 250_000

	// MaxTreeDepth limits element nesting, deeper elements are dropped by
	// sanitizer.
	MaxTreeDepth = 100

	// MaxUseDepth limits number of <use> reference hops on any path.
	MaxUseDepth = 15
)

// checkSize is the first pipeline stage, it is O(1) and must run before any
// other processing of the input.
func checkSize(raw string) *ConversionError {
	if len(raw) > MaxInputSize {
		return newError(ErrorKindTooLarge, msgTooLarge)
	}
	return nil
}
