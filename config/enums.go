package config

// Specification of requested output type for single conversion.
// ENUM(text, json, css)
type OutputFormat int

// CSS property generated data URI is assigned to.
// ENUM(background, mask)
type CSSProperty int
