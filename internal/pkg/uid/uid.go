// Package uid generates identifiers for correlation ids and Message-ID headers.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
