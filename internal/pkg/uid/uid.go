// Package uid generates identifiers for requests and stored records.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
