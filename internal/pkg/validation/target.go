package validation

// Target names the slice of a request that is validated.
type Target string

const (
	// TargetBody is the JSON request body.
	TargetBody Target = "body"
	// TargetQuery is the URL query string.
	TargetQuery Target = "query"
	// TargetHeaders is the request header set, keyed by lower-cased name.
	TargetHeaders Target = "headers"
)

// String returns the string representation of the target.
func (t Target) String() string {
	return string(t)
}

// Valid reports whether t is one of the known targets.
func (t Target) Valid() bool {
	switch t {
	case TargetBody, TargetQuery, TargetHeaders:
		return true
	default:
		return false
	}
}
