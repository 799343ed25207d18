package entitlement

import "fmt"

// ParseError reports an input that did not match the selected grammar
// under the fail-hard policy. It identifies the mode that was attempted;
// callers may retry under lax mode if appropriate.
type ParseError struct {
	Mode  string // "strict" or "lax"
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entitlement: input did not match the %s grammar: %q", e.Mode, e.Input)
}
