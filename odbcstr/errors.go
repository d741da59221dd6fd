package odbcstr

import (
	"strings"
)

// GrammarError reports a malformed fragment of a connection string: an
// incomplete specification, an empty keyword, an empty value or an
// unterminated braced value.
type GrammarError struct {
	// Keyword is the lower-cased keyword the fragment belongs to, when one
	// could be read.
	Keyword string
	Message string
}

func (e *GrammarError) Error() string { return e.Message }

// SemanticError reports a well-formed pair that is not acceptable: a
// duplicated keyword, a keyword unknown to the allow list, or an attempt to
// set a keyword the driver reserves for itself.
type SemanticError struct {
	Keyword string
	Message string
}

func (e *SemanticError) Error() string { return e.Message }

// ParseError is the aggregate failure returned by Parse. Every problem found
// during a single pass is collected, so a caller can fix the whole string in
// one iteration instead of resubmitting once per error.
type ParseError struct {
	Errors []error
}

func (e *ParseError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "invalid connection string: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error { return e.Errors }
