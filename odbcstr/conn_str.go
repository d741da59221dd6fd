// Package odbcstr implements the ODBC connection string grammar described in
// MS-ODBCSTR: semicolon separated Key=Value pairs with case-insensitive keys
// and optionally braced values. Inside a braced value "}}" unescapes to "}"
// and "{{" to "{"; unbraced values end at the next semicolon and are
// right-trimmed.
//
// Parse validates as it tokenizes and reports every problem it finds in one
// aggregate error. Build is the inverse operation and emits a deterministic,
// canonically ordered string.
package odbcstr

import (
	"fmt"
	"strings"
	"unicode"
)

// Parameters is the result of tokenizing a connection string: lower-cased,
// trimmed keyword to raw value. Duplicate keywords are an error, never a
// silent overwrite; the first occurrence is the one retained.
type Parameters map[string]string

// CanonicalParameters maps canonical parameter names, as resolved by an
// AllowList, to values. Reserved names never appear in it.
type CanonicalParameters map[string]string

// Parse tokenizes an ODBC connection string without keyword validation.
//
// On failure the returned error is a *ParseError carrying every problem
// found; the returned Parameters still holds the pairs that parsed cleanly,
// with the first occurrence of any duplicated keyword.
func Parse(connString string) (Parameters, error) {
	return parse(connString, nil)
}

// ParseWithAllowList tokenizes an ODBC connection string and additionally
// validates every keyword against list: keywords that do not resolve to a
// canonical name and keywords that resolve to a reserved one are reported in
// the aggregate error alongside any grammar problems.
func ParseWithAllowList(connString string, list *AllowList) (Parameters, error) {
	return parse(connString, list)
}

func parse(connString string, list *AllowList) (Parameters, error) {
	params := Parameters{}
	s := strings.TrimSpace(connString)
	if s == "" {
		return params, nil
	}

	var errs []error
	var order []string // first-seen keyword order, for the allow-list pass
	n := len(s)
	pos := 0

	for pos < n {
		// Separators between pairs: whitespace and stray semicolons.
		for pos < n && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == ';') {
			pos++
		}
		if pos >= n {
			break
		}

		keyStart := pos
		for pos < n && s[pos] != '=' && s[pos] != ';' {
			pos++
		}
		if pos >= n || s[pos] != '=' {
			fragment := strings.TrimSpace(s[keyStart:pos])
			if fragment != "" {
				errs = append(errs, &GrammarError{
					Keyword: strings.ToLower(fragment),
					Message: fmt.Sprintf("Incomplete specification: keyword '%s' has no value (missing '=')", fragment),
				})
			}
			pos = resync(s, pos)
			continue
		}

		key := strings.ToLower(strings.TrimSpace(s[keyStart:pos]))
		if key == "" {
			errs = append(errs, &GrammarError{Message: "Empty keyword found (format: =value)"})
			pos = resync(s, pos+1)
			continue
		}
		pos++ // consume '='

		valueStart := pos
		value, next, verr := parseValue(s, pos)
		if verr != nil {
			errs = append(errs, &GrammarError{
				Keyword: key,
				Message: fmt.Sprintf("Error parsing value for keyword '%s': %v", key, verr),
			})
			// Scanning resumes at the first semicolon inside the failed
			// value. The keyword stores no value and does not count as
			// seen for duplicate detection.
			pos = resync(s, valueStart)
			continue
		}
		pos = next

		if value == "" {
			errs = append(errs, &GrammarError{
				Keyword: key,
				Message: fmt.Sprintf("Empty value for keyword '%s' (all connection string parameters must have non-empty values)", key),
			})
		}

		if _, seen := params[key]; seen {
			errs = append(errs, &SemanticError{
				Keyword: key,
				Message: fmt.Sprintf("Duplicate keyword '%s' found", key),
			})
		} else {
			params[key] = value
			order = append(order, key)
		}
	}

	if list != nil {
		errs = append(errs, checkAllowList(order, list)...)
	}

	if len(errs) > 0 {
		return params, &ParseError{Errors: errs}
	}
	return params, nil
}

// checkAllowList reports reserved keywords first, then unknown ones, each
// group in first-seen order.
func checkAllowList(keys []string, list *AllowList) []error {
	var reserved, unknown []error
	for _, key := range keys {
		canonical, ok := list.NormalizeKey(key)
		switch {
		case !ok:
			unknown = append(unknown, &SemanticError{
				Keyword: key,
				Message: fmt.Sprintf("Unknown keyword '%s' is not recognized", key),
			})
		case list.IsReserved(canonical):
			reserved = append(reserved, &SemanticError{
				Keyword: key,
				Message: fmt.Sprintf("Reserved keyword '%s' is controlled by the driver and cannot be specified by the user", key),
			})
		}
	}
	return append(reserved, unknown...)
}

// resync skips to the semicolon that starts the next pair so one malformed
// fragment does not hide problems in the rest of the string.
func resync(s string, pos int) int {
	for pos < len(s) && s[pos] != ';' {
		pos++
	}
	return pos
}

func parseValue(s string, pos int) (string, int, error) {
	n := len(s)
	for pos < n && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	if pos >= n {
		return "", pos, nil
	}
	if s[pos] == '{' {
		return parseBracedValue(s, pos)
	}
	return parseSimpleValue(s, pos)
}

// parseSimpleValue reads up to the next semicolon or end of input. Simple
// values cannot contain semicolons and lose trailing whitespace.
func parseSimpleValue(s string, pos int) (string, int, error) {
	start := pos
	for pos < len(s) && s[pos] != ';' {
		pos++
	}
	return strings.TrimRightFunc(s[start:pos], unicode.IsSpace), pos, nil
}

// parseBracedValue reads a value wrapped in braces, which may contain
// semicolons, equal signs and whitespace. "}}" is a literal "}", "{{" a
// literal "{", and a lone "{" is kept as is; the first unescaped "}"
// terminates the value.
func parseBracedValue(s string, pos int) (string, int, error) {
	n := len(s)
	braceStart := pos
	pos++ // consume '{'

	var value strings.Builder
	for pos < n {
		switch s[pos] {
		case '}':
			if pos+1 < n && s[pos+1] == '}' {
				value.WriteByte('}')
				pos += 2
				continue
			}
			return value.String(), pos + 1, nil
		case '{':
			if pos+1 < n && s[pos+1] == '{' {
				value.WriteByte('{')
				pos += 2
				continue
			}
			value.WriteByte('{')
			pos++
		default:
			value.WriteByte(s[pos])
			pos++
		}
	}
	return "", pos, fmt.Errorf("Unclosed braced value starting at position %d", braceStart)
}
