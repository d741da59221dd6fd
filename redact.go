package mssqlodbc

import "regexp"

// pwdPattern matches a password pair in either accepted spelling with a
// braced or simple value.
var pwdPattern = regexp.MustCompile(`(?i)(password|pwd)\s*=\s*(\{(?:[^}]|\}\})*\}|[^;]*)`)

// Redact replaces password values in a connection string so it can be
// logged. Everything else is preserved byte for byte.
func Redact(connString string) string {
	return pwdPattern.ReplaceAllString(connString, "$1=*****")
}
