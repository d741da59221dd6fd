package odbcstr

import (
	"sort"
	"strings"
)

// Defaults injected by the Builder for the reserved parameters.
const (
	DefaultDriverName = "ODBC Driver 18 for SQL Server"
	DefaultAppName    = "go-mssqlodbc"
)

// A Builder accumulates canonical parameters and renders them as the final
// ODBC connection string. The zero value is not usable; call NewBuilder.
type Builder struct {
	driverName string
	appName    string
	params     CanonicalParameters
}

// NewBuilder returns a Builder that emits the given driver and application
// identification. An empty appName omits the APP parameter.
func NewBuilder(driverName, appName string) *Builder {
	return &Builder{
		driverName: driverName,
		appName:    appName,
		params:     CanonicalParameters{},
	}
}

// SetParam records a parameter under its canonical name, replacing any
// earlier value. Reserved names are ignored; the Builder owns those.
func (b *Builder) SetParam(canonicalName, value string) {
	if canonicalName == Driver || canonicalName == AppName {
		return
	}
	b.params[canonicalName] = value
}

// HasParam reports whether a canonical parameter has been set.
func (b *Builder) HasParam(canonicalName string) bool {
	_, ok := b.params[canonicalName]
	return ok
}

// String renders the accumulated parameters as an ODBC connection string.
func (b *Builder) String() string {
	return Build(b.params, b.driverName, b.appName)
}

// Build assembles an ODBC connection string from canonical parameters. The
// driver identification comes first so the native driver manager resolves it
// before any other setting, then the application name, then the remaining
// parameters in sorted order so equal inputs build equal strings. Values the
// native parser could misread are brace-escaped.
func Build(params CanonicalParameters, driverName, appName string) string {
	var sb strings.Builder
	writePair(&sb, Driver, driverName)
	if appName != "" {
		writePair(&sb, AppName, appName)
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		writePair(&sb, key, params[key])
	}
	return sb.String()
}

func writePair(sb *strings.Builder, key, value string) {
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(escapeValue(value))
	sb.WriteByte(';')
}

// escapeValue wraps a value in braces when it contains characters the
// grammar gives meaning to, doubling both brace characters so that parsing
// the built string yields the original value back.
func escapeValue(value string) string {
	if !strings.ContainsAny(value, ";{}= \t") {
		return value
	}
	value = strings.ReplaceAll(value, "}", "}}")
	value = strings.ReplaceAll(value, "{", "{{")
	return "{" + value + "}"
}
