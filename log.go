package mssqlodbc

import (
	"context"
	"os"

	"github.com/microsoft/go-mssqlodbc/odbcstr"
)

// Logger is an interface you can implement to have the connection pipeline
// log detailed information about its operations.
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ContextLogger is the logging interface used throughout the package. The
// category is one of the odbcstr.Log flags enabled through the "Log"
// connection string parameter or the MSSQLODBC_LOG environment variable.
type ContextLogger interface {
	Log(ctx context.Context, category odbcstr.Log, msg string)
}

// optionalLogger adapts a Logger to the ContextLogger interface.
type optionalLogger struct {
	logger Logger
}

func (o optionalLogger) Log(_ context.Context, _ odbcstr.Log, msg string) {
	o.logger.Println(msg)
}

// nullLogger discards all messages.
type nullLogger struct{}

func (n nullLogger) Log(_ context.Context, _ odbcstr.Log, _ string) {
}

// readLogFlags resolves the diagnostic category bitmask. The "Log"
// connection string parameter takes precedence over the MSSQLODBC_LOG
// environment variable.
func readLogFlags(params odbcstr.CanonicalParameters) (odbcstr.Log, error) {
	value, ok := params[odbcstr.LogParam]
	if !ok {
		value = os.Getenv("MSSQLODBC_LOG")
	}
	if value == "" {
		return 0, nil
	}
	return odbcstr.ParseLog(value)
}
