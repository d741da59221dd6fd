package mssqlodbc

import (
	"context"
	"fmt"
	"testing"

	"github.com/microsoft/go-mssqlodbc/odbcstr"
)

type testLogger struct {
	lines []string
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *testLogger) Println(v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprint(v...))
}

func TestOptionalLogger(t *testing.T) {
	inner := &testLogger{}
	var logger ContextLogger = optionalLogger{logger: inner}
	logger.Log(context.Background(), odbcstr.LogMessages, "hello")
	if len(inner.lines) != 1 || inner.lines[0] != "hello" {
		t.Errorf("optionalLogger recorded %v", inner.lines)
	}
}

func TestSetLogger(t *testing.T) {
	t.Setenv("MSSQLODBC_LOG", "")
	inner := &testLogger{}
	c, err := NewConnector("server=myhost;log=4")
	if err != nil {
		t.Fatalf("NewConnector failed: %v", err)
	}
	c.SetLogger(inner)

	if _, _, err = c.DriverConnectionString(context.Background()); err != nil {
		t.Fatalf("DriverConnectionString failed: %v", err)
	}
	if len(inner.lines) != 1 {
		t.Fatalf("logger recorded %v", inner.lines)
	}
}

func TestReadLogFlags(t *testing.T) {
	t.Setenv("MSSQLODBC_LOG", "")
	flags, err := readLogFlags(odbcstr.CanonicalParameters{odbcstr.LogParam: "3"})
	if err != nil || flags != 3 {
		t.Errorf("got (%v, %v), want (3, nil)", flags, err)
	}

	flags, err = readLogFlags(odbcstr.CanonicalParameters{})
	if err != nil || flags != 0 {
		t.Errorf("got (%v, %v), want (0, nil)", flags, err)
	}

	t.Setenv("MSSQLODBC_LOG", "8")
	flags, err = readLogFlags(odbcstr.CanonicalParameters{})
	if err != nil || flags != 8 {
		t.Errorf("got (%v, %v), want (8, nil)", flags, err)
	}

	// the connection string parameter wins over the environment
	flags, err = readLogFlags(odbcstr.CanonicalParameters{odbcstr.LogParam: "1"})
	if err != nil || flags != 1 {
		t.Errorf("got (%v, %v), want (1, nil)", flags, err)
	}

	if _, err = readLogFlags(odbcstr.CanonicalParameters{odbcstr.LogParam: "banana"}); err == nil {
		t.Error("Error expected for a non-numeric log value")
	}
}
