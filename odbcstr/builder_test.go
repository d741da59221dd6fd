package odbcstr

import (
	"testing"
)

func TestBuildOrdering(t *testing.T) {
	params := CanonicalParameters{
		Server:   "myhost",
		Database: "testdb",
		UserID:   "tester",
	}
	got := Build(params, DefaultDriverName, DefaultAppName)
	want := "Driver={ODBC Driver 18 for SQL Server};APP=go-mssqlodbc;Database=testdb;Server=myhost;Uid=tester;"
	if got != want {
		t.Errorf("Build returned\n%q\nwant\n%q", got, want)
	}
}

func TestBuildOmitsEmptyAppName(t *testing.T) {
	got := Build(CanonicalParameters{Server: "myhost"}, "My Driver", "")
	want := "Driver={My Driver};Server=myhost;"
	if got != want {
		t.Errorf("Build returned %q, want %q", got, want)
	}
}

func TestBuildEscaping(t *testing.T) {
	type testStruct struct {
		value    string
		rendered string
	}
	values := []testStruct{
		{"plain", "plain"},
		{"tcp:myhost,1433", "tcp:myhost,1433"},
		{"p;wd", "{p;wd}"},
		{"a=b", "{a=b}"},
		{"with space", "{with space}"},
		{"p}w{d", "{p}}w{{d}"},
		{"{weird", "{{{weird}"},
		{"}", "{}}}"},
	}
	for _, ts := range values {
		got := Build(CanonicalParameters{Password: ts.value}, "d", "")
		want := "Driver=d;Pwd=" + ts.rendered + ";"
		if got != want {
			t.Errorf("Build with value %q returned %q, want %q", ts.value, got, want)
		}
	}
}

func TestBuildParseRoundTrip(t *testing.T) {
	values := []string{
		"plain",
		"p;w=d",
		"p}w{d",
		"a{{b",
		"{",
		"}",
		" leading",
		"trailing ",
		"tab\tvalue",
		"  both  ",
	}
	for _, value := range values {
		built := Build(CanonicalParameters{Password: value}, DefaultDriverName, DefaultAppName)
		parsed, err := Parse(built)
		if err != nil {
			t.Errorf("Built string %q failed to parse with error %v", built, err)
			continue
		}
		if parsed["pwd"] != value {
			t.Errorf("Value %q round-tripped to %q via %q", value, parsed["pwd"], built)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	params := CanonicalParameters{
		Server:            "myhost",
		Database:          "testdb",
		UserID:            "tester",
		Password:          "secret",
		Encrypt:           "yes",
		ConnectionTimeout: "30",
	}
	first := Build(params, DefaultDriverName, DefaultAppName)
	for i := 0; i < 20; i++ {
		if got := Build(params, DefaultDriverName, DefaultAppName); got != first {
			t.Fatalf("Build is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestBuilderSetParam(t *testing.T) {
	b := NewBuilder(DefaultDriverName, DefaultAppName)
	b.SetParam(Server, "myhost")
	b.SetParam(Password, "old")
	b.SetParam(Password, "new")
	b.SetParam(Driver, "hijacked")
	b.SetParam(AppName, "hijacked")

	if !b.HasParam(Server) {
		t.Error("HasParam(Server) = false after SetParam")
	}
	if b.HasParam(Database) {
		t.Error("HasParam(Database) = true without SetParam")
	}

	got := b.String()
	want := "Driver={ODBC Driver 18 for SQL Server};APP=go-mssqlodbc;Pwd=new;Server=myhost;"
	if got != want {
		t.Errorf("Builder rendered %q, want %q", got, want)
	}
}
