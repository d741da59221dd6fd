package mssqlodbc

import (
	"context"
	"io"
)

// Session is an open native connection produced by a SessionOpener.
type Session interface {
	io.Closer
}

// SessionOpener binds the pipeline to a native ODBC implementation. It
// receives the finished connection string together with the binary
// connection attributes that must be set on the handle before connecting,
// keyed by native attribute id.
type SessionOpener interface {
	OpenSession(ctx context.Context, connString string, attrs map[uint32][]byte) (Session, error)
}

// SessionOpenerFunc adapts a function to the SessionOpener interface.
type SessionOpenerFunc func(ctx context.Context, connString string, attrs map[uint32][]byte) (Session, error)

// OpenSession calls f.
func (f SessionOpenerFunc) OpenSession(ctx context.Context, connString string, attrs map[uint32][]byte) (Session, error) {
	return f(ctx, connString, attrs)
}
