//go:build windows
// +build windows

package mssqlodbc

import "github.com/microsoft/go-mssqlodbc/odbcstr"

// Windows uses SSPI inside the native driver, so there is no client-side
// Kerberos material to load.
type kerberosSettings struct{}

func loadKerberos(_ odbcstr.CanonicalParameters) (*kerberosSettings, error) {
	return nil, nil
}
