//go:build windows
// +build windows

package mssqlodbc

// ODBC Driver 18 for SQL Server runs the interactive browser flow itself on
// Windows, so the interactive directive stays with the native driver.
var defaultCapabilities = Capabilities{NativeInteractiveAuth: true}
