//go:build !windows
// +build !windows

package mssqlodbc

var defaultCapabilities = Capabilities{NativeInteractiveAuth: false}
