// Package mssqlodbc prepares ODBC connection configuration for Microsoft
// SQL Server and Azure SQL Database.
//
// The package implements the client side of connection setup: it parses
// user supplied connection strings, validates every keyword against an
// allow list, resolves synonym spellings to canonical names, handles Entra
// ID token authentication and Kerberos preflight, and builds the exact
// string and binary connection attributes handed to ODBC Driver 18 for SQL
// Server.
//
// # Connection Strings
//
// Strings use the ODBC format:
//
//	server=localhost;user id=sa;password=secret;database=mydb
//
// Keywords are case-insensitive and most accept several spellings: "host",
// "address", "addr" and "network address" all mean Server. Values that
// contain ';', '{', '}', '=' or whitespace are wrapped in braces with '}'
// doubled:
//
//	pwd={p;a{ss}}word}
//
// The Driver and APP keywords are reserved. The package injects them itself
// and rejects strings that try to set them. Validation reports every
// problem in a string at once; see [odbcstr.ParseError].
//
// # Entra ID Authentication
//
// Setting Authentication to ActiveDirectoryDefault,
// ActiveDirectoryDeviceCode or ActiveDirectoryInteractive switches the
// connection to token authentication. Import the azuread subpackage to
// register the token providers:
//
//	import (
//	    mssqlodbc "github.com/microsoft/go-mssqlodbc"
//	    _ "github.com/microsoft/go-mssqlodbc/azuread"
//	)
//
//	c, err := mssqlodbc.NewConnector(
//	    "server=myserver.database.windows.net;database=mydb;authentication=ActiveDirectoryDefault")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	connStr, attrs, err := c.DriverConnectionString(ctx)
//
// While a directive is active the user id, password and encryption related
// parameters are stripped from the parameter set, and the acquired token is
// returned as a binary attribute under [AttrAccessToken] rather than as
// part of the string.
//
// # Kerberos
//
// On non-Windows platforms the Krb5ConfFile, KeytabFile and KrbCache
// parameters name Kerberos files that are loaded and validated when the
// Connector is created. They are consumed by this package and never
// forwarded to the native driver.
//
// # Logging
//
// The "Log" parameter, or the MSSQLODBC_LOG environment variable, enables
// diagnostic categories as a bitmask of [odbcstr.Log] flags. Assign a
// [ContextLogger] to Connector.Logger, or call [Connector.SetLogger] with a
// plain [Logger], to receive them. Logged connection strings always have
// their password redacted.
package mssqlodbc
