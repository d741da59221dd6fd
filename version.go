package mssqlodbc

// This value is automatically updated by Release Please during the release
// process. It is reported in debug logs when a session is opened.
const driverVersion = "v1.0.0"
