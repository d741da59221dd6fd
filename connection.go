package mssqlodbc

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/microsoft/go-mssqlodbc/odbcstr"
)

// Connector prepares the connection configuration for one target database:
// it validates the caller's connection string, resolves keyword synonyms,
// consumes the client-side parameters, and builds the exact string and
// binary attributes handed to the native driver. When an Entra ID directive
// is active it also owns the token provider that authenticates each new
// session.
//
// A Connector is safe for concurrent use. The parameter set is frozen at
// construction; the outputs of DriverConnectionString are freshly allocated
// on every call and never retained.
type Connector struct {
	// Opener binds the Connector to a native ODBC implementation. It must
	// be set before Connect is called.
	Opener SessionOpener

	// Logger receives diagnostics for the categories enabled by the "Log"
	// parameter or the MSSQLODBC_LOG environment variable.
	Logger ContextLogger

	params     odbcstr.CanonicalParameters
	mode       AuthMode
	provider   TokenProvider
	logFlags   odbcstr.Log
	kerberos   *kerberosSettings
	activityID uuid.UUID
}

// NewConnector validates connString and prepares a Connector. Parsing is
// strict: any grammar problem, unknown keyword or reserved keyword fails
// construction with a *odbcstr.ParseError listing every issue found.
func NewConnector(connString string) (*Connector, error) {
	return newConnector(connString, defaultCapabilities, nil)
}

// NewSecurityTokenConnector prepares a Connector that authenticates every
// session with tokens from the given provider. The provider takes
// precedence over any registered factory, and credential-bearing
// parameters are stripped even when the connection string carries no
// Authentication directive.
func NewSecurityTokenConnector(connString string, provider TokenProvider) (*Connector, error) {
	if provider == nil {
		return nil, fmt.Errorf("mssqlodbc: token provider cannot be nil")
	}
	return newConnector(connString, defaultCapabilities, provider)
}

func newConnector(connString string, caps Capabilities, override TokenProvider) (*Connector, error) {
	parsed, err := odbcstr.ParseWithAllowList(connString, odbcstr.DefaultAllowList)
	if err != nil {
		return nil, err
	}
	params, _ := odbcstr.DefaultAllowList.Filter(parsed)

	logFlags, err := readLogFlags(params)
	if err != nil {
		return nil, err
	}
	delete(params, odbcstr.LogParam)

	kerberos, err := loadKerberos(params)
	if err != nil {
		return nil, err
	}
	delete(params, odbcstr.Krb5ConfFile)
	delete(params, odbcstr.KeytabFile)
	delete(params, odbcstr.KrbCache)

	mode, params := extractAuth(params, caps)
	var provider TokenProvider
	switch {
	case override != nil:
		mode = AuthModeSecurityToken
		params = stripSensitive(params)
		provider = override
	case mode != AuthModeNone:
		provider, err = tokenProvider(mode)
		if err != nil {
			return nil, &AuthError{Mode: mode, Err: err}
		}
	}

	c := &Connector{
		params:   params,
		mode:     mode,
		provider: provider,
		logFlags: logFlags,
		kerberos: kerberos,
	}
	// generating a guid has a small chance of failure. Make a best effort
	if id, cerr := uuid.NewRandom(); cerr == nil {
		c.activityID = id
	}
	return c, nil
}

// SetLogger routes diagnostics to a plain Logger without context support.
func (c *Connector) SetLogger(logger Logger) {
	c.Logger = optionalLogger{logger: logger}
}

func (c *Connector) contextLogger() ContextLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return nullLogger{}
}

// Mode reports the authentication directive selected at construction.
func (c *Connector) Mode() AuthMode {
	return c.mode
}

// Params returns a copy of the canonical parameter set the final string is
// built from. Client-consumed and credential-bearing parameters have
// already been removed.
func (c *Connector) Params() odbcstr.CanonicalParameters {
	params := make(odbcstr.CanonicalParameters, len(c.params))
	for key, value := range c.params {
		params[key] = value
	}
	return params
}

// DriverConnectionString produces the final string handed to the native
// driver plus the binary connection attributes that accompany it. When an
// Entra ID directive is active a fresh token is acquired on every call;
// tokens are never cached, and acquisition failure is fatal for the attempt.
func (c *Connector) DriverConnectionString(ctx context.Context) (string, map[uint32][]byte, error) {
	var attrs map[uint32][]byte
	if c.provider != nil {
		token, err := c.provider.AcquireToken(ctx, databaseScope)
		if err != nil {
			return "", nil, &AuthError{Mode: c.mode, Err: err}
		}
		blob, err := packAccessToken(token)
		if err != nil {
			return "", nil, &AuthError{Mode: c.mode, Err: err}
		}
		if err = validateAccessToken(blob); err != nil {
			return "", nil, &AuthError{Mode: c.mode, Err: err}
		}
		attrs = map[uint32][]byte{AttrAccessToken: blob}
	}

	connString := odbcstr.Build(c.params, odbcstr.DefaultDriverName, odbcstr.DefaultAppName)
	if c.logFlags&odbcstr.LogParams != 0 {
		c.contextLogger().Log(ctx, odbcstr.LogParams, "Driver connection string: "+Redact(connString))
	}
	return connString, attrs, nil
}

// Connect opens a native session through the configured Opener.
func (c *Connector) Connect(ctx context.Context) (Session, error) {
	if c.Opener == nil {
		return nil, fmt.Errorf("mssqlodbc: connector has no session opener")
	}

	connString, attrs, err := c.DriverConnectionString(ctx)
	if err != nil {
		if c.logFlags&odbcstr.LogErrors != 0 {
			c.contextLogger().Log(ctx, odbcstr.LogErrors, err.Error())
		}
		return nil, err
	}

	// generating a guid has a small chance of failure. Make a best effort
	connid, _ := uuid.NewRandom()
	if c.logFlags&odbcstr.LogDebug != 0 {
		msg := fmt.Sprintf("Opening session with connection id '%s' and activity id '%s' using driver version %s", connid, c.activityID, driverVersion)
		c.contextLogger().Log(ctx, odbcstr.LogDebug, msg)
	}
	return c.Opener.OpenSession(ctx, connString, attrs)
}
