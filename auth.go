package mssqlodbc

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/microsoft/go-mssqlodbc/odbcstr"
)

// AuthMode names the Entra ID authentication flow selected by the
// "Authentication" connection string parameter.
type AuthMode int

const (
	// AuthModeNone leaves authentication to the native driver.
	AuthModeNone AuthMode = iota
	// AuthModeDefault acquires a token from the ambient platform credential.
	AuthModeDefault
	// AuthModeDeviceCode prompts the user with an out-of-band device code.
	AuthModeDeviceCode
	// AuthModeInteractive signs the user in through a local browser.
	AuthModeInteractive
	// AuthModeSecurityToken authenticates with tokens from a caller
	// supplied provider. It is never selected from the connection string;
	// see NewSecurityTokenConnector.
	AuthModeSecurityToken
)

func (m AuthMode) String() string {
	switch m {
	case AuthModeDefault:
		return "ActiveDirectoryDefault"
	case AuthModeDeviceCode:
		return "ActiveDirectoryDeviceCode"
	case AuthModeInteractive:
		return "ActiveDirectoryInteractive"
	case AuthModeSecurityToken:
		return "SecurityToken"
	default:
		return "None"
	}
}

// Capabilities describes what the native driver handles itself on this
// platform. Directive selection is a pure function of the requested mode
// and these flags, never of runtime platform checks.
type Capabilities struct {
	// NativeInteractiveAuth is set when the native driver runs the
	// interactive browser flow on its own, which makes the interactive
	// directive inert.
	NativeInteractiveAuth bool
}

var authModes = map[string]AuthMode{
	"activedirectorydefault":     AuthModeDefault,
	"activedirectorydevicecode":  AuthModeDeviceCode,
	"activedirectoryinteractive": AuthModeInteractive,
}

// sensitiveParams must never reach the Builder or a log once a token
// directive is active.
var sensitiveParams = []string{
	odbcstr.UserID,
	odbcstr.Password,
	odbcstr.Encrypt,
	odbcstr.TrustServerCertificate,
	odbcstr.Authentication,
}

// extractAuth classifies the authentication directive and, when one is
// active, returns a copy of params with every credential-bearing parameter
// removed. The input map is not modified. Authentication values outside the
// three token modes pass through untouched for the native driver to handle.
func extractAuth(params odbcstr.CanonicalParameters, caps Capabilities) (AuthMode, odbcstr.CanonicalParameters) {
	mode := authModes[strings.ToLower(strings.TrimSpace(params[odbcstr.Authentication]))]
	if mode == AuthModeInteractive && caps.NativeInteractiveAuth {
		mode = AuthModeNone
	}
	if mode == AuthModeNone {
		return AuthModeNone, params
	}
	return mode, stripSensitive(params)
}

// stripSensitive returns a copy of params without the credential-bearing
// parameters.
func stripSensitive(params odbcstr.CanonicalParameters) odbcstr.CanonicalParameters {
	stripped := make(odbcstr.CanonicalParameters, len(params))
	for key, value := range params {
		stripped[key] = value
	}
	for _, key := range sensitiveParams {
		delete(stripped, key)
	}
	return stripped
}

// TokenProvider acquires an access token for an Entra ID scope. Acquisition
// may perform network I/O and, for device-code and interactive modes, block
// on out-of-band user interaction; bound it through the context.
type TokenProvider interface {
	AcquireToken(ctx context.Context, scope string) (string, error)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func(ctx context.Context, scope string) (string, error)

// AcquireToken calls f.
func (f TokenProviderFunc) AcquireToken(ctx context.Context, scope string) (string, error) {
	return f(ctx, scope)
}

// TokenProviderFactory creates the TokenProvider backing one connector.
type TokenProviderFactory func() (TokenProvider, error)

var tokenProviderFactories = map[AuthMode]TokenProviderFactory{}

// RegisterTokenProvider is called by packages that implement token
// acquisition for an AuthMode, typically from an init func. The azuread
// package registers providers for all three Entra ID modes.
func RegisterTokenProvider(mode AuthMode, factory TokenProviderFactory) {
	tokenProviderFactories[mode] = factory
}

func tokenProvider(mode AuthMode) (TokenProvider, error) {
	factory, ok := tokenProviderFactories[mode]
	if !ok {
		return nil, fmt.Errorf("no token provider registered for authentication mode %s (import the azuread package)", mode)
	}
	return factory()
}

// AttrAccessToken is the native connection attribute id
// (SQL_COPT_SS_ACCESS_TOKEN) the packed token travels under. The token is
// passed to the native driver out-of-band, never as part of the connection
// string.
const AttrAccessToken uint32 = 1256

// databaseScope is the Entra ID scope access tokens are requested for.
const databaseScope = "https://database.windows.net/.default"

// packAccessToken converts a raw token to the structure the native driver
// expects under AttrAccessToken: a 4 byte little-endian byte count followed
// by the token encoded as UTF-16LE.
func packAccessToken(token string) ([]byte, error) {
	if len(token) == 0 {
		return nil, fmt.Errorf("access token is empty")
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	units, err := enc.Bytes([]byte(token))
	if err != nil {
		return nil, fmt.Errorf("access token cannot be encoded as UTF-16: %v", err)
	}
	blob := make([]byte, 4+len(units))
	binary.LittleEndian.PutUint32(blob, uint32(len(units)))
	copy(blob[4:], units)
	return blob, nil
}

// validateAccessToken structurally checks a packed token attribute value
// before it is handed to the native driver.
func validateAccessToken(blob []byte) error {
	if len(blob) < 6 {
		return fmt.Errorf("access token attribute is too small: %d bytes", len(blob))
	}
	declared := binary.LittleEndian.Uint32(blob)
	if declared == 0 {
		return fmt.Errorf("access token attribute declares an empty token")
	}
	if declared%2 != 0 {
		return fmt.Errorf("access token attribute declares an odd UTF-16 byte count: %d", declared)
	}
	if int(declared) != len(blob)-4 {
		return fmt.Errorf("access token attribute declares %d bytes but carries %d", declared, len(blob)-4)
	}
	allZero := true
	for _, b := range blob[4:] {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return fmt.Errorf("access token attribute carries only zero bytes")
	}
	return nil
}

// AuthError reports a failed token acquisition or packing. It is fatal for
// the connection attempt: the pipeline never retries acquisition and never
// falls back to password authentication.
type AuthError struct {
	Mode AuthMode
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for mode %s: %v", e.Mode, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }
