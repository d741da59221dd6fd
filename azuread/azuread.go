// Package azuread supplies Entra ID token providers for the token
// authentication modes of the mssqlodbc package. Importing it, even blank,
// is enough to make Authentication=ActiveDirectoryDefault,
// ActiveDirectoryDeviceCode and ActiveDirectoryInteractive work:
//
//	import _ "github.com/microsoft/go-mssqlodbc/azuread"
package azuread

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	mssqlodbc "github.com/microsoft/go-mssqlodbc"
)

func init() {
	mssqlodbc.RegisterTokenProvider(mssqlodbc.AuthModeDefault, func() (mssqlodbc.TokenProvider, error) {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, err
		}
		return credentialProvider{credential: cred}, nil
	})
	mssqlodbc.RegisterTokenProvider(mssqlodbc.AuthModeDeviceCode, func() (mssqlodbc.TokenProvider, error) {
		cred, err := azidentity.NewDeviceCodeCredential(nil)
		if err != nil {
			return nil, err
		}
		return credentialProvider{credential: cred}, nil
	})
	mssqlodbc.RegisterTokenProvider(mssqlodbc.AuthModeInteractive, func() (mssqlodbc.TokenProvider, error) {
		cred, err := azidentity.NewInteractiveBrowserCredential(nil)
		if err != nil {
			return nil, err
		}
		return credentialProvider{credential: cred}, nil
	})
}

// credentialProvider adapts an azcore.TokenCredential to the
// mssqlodbc.TokenProvider interface.
type credentialProvider struct {
	credential azcore.TokenCredential
}

func (p credentialProvider) AcquireToken(ctx context.Context, scope string) (string, error) {
	tk, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}})
	if err != nil {
		return "", err
	}
	return tk.Token, nil
}

// NewConnector prepares a Connector with this package's token providers
// registered.
func NewConnector(connString string) (*mssqlodbc.Connector, error) {
	return mssqlodbc.NewConnector(connString)
}

// NewConnectorFromCredential prepares a Connector that authenticates with
// tokens from the given credential, for callers that build their own
// azidentity credential chain.
func NewConnectorFromCredential(connString string, credential azcore.TokenCredential) (*mssqlodbc.Connector, error) {
	if credential == nil {
		return nil, errors.New("azuread: credential cannot be nil")
	}
	return mssqlodbc.NewSecurityTokenConnector(connString, credentialProvider{credential: credential})
}
