package azuread

import (
	"context"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"

	mssqlodbc "github.com/microsoft/go-mssqlodbc"
)

type fakeCredential struct {
	token  string
	scopes []string
	err    error
}

func (c *fakeCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.scopes = options.Scopes
	if c.err != nil {
		return azcore.AccessToken{}, c.err
	}
	return azcore.AccessToken{Token: c.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestCredentialProviderPassesScope(t *testing.T) {
	cred := &fakeCredential{token: "tok-1"}
	provider := credentialProvider{credential: cred}
	token, err := provider.AcquireToken(context.Background(), "https://database.windows.net/.default")
	assert.NoError(t, err, "AcquireToken should succeed")
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, []string{"https://database.windows.net/.default"}, cred.scopes)
}

func TestTokenProvidersRegistered(t *testing.T) {
	// Building the credentials does no network I/O, so constructing
	// connectors for the directive values is safe in a unit test.
	// Interactive is excluded: its mode depends on the platform.
	connStrings := []string{
		"server=myhost;database=testdb;authentication=ActiveDirectoryDefault",
		"server=myhost;database=testdb;authentication=ActiveDirectoryDeviceCode",
	}
	for _, connStr := range connStrings {
		c, err := NewConnector(connStr)
		assert.NoError(t, err, "NewConnector(%q)", connStr)
		if c != nil {
			assert.NotEqual(t, mssqlodbc.AuthModeNone, c.Mode(), "connector for %q should have a token mode", connStr)
		}
	}
}

func TestNewConnectorFromCredential(t *testing.T) {
	cred := &fakeCredential{token: "tok-cred"}
	c, err := NewConnectorFromCredential("server=myhost;uid=ignored;pwd=ignored", cred)
	assert.NoError(t, err, "NewConnectorFromCredential should succeed")
	assert.Equal(t, mssqlodbc.AuthModeSecurityToken, c.Mode())

	connStr, attrs, err := c.DriverConnectionString(context.Background())
	assert.NoError(t, err, "DriverConnectionString should succeed")
	assert.NotContains(t, connStr, "Uid=")
	assert.NotContains(t, connStr, "Pwd=")
	assert.NotNil(t, attrs[mssqlodbc.AttrAccessToken], "access token attribute should be set")

	_, err = NewConnectorFromCredential("server=myhost", nil)
	assert.Error(t, err, "nil credential should be rejected")
}
