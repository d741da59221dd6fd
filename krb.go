//go:build !windows
// +build !windows

package mssqlodbc

import (
	"os"

	"github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/keytab"

	"github.com/microsoft/go-mssqlodbc/odbcstr"
)

// kerberosSettings holds the client-side Kerberos material named by the
// Krb5ConfFile, KeytabFile and KrbCache parameters. The files are loaded at
// connector creation so a bad path or malformed file fails before the first
// connection attempt.
type kerberosSettings struct {
	config *config.Config
	keytab *keytab.Keytab
	cache  *credentials.CCache
}

// loadKerberos reads the Kerberos files referenced by the client-consumed
// parameters. It returns nil when Krb5ConfFile is not set; KeytabFile and
// KrbCache are each optional beyond that.
func loadKerberos(params odbcstr.CanonicalParameters) (*kerberosSettings, error) {
	confFile, ok := params[odbcstr.Krb5ConfFile]
	if !ok {
		return nil, nil
	}

	krb := &kerberosSettings{}
	var err error
	krb.config, err = setupKerbConfig(confFile)
	if err != nil {
		return nil, err
	}
	if keytabFile, ok := params[odbcstr.KeytabFile]; ok {
		krb.keytab, err = setupKerbKeytab(keytabFile)
		if err != nil {
			return nil, err
		}
	}
	if cachePath, ok := params[odbcstr.KrbCache]; ok {
		krb.cache, err = setupKerbCache(cachePath)
		if err != nil {
			return nil, err
		}
	}
	return krb, nil
}

func setupKerbConfig(krb5configPath string) (*config.Config, error) {
	krb5CnfFile, err := os.Open(krb5configPath)
	if err != nil {
		return nil, err
	}
	defer krb5CnfFile.Close()
	c, err := config.NewFromReader(krb5CnfFile)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func setupKerbCache(kerbCachePath string) (*credentials.CCache, error) {
	cache, err := credentials.LoadCCache(kerbCachePath)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

func setupKerbKeytab(keytabFilePath string) (*keytab.Keytab, error) {
	var kt = &keytab.Keytab{}
	keytabConf, err := os.ReadFile(keytabFilePath)
	if err != nil {
		return nil, err
	}
	if err = kt.Unmarshal(keytabConf); err != nil {
		return nil, err
	}
	return kt, nil
}
