package odbcstr

import (
	"sort"
	"strings"
)

// Canonical parameter names. These are the only spellings the Builder emits;
// every accepted input spelling resolves to one of them.
const (
	Server                 = "Server"
	UserID                 = "Uid"
	Password               = "Pwd"
	Database               = "Database"
	Authentication         = "Authentication"
	TrustedConnection      = "Trusted_Connection"
	Encrypt                = "Encrypt"
	TrustServerCertificate = "TrustServerCertificate"
	HostNameInCertificate  = "HostNameInCertificate"
	ConnectionTimeout      = "Connection Timeout"
	LoginTimeout           = "Login Timeout"
	MultiSubnetFailover    = "MultiSubnetFailover"
	ApplicationIntent      = "ApplicationIntent"
	FailoverPartner        = "Failover_Partner"
	PacketSize             = "Packet Size"

	// Client-consumed names: read by this package's callers and stripped
	// before the final string is built, never forwarded to the native driver.
	LogParam     = "Log"
	Krb5ConfFile = "Krb5ConfFile"
	KeytabFile   = "KeytabFile"
	KrbCache     = "KrbCache"

	// Reserved names: injected by the Builder, never caller-settable.
	Driver  = "Driver"
	AppName = "APP"
)

// AllowList resolves the many accepted spellings of a connection string
// keyword to one canonical name per logical setting, and knows which
// canonical names are reserved for the driver. It is immutable once built
// and safe for concurrent use.
type AllowList struct {
	synonyms map[string]string
	reserved map[string]bool
}

// NewAllowList builds an AllowList from a spelling-to-canonical-name table
// and the set of reserved canonical names. The input map is copied.
func NewAllowList(synonyms map[string]string, reserved ...string) *AllowList {
	l := &AllowList{
		synonyms: make(map[string]string, len(synonyms)),
		reserved: make(map[string]bool, len(reserved)),
	}
	for spelling, canonical := range synonyms {
		l.synonyms[strings.ToLower(strings.TrimSpace(spelling))] = canonical
	}
	for _, name := range reserved {
		l.reserved[name] = true
	}
	return l
}

// NormalizeKey resolves a keyword, in any accepted spelling and case, to its
// canonical name. ok is false for keywords outside the allow list.
func (l *AllowList) NormalizeKey(key string) (canonical string, ok bool) {
	canonical, ok = l.synonyms[strings.ToLower(strings.TrimSpace(key))]
	return canonical, ok
}

// IsReserved reports whether a canonical name may only be set by the driver.
func (l *AllowList) IsReserved(canonicalName string) bool {
	return l.reserved[canonicalName]
}

// Filter maps parsed parameters to canonical names, dropping keywords the
// allow list does not know instead of failing. Reserved names are removed
// unconditionally because the Builder injects them itself. The dropped slice
// lists the unknown keywords in sorted order so the caller can log them.
// When two spellings of one logical setting both appear, raw keys are
// visited in sorted order and the last visit wins, so equal inputs always
// filter to equal outputs.
func (l *AllowList) Filter(params Parameters) (CanonicalParameters, []string) {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	filtered := make(CanonicalParameters, len(params))
	var dropped []string
	for _, key := range keys {
		canonical, ok := l.NormalizeKey(key)
		if !ok {
			dropped = append(dropped, key)
			continue
		}
		if l.reserved[canonical] {
			continue
		}
		filtered[canonical] = params[key]
	}
	return filtered, dropped
}

// DefaultAllowList enumerates every connection string keyword the driver
// accepts. Spelling variants are explicit entries; nothing is inferred by
// stripping spaces or underscores.
var DefaultAllowList = NewAllowList(map[string]string{
	// Server identification.
	"server":          Server,
	"host":            Server,
	"address":         Server,
	"addr":            Server,
	"network address": Server,

	// Authentication.
	"uid":                UserID,
	"user id":            UserID,
	"user":               UserID,
	"pwd":                Password,
	"password":           Password,
	"authentication":     Authentication,
	"trusted_connection": TrustedConnection,

	// Database.
	"database":        Database,
	"initial catalog": Database,

	// Driver identity and application name, always controlled by the driver.
	"driver":           Driver,
	"app":              AppName,
	"application name": AppName,

	// Encryption.
	"encrypt":                  Encrypt,
	"trustservercertificate":   TrustServerCertificate,
	"trust_server_certificate": TrustServerCertificate,
	"trust server certificate": TrustServerCertificate,
	"hostnameincertificate":    HostNameInCertificate,

	// Connection behavior.
	"connection timeout":    ConnectionTimeout,
	"connect timeout":       ConnectionTimeout,
	"timeout":               ConnectionTimeout,
	"login timeout":         LoginTimeout,
	"multisubnetfailover":   MultiSubnetFailover,
	"multi subnet failover": MultiSubnetFailover,
	"applicationintent":     ApplicationIntent,
	"application intent":    ApplicationIntent,

	// Failover.
	"failover partner": FailoverPartner,
	"failoverpartner":  FailoverPartner,

	// Packet size.
	"packet size": PacketSize,
	"packetsize":  PacketSize,

	// Client-consumed settings.
	"log":          LogParam,
	"krb5conffile": Krb5ConfFile,
	"keytabfile":   KeytabFile,
	"krbcache":     KrbCache,
}, Driver, AppName)
