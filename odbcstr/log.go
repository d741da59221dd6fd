package odbcstr

import (
	"fmt"
	"strconv"
)

// Log is a bitmask of diagnostic categories enabled through the "Log"
// connection string parameter. The parameter is consumed by this client and
// never forwarded to the native driver.
type Log uint64

const (
	LogErrors   Log = 1
	LogMessages Log = 2
	LogParams   Log = 4
	LogDebug    Log = 8
)

// ParseLog converts the textual value of the "Log" parameter to a bitmask.
func ParseLog(value string) (Log, error) {
	flags, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid log parameter '%s': %s", value, err.Error())
	}
	return Log(flags), nil
}
