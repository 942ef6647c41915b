package types

import (
	"strings"

	"github.com/sgtcodfish/eniresolver/constants"
)

// Result is the payload returned to the stack. An empty Result is valid and
// carries no data
type Result struct {
	IPAddresses []string
}

// Joined returns the addresses as one delimited string, preserving order
func (r Result) Joined() string {
	return strings.Join(r.IPAddresses, constants.IPSeparator)
}

// Data converts the Result into the Data field of a callback response
func (r Result) Data() map[string]interface{} {
	if len(r.IPAddresses) == 0 {
		return nil
	}

	return map[string]interface{}{
		constants.IPAddressesKey: r.Joined(),
	}
}
