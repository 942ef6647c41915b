package types

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidNameFilter is returned for a NameFilter which isn't of the form
// "<type>/<name>" with the expected type
var ErrInvalidNameFilter = errors.New("invalid name filter")

// NameFilter identifies a load balancer by the suffix of its ARN, such as
// "net/my-nlb/50dc6c495c0c9188"
type NameFilter struct {
	Type string
	Name string
	raw  string
}

// ParseNameFilter validates raw against expectedType. Everything after the
// first slash is treated as the name, which may itself contain slashes
func ParseNameFilter(raw string, expectedType string) (NameFilter, error) {
	if raw == "" {
		return NameFilter{}, errors.Wrap(ErrInvalidNameFilter, "missing required 'NameFilter' property")
	}

	parts := strings.SplitN(raw, "/", 2)

	if len(parts) != 2 || parts[1] == "" {
		return NameFilter{}, errors.Wrapf(ErrInvalidNameFilter, "%q is not of the form <type>/<name>", raw)
	}

	if parts[0] != expectedType {
		return NameFilter{}, errors.Wrapf(ErrInvalidNameFilter, "%q has type %q but only %q is supported", raw, parts[0], expectedType)
	}

	return NameFilter{
		Type: parts[0],
		Name: parts[1],
		raw:  raw,
	}, nil
}

// Description returns the interface description the filter should match
func (n NameFilter) Description(prefix string) string {
	return prefix + n.raw
}

func (n NameFilter) String() string {
	return n.raw
}
