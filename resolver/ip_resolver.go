package resolver

import "context"

// InterfaceResolver looks up the private IP addresses of every network
// interface whose description exactly matches the given description.
// Addresses are returned in the order the provider lists the interfaces
type InterfaceResolver interface {
	ResolveIPs(ctx context.Context, description string) ([]string, error)
}
