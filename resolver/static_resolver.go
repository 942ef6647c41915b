package resolver

import "context"

// StaticInterfaceResolver always returns the same addresses, regardless of
// the description. Useful for dry runs without AWS credentials
type StaticInterfaceResolver struct {
	IPs []string
}

// NewStaticInterfaceResolver creates a new StaticInterfaceResolver
func NewStaticInterfaceResolver(ips ...string) StaticInterfaceResolver {
	return StaticInterfaceResolver{
		ips,
	}
}

// ResolveIPs returns a copy of the configured addresses
func (s StaticInterfaceResolver) ResolveIPs(ctx context.Context, description string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return append([]string(nil), s.IPs...), nil
}
