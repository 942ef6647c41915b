package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/pkg/errors"
)

// EC2InterfaceResolver queries EC2 for network interfaces by description
type EC2InterfaceResolver struct {
	client ec2iface.EC2API
}

// NewEC2InterfaceResolver creates a new EC2InterfaceResolver using the given client
func NewEC2InterfaceResolver(client ec2iface.EC2API) *EC2InterfaceResolver {
	return &EC2InterfaceResolver{
		client,
	}
}

// ResolveIPs describes the network interfaces matching description, following
// pagination, and collects their primary private IP addresses. Interfaces
// without a private IP are skipped
func (e *EC2InterfaceResolver) ResolveIPs(ctx context.Context, description string) ([]string, error) {
	input := &ec2.DescribeNetworkInterfacesInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("description"),
				Values: aws.StringSlice([]string{description}),
			},
		},
	}

	var ips []string

	err := e.client.DescribeNetworkInterfacesPagesWithContext(ctx, input,
		func(page *ec2.DescribeNetworkInterfacesOutput, lastPage bool) bool {
			for _, iface := range page.NetworkInterfaces {
				ip := aws.StringValue(iface.PrivateIpAddress)

				if ip == "" {
					continue
				}

				ips = append(ips, ip)
			}

			return true
		})

	if err != nil {
		return nil, errors.Wrapf(err, "couldn't describe network interfaces for %q", description)
	}

	return ips, nil
}
