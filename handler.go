// Package eniresolver implements a CloudFormation custom resource which returns
// the private IP addresses of a network load balancer
package eniresolver

import (
	"context"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/pkg/errors"
	"github.com/sgtcodfish/eniresolver/resolver"
	"github.com/sgtcodfish/eniresolver/types"
	"go.uber.org/zap"
)

// ErrNoInterfaces is returned when no network interfaces match a NameFilter
var ErrNoInterfaces = errors.New("no network interfaces found")

// Handler resolves the private IPs of a load balancer's network interfaces
// in response to custom resource events
type Handler struct {
	resolver          resolver.InterfaceResolver
	logger            *zap.Logger
	expectedType      string
	descriptionPrefix string
}

// NewHandler creates a Handler which queries the given resolver
func NewHandler(res resolver.InterfaceResolver, config *ResolverConfig, logger *zap.Logger) *Handler {
	return &Handler{
		resolver:          res,
		logger:            logger,
		expectedType:      config.ExpectedType,
		descriptionPrefix: config.DescriptionPrefix,
	}
}

// Handle processes one event. The returned physical resource ID is the one
// already held by the event, which is empty on Create
func (h *Handler) Handle(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	log := h.logger.With(
		zap.String("request_id", event.RequestID),
		zap.String("logical_resource_id", event.LogicalResourceID),
		zap.String("request_type", string(event.RequestType)),
	)

	result, err := h.resolve(ctx, event, log)

	if err != nil {
		log.Warn("couldn't resolve load balancer addresses", zap.Error(err))
		return event.PhysicalResourceID, nil, err
	}

	return event.PhysicalResourceID, result.Data(), nil
}

func (h *Handler) resolve(ctx context.Context, event cfn.Event, log *zap.Logger) (types.Result, error) {
	switch event.RequestType {
	case cfn.RequestDelete:
		log.Info("nothing to resolve on delete")
		return types.Result{}, nil

	case cfn.RequestCreate, cfn.RequestUpdate:

	default:
		return types.Result{}, errors.Errorf("unsupported request type %q", event.RequestType)
	}

	props, err := types.DecodeResourceProperties(event.ResourceProperties)

	if err != nil {
		return types.Result{}, err
	}

	filter, err := types.ParseNameFilter(props.NameFilter, h.expectedType)

	if err != nil {
		return types.Result{}, err
	}

	description := filter.Description(h.descriptionPrefix)
	log.Debug("describing network interfaces", zap.String("description", description))

	ips, err := h.resolver.ResolveIPs(ctx, description)

	if err != nil {
		return types.Result{}, err
	}

	if len(ips) == 0 {
		return types.Result{}, errors.Wrapf(ErrNoInterfaces, "no interfaces have description %q", description)
	}

	log.Info("resolved load balancer addresses", zap.Strings("ips", ips))

	return types.Result{IPAddresses: ips}, nil
}
