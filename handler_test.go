package eniresolver

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/pkg/errors"
	"github.com/sgtcodfish/eniresolver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResolver struct {
	ips          []string
	err          error
	descriptions []string
}

func (f *fakeResolver) ResolveIPs(ctx context.Context, description string) ([]string, error) {
	f.descriptions = append(f.descriptions, description)
	return f.ips, f.err
}

func testConfig() *ResolverConfig {
	return &ResolverConfig{
		ExpectedType:      "net",
		DescriptionPrefix: "ELB ",
	}
}

func testEvent(requestType cfn.RequestType, nameFilter string) cfn.Event {
	return cfn.Event{
		RequestType:       requestType,
		RequestID:         "unique-request-id",
		ResponseURL:       "https://cloudformation-custom-resource-response.example.com/response",
		ResourceType:      "Custom::LoadBalancerIPs",
		LogicalResourceID: "NLBAddresses",
		StackID:           "arn:aws:cloudformation:eu-west-1:123456789012:stack/test/guid",
		ResourceProperties: map[string]interface{}{
			"ServiceToken": "arn:aws:lambda:eu-west-1:123456789012:function:eniresolver",
			"NameFilter":   nameFilter,
		},
	}
}

func TestHandleDeleteNeverQueries(t *testing.T) {
	for _, filter := range []string{"net/my-nlb/abc", "app/my-alb/abc", "", "garbage"} {
		t.Run(filter, func(t *testing.T) {
			res := &fakeResolver{ips: []string{"10.0.0.1"}}
			h := NewHandler(res, testConfig(), zap.NewNop())

			event := testEvent(cfn.RequestDelete, filter)
			event.PhysicalResourceID = "existing-id"

			physicalID, data, err := h.Handle(context.Background(), event)
			require.NoError(t, err)
			assert.Nil(t, data)
			assert.Equal(t, "existing-id", physicalID)
			assert.Empty(t, res.descriptions)
		})
	}
}

func TestHandleRejectsWrongType(t *testing.T) {
	res := &fakeResolver{ips: []string{"10.0.0.1"}}
	h := NewHandler(res, testConfig(), zap.NewNop())

	_, data, err := h.Handle(context.Background(), testEvent(cfn.RequestCreate, "app/my-alb/50dc6c495c0c9188"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidNameFilter))
	assert.Nil(t, data)
	assert.Empty(t, res.descriptions)
}

func TestHandleResolves(t *testing.T) {
	tests := []struct {
		name string
		ips  []string
		want string
	}{
		{"single interface", []string{"10.0.0.5"}, "10.0.0.5"},
		{"three interfaces in provider order", []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}, "10.0.0.1, 10.0.0.2, 10.0.0.3"},
		{"unsorted provider order", []string{"10.0.0.3", "10.0.0.1"}, "10.0.0.3, 10.0.0.1"},
	}

	for _, tt := range tests {
		for _, requestType := range []cfn.RequestType{cfn.RequestCreate, cfn.RequestUpdate} {
			t.Run(tt.name+"/"+string(requestType), func(t *testing.T) {
				res := &fakeResolver{ips: tt.ips}
				h := NewHandler(res, testConfig(), zap.NewNop())

				_, data, err := h.Handle(context.Background(), testEvent(requestType, "net/my-nlb/50dc6c495c0c9188"))
				require.NoError(t, err)
				assert.Equal(t, map[string]interface{}{"IpAddresses": tt.want}, data)
				assert.Equal(t, []string{"ELB net/my-nlb/50dc6c495c0c9188"}, res.descriptions)
			})
		}
	}
}

func TestHandleNoInterfaces(t *testing.T) {
	h := NewHandler(&fakeResolver{}, testConfig(), zap.NewNop())

	_, data, err := h.Handle(context.Background(), testEvent(cfn.RequestCreate, "net/my-nlb/50dc6c495c0c9188"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoInterfaces))
	assert.Nil(t, data)
}

func TestHandleProviderError(t *testing.T) {
	providerErr := errors.New("RequestLimitExceeded")
	h := NewHandler(&fakeResolver{err: providerErr, ips: []string{"10.0.0.1"}}, testConfig(), zap.NewNop())

	_, data, err := h.Handle(context.Background(), testEvent(cfn.RequestUpdate, "net/my-nlb/50dc6c495c0c9188"))
	require.Error(t, err)
	assert.Equal(t, providerErr, errors.Cause(err))
	assert.Nil(t, data)
}

func TestHandleUnknownRequestType(t *testing.T) {
	res := &fakeResolver{ips: []string{"10.0.0.1"}}
	h := NewHandler(res, testConfig(), zap.NewNop())

	_, _, err := h.Handle(context.Background(), testEvent(cfn.RequestType("Rollback"), "net/my-nlb/abc"))
	assert.Error(t, err)
	assert.Empty(t, res.descriptions)
}

func TestHandleMissingNameFilter(t *testing.T) {
	h := NewHandler(&fakeResolver{}, testConfig(), zap.NewNop())

	event := testEvent(cfn.RequestCreate, "")
	delete(event.ResourceProperties, "NameFilter")

	_, _, err := h.Handle(context.Background(), event)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidNameFilter))
}

func TestHandleCustomDescriptionPrefix(t *testing.T) {
	res := &fakeResolver{ips: []string{"10.1.0.9"}}
	config := testConfig()
	config.DescriptionPrefix = "Custom "

	h := NewHandler(res, config, zap.NewNop())

	_, _, err := h.Handle(context.Background(), testEvent(cfn.RequestCreate, "net/my-nlb/abc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Custom net/my-nlb/abc"}, res.descriptions)
}
