package types

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// ResourceProperties describes the properties given to the custom resource
// in the CloudFormation template
type ResourceProperties struct {
	ServiceToken string `mapstructure:"ServiceToken"`
	NameFilter   string `mapstructure:"NameFilter"`
}

// DecodeResourceProperties converts the raw properties map of an event into
// ResourceProperties. Unknown keys are ignored
func DecodeResourceProperties(raw map[string]interface{}) (*ResourceProperties, error) {
	var props ResourceProperties

	if raw == nil {
		return &props, nil
	}

	err := mapstructure.Decode(raw, &props)

	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse resource properties")
	}

	return &props, nil
}
