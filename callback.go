package eniresolver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/pkg/errors"
	"github.com/sgtcodfish/eniresolver/constants"
	"go.uber.org/zap"
)

// Reporter delivers a custom resource response back to CloudFormation
type Reporter interface {
	Report(ctx context.Context, responseURL string, response *cfn.Response) error
}

// HTTPReporter PUTs responses to the pre-signed S3 URL given in the event
type HTTPReporter struct {
	client *http.Client
}

// NewHTTPReporter creates an HTTPReporter whose requests time out after timeout
func NewHTTPReporter(timeout time.Duration) *HTTPReporter {
	return &HTTPReporter{
		&http.Client{Timeout: timeout},
	}
}

// Report sends the response in a single PUT. No Content-Type is set since
// the pre-signed URL isn't signed for one
func (h *HTTPReporter) Report(ctx context.Context, responseURL string, response *cfn.Response) error {
	body, err := json.Marshal(response)

	if err != nil {
		return errors.Wrap(err, "couldn't marshal custom resource response")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, responseURL, bytes.NewReader(body))

	if err != nil {
		return errors.Wrap(err, "couldn't create callback request")
	}

	res, err := h.client.Do(req)

	if err != nil {
		return errors.Wrap(err, "couldn't send callback request")
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return errors.Errorf("unexpected status %d from callback: %s", res.StatusCode, string(raw))
	}

	return nil
}

// WriterReporter writes responses to an io.Writer instead of sending them,
// for local dry runs
type WriterReporter struct {
	Writer io.Writer
}

// Report writes the indented JSON body of the response
func (w WriterReporter) Report(ctx context.Context, responseURL string, response *cfn.Response) error {
	encoder := json.NewEncoder(w.Writer)
	encoder.SetIndent("", "  ")

	return errors.Wrap(encoder.Encode(response), "couldn't write custom resource response")
}

// Wrap turns fn into a Lambda handler which reports exactly one response per
// invocation. Errors returned by fn become FAILED responses; panics are
// recovered and reported as FAILED too
func Wrap(fn cfn.CustomResourceFunction, reporter Reporter, logger *zap.Logger) cfn.CustomResourceLambdaFunction {
	return func(ctx context.Context, event cfn.Event) (string, error) {
		log := logger.With(zap.String("request_id", event.RequestID), zap.String("logical_resource_id", event.LogicalResourceID))

		response := cfn.NewResponse(&event)
		response.PhysicalResourceID = event.PhysicalResourceID

		physicalResourceID, data, panicked, err := invoke(ctx, fn, event, log)

		switch {
		case panicked:
			response.Status = cfn.StatusFailed
			response.Reason = constants.PanicReason

		case err != nil:
			response.Status = cfn.StatusFailed
			response.Reason = err.Error()

		default:
			response.Status = cfn.StatusSuccess
			response.Data = data
		}

		if physicalResourceID != "" {
			response.PhysicalResourceID = physicalResourceID
		}

		if response.PhysicalResourceID == "" {
			response.PhysicalResourceID = fallbackPhysicalResourceID(event)
		}

		log.Info("sending custom resource response",
			zap.String("status", string(response.Status)),
			zap.String("reason", response.Reason),
			zap.String("physical_resource_id", response.PhysicalResourceID))

		err = reporter.Report(ctx, event.ResponseURL, response)

		if err != nil {
			log.Error("couldn't report custom resource response", zap.Error(err))
			return response.Reason, errors.Wrap(err, "failed to report response to CloudFormation")
		}

		return response.Reason, nil
	}
}

func invoke(ctx context.Context, fn cfn.CustomResourceFunction, event cfn.Event, log *zap.Logger) (physicalResourceID string, data map[string]interface{}, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("custom resource function panicked", zap.Any("panic", r), zap.Stack("stack"))
			panicked = true
		}
	}()

	physicalResourceID, data, err = fn(ctx, event)

	return physicalResourceID, data, false, err
}

// fallbackPhysicalResourceID mirrors cfn.LambdaWrap, using the log stream name
// when running in Lambda and the logical ID otherwise
func fallbackPhysicalResourceID(event cfn.Event) string {
	if lambdacontext.LogStreamName != "" {
		return lambdacontext.LogStreamName
	}

	return event.LogicalResourceID
}
