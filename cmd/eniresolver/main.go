package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/pkg/errors"
	"github.com/sgtcodfish/eniresolver"
	"github.com/sgtcodfish/eniresolver/resolver"
	"go.uber.org/zap"
)

func main() {
	var eventFile string
	var staticIPs string

	flag.StringVar(&eventFile, "event-file", "", "Run once against a custom resource event read from this file, printing the response instead of sending it")
	flag.StringVar(&staticIPs, "static-ips", "", "Ignored unless -event-file is given. Comma-separated addresses to return instead of querying EC2")
	flag.Parse()

	config, err := eniresolver.LoadResolverConfig()
	handleErr(err)

	logger, err := eniresolver.NewLogger(config)
	handleErr(err)

	defer logger.Sync() // nolint: errcheck

	var res resolver.InterfaceResolver

	if eventFile != "" && staticIPs != "" {
		res = resolver.NewStaticInterfaceResolver(parseStaticIPs(staticIPs)...)
	} else {
		res = resolver.NewEC2InterfaceResolver(ec2.New(newSession(config)))
	}

	handler := eniresolver.NewHandler(res, config, logger)

	if eventFile == "" {
		lambda.Start(eniresolver.Wrap(handler.Handle, eniresolver.NewHTTPReporter(config.CallbackTimeout), logger))
		return
	}

	err = runOnce(eventFile, handler, logger)

	if err != nil {
		logger.Error("dry run failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newSession(config *eniresolver.ResolverConfig) *session.Session {
	awsConfig := aws.Config{}

	if config.Region != "" {
		awsConfig.Region = aws.String(config.Region)
	}

	return session.Must(session.NewSessionWithOptions(session.Options{
		Config:            awsConfig,
		SharedConfigState: session.SharedConfigEnable,
	}))
}

// parseStaticIPs splits a comma-separated list, trimming spaces and skipping
// empty entries
func parseStaticIPs(raw string) []string {
	var ips []string

	for _, ip := range strings.Split(raw, ",") {
		ip = strings.TrimSpace(ip)

		if ip == "" {
			continue
		}

		ips = append(ips, ip)
	}

	return ips
}

func runOnce(eventFile string, handler *eniresolver.Handler, logger *zap.Logger) error {
	raw, err := os.ReadFile(eventFile)

	if err != nil {
		return errors.Wrap(err, "couldn't read event file")
	}

	var event cfn.Event

	err = json.Unmarshal(raw, &event)

	if err != nil {
		return errors.Wrap(err, "couldn't parse event file")
	}

	fn := eniresolver.Wrap(handler.Handle, eniresolver.WriterReporter{Writer: os.Stdout}, logger)

	_, err = fn(context.Background(), event)

	return err
}

func handleErr(err error) {
	if err != nil {
		panic(err)
	}
}
