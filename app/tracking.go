package app

import (
	"context"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/libelnet/stratech-booking-adapter/tracking"
)

func newTracker(ctx context.Context, logger logrus.FieldLogger, config *Config) (tracking.Store, error) {
	table := config.Tracking.Table
	if table == "" {
		table = tracking.DefaultTable
	}
	switch config.Tracking.Backend {
	case backendPostgres:
		return tracking.NewPostgresStore(ctx, config.Tracking.DatabaseURL, table)
	case backendDynamoDB:
		sess, err := awsSession(logger, config.Tracking.DynamoDBProfile, config.Tracking.DynamoDBEndpoint, config.Tracking.DynamoDBRegion)
		if err != nil {
			return nil, errors.Wrap(err, "error creating aws session")
		}
		return tracking.NewDynamoDBStore(dynamodb.New(sess), table), nil
	case backendMemory:
		logger.Warn("Tracking in memory, processed reservations are forgotten when the run ends")
		return tracking.NewMemoryStore(), nil
	}
	return nil, errors.Errorf("unknown tracking backend %q", config.Tracking.Backend)
}

type logrusProxy struct {
	logger logrus.FieldLogger
}

func (l logrusProxy) Log(args ...interface{}) {
	l.logger.WithField("client", "aws").Debug(args...)
}

// awsSession returns a session using NewSessionWithOptions meaning that it
// relies on the SDK defaults but also the user config files and environment.
//
// AWS_DYNAMODB_DISABLE_SSL is not looked up by the SDK. It is only meant for
// local DynamoDB instances used during development.
func awsSession(logger logrus.FieldLogger, profile, endpoint, region string) (*session.Session, error) {
	options := session.Options{}
	if profile != "" {
		options.Profile = profile
	}
	if endpoint != "" {
		options.Config.WithEndpoint(endpoint)
	}
	if region != "" {
		options.Config.WithRegion(region)
	}
	if res, ok := os.LookupEnv("AWS_DYNAMODB_DISABLE_SSL"); ok {
		disabled, _ := strconv.ParseBool(res)
		options.Config.WithDisableSSL(disabled)
	}
	if logrus.GetLevel() == logrus.DebugLevel {
		options.Config.WithCredentialsChainVerboseErrors(true)
	}
	options.Config.WithLogger(logrusProxy{logger: logger})
	return session.NewSessionWithOptions(options)
}
