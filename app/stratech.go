package app

import (
	"github.com/sirupsen/logrus"

	"github.com/libelnet/stratech-booking-adapter/stratech"
	"github.com/libelnet/stratech-booking-adapter/version"
)

func newStratechClient(logger logrus.FieldLogger, config *Config, observer stratech.RequestObserver) (*stratech.Client, error) {
	ua := config.Stratech.UserAgent
	if ua == "" {
		ua = "stratech-booking-adapter"
	}
	opts := []stratech.ClientOpt{
		stratech.SetLogger(logger.WithField("component", "stratech")),
		stratech.SetUserAgent(ua + "/" + version.VERSION),
	}
	if observer != nil {
		opts = append(opts, stratech.SetObserver(observer))
	}
	return stratech.New(
		stratech.NewHTTPClient(config.Stratech.Timeout),
		config.Stratech.Endpoint,
		config.Stratech.Namespace,
		opts...)
}
