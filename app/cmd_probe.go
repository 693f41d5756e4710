package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewCmdProbe(out io.Writer, logger logrus.FieldLogger, config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Ask the Stratech backend for its version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			return doProbe(cmd.Context(), out, logger, config)
		},
	}
}

func doProbe(ctx context.Context, out io.Writer, logger logrus.FieldLogger, config *Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := newStratechClient(logger, config, nil)
	if err != nil {
		return err
	}
	data, ok, err := client.System.Version(ctx)
	if err != nil {
		return err
	}
	if !ok {
		_, err = fmt.Fprintln(out, "UNKNOWN")
		return err
	}
	_, err = fmt.Fprintln(out, strings.TrimSpace(data.Raw))
	return err
}
