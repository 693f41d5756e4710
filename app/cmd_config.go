package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewCmdConfig(out io.Writer, config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after merging defaults, the configuration file and the environment. Passwords are redacted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doConfig(out, config)
		},
	}
}

func doConfig(out io.Writer, config *Config) error {
	if err := config.Validate(); err != nil {
		fmt.Fprintf(out, "# WARNING: %v\n\n", err)
	}
	_, err := fmt.Fprintf(out, "%s", config)
	return err
}
