package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/libelnet/stratech-booking-adapter/version"

	"github.com/spf13/cobra"
)

func NewCmdVersion(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doVersion(out)
		},
	}
}

func doVersion(out io.Writer) error {
	_, err := fmt.Fprintf(out, "stratech-booking-adapter %s (%s %s/%s)\n",
		version.VERSION, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}
