package main

import (
	"context"
	"fmt"
	"os"

	"github.com/libelnet/stratech-booking-adapter/app"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := app.Run(os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, context.Canceled) {
			logrus.Debugln(errors.Wrap(err, "ignore error since context is cancelled"))
			return
		}
		// Schedulers read the error class from standard output.
		fmt.Fprintln(os.Stdout, app.Token(err))
		logrus.Fatal(err)
	}
}
