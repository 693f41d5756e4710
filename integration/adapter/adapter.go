package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

const binary = "stratech-booking-adapter"

type Runner struct {
	command    string
	configFile string
	dir        string
	args       []string
	env        []string
}

func Import(args ...string) *Runner {
	return &Runner{command: "import", args: args}
}

func Probe(args ...string) *Runner {
	return &Runner{command: "probe", args: args}
}

func (b *Runner) WithEnv(env []string) *Runner {
	b.env = env
	return b
}

func (b *Runner) WithDir(dir string) *Runner {
	b.dir = dir
	return b
}

func (b *Runner) WithConfigFile(path string) *Runner {
	b.configFile = path
	return b
}

// Run executes the command and returns what it printed to standard output.
func (b *Runner) Run(t *testing.T) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	cmd := b.exec(context.Background(), &stdout)

	start := time.Now()
	err := cmd.Run()
	fmt.Println("Ran in ", time.Since(start))
	if err != nil {
		return stdout.String(), errors.Wrapf(err, "%s %s", binary, b.command)
	}

	return stdout.String(), nil
}

func (b *Runner) RunOrFail(t *testing.T) string {
	t.Helper()
	out, err := b.Run(t)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func (b *Runner) exec(ctx context.Context, stdout io.Writer) *exec.Cmd {
	args := []string{b.command}
	if b.configFile != "" {
		args = append(args, "--config", b.configFile)
	}
	args = append(args, b.args...)

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = append(removeAppEnvs(os.Environ()), b.env...)
	if b.dir != "" {
		cmd.Dir = b.dir
	}

	// If the test is killed by a timeout, go test will wait for
	// os.Stderr and os.Stdout to close as a result.
	//
	// However, the `cmd` will still run in the background
	// and hold those descriptors open.
	// As a result, go test will hang forever.
	//
	// Avoid that by wrapping stderr and stdout, breaking the short
	// circuit and forcing cmd.Run to use another pipe and goroutine
	// to pass along stderr and stdout.
	// See https://github.com/golang/go/issues/23019
	cmd.Stdout = struct{ io.Writer }{stdout}
	cmd.Stderr = struct{ io.Writer }{os.Stderr}

	return cmd
}

func removeAppEnvs(env []string) []string {
	var clean []string

	for _, value := range env {
		if !strings.HasPrefix(value, "STRATECH_ADAPTER_") {
			clean = append(clean, value)
		}
	}

	return clean
}
