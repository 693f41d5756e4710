package testutil

import (
	"os"
	"path"
	"runtime"
	"testing"
)

// Fixture loads a file from the testdata directory at the root of the module.
func Fixture(t *testing.T, relPath string) []byte {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("error loading caller")
	}

	p := path.Join(path.Dir(filename), "../../", "testdata", relPath)

	bytes, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("error loading fixture %s: %v", p, err)
	}

	return bytes
}
