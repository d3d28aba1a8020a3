package process_test

import (
	"os"
	"strings"
	"testing"
	"time"
)

const (
	helperEnv    = "X3LAUNCH_TEST_HELPER"
	helperOutEnv = "X3LAUNCH_TEST_HELPER_OUT"
)

// TestMain lets the test binary double as the launched target, so the tests
// exercise real process creation without compiling fixtures.
func TestMain(m *testing.M) {
	switch os.Getenv(helperEnv) {
	case "sleep":
		time.Sleep(30 * time.Second)
		os.Exit(0)
	case "exit":
		os.Exit(3)
	case "args":
		_ = os.WriteFile(os.Getenv(helperOutEnv), []byte(strings.Join(os.Args[1:], " ")), 0o644)
		os.Exit(0)
	}
	os.Exit(m.Run())
}
