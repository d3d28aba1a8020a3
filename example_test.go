package x3launch_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/x3launch"
	"github.com/aretw0/x3launch/internal/config"
	"github.com/aretw0/x3launch/internal/testutils"
	"github.com/aretw0/x3launch/pkg/domain"
)

// ExampleNew_fakes runs a full launch against in-memory adapters.
// The profile is still written to disk so the generated file can be inspected.
func ExampleNew_fakes() {
	dir, err := os.MkdirTemp("", "x3launch-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "X3MP.dll"), []byte("module"), 0o644); err != nil {
		log.Fatal(err)
	}

	settings := config.Defaults()
	settings.WorkDir = dir

	clock := testutils.NewFakeClock()
	launcher, err := x3launch.New(
		x3launch.WithSettings(settings),
		x3launch.WithClock(clock),
		x3launch.WithProcessLauncher(&testutils.FakeLauncher{}),
		x3launch.WithInjector(&testutils.RecordingInjector{Clock: clock}),
	)
	if err != nil {
		log.Fatal(err)
	}

	profile, err := domain.NewProfile("Nova", "192.168.1.10", 13337)
	if err != nil {
		log.Fatal(err)
	}

	result, err := launcher.Launch(context.Background(), profile)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(result.Outcome.Message())
	fmt.Println(result.InjectedAt.Sub(result.StartedAt))

	// Output:
	// Game started and X3MP loaded.
	// 8s
}
