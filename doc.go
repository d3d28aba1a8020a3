/*
Package x3launch starts the X3: Albion Prelude client with the X3MP multiplayer module loaded.

A launch is a short linear state machine. The connection profile entered by the
player is written to the XML file the module reads at startup, the game is started
with a fixed argument string, and once the process has had time to settle an
external injector loads the companion module into it.

	Idle -> ConfigWritten -> ProcessStarted -> InjectionAttempted -> Succeeded
	  \__________\_________________\__________________\__________-> Failed

Each run ends in exactly one outcome (success, config_write_failed,
process_not_found, injection_failed) carrying one user-facing message.
Nothing is rolled back: a written config stays on disk and a started game keeps running.

# Architecture

The core (internal/runtime) only talks to ports (pkg/ports). Default adapters write
the XML profile (pkg/adapters/xmlconfig), start and observe the game process
(pkg/adapters/process) and run an external injector (pkg/adapters/inject).
Any of them can be replaced through options.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/x3launch"
		"github.com/aretw0/x3launch/pkg/domain"
	)

	func main() {
		launcher, err := x3launch.New()
		if err != nil {
			log.Fatal(err)
		}

		profile, err := domain.NewProfile("Nova", "192.168.1.10", domain.DefaultPort)
		if err != nil {
			log.Fatal(err)
		}

		result, err := launcher.Launch(context.Background(), profile)
		fmt.Println(result.Outcome.Message())
		if err != nil {
			log.Printf("launch failed at %s: %v", result.FailedAt, err)
		}
	}
*/
package x3launch
