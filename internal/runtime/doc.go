/*
Package runtime implements the launch state machine.

	Idle -> ConfigWritten -> ProcessStarted -> InjectionAttempted -> Succeeded
	   \__________________\________________\____________________\-> Failed

The Orchestrator owns sequencing and the error surface; the Scheduler owns the
wait between process start and module injection.
*/
package runtime
