/*
Package ports defines the driven ports (interfaces) of the launch orchestrator.

These interfaces decouple the launch sequencing from the concrete side-effects,
so the orchestrator can be exercised with fakes and the injection mechanism can
be swapped without touching the state machine.

# Key Interfaces

  - ProfileWriter: Persists a Connection Profile where the game will read it.
  - ProcessLauncher: Starts the target executable and returns a ProcessHandle.
  - ReadinessProbe: Decides whether a started process is in an injectable state.
  - Injector: Loads a module into a running process (external capability).
  - Clock: Time source for the injection delay.
*/
package ports
