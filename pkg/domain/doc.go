/*
Package domain contains the core domain models of the X3MP launcher.

It defines the entities the launch workflow moves through: the immutable
connection profile captured from the user, the launch states and their
outcomes, and the lifecycle events emitted on every transition. This package
is kept pure and free of external dependencies like I/O or process control,
following Hexagonal Architecture principles.

# Key Entities

  - Profile: The session-join parameters (display name, address, port) handed to the game.
  - State: A step of the launch state machine (Idle, ConfigWritten, ProcessStarted, ...).
  - Outcome: The single caller-facing result of a launch run.
  - StageError: A failure tagged with the stage that produced it.
*/
package domain
