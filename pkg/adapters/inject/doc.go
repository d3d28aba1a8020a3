/*
Package inject provides ports.Injector implementations.

Loading a module into another process (remote allocation, import resolution,
entry point invocation) is an external capability. These adapters decide how
that capability is reached:

  - Command: runs an external injector program with the target pid and module path.
  - Noop: dry-run; logs the request and reports success.
*/
package inject
