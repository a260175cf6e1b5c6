// Package runner centralizes helpers that execute the orchestration backend.
//
// The wrappers keep dry-run logging and exit-code handling consistent across
// commands. They never terminate the process themselves; callers receive the
// execx.Result and decide how to exit.
package runner
