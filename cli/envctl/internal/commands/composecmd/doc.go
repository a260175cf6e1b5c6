// Package composecmd covers the environment lifecycle commands: setup and
// destroy. Each resolves to exactly one docker compose invocation with a fixed
// argument list; any extra arguments are appended after it.
package composecmd
