// Package cmdregistry defines the static command table used by the CLI
// entrypoint. It maps command names to a one-line summary and a handler that
// accepts a shared Context payload, so individual commands live in separate
// packages while main.go stays focused on argument parsing.
package cmdregistry
