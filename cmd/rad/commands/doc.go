// Package commands defines the rad CLI and wires dependencies for subcommands.
//
// Commands
//
//   - auth       Create a profile or unlock one into the ssh-agent
//   - self       Show the active profile's identity
//   - track      Track a remote identity, optionally one peer of it
//   - untrack    Stop tracking a remote identity or one of its peers
//
// # Implementation
//
// The root command resolves the home directory and configuration, builds a
// logger and the dependency graph (stores, agent client, services) before any
// subcommand runs. Failures are printed once by Execute, styled, and turn into
// a non-zero exit status.
package commands
