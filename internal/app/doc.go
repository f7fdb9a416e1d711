// Package app wires application dependencies for the CLI.
//
// It resolves Config from the config file, the environment and flags, then
// builds the stores, the agent client and the high-level services, exposing
// them via the Wire struct for commands to use.
package app
