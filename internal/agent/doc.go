// Package agent implements domain.SigningAgent on top of the ssh-agent protocol.
//
// Every operation dials the agent socket, performs one round-trip and closes
// the connection. Calls are bounded by the client timeout; dial failures,
// deadlines and broken connections are reported as domain.ErrAgentUnreachable
// so callers can tell "agent down" apart from key or passphrase problems.
package agent
