// Package term is the interactive terminal of the CLI: prompts, masked
// passphrase input, numbered selection, a progress spinner and styled
// status lines.
package term
