// Package domain defines core data models and interfaces shared across rad.
// It contains plain types (profiles, keys, identities, tracking) and contracts
// (interfaces) only, plus the sentinel errors every layer reports.
package domain
