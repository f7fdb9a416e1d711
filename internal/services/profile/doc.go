// Package profile is the profile registry: it enumerates local profiles,
// resolves the active one and lets the user pick between several.
package profile
