// Package auth unlocks a profile for signing.
//
// It picks a profile, makes sure its key is loaded in the signing agent,
// records it as active and points git signing at it. With no profiles, or
// when asked to, it hands over to the identity bootstrap instead.
package auth
