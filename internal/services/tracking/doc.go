// Package tracking manages the tracking relationships of the active profile.
package tracking
