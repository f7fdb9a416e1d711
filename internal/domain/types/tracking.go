package types

// UntrackPolicy decides how an untrack behaves when the edge is absent.
type UntrackPolicy int

const (
	// UntrackMustExist fails when the edge does not exist.
	UntrackMustExist UntrackPolicy = iota
	// UntrackAny succeeds whether or not the edge exists.
	UntrackAny
)

// String returns the policy name.
func (p UntrackPolicy) String() string {
	switch p {
	case UntrackMustExist:
		return "must-exist"
	case UntrackAny:
		return "any"
	default:
		return "unknown"
	}
}
