package common

import "errors"

func AsError[T error](err error) (T, bool) {
	var target T
	return target, errors.As(err, &target)
}

// IsAnyOf reports whether err matches at least one of the candidates.
func IsAnyOf(err error, candidates ...error) bool {
	for _, candidate := range candidates {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
