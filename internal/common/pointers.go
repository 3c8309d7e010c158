package common

// ToPtr returns a pointer to its argument. Handy for filling optional
// blueprint fields in literals and tests.
func ToPtr[T any](t T) *T {
	return &t
}

// ValueOrEmpty dereferences value if it is non-nil and otherwise returns
// the zero value of T.
func ValueOrEmpty[T any](value *T) T {
	var empty T
	if value != nil {
		empty = *value
	}
	return empty
}
