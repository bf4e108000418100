package tokens

// Presence guards used at every component boundary. Downstream code never
// performs ad-hoc zero checks: it receives values these guards have already
// unwrapped, or the call failed with a MissingField error naming the key.

// Require returns value when it is present and a MissingField error naming
// key when it is the type's zero value.
func Require[T comparable](value T, key string) (T, error) {
	var zero T
	if value == zero {
		return zero, MissingField(key)
	}
	return value, nil
}

// RequireOr behaves like Require but falls back to def when value is absent.
// The default is only consulted for absent values, never to replace a
// present one.
func RequireOr[T comparable](value T, key string, def T) (T, error) {
	var zero T
	if value != zero {
		return value, nil
	}
	if def != zero {
		return def, nil
	}
	return zero, MissingField(key)
}

// RequireSlice treats nil as absent. A non-nil empty slice is present: an
// empty authority set is a legal claim, a missing one is not.
func RequireSlice[S ~[]E, E any](value S, key string) (S, error) {
	if value == nil {
		return nil, MissingField(key)
	}
	return value, nil
}
