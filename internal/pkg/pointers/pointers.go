package pointers

// Ptr returns a pointer to a copy of v. Handy for optional patch fields.
func Ptr[T any](v T) *T { return &v }
