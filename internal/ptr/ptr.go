// Package ptr helps constructing pointers to literal values, mostly in
// test fixtures.
package ptr

// Ref returns a pointer to v.
func Ref[T any](v T) *T {
	return &v
}
