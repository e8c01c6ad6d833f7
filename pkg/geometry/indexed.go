package geometry

// IndexedReadable is any container with integer-keyed element lookup.
// Indices start at 1; At reports false for a hole.
type IndexedReadable[T any] interface {
	At(i int) (T, bool)
}

// Collect reads src from index 1 up to, but not including, its first hole.
func Collect[T any](src IndexedReadable[T]) []T {
	var out []T
	for i := 1; ; i++ {
		v, ok := src.At(i)
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Slice adapts a Go slice to IndexedReadable.
type Slice[T any] []T

func (s Slice[T]) At(i int) (T, bool) {
	if i < 1 || i > len(s) {
		var zero T
		return zero, false
	}
	return s[i-1], true
}
