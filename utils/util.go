package utils

// Filter returns the elements of arr for which keep is true, in order.
func Filter[A any](arr []A, keep func(A) bool) []A {
	res := make([]A, 0, len(arr))
	for _, v := range arr {
		if keep(v) {
			res = append(res, v)
		}
	}
	return res
}
