package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove returns a copy of slice without the first occurrence of item.
func Remove[T comparable](slice []T, item T) []T {
	out := make([]T, 0, len(slice))
	i := FindIndex(slice, item)
	if i < 0 {
		return append(out, slice...)
	}
	out = append(out, slice[:i]...)
	return append(out, slice[i+1:]...)
}
