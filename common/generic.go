package common

import "time"

// Chunk splits slice into consecutive chunks of at most size elements.
// The chunks share memory with slice.
func Chunk[T any](slice []T, size int) [][]T {
	if size <= 0 {
		return [][]T{slice}
	}

	chunks := make([][]T, 0, (len(slice)+size-1)/size)
	for size < len(slice) {
		slice, chunks = slice[size:], append(chunks, slice[:size:size])
	}
	if len(slice) > 0 {
		chunks = append(chunks, slice)
	}
	return chunks
}

// Truncate shortens s to at most n characters, replacing the end with an ellipsis if it was cut off.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// FormatTime formats t in UTC, as "2006-01-02 15:04:05 UTC".
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05") + " UTC"
}
