package reorder

// IndexOf returns the position of id in ids, or -1.
func IndexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is in ids.
func Contains(ids []string, id string) bool {
	return IndexOf(ids, id) >= 0
}

// Clone returns a copy of ids. A nil input yields an empty, non-nil slice.
func Clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Without returns ids with every occurrence of id removed.
func Without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// WithoutAll returns ids minus every member of remove.
func WithoutAll(ids []string, remove map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if !remove[v] {
			out = append(out, v)
		}
	}
	return out
}

// Prepend returns a new list with id at the head and no other copy of id.
func Prepend(ids []string, id string) []string {
	return insertAt(Without(ids, id), id, 0)
}

// Append returns a new list with id at the tail and no other copy of id.
func Append(ids []string, id string) []string {
	rest := Without(ids, id)
	return insertAt(rest, id, len(rest))
}

func insertAt(ids []string, id string, idx int) []string {
	if idx < 0 {
		idx = 0
	}
	if idx > len(ids) {
		idx = len(ids)
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:idx]...)
	out = append(out, id)
	out = append(out, ids[idx:]...)
	return out
}
