package util

// Stack is a slice-backed LIFO used for navigation history.
// The zero value is an empty stack ready for use.
type Stack[T any] struct {
	items []T
}

// Push puts item on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop takes the top item off the stack. The second return value
// reports whether there was one.
func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}
