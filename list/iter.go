package list

// Iter walks a List without modifying it.
// Next and NextBack can be mixed. They never yield the same element twice.
type Iter[T any] struct {
	head, tail *node
	len        int
}

func (it *Iter[T]) Next() (v T, ok bool) {
	if it.len == 0 {
		return v, false
	}
	n := it.head
	it.head = n.next
	it.len--
	return valueOf[T](n), true
}

func (it *Iter[T]) NextBack() (v T, ok bool) {
	if it.len == 0 {
		return v, false
	}
	n := it.tail
	it.tail = n.prev
	it.len--
	return valueOf[T](n), true
}

// Len returns the number of elements not yet yielded.
func (it *Iter[T]) Len() int { return it.len }

// IntoIter owns the elements it yields. See List.IntoIter.
type IntoIter[T any] struct {
	l List[T]
}

func (it *IntoIter[T]) Next() (T, bool) {
	return it.l.PopFront()
}

func (it *IntoIter[T]) Len() int { return it.l.Len() }

// Close releases the remaining elements. It is safe to call Close
// more than once or after the iterator is exhausted.
func (it *IntoIter[T]) Close() {
	it.l.Clear()
}
