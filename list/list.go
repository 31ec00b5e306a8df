// Package list implements a doubly-linked sequence container with O(1)
// insertion and removal at both ends and O(1) concatenation.
//
// A List is not safe for concurrent use.
package list

import "iter"

// List is a doubly-linked list. The zero value is an empty list ready to use.
// A List must not be copied after first use.
type List[T any] struct {
	noCopy noCopy

	head *node // owns the chain
	tail *node // cached, not owning
	l    int
}

func New[T any]() *List[T] {
	return new(List[T])
}

func (l *List[T]) Len() int { return l.l }

func (l *List[T]) PushBack(v T) {
	n := newNode(v)
	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	} else { // empty list
		l.head = n
	}
	l.tail = n
	l.l++
}

func (l *List[T]) PushFront(v T) {
	n := newNode(v)
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else { // empty list
		l.tail = n
	}
	l.head = n
	l.l++
}

// PopFront removes and returns the first element.
// It returns false if l is empty.
func (l *List[T]) PopFront() (v T, ok bool) {
	n := l.head
	if n == nil {
		return v, false
	}
	l.head = n.next
	if l.head == nil {
		l.tail = nil
	} else {
		l.head.prev = nil
	}
	l.l--
	return takeNode[T](n), true
}

// PopBack removes and returns the last element.
// It returns false if l is empty.
func (l *List[T]) PopBack() (v T, ok bool) {
	n := l.tail
	if n == nil {
		return v, false
	}
	l.tail = n.prev
	if l.tail == nil {
		l.head = nil
	} else {
		l.tail.next = nil
	}
	l.l--
	return takeNode[T](n), true
}

func (l *List[T]) Front() (v T, ok bool) {
	if l.head == nil {
		return v, false
	}
	return valueOf[T](l.head), true
}

func (l *List[T]) Back() (v T, ok bool) {
	if l.tail == nil {
		return v, false
	}
	return valueOf[T](l.tail), true
}

// Append moves all elements of other to the end of l and leaves other empty.
// It does not depend on the length of either list.
// Appending nil or l itself is a no-op.
func (l *List[T]) Append(other *List[T]) {
	if other == nil || other == l || other.head == nil {
		return
	}
	if l.tail == nil {
		// l is empty, take other's chain as is.
		l.head, l.tail, l.l = other.head, other.tail, other.l
	} else {
		l.tail.next = other.head
		other.head.prev = l.tail
		l.tail = other.tail
		l.l += other.l
	}
	other.reset()
}

// Clear removes all elements and recycles their nodes.
func (l *List[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		releaseNode(n)
		n = next
	}
	l.reset()
}

func (l *List[T]) reset() {
	l.head = nil
	l.tail = nil
	l.l = 0
}

// Values returns a snapshot of the elements in insertion order.
func (l *List[T]) Values() []T {
	s := make([]T, 0, l.l)
	for n := l.head; n != nil; n = n.next {
		s = append(s, valueOf[T](n))
	}
	return s
}

// Iter returns a borrowing iterator positioned at both ends of l.
// Call Iter again to restart. l must not be modified while the iterator is in use.
func (l *List[T]) Iter() *Iter[T] {
	return &Iter[T]{
		head: l.head,
		tail: l.tail,
		len:  l.l,
	}
}

// All returns a range-over-func view of l from front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(valueOf[T](n)) {
				return
			}
		}
	}
}

// Backward returns a range-over-func view of l from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.tail; n != nil; n = n.prev {
			if !yield(valueOf[T](n)) {
				return
			}
		}
	}
}

// IntoIter moves the whole chain of l into a consuming iterator.
// l is left empty and may be reused.
// The caller should Close the iterator if it is not drained to the end.
func (l *List[T]) IntoIter() *IntoIter[T] {
	it := new(IntoIter[T])
	it.l.Append(l)
	return it
}

// Drain returns a one-shot range-over-func view that removes elements
// from the front as they are yielded. The chain is taken from l when
// the iteration starts. Elements left behind by an early break are released.
func (l *List[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.IntoIter()
		defer it.Close()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
