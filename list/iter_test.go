package list

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectIter[T any](it *Iter[T]) []T {
	var s []T
	for {
		v, ok := it.Next()
		if !ok {
			return s
		}
		s = append(s, v)
	}
}

func Test_Iter_restartable(t *testing.T) {
	r := require.New(t)

	l := newFrom(1, 2, 3, 4)
	it1 := l.Iter()
	it2 := l.Iter()
	r.Equal(4, it1.Len())

	r.Equal([]int{1, 2, 3, 4}, collectIter(it1))
	r.Equal(0, it1.Len())
	_, ok := it1.Next()
	r.False(ok)

	r.Equal([]int{1, 2, 3, 4}, collectIter(it2))
	r.Equal([]int{1, 2, 3, 4}, collectIter(l.Iter()))

	// walking never touches the list
	r.Equal(4, l.Len())
	checkLinks(t, l)
}

func Test_Iter_interleaved(t *testing.T) {
	r := require.New(t)

	l := newFrom(1, 2, 3)
	a, b := l.Iter(), l.Iter()
	va, _ := a.Next()
	vb, _ := b.Next()
	r.Equal(1, va)
	r.Equal(1, vb)
	va, _ = a.Next()
	r.Equal(2, va)
	vb, _ = b.Next()
	r.Equal(2, vb)
}

func Test_Iter_doubleEnded(t *testing.T) {
	r := require.New(t)

	l := newFrom(1, 2, 3, 4, 5)
	it := l.Iter()
	v, _ := it.Next()
	r.Equal(1, v)
	v, _ = it.NextBack()
	r.Equal(5, v)
	v, _ = it.NextBack()
	r.Equal(4, v)
	v, _ = it.Next()
	r.Equal(2, v)
	r.Equal(1, it.Len())
	v, ok := it.NextBack()
	r.True(ok)
	r.Equal(3, v)

	// front and back met, nothing left for either side
	_, ok = it.Next()
	r.False(ok)
	_, ok = it.NextBack()
	r.False(ok)
}

func Test_List_AllBackward(t *testing.T) {
	r := require.New(t)

	l := newFrom("a", "b", "c")
	r.Equal([]string{"a", "b", "c"}, slices.Collect(l.All()))
	r.Equal([]string{"c", "b", "a"}, slices.Collect(l.Backward()))

	var got []string
	for v := range l.All() {
		got = append(got, v)
		if v == "b" {
			break
		}
	}
	r.Equal([]string{"a", "b"}, got)
	r.Equal(3, l.Len())
}

func Test_IntoIter(t *testing.T) {
	r := require.New(t)

	l := newFrom(9, 10, 11)
	it := l.IntoIter()
	checkLinks(t, l)
	r.Equal(0, l.Len())
	r.Equal(3, it.Len())

	for _, want := range []int{9, 10, 11} {
		v, ok := it.Next()
		r.True(ok)
		r.Equal(want, v)
	}
	_, ok := it.Next()
	r.False(ok)
	r.Equal(0, it.Len())
	it.Close() // after exhaustion

	// the source list is still usable
	l.PushBack(1)
	r.Equal([]int{1}, l.Values())
}

func Test_IntoIter_single(t *testing.T) {
	r := require.New(t)

	l := newFrom(5)
	it := l.IntoIter()
	defer it.Close()
	v, ok := it.Next()
	r.True(ok)
	r.Equal(5, v)
	_, ok = it.Next()
	r.False(ok)
}

func Test_IntoIter_Close(t *testing.T) {
	r := require.New(t)

	before := NodePoolStats().InUse()
	l := newFrom(1, 2, 3, 4)
	it := l.IntoIter()
	v, _ := it.Next()
	r.Equal(1, v)

	it.Close()
	r.Equal(0, it.Len())
	_, ok := it.Next()
	r.False(ok)
	r.Equal(before, NodePoolStats().InUse())
	it.Close()
}

func Test_List_Drain(t *testing.T) {
	r := require.New(t)

	l := newFrom(1, 2, 3)
	r.Equal([]int{1, 2, 3}, slices.Collect(l.Drain()))
	r.Equal(0, l.Len())
	checkLinks(t, l)

	before := NodePoolStats().InUse()
	l = newFrom(1, 2, 3, 4)
	var got []int
	for v := range l.Drain() {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	r.Equal([]int{1, 2}, got)
	r.Equal(0, l.Len())
	r.Equal(before, NodePoolStats().InUse())
}
