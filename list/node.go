package list

import "github.com/IrineSistiana/seqlist/internal/pool"

// node is shared by all List[T] so a single pool can recycle them.
// next is the owning edge. prev is a back-reference used for relinking only.
type node struct {
	v          any
	prev, next *node
}

var nodePool = pool.NewSyncPool(pool.SyncPoolOpts[node]{
	OnRelease: func(n *node) { *n = node{} }, // drop the element and both links
})

func newNode(v any) *node {
	n := nodePool.Get()
	n.v = v
	return n
}

// Once released, n MUST not be used again.
func releaseNode(n *node) {
	nodePool.Release(n)
}

// A nil interface element is stored as a nil v, so comma-ok is required.
func valueOf[T any](n *node) T {
	v, _ := n.v.(T)
	return v
}

// takeNode returns the element of a detached node and releases the node.
func takeNode[T any](n *node) T {
	v := valueOf[T](n)
	releaseNode(n)
	return v
}

type PoolStats struct {
	Allocated uint64
	Reused    uint64
	Released  uint64
}

// InUse is the number of nodes currently linked into some list.
func (s PoolStats) InUse() uint64 {
	return s.Allocated + s.Reused - s.Released
}

// NodePoolStats reports the process-wide node pool counters.
func NodePoolStats() PoolStats {
	s := nodePool.Stats()
	return PoolStats{
		Allocated: s.Allocated,
		Reused:    s.Reused,
		Released:  s.Released,
	}
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
