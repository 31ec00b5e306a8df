package pool

import (
	"sync"
	"sync/atomic"
)

// SyncPool is a typed wrapper of sync.Pool.
type SyncPool[T any] struct {
	opts SyncPoolOpts[T]
	sp   sync.Pool

	allocated atomic.Uint64
	reused    atomic.Uint64
	released  atomic.Uint64
}

type SyncPoolOpts[T any] struct {
	New       func() *T // If nil, will be new(T)
	OnRelease func(v *T)
	OnGet     func(v *T)
}

func NewSyncPool[T any](opts SyncPoolOpts[T]) *SyncPool[T] {
	return &SyncPool[T]{
		opts: opts,
	}
}

func (p *SyncPool[T]) Get() *T {
	v, ok := p.sp.Get().(*T)
	if !ok {
		p.allocated.Add(1)
		if f := p.opts.New; f != nil {
			v = f()
		} else {
			v = new(T)
		}
	} else {
		p.reused.Add(1)
	}
	if f := p.opts.OnGet; f != nil {
		f(v)
	}
	return v
}

// v MUST not be used again after Release.
func (p *SyncPool[T]) Release(v *T) {
	if f := p.opts.OnRelease; f != nil {
		f(v)
	}
	p.released.Add(1)
	p.sp.Put(v)
}

type Stats struct {
	Allocated uint64 // Get calls served by a fresh allocation.
	Reused    uint64 // Get calls served by a pooled object.
	Released  uint64
}

func (p *SyncPool[T]) Stats() Stats {
	return Stats{
		Allocated: p.allocated.Load(),
		Reused:    p.reused.Load(),
		Released:  p.released.Load(),
	}
}

// InUse returns the number of objects handed out and not released yet.
func (s Stats) InUse() uint64 {
	return s.Allocated + s.Reused - s.Released
}
