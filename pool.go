// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import (
	"sync"
	"sync/atomic"
)

// BufPool is a type-safe wrapper around sync.Pool, specialized for
// reusing []int scratch buffers (encoded (k+1)-mers) across shard
// workers in the builder package.
//
// It efficiently reuses buffer memory and tracks statistics on
// allocations and active use for debugging and performance tuning.
type BufPool struct {
	sync.Pool // embedded sync.Pool for []int buffers

	size int

	// TODO: remove it once the code is stable.
	totalAllocated atomic.Int64 // total number of buffers ever allocated
	currentLive    atomic.Int64 // number of buffers currently checked out
}

// NewBufPool creates a pool of buffers of the given length (the
// (k+1)-mer width), zeroed before each Get.
func NewBufPool(size int) *BufPool {
	p := &BufPool{size: size}
	p.New = func() any {
		p.totalAllocated.Add(1) // TODO: remove it once the code is stable.
		return make([]int, size)
	}
	return p
}

// Get retrieves a buffer from the pool, or allocates one if needed.
// If the pool is nil, a fresh buffer is returned without tracking.
func (p *BufPool) Get() []int {
	if p == nil {
		return nil
	}
	p.currentLive.Add(1) // TODO: remove it once the code is stable.
	return p.Pool.Get().([]int)
}

// Put returns a buffer to the pool for reuse. If the pool is nil,
// the buffer is discarded.
func (p *BufPool) Put(b []int) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1) // TODO: remove it once the code is stable.
	p.Pool.Put(b[:p.size])
}

// Stats returns the number of currently live (checked-out) buffers
// and the total number ever allocated by this pool.
func (p *BufPool) Stats() (live int64, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}
