package util

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

// MatrixPool hands out cleared matrices keyed by their dimensions. Decoding
// the same picture size over and over (every warp of a game) then reuses
// the plane buffers instead of reallocating them.
type MatrixPool[T constraints.Ordered] struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex

	// Metrics
	hits   atomic.Int64
	misses atomic.Int64
}

func NewMatrixPool[T constraints.Ordered]() *MatrixPool[T] {
	return &MatrixPool[T]{pools: make(map[string]*sync.Pool)}
}

// getPoolKey generates a key for the pool map
func getPoolKey(dims ...int) string {
	switch len(dims) {
	case 2:
		return fmt.Sprintf("%d_%d", dims[0], dims[1])
	case 3:
		return fmt.Sprintf("%d_%d_%d", dims[0], dims[1], dims[2])
	default:
		return ""
	}
}

// Get retrieves a matrix from the pool or creates a new one
func (p *MatrixPool[T]) Get(height, width int) *Matrix[T] {
	if height == 0 || width == 0 {
		return New2DMatrix[T](height, width)
	}

	key := getPoolKey(height, width)

	// Fast path: read lock
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		if matrix, ok := pool.Get().(*Matrix[T]); ok && matrix != nil {
			p.hits.Add(1)
			return matrix
		}
	} else {
		// Slow path: create new pool
		p.mu.Lock()
		// Double-check after acquiring write lock
		if _, exists = p.pools[key]; !exists {
			p.pools[key] = &sync.Pool{}
		}
		p.mu.Unlock()
	}

	p.misses.Add(1)
	return New2DMatrix[T](height, width)
}

// Put returns a matrix to the pool after clearing it
func (p *MatrixPool[T]) Put(matrix *Matrix[T]) {
	if matrix == nil || len(matrix.Data) == 0 {
		return
	}

	key := getPoolKey(matrix.Height, matrix.Width)

	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		matrix.Clear()
		pool.Put(matrix)
	}
}

// GetMetrics returns pool usage statistics
func (p *MatrixPool[T]) GetMetrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}
