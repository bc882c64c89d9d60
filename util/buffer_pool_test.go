package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixPool(t *testing.T) {
	pool := NewMatrixPool[uint8]()

	// Test basic get and put
	matrix := pool.Get(16, 8)
	if matrix.Height != 16 || matrix.Width != 8 || len(matrix.Data) != 128 {
		t.Errorf("Matrix dimensions incorrect")
	}

	// Modify matrix
	matrix.Set(3, 2, 42)

	// Return to pool
	pool.Put(matrix)

	// Get again - should be cleared
	matrix2 := pool.Get(16, 8)
	if matrix2.Get(3, 2) != 0 {
		t.Errorf("Matrix not cleared after return to pool: got %d", matrix2.Get(3, 2))
	}
	pool.Put(matrix2)

	hits, misses := pool.GetMetrics()
	// sync.Pool may drop entries, so only the total is fixed
	assert.GreaterOrEqual(t, misses, int64(1))
	assert.Equal(t, int64(2), hits+misses)
}

func TestMatrixPoolZeroSize(t *testing.T) {
	pool := NewMatrixPool[uint8]()
	m := pool.Get(0, 8)
	assert.Empty(t, m.Data)
	pool.Put(m)

	hits, misses := pool.GetMetrics()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(0), misses)
}

func TestMatrixBlockAccess(t *testing.T) {
	m := New2DMatrix[uint8](16, 16)
	var block [64]uint8
	for i := range block {
		block[i] = uint8(i)
	}
	m.SetBlock(8, 8, &block)

	assert.Equal(t, uint8(0), m.Get(8, 8))
	assert.Equal(t, uint8(7), m.Get(8, 15))
	assert.Equal(t, uint8(63), m.Get(15, 15))
	assert.Equal(t, uint8(0), m.Get(7, 7))
	assert.Equal(t, []uint8{0, 0, 0, 0, 0, 0, 0, 0, 56, 57, 58, 59, 60, 61, 62, 63}, m.GetRow(15))

	m2 := New2DMatrixWithContents[int](2, 3, [][]int{{1, 2, 3}, {4, 5, 6}})
	assert.Equal(t, 6, m2.Get(1, 2))
	assert.Equal(t, []int{4, 5, 6}, m2.GetRow(1))
}
