package util

import (
	"golang.org/x/exp/constraints"
)

// Make 1D slice appear as 2D slice. Picture planes are stored this way so a
// whole plane is a single allocation.

type Matrix[T constraints.Ordered] struct {
	Width  int
	Height int
	Data   []T
}

// New2DMatrix creates a new 2D matrix with the given dimensions
// Note height is the first dimension, width is the second
func New2DMatrix[T constraints.Ordered](height int, width int) *Matrix[T] {
	matrix := make([]T, width*height)
	return &Matrix[T]{Width: width, Height: height, Data: matrix}
}

func New2DMatrixWithContents[T constraints.Ordered](height int, width int, initialData [][]T) *Matrix[T] {
	matrix := New2DMatrix[T](height, width)
	for h := 0; h < height; h++ {
		copy(matrix.Data[h*width:(h+1)*width], initialData[h])
	}
	return matrix
}

// Note y is first param...  just for compatibility
func (s *Matrix[T]) Get(y int, x int) T {
	return s.Data[y*s.Width+x]
}

func (s *Matrix[T]) Set(y int, x int, value T) {
	s.Data[y*s.Width+x] = value
}

func (s *Matrix[T]) GetRow(y int) []T {
	return s.Data[y*s.Width : (y+1)*s.Width]
}

// SetBlock copies an 8x8 block into the matrix with its top left corner at
// (y, x).
func (s *Matrix[T]) SetBlock(y int, x int, block *[64]T) {
	for row := 0; row < 8; row++ {
		copy(s.Data[(y+row)*s.Width+x:(y+row)*s.Width+x+8], block[row*8:row*8+8])
	}
}

func (s *Matrix[T]) Clear() {
	var zero T
	for i := range s.Data {
		s.Data[i] = zero
	}
}
