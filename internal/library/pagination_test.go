package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 3, TotalPages(41, 20))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestPageSlice(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	first := pageSlice(items, 1, 20)
	assert.Len(t, first, 20)
	assert.Equal(t, 0, first[0])
	assert.Equal(t, 19, first[19])

	second := pageSlice(items, 2, 20)
	assert.Equal(t, 20, second[0])

	last := pageSlice(items, 3, 20)
	assert.Len(t, last, 5)
	assert.Equal(t, 44, last[4])

	assert.Empty(t, pageSlice(items, 4, 20))
	assert.Empty(t, pageSlice(items, 0, 20))
	assert.Empty(t, pageSlice([]int{}, 1, 20))
}
