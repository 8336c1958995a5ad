package ecs

import "iter"

// iComponentStorage is one type-erased archetype column.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Compact() map[int]int
	Iter() iter.Seq[int]
}

const blockSize = 64

// blockStorage keeps components in fixed-size blocks so pointers handed out by Get stay
// valid while the column grows. Freed slots are recycled LIFO.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
}

func locate(index int) (int, int) {
	return index / blockSize, index % blockSize
}

func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if blockIdx, _ := locate(index); blockIdx >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, new([blockSize]bool))
		}
	}

	blockIdx, slotIdx := locate(index)
	cs.blocks[blockIdx][slotIdx] = value
	cs.filled[blockIdx][slotIdx] = true
	return index
}

func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	blockIdx, slotIdx := locate(index)
	return &cs.blocks[blockIdx][slotIdx]
}

func (cs *blockStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	blockIdx, slotIdx := locate(index)
	var zero T
	cs.filled[blockIdx][slotIdx] = false
	cs.blocks[blockIdx][slotIdx] = zero
	cs.freeSlots = append(cs.freeSlots, index)
}

func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	blockIdx, slotIdx := locate(index)
	if blockIdx >= len(cs.filled) {
		return false
	}
	return cs.filled[blockIdx][slotIdx]
}

// Compact moves live slots to the front and returns old index -> new index.
func (cs *blockStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int)
	live := cs.nextIndex - len(cs.freeSlots)

	if live <= 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numBlocks := (live + blockSize - 1) / blockSize
	blocks := make([]*[blockSize]T, numBlocks)
	filled := make([]*[blockSize]bool, numBlocks)
	for i := range blocks {
		blocks[i] = new([blockSize]T)
		filled[i] = new([blockSize]bool)
	}

	writePos := 0
	for readIdx := 0; readIdx < cs.nextIndex; readIdx++ {
		rb, rs := locate(readIdx)
		if !cs.filled[rb][rs] {
			continue
		}
		wb, ws := locate(writePos)
		blocks[wb][ws] = cs.blocks[rb][rs]
		filled[wb][ws] = true
		indexMap[readIdx] = writePos
		writePos++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = writePos
	return indexMap
}

func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if cs.Has(i) && !yield(i) {
				return
			}
		}
	}
}
