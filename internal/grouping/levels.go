package grouping

import (
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/paveg/plotframe/internal/series"
)

const (
	levelIndexCapacityFactor = 2
	levelIndexLoadFactor     = 0.75
	levelIndexGrowthFactor   = 2
)

// levelIndex assigns small integer ids to distinct cell values in the order
// they are first seen. Keys are bucketed by xxhash of the canonical cell key
// with separate chaining; entries keep their id when the table grows.
type levelIndex struct {
	buckets  [][]levelEntry
	capacity int
	size     int
}

type levelEntry struct {
	key string
	id  int
}

func newLevelIndex(estimatedSize int) *levelIndex {
	capacity := nextPowerOfTwo(estimatedSize * levelIndexCapacityFactor)
	return &levelIndex{
		buckets:  make([][]levelEntry, capacity),
		capacity: capacity,
	}
}

// idOf returns the id of key, assigning the next id on first sight.
func (li *levelIndex) idOf(key string) int {
	bucket := li.bucket(key)
	for _, entry := range li.buckets[bucket] {
		if entry.key == key {
			return entry.id
		}
	}

	id := li.size
	li.buckets[bucket] = append(li.buckets[bucket], levelEntry{key: key, id: id})
	li.size++

	if float64(li.size) > float64(li.capacity)*levelIndexLoadFactor {
		li.resize()
	}
	return id
}

func (li *levelIndex) bucket(key string) int {
	//nolint:gosec // capacity is a positive power of two
	return int(xxhash.Sum64String(key) & uint64(li.capacity-1))
}

// resize doubles the capacity and rehashes all entries.
func (li *levelIndex) resize() {
	old := li.buckets
	li.capacity *= levelIndexGrowthFactor
	li.buckets = make([][]levelEntry, li.capacity)
	for _, bucket := range old {
		for _, entry := range bucket {
			idx := li.bucket(entry.key)
			li.buckets[idx] = append(li.buckets[idx], entry)
		}
	}
}

// nextPowerOfTwo returns the next power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}

// Levels returns, for each cell, the id of its value where ids are assigned
// 0, 1, 2, ... in order of first appearance.
func Levels(cells []series.Cell) []int {
	index := newLevelIndex(len(cells))
	ids := make([]int, len(cells))
	for i, c := range cells {
		ids[i] = index.idOf(c.Key())
	}
	return ids
}

// renumber applies first-seen-wins re-indexing to integer ids.
func renumber(values []int) []int {
	seen := make(map[int]int)
	ids := make([]int, len(values))
	for i, v := range values {
		id, ok := seen[v]
		if !ok {
			id = len(seen)
			seen[v] = id
		}
		ids[i] = id
	}
	return ids
}
