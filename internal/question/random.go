package question

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is a goroutine-safe random source. Factories are shared by every
// player loop, so draws must be serialized.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand seeds a source; a zero seed uses the current time.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Intn(n)
}

// Between returns a value in [lo, hi].
func (r *Rand) Between(lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.r.Shuffle(n, swap)
}

// Sample returns k distinct elements of items in random order.
func Sample[T any](r *Rand, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	r.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = items[idx[i]]
	}
	return out
}
