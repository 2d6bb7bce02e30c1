package xatomic

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

type backendCase[T word] struct {
	name string
	b    backend[T]
}

// allBackends returns every strategy, whichever one the build tags bind to
// the public types.
func allBackends[T word]() []backendCase[T] {
	return []backendCase[T]{
		{"exclusive", exclusive[T]{}},
		{"critical", critical[T]{}},
		{"hashed", hashed[T]{}},
	}
}

// word64 returns an 8-byte aligned word for backend tests.
func word64(t *testing.T) *uint64 {
	t.Helper()
	return (&Uint64{}).ptr()
}

func TestWidthHelpers(t *testing.T) {
	if got := bitsOf[int32](); got != 32 {
		t.Fatalf("bitsOf[int32] = %d", got)
	}
	if got := bitsOf[uint64](); got != 64 {
		t.Fatalf("bitsOf[uint64] = %d", got)
	}
	if got := lowMask[int32](4); got != 0xf {
		t.Fatalf("lowMask[int32](4) = %#x", got)
	}
	if got := lowMask[int32](32); got != -1 {
		t.Fatalf("lowMask[int32](32) = %d", got)
	}
	if got := lowMask[uint64](64); got != ^uint64(0) {
		t.Fatalf("lowMask[uint64](64) = %#x", got)
	}
	if got := shr[int32](-1, 28); got != 0xf {
		t.Fatalf("shr[int32](-1, 28) = %#x, want 0xf", got)
	}
	if got := shr[uint64](1<<63, 63); got != 1 {
		t.Fatalf("shr[uint64](1<<63, 63) = %d", got)
	}
	if !negative[int32](-1) || negative[int32](0) {
		t.Fatal("negative[int32] wrong")
	}
	if !negative[uint64](1<<63) || negative[uint64](1<<63-1) {
		t.Fatal("negative[uint64] wrong")
	}
}

func TestBackendAtomicity(t *testing.T) {
	workers := max(4, runtime.GOMAXPROCS(0))
	const rounds = 2000

	for _, c := range allBackends[int32]() {
		t.Run(c.name+"/int32", func(t *testing.T) {
			var v int32 = 7
			var g errgroup.Group
			for w := range workers {
				g.Go(func() error {
					for range rounds {
						// Net contribution per worker: rounds * (w+1).
						c.b.add(&v, int32(w+2))
						c.b.sub(&v, 1)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}
			want := int32(7)
			for w := range workers {
				want += int32(rounds * (w + 1))
			}
			if got := c.b.load(&v); got != want {
				t.Fatalf("final = %d, want %d", got, want)
			}
		})
	}

	for _, c := range allBackends[uint64]() {
		t.Run(c.name+"/uint64", func(t *testing.T) {
			v := word64(t)
			var g errgroup.Group
			for range workers {
				g.Go(func() error {
					for range rounds {
						c.b.addReturn(v, 1<<32+3)
						c.b.subReturn(v, 1)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}
			want := uint64(workers*rounds) * (1<<32 + 2)
			if got := c.b.load(v); got != want {
				t.Fatalf("final = %#x, want %#x", got, want)
			}
		})
	}
}

func TestBackendNoTearing(t *testing.T) {
	// Every value the writers store has equal halves; a reader that sees
	// unequal halves saw a torn word.
	const rounds = 20000
	for _, c := range allBackends[uint64]() {
		t.Run(c.name, func(t *testing.T) {
			v := word64(t)
			var g errgroup.Group
			for w := range 2 {
				g.Go(func() error {
					for i := range rounds {
						half := uint64(uint32(i*2 + w))
						if i%3 == 0 {
							c.b.store(v, half<<32|half)
						} else {
							c.b.xchg(v, ^(half<<32 | half))
						}
					}
					return nil
				})
			}
			for range 2 {
				g.Go(func() error {
					for range rounds {
						x := c.b.load(v)
						if uint32(x>>32) != uint32(x) {
							return fmt.Errorf("torn read %#016x", x)
						}
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestBackendCompareAndSwap(t *testing.T) {
	for _, c := range allBackends[int32]() {
		t.Run(c.name, func(t *testing.T) {
			var v int32 = 5
			if prev := c.b.cmpxchg(&v, 5, 9); prev != 5 {
				t.Fatalf("matching cmpxchg returned %d, want 5", prev)
			}
			if got := c.b.load(&v); got != 9 {
				t.Fatalf("value after match = %d, want 9", got)
			}
			if prev := c.b.cmpxchg(&v, 5, 11); prev != 9 {
				t.Fatalf("mismatching cmpxchg returned %d, want 9", prev)
			}
			if got := c.b.load(&v); got != 9 {
				t.Fatalf("value after mismatch = %d, want 9", got)
			}
		})
	}
}

func TestBackendCompareAndSwapContended(t *testing.T) {
	// Each successful cmpxchg claims one ticket; the tickets handed out
	// must be exactly 0..total-1.
	const workers = 8
	const perWorker = 500
	for _, c := range allBackends[uint64]() {
		t.Run(c.name, func(t *testing.T) {
			v := word64(t)
			claimed := make([][]uint64, workers)
			var g errgroup.Group
			for w := range workers {
				g.Go(func() error {
					for range perWorker {
						for {
							cur := c.b.load(v)
							if c.b.cmpxchg(v, cur, cur+1) == cur {
								claimed[w] = append(claimed[w], cur)
								break
							}
						}
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}
			seen := make([]bool, workers*perWorker)
			for _, tickets := range claimed {
				for _, tk := range tickets {
					if seen[tk] {
						t.Fatalf("ticket %d claimed twice", tk)
					}
					seen[tk] = true
				}
			}
			if got := c.b.load(v); got != workers*perWorker {
				t.Fatalf("final = %d, want %d", got, workers*perWorker)
			}
		})
	}
}

func TestBackendExchange(t *testing.T) {
	for _, c := range allBackends[uint64]() {
		t.Run(c.name, func(t *testing.T) {
			v := word64(t)
			c.b.store(v, 3)
			if old := c.b.xchg(v, 1<<40); old != 3 {
				t.Fatalf("xchg returned %d, want 3", old)
			}
			if got := c.b.load(v); got != 1<<40 {
				t.Fatalf("value = %d, want %d", got, uint64(1)<<40)
			}
		})
	}
}

func TestBackendReturnVariants(t *testing.T) {
	for _, c := range allBackends[int32]() {
		t.Run(c.name, func(t *testing.T) {
			var v int32
			if got := c.b.addReturn(&v, 10); got != 10 {
				t.Fatalf("addReturn = %d, want 10", got)
			}
			if got := c.b.subReturn(&v, 15); got != -5 {
				t.Fatalf("subReturn = %d, want -5", got)
			}
		})
	}
}

func TestBackendClearMask(t *testing.T) {
	for _, c := range allBackends[uint64]() {
		t.Run(c.name, func(t *testing.T) {
			v := word64(t)
			c.b.store(v, 0xff00ff00ff00ff00)
			c.b.clearMask(v, 0xf0000000000000f0)
			if got := c.b.load(v); got != 0x0f00ff00ff00ff00 {
				t.Fatalf("value = %#x", got)
			}
		})
	}
}

func TestBackendBitQueue(t *testing.T) {
	type field struct {
		value int32
		width uint
	}
	fields := []field{{5, 3}, {0x7f, 4}, {1, 1}, {-1, 6}, {0x1234, 12}}

	for _, c := range allBackends[int32]() {
		t.Run(c.name, func(t *testing.T) {
			var v int32
			for _, f := range fields {
				c.b.push(&v, f.value, f.width)
			}
			var got, want []int32
			for i := len(fields) - 1; i >= 0; i-- {
				got = append(got, c.b.pop(&v, fields[i].width))
				want = append(want, fields[i].value&(1<<fields[i].width-1))
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("pop order mismatch (-want +got):\n%s", diff)
			}
			if rest := c.b.load(&v); rest != 0 {
				t.Fatalf("word not empty after popping everything: %#x", rest)
			}
		})
	}
}

func TestBackendPopIsLogical(t *testing.T) {
	for _, c := range allBackends[int32]() {
		t.Run(c.name, func(t *testing.T) {
			var v int32 = -1
			if got := c.b.pop(&v, 8); got != 0xff {
				t.Fatalf("pop = %#x, want 0xff", got)
			}
			if got := c.b.load(&v); got != 0x00ffffff {
				t.Fatalf("after pop = %#x, want 0x00ffffff", got)
			}
		})
	}
}

func TestBackendDecIfPositive(t *testing.T) {
	for _, c := range allBackends[uint64]() {
		t.Run(c.name, func(t *testing.T) {
			v := word64(t)
			if got := int64(c.b.decIfPositive(v)); got >= 0 {
				t.Fatalf("decIfPositive at 0 = %d, want negative", got)
			}
			if got := c.b.load(v); got != 0 {
				t.Fatalf("value at 0 changed to %d", got)
			}

			c.b.store(v, 5)
			var got []int64
			for range 7 {
				got = append(got, int64(c.b.decIfPositive(v)))
			}
			want := []int64{4, 3, 2, 1, 0, -1, -1}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("decIfPositive sequence (-want +got):\n%s", diff)
			}
			if got := c.b.load(v); got != 0 {
				t.Fatalf("final = %d, want 0", got)
			}
		})
	}
}

func TestBackendAddUnless(t *testing.T) {
	for _, c := range allBackends[uint64]() {
		t.Run(c.name, func(t *testing.T) {
			v := word64(t)
			if c.b.addUnless(v, 1, 0) {
				t.Fatal("addUnless(1, 0) at 0 succeeded")
			}
			if got := c.b.load(v); got != 0 {
				t.Fatalf("value = %d, want 0", got)
			}
			c.b.store(v, 3)
			if !c.b.addUnless(v, 1, 0) {
				t.Fatal("addUnless(1, 0) at 3 failed")
			}
			if got := c.b.load(v); got != 4 {
				t.Fatalf("value = %d, want 4", got)
			}
		})
	}
}

func TestBackendDecIfPositiveContended(t *testing.T) {
	// Many contexts draining a pool must take exactly the pool size and
	// never drive it below zero.
	const pool = 5000
	const workers = 8
	for _, c := range allBackends[int32]() {
		t.Run(c.name, func(t *testing.T) {
			var v int32 = pool
			taken := make([]int, workers)
			var g errgroup.Group
			for w := range workers {
				g.Go(func() error {
					for c.b.decIfPositive(&v) >= 0 {
						taken[w]++
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}
			total := 0
			for _, n := range taken {
				total += n
			}
			if total != pool {
				t.Fatalf("took %d, want %d", total, pool)
			}
			if got := c.b.load(&v); got != 0 {
				t.Fatalf("final = %d, want 0", got)
			}
		})
	}
}

func TestBackendMessagePassing(t *testing.T) {
	// Turns alternate on one word: the writer fills the payload with
	// ordinary stores and publishes an odd turn, the reader checks the
	// payload and hands back the next even turn. Each side must see the
	// other's plain stores once it acquires the turn.
	const rounds = 2000
	for _, c := range allBackends[uint64]() {
		t.Run(c.name, func(t *testing.T) {
			turn := word64(t)
			var payload [4]uint64
			var g errgroup.Group
			g.Go(func() error {
				for i := range uint64(rounds) {
					for c.b.loadAcquire(turn) != 2*i {
						runtime.Gosched()
					}
					for j := range payload {
						payload[j] = i*10 + uint64(j)
					}
					c.b.storeRelease(turn, 2*i+1)
				}
				return nil
			})
			g.Go(func() error {
				for i := range uint64(rounds) {
					for c.b.loadAcquire(turn) != 2*i+1 {
						runtime.Gosched()
					}
					for j, p := range payload {
						if want := i*10 + uint64(j); p != want {
							return fmt.Errorf("turn %d: payload[%d] = %d, want %d", i, j, p, want)
						}
						payload[j] = 0
					}
					c.b.storeRelease(turn, 2*i+2)
				}
				return nil
			})
			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}
			if got := c.b.load(turn); got != 2*rounds {
				t.Fatalf("final turn = %d, want %d", got, 2*rounds)
			}
		})
	}
}
