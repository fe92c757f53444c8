package arena

import (
	"sync"
	"testing"
)

func TestArenaInsertGet(t *testing.T) {
	a := New[string](4)
	h1 := a.Insert("one")
	h2 := a.Insert("two")

	if got, ok := a.Get(h1); !ok || got != "one" {
		t.Errorf("Get(h1) = %q, %v, want %q, true", got, ok, "one")
	}
	if got, ok := a.Get(h2); !ok || got != "two" {
		t.Errorf("Get(h2) = %q, %v, want %q, true", got, ok, "two")
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestArenaZeroHandleInvalid(t *testing.T) {
	a := New[int](0)
	a.Insert(7)
	if _, ok := a.Get(Handle{}); ok {
		t.Error("Get(zero handle) should fail")
	}
	if !(Handle{}).IsZero() {
		t.Error("zero handle should report IsZero")
	}
}

func TestArenaStaleHandle(t *testing.T) {
	a := New[int](0)
	h := a.Insert(1)

	if v, ok := a.Remove(h); !ok || v != 1 {
		t.Fatalf("Remove() = %d, %v, want 1, true", v, ok)
	}
	if _, ok := a.Get(h); ok {
		t.Error("Get(removed handle) should fail")
	}

	// The slot is reused with a new generation.
	h2 := a.Insert(2)
	if h2.Index != h.Index {
		t.Errorf("reused index = %d, want %d", h2.Index, h.Index)
	}
	if h2.Generation == h.Generation {
		t.Error("reused slot must bump generation")
	}
	if _, ok := a.Get(h); ok {
		t.Error("stale handle must not see the new value")
	}
	if v, ok := a.Get(h2); !ok || v != 2 {
		t.Errorf("Get(h2) = %d, %v, want 2, true", v, ok)
	}
	if _, ok := a.Remove(h); ok {
		t.Error("Remove(stale) should fail")
	}
}

func TestArenaSetAndEach(t *testing.T) {
	a := New[int](0)
	h1 := a.Insert(1)
	h2 := a.Insert(2)
	a.Insert(3)
	a.Remove(h2)

	if !a.Set(h1, 10) {
		t.Fatal("Set(h1) failed")
	}
	if a.Set(h2, 20) {
		t.Error("Set(removed) should fail")
	}

	sum := 0
	a.Each(func(_ Handle, v int) { sum += v })
	if sum != 13 {
		t.Errorf("Each sum = %d, want 13", sum)
	}
}

func TestArenaConcurrentReads(t *testing.T) {
	a := New[int](0)
	handles := make([]Handle, 100)
	for i := range handles {
		handles[i] = a.Insert(i)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, h := range handles {
				if v, ok := a.Get(h); !ok || v != i {
					t.Errorf("Get(%v) = %d, %v", h, v, ok)
				}
			}
		}()
	}
	wg.Wait()
}
