// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq_test

import (
	"errors"
	"testing"

	"github.com/cobaltgrid/lfq"
)

// =============================================================================
// Ring - Basic Operations
// =============================================================================

func TestRingCap(t *testing.T) {
	q := lfq.NewRing[int](4)
	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}
}

func TestRingCapacityPanics(t *testing.T) {
	cases := []int{0, -1, 32768, 1 << 20}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewRing(%d): want panic, got none", c)
				}
			}()
			lfq.NewRing[int](c)
		}()
	}
}

// TestRingScenario1 exercises a basic interleaved push/pop sequence.
func TestRingScenario1(t *testing.T) {
	q := lfq.NewRing[int](4)
	for _, v := range []int{1, 2, 3} {
		if err := q.TryPush(&v); err != nil {
			t.Fatalf("push %d: %v", v, err)
		}
	}
	mustPop(t, q, 1)
	mustPop(t, q, 2)
	for _, v := range []int{4, 5} {
		if err := q.TryPush(&v); err != nil {
			t.Fatalf("push %d: %v", v, err)
		}
	}
	mustPop(t, q, 3)
	mustPop(t, q, 4)
	mustPop(t, q, 5)
	if _, err := q.TryPop(); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("final pop: got %v, want ErrWouldBlock", err)
	}
}

// TestRingScenario2 exercises full-queue backpressure and recovery.
func TestRingScenario2(t *testing.T) {
	q := lfq.NewRing[int](2)
	push10, push20, push30 := 10, 20, 30
	if err := q.TryPush(&push10); err != nil {
		t.Fatalf("push 10: %v", err)
	}
	if err := q.TryPush(&push20); err != nil {
		t.Fatalf("push 20: %v", err)
	}
	if err := q.TryPush(&push30); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("push 30 on full: got %v, want ErrWouldBlock", err)
	}
	mustPop(t, q, 10)
	if err := q.TryPush(&push30); err != nil {
		t.Fatalf("push 30 after pop: %v", err)
	}
	mustPop(t, q, 20)
	mustPop(t, q, 30)
	if _, err := q.TryPop(); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("final pop: got %v, want ErrWouldBlock", err)
	}
}

// TestRingScenario3 covers capacity 1, close, then drain.
func TestRingScenario3(t *testing.T) {
	q := lfq.NewRing[rune](1)
	a, b := 'a', 'b'
	if err := q.TryPush(&a); err != nil {
		t.Fatalf("push 'a': %v", err)
	}
	q.Close()
	if err := q.TryPush(&b); !errors.Is(err, lfq.ErrClosed) {
		t.Fatalf("push after close: got %v, want ErrClosed", err)
	}
	mustPop(t, q, 'a')
	if _, err := q.TryPop(); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("pop drained: got %v, want ErrWouldBlock", err)
	}
	if !q.IsClosed() {
		t.Fatal("IsClosed: want true")
	}
}

// TestRingScenario5 verifies peek does not advance the cursor and is
// idempotent across repeated calls.
func TestRingScenario5(t *testing.T) {
	q := lfq.NewRing[int](3)
	for _, v := range []int{1, 2, 3} {
		if err := q.TryPush(&v); err != nil {
			t.Fatalf("push %d: %v", v, err)
		}
	}
	mustPeek(t, q, 1)
	mustPop(t, q, 1)
	mustPeek(t, q, 2)
	mustPeek(t, q, 2) // idempotent: peek did not claim the slot
	mustPop(t, q, 2)
	mustPop(t, q, 3)
}

// TestRingBoundaryC1 covers the smallest possible ring, capacity 1.
func TestRingBoundaryC1(t *testing.T) {
	q := lfq.NewRing[int](1)
	v1 := 1
	if err := q.TryPush(&v1); err != nil {
		t.Fatalf("first push: %v", err)
	}
	mustPop(t, q, 1)
	v2 := 2
	if err := q.TryPush(&v2); err != nil {
		t.Fatalf("push after pop: %v", err)
	}
	v3 := 3
	if err := q.TryPush(&v3); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("second consecutive push: got %v, want ErrWouldBlock", err)
	}
}

// TestRingCapacityWraparound checks that after Cap() pushes and pops, the
// ring behaves as if freshly constructed.
func TestRingCapacityWraparound(t *testing.T) {
	q := lfq.NewRing[int](4)
	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			v := round*10 + i
			if err := q.TryPush(&v); err != nil {
				t.Fatalf("round %d push %d: %v", round, i, err)
			}
		}
		for i := 0; i < 4; i++ {
			want := round*10 + i
			mustPop(t, q, want)
		}
		if _, err := q.TryPop(); !errors.Is(err, lfq.ErrWouldBlock) {
			t.Fatalf("round %d: queue not empty after full drain", round)
		}
	}
}

func TestRingTryPushValue(t *testing.T) {
	q := lfq.NewRing[string](2)
	if err := q.TryPushValue("hello"); err != nil {
		t.Fatalf("TryPushValue: %v", err)
	}
	v, err := q.TryPop()
	if err != nil {
		t.Fatalf("TryPop: %v", err)
	}
	if v != "hello" {
		t.Fatalf("TryPop: got %q, want %q", v, "hello")
	}
}

func TestRingCloseIdempotent(t *testing.T) {
	q := lfq.NewRing[int](2)
	q.Close()
	q.Close()
	q.Close()
	if !q.IsClosed() {
		t.Fatal("IsClosed: want true")
	}
	v := 1
	if err := q.TryPush(&v); !errors.Is(err, lfq.ErrClosed) {
		t.Fatalf("push after repeated close: got %v, want ErrClosed", err)
	}
}

func TestRingLenAdvisory(t *testing.T) {
	q := lfq.NewRing[int](4)
	if q.Len() != 0 {
		t.Fatalf("Len on empty: got %d, want 0", q.Len())
	}
	for i := 0; i < 3; i++ {
		v := i
		if err := q.TryPush(&v); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	if q.Len() != 3 {
		t.Fatalf("Len after 3 pushes: got %d, want 3", q.Len())
	}
	mustPop(t, q, 0)
	if q.Len() != 2 {
		t.Fatalf("Len after pop: got %d, want 2", q.Len())
	}
}

func TestRingEnqueueDequeueAliasesSatisfyQueue(t *testing.T) {
	var q lfq.Queue[int] = lfq.NewRing[int](2)
	v := 42
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	got, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got != 42 {
		t.Fatalf("Dequeue: got %d, want 42", got)
	}
}

func TestRingIsClosedClassification(t *testing.T) {
	q := lfq.NewRing[int](1)
	v := 1
	if err := q.TryPush(&v); err != nil {
		t.Fatalf("push: %v", err)
	}
	q.Close()
	err := q.TryPush(&v)
	if !lfq.IsClosed(err) {
		t.Fatalf("IsClosed(%v): want true", err)
	}
	if lfq.IsWouldBlock(err) {
		t.Fatalf("IsWouldBlock(%v): want false", err)
	}
}

func TestRingErrorClassificationHelpers(t *testing.T) {
	q := lfq.NewRing[int](1)
	if _, err := q.TryPop(); !lfq.IsWouldBlock(err) || !lfq.IsSemantic(err) || !lfq.IsNonFailure(err) {
		t.Fatalf("empty pop: got %v, want WouldBlock+Semantic+NonFailure", err)
	}
	if lfq.IsNonFailure(nil) != true {
		t.Fatal("IsNonFailure(nil): want true")
	}
}

func TestBuildRing(t *testing.T) {
	q := lfq.BuildRing[int](lfq.New(4))
	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}
	v := 7
	if err := q.TryPush(&v); err != nil {
		t.Fatalf("push: %v", err)
	}
	mustPop(t, q, 7)
}

func TestBuilderCapacityPanics(t *testing.T) {
	cases := []int{0, -1, 32768}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d): want panic, got none", c)
				}
			}()
			lfq.New(c)
		}()
	}
}

func mustPop[T comparable](t *testing.T, q *lfq.Ring[T], want T) {
	t.Helper()
	got, err := q.TryPop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if got != want {
		t.Fatalf("pop: got %v, want %v", got, want)
	}
}

func mustPeek[T comparable](t *testing.T, q *lfq.Ring[T], want T) {
	t.Helper()
	got, ok := q.TryPeek()
	if !ok {
		t.Fatalf("peek: got ok=false, want value %v", want)
	}
	if got != want {
		t.Fatalf("peek: got %v, want %v", got, want)
	}
}
