// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// maxRingCapacity is 2^15-1: one bit of the 16-bit lap field is reserved
// for the closed flag steganographically encoded in the send cursor.
const maxRingCapacity = 1<<15 - 1

// ringSlot is one position of a [Ring]'s backing array: a value cell plus
// the atomic lap counter that is the slot's entire state machine (even
// lap => writable, odd lap => readable). There is no separate occupancy
// flag — lap parity is the occupancy flag.
type ringSlot[T any] struct {
	lap   atomix.Uint16
	value T
}

// Ring is a bounded, lock-free, lap-counted ring buffer queue.
//
// Ring packs each side's position and lap count into a single 32-bit
// cursor (atomix.Uint32) rather than a monotonic 64-bit index, and adds an
// explicit closed state: the top bit of the send cursor's lap field is a
// one-shot closed flag, checked in the same acquire load that begins slot
// selection. Capacity is therefore bounded to [1, 32767].
//
// Ring is correct under full multi-producer/multi-consumer concurrency
// and is safe to use for SPSC, MPSC, and SPMC workloads as well — the
// package exposes a single implementation rather than per-pattern
// specializations, since MPMC correctness is a strict superset.
//
// Ring satisfies [Producer][T] and [Consumer][T] via Enqueue/Dequeue
// (aliases of TryPush/TryPop), and additionally offers TryPushValue (move-style insertion), TryPeek
// (non-claiming read), Close/IsClosed, and an advisory Len.
type Ring[T any] struct {
	_        ringPad
	send     atomix.Uint32 // producer cursor: pos|lap, top lap bit = closed
	_        ringPad
	recv     atomix.Uint32 // consumer cursor: pos|lap
	_        ringPad
	length   atomix.Int32 // advisory; relaxed, may transiently leave [0,capacity]
	capacity uint16
	buf      []ringSlot[T]
}

// NewRing creates a [Ring] with the given capacity.
//
// Capacity is used exactly as given (no power-of-2 rounding — Ring
// addresses slots modulo capacity directly rather than via a bitmask).
// Panics if capacity is not in [1, 32767].
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 || capacity > maxRingCapacity {
		panic("lfq: ring capacity must be in [1, 32767]")
	}

	q := &Ring[T]{
		capacity: uint16(capacity),
		buf:      make([]ringSlot[T], capacity),
	}
	// recv starts one lap ahead of send: slot 0 is writable (lap 0) before
	// it is readable (lap 1), and the consumer must wait for that first
	// publish.
	q.recv.StoreRelaxed(uint32(packCursor(0, 1)))
	return q
}

// Cap returns the queue capacity.
func (q *Ring[T]) Cap() int {
	return int(q.capacity)
}

// Len returns the advisory length. Relaxed ordering: may momentarily read
// a value outside [0, Cap()] under concurrent access. Never use Len for
// correctness decisions — it is a hint, not a synchronization point.
func (q *Ring[T]) Len() int {
	return int(q.length.LoadRelaxed())
}

// IsClosed reports whether Close has been called. Relaxed ordering.
func (q *Ring[T]) IsClosed() bool {
	return cursor(q.send.LoadRelaxed()).closed()
}

// Close marks the queue closed. Idempotent: safe to call more than once,
// and safe to call concurrently with producers/consumers. After Close,
// every subsequent TryPush/TryPushValue returns [ErrClosed]; TryPop keeps
// draining remaining elements until the ring is empty, after which it
// returns [ErrWouldBlock] indefinitely. There is no combined
// closed-and-empty signal at this layer — compose one from IsClosed and a
// failing TryPop if needed.
func (q *Ring[T]) Close() {
	sw := spin.Wait{}
	for {
		x := cursor(q.send.LoadAcquire())
		if x.closed() {
			return
		}
		nx := x.withClosed()
		if q.send.CompareAndSwapAcqRel(uint32(x), uint32(nx)) {
			return
		}
		sw.Once()
	}
}

// selectSlot runs the slot-acquisition protocol against one side's cursor.
// isSend distinguishes the producer side (which observes the closed
// flag) from the consumer side (which does not). On success it returns
// the claimed slot and the lap it was claimed at; the caller must
// publish by storing elap+1 into slot.lap with release ordering.
func (q *Ring[T]) selectSlot(field *atomix.Uint32, isSend bool) (slot *ringSlot[T], elap uint16, err error) {
	sw := spin.Wait{}
	for {
		x := cursor(field.LoadAcquire())
		if isSend && x.closed() {
			return nil, 0, ErrClosed
		}

		pos := x.pos()
		lap := x.lap()
		s := &q.buf[pos]
		sLap := s.lap.LoadAcquire()

		switch d := lapAhead(lap, sLap); {
		case d == 0:
			nx := x.next(q.capacity)
			if field.CompareAndSwapAcqRel(uint32(x), uint32(nx)) {
				return s, sLap, nil
			}
			// Lost the race to another thread on this side; retry.
		case d > 0:
			// Cursor is ahead of the slot. Re-load to close the race
			// where the other side advanced the slot between the load
			// above and this comparison; only report terminal
			// empty/full if the slot is still behind after the re-load.
			if lapAhead(lap, s.lap.LoadAcquire()) > 0 {
				return nil, 0, ErrWouldBlock
			}
		default:
			// Slot is ahead of the cursor: another thread on this side
			// already progressed past it. Retry.
		}
		sw.Once()
	}
}

// TryPush copies *v into the queue (non-blocking).
// Returns nil on success, [ErrWouldBlock] if full, [ErrClosed] if closed.
func (q *Ring[T]) TryPush(v *T) error {
	slot, elap, err := q.selectSlot(&q.send, true)
	if err != nil {
		return err
	}
	slot.value = *v
	slot.lap.StoreRelease(elap + 1)
	q.length.AddRelaxed(1)
	return nil
}

// TryPushValue moves v into the queue (non-blocking). v is consumed on
// success; on failure the caller still owns it (Go has no move-out
// semantics, but the queue never observes a failed v).
// Returns nil on success, [ErrWouldBlock] if full, [ErrClosed] if closed.
func (q *Ring[T]) TryPushValue(v T) error {
	slot, elap, err := q.selectSlot(&q.send, true)
	if err != nil {
		return err
	}
	slot.value = v
	slot.lap.StoreRelease(elap + 1)
	q.length.AddRelaxed(1)
	return nil
}

// TryPop removes and returns an element (non-blocking).
// Returns (zero-value, [ErrWouldBlock]) if empty.
func (q *Ring[T]) TryPop() (T, error) {
	slot, elap, err := q.selectSlot(&q.recv, false)
	if err != nil {
		var zero T
		return zero, err
	}
	v := slot.value
	var zero T
	slot.value = zero
	slot.lap.StoreRelease(elap + 1)
	q.length.AddRelaxed(-1)
	return v, nil
}

// Enqueue is an alias for TryPush, satisfying [Producer][T] so a *Ring[T]
// can be used anywhere the rest of the package's [Queue][T] is expected.
func (q *Ring[T]) Enqueue(elem *T) error {
	return q.TryPush(elem)
}

// Dequeue is an alias for TryPop, satisfying [Consumer][T].
func (q *Ring[T]) Dequeue() (T, error) {
	return q.TryPop()
}

// TryPeek returns a copy of the next readable value without claiming the
// slot: the recv cursor is left untouched and the slot's lap is not
// advanced.
//
// TryPeek never claims ownership of the slot, so a following TryPop
// re-selects the same slot and repeated TryPeek calls are idempotent.
//
// Because the slot is not claimed, a concurrent TryPop/TryPush pair may
// race ahead of a TryPeek between its load and the caller observing the
// result — TryPeek is a hint, like Len, not a reservation.
func (q *Ring[T]) TryPeek() (T, bool) {
	var zero T
	x := cursor(q.recv.LoadAcquire())
	pos := x.pos()
	lap := x.lap()
	slot := &q.buf[pos]
	elap := slot.lap.LoadAcquire()
	if lapAhead(lap, elap) != 0 {
		return zero, false
	}
	return slot.value, true
}
