// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfq provides a bounded, lock-free, lap-counted ring-buffer
// queue for producer/consumer coordination across goroutines.
//
// # Quick Start
//
//	q := lfq.NewRing[Event](1024)
//
//	// Producer
//	ev := Event{}
//	if err := q.TryPush(&ev); err != nil {
//	    // lfq.IsWouldBlock(err): queue full
//	    // lfq.IsClosed(err): queue closed
//	}
//
//	// Consumer
//	ev, err := q.TryPop()
//	if lfq.IsWouldBlock(err) {
//	    // queue empty, try again later
//	}
//
// Queues can also be constructed through the fluent [Builder]:
//
//	q := lfq.BuildRing[Event](lfq.New(1024))
//
// # Algorithm
//
// [Ring] packs each side's position and lap count into a single 32-bit
// cursor (position in the low 16 bits, lap count in the high 16 bits)
// rather than a monotonic index, and each slot's occupancy is encoded
// entirely in the parity of its own atomic 16-bit lap counter — even
// means writable, odd means readable. There is no separate empty/full
// flag: a try-push or try-pop computes the expected lap for the slot
// its cursor addresses, compares it against the slot's actual lap, and
// either claims the slot with a compare-and-swap, retries (another
// goroutine on the same side got there first), or reports
// [ErrWouldBlock] (the other side hasn't caught up yet).
//
// The producer cursor's top bit doubles as a one-shot closed flag,
// checked in the same acquire load that begins slot selection — no
// extra synchronization is needed to make Close visible to producers.
//
// Ring is correct under full multi-producer/multi-consumer concurrency
// and is therefore safe for SPSC, MPSC, and SPMC workloads as well;
// the package exposes a single implementation rather than per-pattern
// specializations.
//
// # Basic Usage
//
//	q := lfq.NewRing[int](1024)
//
//	// Enqueue (non-blocking)
//	value := 42
//	err := q.TryPush(&value)
//	if lfq.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	// Dequeue (non-blocking)
//	elem, err := q.TryPop()
//	if lfq.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// # Common Pattern: Pipeline Stage
//
//	// Stage 1 → Queue → Stage 2
//	q := lfq.NewRing[Data](1024)
//
//	go func() { // Producer (Stage 1)
//	    backoff := iox.Backoff{}
//	    for data := range input {
//	        for q.TryPush(&data) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	    q.Close()
//	}()
//
//	go func() { // Consumer (Stage 2)
//	    backoff := iox.Backoff{}
//	    for {
//	        data, err := q.TryPop()
//	        if lfq.IsWouldBlock(err) {
//	            if q.IsClosed() {
//	                return // drained and closed: done
//	            }
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(data)
//	    }
//	}()
//
// # Error Handling
//
// TryPush/TryPop return [ErrWouldBlock] when the operation cannot
// proceed immediately (full or empty, respectively). This error is
// sourced from [code.hybscloud.com/iox] for ecosystem consistency.
// TryPush additionally returns [ErrClosed] once [Ring.Close] has been
// called; TryPop is unaffected by Close and keeps draining remaining
// elements until the ring is empty.
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.TryPush(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !lfq.IsWouldBlock(err) {
//	        return err // closed, or some other terminal condition
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	lfq.IsWouldBlock(err)  // true if queue full/empty
//	lfq.IsSemantic(err)    // true if control flow signal
//	lfq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//	lfq.IsClosed(err)      // true if the queue has been closed
//
// # Capacity and Length
//
// Capacity is used exactly as given — no power-of-2 rounding — and
// must be in [1, 32767]; one bit of the 16-bit lap field is reserved
// for the closed flag steganographically encoded in the producer
// cursor.
//
//	q := lfq.NewRing[int](1000) // capacity exactly 1000
//
// Len is intentionally advisory: it reads a relaxed counter that may
// transiently fall outside [0, Cap()] under concurrent access. Never
// use it for correctness decisions — it is a hint, not a
// synchronization point.
//
// # Peeking
//
// TryPeek returns a copy of the next readable value without claiming
// the slot: the consumer cursor is left untouched and the slot's lap
// is not advanced, so repeated TryPeek calls are idempotent and a
// following TryPop still sees the same value.
//
//	v, ok := q.TryPeek()
//	if ok {
//	    // v is the next value TryPop would return
//	}
//
// # Thread Safety
//
// All Ring operations are safe for any number of concurrent producer
// and consumer goroutines. Close is safe to call concurrently with
// TryPush/TryPop and is idempotent.
//
// # Graceful Shutdown
//
// Close marks the queue closed: every subsequent TryPush/TryPushValue
// call returns [ErrClosed], while TryPop keeps draining whatever
// remains until the ring reports empty, after which it returns
// [ErrWouldBlock] indefinitely.
//
//	// Producer goroutines finish
//	prodWg.Wait()
//	q.Close()
//
//	// Consumers drain remaining items, then see ErrWouldBlock forever
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) and atomic loads/stores, but it is not a formal
// verifier for lock-free algorithms in general: it can miss a
// happens-before relationship an algorithm relies on if that relation
// is never expressed through an instrumented atomic operation. Ring's
// protocol gates every piece of visible state — the cursor advance and
// each slot's lap transition — through atomix's atomic primitives, so
// its tests run under the race detector directly rather than being
// excluded from it.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions during CAS retry loops.
package lfq
