// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// Options configures queue creation.
type Options struct {
	// Capacity, used exactly as given (see [NewRing]).
	capacity int
}

// Builder creates a [Ring] with fluent configuration.
//
// Example:
//
//	q := lfq.BuildRing[Event](lfq.New(1024))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Panics if capacity is not in [1, 32767], the same bound [NewRing]
// enforces directly.
func New(capacity int) *Builder {
	if capacity <= 0 || capacity > maxRingCapacity {
		panic("lfq: capacity must be in [1, 32767]")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// BuildRing creates a [Ring] using the packed-cursor lap-counted protocol.
//
// Ring always uses exactly the requested number of physical slots (no
// power-of-2 rounding — Ring addresses slots modulo capacity directly)
// and is correct under full MPMC concurrency, so it is already safe for
// SPSC/MPSC/SPMC workloads too.
func BuildRing[T any](b *Builder) *Ring[T] {
	return NewRing[T](b.opts.capacity)
}
