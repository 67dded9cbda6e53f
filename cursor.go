// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// cursor is the packed 32-bit word shared by the send and recv sides of
// [Ring]: the low 16 bits hold the position into the ring, the high 16
// bits hold the lap count. On the send side the top bit of the lap field
// (bit 31 overall) doubles as the closed flag.
type cursor uint32

const cursorClosedBit = uint32(1) << 31

// lapMask is the usable range of a lap counter once one bit is given up
// to the closed flag: 15 bits, i.e. laps wrap modulo 32768 rather than
// 65536. Applied uniformly to every lap value the protocol compares —
// both cursor sides and each slot's own counter — so a slot's raw
// atomix.Uint16 storage can keep incrementing through its full 16-bit
// range without its top bit ever being mistaken for a closed flag: only
// the low 15 bits ever participate in a lap comparison or get folded
// into a cursor word.
const lapMask = uint16(0x7FFF)

func packCursor(pos, lap uint16) cursor {
	return cursor(uint32(lap&lapMask)<<16 | uint32(pos))
}

func (x cursor) pos() uint16 {
	return uint16(uint32(x) & 0xFFFF)
}

// lap returns the cursor's lap count with the closed bit masked out.
func (x cursor) lap() uint16 {
	return uint16((uint32(x) >> 16)) & lapMask
}

func (x cursor) closed() bool {
	return uint32(x)&cursorClosedBit != 0
}

func (x cursor) withClosed() cursor {
	return cursor(uint32(x) | cursorClosedBit)
}

// next computes the cursor value after successfully claiming the slot at
// x's current position: advance the position, or on wraparound reset it
// to zero and advance the lap by two so the lap's parity (even for send,
// odd for recv) is preserved for this side.
func (x cursor) next(capacity uint16) cursor {
	pos := x.pos()
	lap := x.lap()
	closed := x.closed()
	var nx cursor
	if pos+1 < capacity {
		nx = cursor(uint32(x) + 1)
	} else {
		nx = packCursor(0, (lap+2)&lapMask)
	}
	if closed {
		nx = nx.withClosed()
	}
	return nx
}

// lapAhead reports the signed distance a - b between two lap values,
// used to classify EMPTY/FULL vs retry. Both inputs are masked to the
// 15-bit usable lap range before subtracting, so wraparound (~32k laps,
// per lapMask) is classified correctly regardless of which raw 16-bit
// counter (cursor or slot) they came from.
func lapAhead(a, b uint16) int16 {
	// Modular difference in the 15-bit lap space, sign-extended from bit 14.
	return int16(((a-b)&lapMask)<<1) >> 1
}
