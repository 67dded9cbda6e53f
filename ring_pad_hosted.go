// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !lfq_embedded

package lfq

// ringPad isolates the send and recv cursors of [Ring] onto distinct
// cache lines on hosted targets: 64 bytes, the common L1 cache line
// size on modern x86-64 and arm64 cores.
type ringPad [64]byte
