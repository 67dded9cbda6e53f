// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build lfq_embedded

package lfq

// ringPad isolates the send and recv cursors of [Ring] onto distinct
// cache lines on small-cache-line embedded targets (dual-core
// microcontrollers such as ESP32 or the Portenta H7's M7 core). 32
// bytes matches those targets' cache line size; build with
// -tags lfq_embedded to use it.
type ringPad [32]byte
