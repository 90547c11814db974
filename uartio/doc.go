// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package uartio provides a non-blocking single-byte view of a serial link.
//
// Sensor drivers in this repository exchange short fixed-length frames over
// UART and are advanced by explicit polling rather than by blocking reads.
// ByteIO is the capability they consume: every operation returns immediately,
// reporting ErrNotReady when no progress was possible on this poll.
//
// Use Open for a real serial device, Wrap for anything that implements
// io.ReadWriter, or uartiotest.Playback in tests.
package uartio
