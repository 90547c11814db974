// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uartio

import (
	"errors"
	"io"
)

// ErrNotReady is returned by ByteIO operations when no byte could be moved on
// this poll. It is not a failure; the caller retries on its own schedule.
var ErrNotReady = errors.New("uartio: not ready")

// ByteIO is a non-blocking byte transport. Both operations return immediately:
// either a byte was moved, ErrNotReady is returned, or the link failed.
type ByteIO interface {
	// WriteByte queues one byte for transmission.
	WriteByte(b byte) error
	// ReadByte returns the next received byte.
	ReadByte() (byte, error)
}

// Wrap adapts a stream to ByteIO. A zero-length read or write with a nil
// error is reported as ErrNotReady, so streams with a zero read timeout (see
// Open) behave as non-blocking transports.
func Wrap(rw io.ReadWriter) ByteIO {
	return &wrapped{rw: rw}
}

type wrapped struct {
	rw  io.ReadWriter
	buf [1]byte
}

func (w *wrapped) WriteByte(b byte) error {
	w.buf[0] = b
	n, err := w.rw.Write(w.buf[:])
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotReady
	}
	return nil
}

func (w *wrapped) ReadByte() (byte, error) {
	n, err := w.rw.Read(w.buf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotReady
	}
	return w.buf[0], nil
}
