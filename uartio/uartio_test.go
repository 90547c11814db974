// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uartio

import (
	"errors"
	"testing"
)

// stream is an io.ReadWriter that serves canned reads and records writes.
// Zero-length results simulate a serial port with a zero read timeout.
type stream struct {
	reads   [][]byte
	written []byte
	err     error
}

func (s *stream) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if len(s.reads) == 0 {
		return 0, nil
	}
	n := copy(p, s.reads[0])
	s.reads[0] = s.reads[0][n:]
	if len(s.reads[0]) == 0 {
		s.reads = s.reads[1:]
	}
	return n, nil
}

func (s *stream) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.written = append(s.written, p...)
	return len(p), nil
}

func TestWrapReadByte(t *testing.T) {
	s := &stream{reads: [][]byte{{0xFF}, {0x86}}}
	b := Wrap(s)

	v, err := b.ReadByte()
	if err != nil || v != 0xFF {
		t.Fatalf("ReadByte() = 0x%02X, %v; want 0xFF, nil", v, err)
	}
	v, err = b.ReadByte()
	if err != nil || v != 0x86 {
		t.Fatalf("ReadByte() = 0x%02X, %v; want 0x86, nil", v, err)
	}
	// Nothing buffered: a zero-length read maps to ErrNotReady.
	if _, err = b.ReadByte(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
}

func TestWrapWriteByte(t *testing.T) {
	s := &stream{}
	b := Wrap(s)
	for _, v := range []byte{0xFF, 0x01, 0x86} {
		if err := b.WriteByte(v); err != nil {
			t.Fatal(err)
		}
	}
	if want := []byte{0xFF, 0x01, 0x86}; string(s.written) != string(want) {
		t.Fatalf("wrote % X, want % X", s.written, want)
	}
}

func TestWrapPropagatesErrors(t *testing.T) {
	fault := errors.New("device unplugged")
	b := Wrap(&stream{err: fault})
	if _, err := b.ReadByte(); !errors.Is(err, fault) {
		t.Fatalf("read err = %v, want %v", err, fault)
	}
	if err := b.WriteByte(0xFF); !errors.Is(err, fault) {
		t.Fatalf("write err = %v, want %v", err, fault)
	}
}
