// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uartio

import (
	"fmt"

	"go.bug.st/serial"
)

// Port is an open serial device exposed as a ByteIO.
type Port struct {
	name string
	p    serial.Port
	buf  [1]byte
}

// Open opens the named serial device at the given baud rate, configured 8N1.
// The read timeout is set to zero so that reads return immediately with
// whatever the OS has buffered; an empty read surfaces as ErrNotReady.
func Open(name string, baud int) (*Port, error) {
	p, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("uartio: open %s: %w", name, err)
	}
	if err := p.SetReadTimeout(0); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("uartio: %s: %w", name, err)
	}
	return &Port{name: name, p: p}, nil
}

func (p *Port) WriteByte(b byte) error {
	p.buf[0] = b
	n, err := p.p.Write(p.buf[:])
	if err != nil {
		return fmt.Errorf("uartio: %s: %w", p.name, err)
	}
	if n == 0 {
		return ErrNotReady
	}
	return nil
}

func (p *Port) ReadByte() (byte, error) {
	n, err := p.p.Read(p.buf[:])
	if err != nil {
		return 0, fmt.Errorf("uartio: %s: %w", p.name, err)
	}
	if n == 0 {
		return 0, ErrNotReady
	}
	return p.buf[0], nil
}

// Close releases the serial device.
func (p *Port) Close() error {
	return p.p.Close()
}

func (p *Port) String() string {
	return "uartio: " + p.name
}
