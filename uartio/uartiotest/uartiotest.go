// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package uartiotest implements scripted test doubles for uartio.ByteIO.
package uartiotest

import (
	"fmt"
	"sync"

	"github.com/winsen-go/devices/uartio"
)

// IO is one scripted exchange: the exact bytes the driver under test must
// write, followed by the bytes served back to it once the write is complete.
type IO struct {
	W []byte
	R []byte
	// Err, if set, is returned by ReadByte in place of response bytes once W
	// has been consumed. It simulates a transport fault mid-exchange.
	Err error
}

// Playback implements uartio.ByteIO with a fixed script of exchanges. Writes
// are checked byte for byte against the script; unscripted traffic panics
// unless DontPanic is set, in which case an error is returned instead.
//
// StallWrites and StallReads make the transport report ErrNotReady that many
// times before every byte, which is how a slow UART looks to a polling
// driver.
type Playback struct {
	Ops         []IO
	DontPanic   bool
	StallWrites int
	StallReads  int

	mu     sync.Mutex
	op     int
	wOff   int
	rOff   int
	wStall int
	rStall int
}

func (p *Playback) WriteByte(b byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next()
	if p.op >= len(p.Ops) {
		return p.fail("write 0x%02x past the end of the script", b)
	}
	io := p.Ops[p.op]
	if p.wOff >= len(io.W) {
		return p.fail("write 0x%02x during the read phase of operation %d", b, p.op)
	}
	if p.wStall < p.StallWrites {
		p.wStall++
		return uartio.ErrNotReady
	}
	p.wStall = 0
	if io.W[p.wOff] != b {
		return p.fail("operation %d byte %d: wrote 0x%02x, want 0x%02x", p.op, p.wOff, b, io.W[p.wOff])
	}
	p.wOff++
	return nil
}

func (p *Playback) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next()
	if p.op >= len(p.Ops) {
		return 0, uartio.ErrNotReady
	}
	io := p.Ops[p.op]
	if p.wOff < len(io.W) {
		// The response does not exist until the request is fully written.
		return 0, uartio.ErrNotReady
	}
	if p.rOff >= len(io.R) {
		if io.Err != nil {
			p.op++
			p.wOff, p.rOff = 0, 0
			return 0, io.Err
		}
		return 0, uartio.ErrNotReady
	}
	if p.rStall < p.StallReads {
		p.rStall++
		return 0, uartio.ErrNotReady
	}
	p.rStall = 0
	b := io.R[p.rOff]
	p.rOff++
	return b, nil
}

// Count returns the number of fully consumed operations.
func (p *Playback) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next()
	return p.op
}

// Close verifies that the whole script was consumed.
func (p *Playback) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next()
	if p.op < len(p.Ops) {
		return fmt.Errorf("uartiotest: %d operations remaining in the script", len(p.Ops)-p.op)
	}
	return nil
}

// next skips over operations that have been fully consumed. Operations with a
// scripted Err are consumed by ReadByte itself.
func (p *Playback) next() {
	for p.op < len(p.Ops) {
		io := p.Ops[p.op]
		if io.Err == nil && p.wOff >= len(io.W) && p.rOff >= len(io.R) {
			p.op++
			p.wOff, p.rOff = 0, 0
			continue
		}
		return
	}
}

func (p *Playback) fail(format string, args ...interface{}) error {
	err := fmt.Errorf("uartiotest: "+format, args...)
	if !p.DontPanic {
		panic(err)
	}
	return err
}

// Record wraps a live transport and keeps a log of the successful traffic,
// grouped into write-then-read exchanges. The log is in Playback script
// format, so a captured session can be replayed in tests.
type Record struct {
	Conn uartio.ByteIO

	mu  sync.Mutex
	Ops []IO
}

func (r *Record) WriteByte(b byte) error {
	if err := r.Conn.WriteByte(b); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Ops) == 0 || len(r.Ops[len(r.Ops)-1].R) > 0 {
		r.Ops = append(r.Ops, IO{})
	}
	last := &r.Ops[len(r.Ops)-1]
	last.W = append(last.W, b)
	return nil
}

func (r *Record) ReadByte() (byte, error) {
	b, err := r.Conn.ReadByte()
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Ops) == 0 {
		r.Ops = append(r.Ops, IO{})
	}
	last := &r.Ops[len(r.Ops)-1]
	last.R = append(last.R, b)
	return b, nil
}

var _ uartio.ByteIO = &Playback{}
var _ uartio.ByteIO = &Record{}
