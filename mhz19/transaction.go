// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mhz19

import (
	"errors"
	"fmt"

	"github.com/winsen-go/devices/uartio"
)

var (
	// ErrUnexpectedReply is returned when a valid response frame echoes a
	// different opcode than the one requested.
	ErrUnexpectedReply = errors.New("mhz19: unexpected reply opcode")
	// ErrCancelled is reported by a transaction that was abandoned with
	// Cancel before reaching a result.
	ErrCancelled = errors.New("mhz19: transaction cancelled")
)

type txState int

const (
	txSending txState = iota
	txAwaiting
	txDone
	txFailed
)

// Transaction drives one request/response exchange over the transport. It
// holds exclusive use of the device's transport until it reaches a terminal
// state or is cancelled, and is advanced only by Poll: one transport
// operation per call, never blocking. A Transaction is not safe for
// concurrent use.
type Transaction struct {
	t     uartio.ByteIO
	cmd   command
	out   frame
	in    frame
	state txState
	// off is the next byte to send while sending, then the number of
	// response bytes collected.
	off int
	err error
	dev *Dev
}

func newTransaction(d *Dev, addr byte, cmd command) *Transaction {
	return &Transaction{
		t:   d.t,
		cmd: cmd,
		out: newFrame(addr, cmd.op, cmd.payload),
		dev: d,
	}
}

// Poll advances the exchange by at most one transport operation. It returns
// uartio.ErrNotReady while the exchange is still in flight (poll again), nil
// once the response has been received and validated, and any other error once
// the exchange has failed. Terminal results are sticky: polling a finished
// transaction keeps returning the same result.
func (x *Transaction) Poll() error {
	switch x.state {
	case txDone:
		return nil
	case txFailed:
		return x.err
	case txSending:
		return x.pollWrite()
	default:
		return x.pollRead()
	}
}

func (x *Transaction) pollWrite() error {
	if err := x.t.WriteByte(x.out[x.off]); err != nil {
		if errors.Is(err, uartio.ErrNotReady) {
			return uartio.ErrNotReady
		}
		return x.fail(fmt.Errorf("mhz19: write: %w", err))
	}
	x.off++
	if x.off < frameLen {
		return uartio.ErrNotReady
	}
	if x.cmd.noReply {
		return x.finish()
	}
	x.state = txAwaiting
	x.off = 0
	return uartio.ErrNotReady
}

func (x *Transaction) pollRead() error {
	b, err := x.t.ReadByte()
	if err != nil {
		if errors.Is(err, uartio.ErrNotReady) {
			return uartio.ErrNotReady
		}
		return x.fail(fmt.Errorf("mhz19: read: %w", err))
	}
	if x.off == 0 && b != startByte {
		// Noise before the start marker. Drop it and keep scanning so a
		// driver attaching mid-stream locks onto a frame boundary.
		return uartio.ErrNotReady
	}
	x.in[x.off] = b
	x.off++
	if x.off < frameLen {
		return uartio.ErrNotReady
	}
	op, _, err := decodeFrame(x.in)
	if err != nil {
		return x.fail(err)
	}
	if op != x.cmd.op {
		return x.fail(fmt.Errorf("%w: got 0x%02X, want 0x%02X", ErrUnexpectedReply, op, x.cmd.op))
	}
	return x.finish()
}

// Done reports whether the transaction has reached a terminal state.
func (x *Transaction) Done() bool {
	return x.state == txDone || x.state == txFailed
}

// Err returns the terminal error, or nil if the transaction completed or is
// still in flight.
func (x *Transaction) Err() error {
	if x.state == txFailed {
		return x.err
	}
	return nil
}

// Response returns the six data bytes of the validated response frame. It
// returns uartio.ErrNotReady while the exchange is in flight and the terminal
// error if it failed. Fire-and-forget commands yield zero data.
func (x *Transaction) Response() ([6]byte, error) {
	var data [6]byte
	switch x.state {
	case txDone:
		if !x.cmd.noReply {
			copy(data[:], x.in[2:8])
		}
		return data, nil
	case txFailed:
		return data, x.err
	default:
		return data, uartio.ErrNotReady
	}
}

// Cancel abandons an in-flight transaction and releases the transport. The
// sensor may have seen a truncated command and will ignore it. Cancelling a
// finished transaction is a no-op.
func (x *Transaction) Cancel() {
	if !x.Done() {
		_ = x.fail(ErrCancelled)
	}
}

func (x *Transaction) finish() error {
	x.state = txDone
	x.release()
	return nil
}

func (x *Transaction) fail(err error) error {
	x.state = txFailed
	x.err = err
	x.release()
	return err
}

func (x *Transaction) release() {
	if x.dev != nil {
		x.dev.releaseTxn(x)
		x.dev = nil
	}
}
