// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mhz19

import "errors"

const (
	frameLen       = 9
	startByte byte = 0xFF
)

// DefaultAddress is the sensor address on a single-sensor bus.
const DefaultAddress byte = 0x01

var (
	// ErrInvalidStartByte is returned when a response frame does not open
	// with the 0xFF start marker.
	ErrInvalidStartByte = errors.New("mhz19: invalid start byte")
	// ErrChecksumMismatch is returned when the trailing byte of a response
	// frame does not match the checksum of its contents.
	ErrChecksumMismatch = errors.New("mhz19: checksum mismatch")
)

// frame is the fixed 9-byte unit of exchange with the sensor:
// start marker, address (or echoed opcode in responses), opcode, five data
// bytes, checksum. A frame is built fresh for every exchange.
type frame [frameLen]byte

// newFrame assembles a command frame for the wire.
func newFrame(addr, op byte, payload [5]byte) frame {
	var f frame
	f[0] = startByte
	f[1] = addr
	f[2] = op
	copy(f[3:8], payload[:])
	f[8] = checksum(f)
	return f
}

// checksum is the two's complement of the byte sum over frame bytes 1..7,
// matching the sensor firmware exactly. A sum that wraps to a multiple of 256
// yields 0x00.
func checksum(f frame) byte {
	var sum byte
	for _, b := range f[1:8] {
		sum += b
	}
	return ^sum + 1
}

// decodeFrame validates f and returns byte 1 (the echoed opcode in a
// response) together with the six bytes that follow it.
func decodeFrame(f frame) (byte, [6]byte, error) {
	var data [6]byte
	if f[0] != startByte {
		return 0, data, ErrInvalidStartByte
	}
	if f[8] != checksum(f) {
		return 0, data, ErrChecksumMismatch
	}
	copy(data[:], f[2:8])
	return f[1], data, nil
}

// beUint16 joins a big-endian byte pair.
func beUint16(high, low byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}
