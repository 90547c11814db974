// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mhz19

import "fmt"

// The sensor's serial command set.
const (
	opReadCO2         byte = 0x86
	opCalibrateZero   byte = 0x87
	opCalibrateSpan   byte = 0x88
	opSetRange        byte = 0x99
	opAutoCalibration byte = 0x79
	opReadRaw         byte = 0x85
	opGetRange        byte = 0x9B
	opGetFirmware     byte = 0xA0
	opGetAnalogBounds byte = 0xA5
	opReset           byte = 0x8D
)

// Command is one operation from the sensor's command set. The set is closed:
// the value types in this package are the only implementations. Each value
// carries the parameters relevant to its command and nothing else.
type Command interface {
	// wire validates the command's parameters and returns its wire-level
	// description. It fails with ErrInvalidParameter before anything is
	// written to the transport.
	wire() (command, error)
}

// command is the wire-level description of one catalog entry.
type command struct {
	op           byte
	payload      [5]byte
	experimental bool
	// noReply marks fire-and-forget commands: the exchange completes once
	// the request frame has been written.
	noReply bool
}

// ReadCO2 requests the filtered CO2 concentration in ppm.
type ReadCO2 struct{}

func (ReadCO2) wire() (command, error) {
	return command{op: opReadCO2}, nil
}

// CalibrateZeroPoint triggers zero point calibration. The zero point is
// 400 ppm; the sensor must have run in ~400 ppm air for over 20 minutes.
type CalibrateZeroPoint struct{}

func (CalibrateZeroPoint) wire() (command, error) {
	return command{op: opCalibrateZero}, nil
}

// CalibrateSpanPoint triggers span point calibration against the reference
// concentration Span, in ppm. The datasheet requires at least 1000 ppm and
// suggests 2000. Do zero point calibration first.
type CalibrateSpanPoint struct {
	Span uint16
}

func (c CalibrateSpanPoint) wire() (command, error) {
	if c.Span < 1000 || c.Span > 10000 {
		return command{}, fmt.Errorf("%w: span %d ppm", ErrInvalidParameter, c.Span)
	}
	return command{
		op:      opCalibrateSpan,
		payload: [5]byte{byte(c.Span >> 8), byte(c.Span)},
	}, nil
}

// SetDetectionRange sets the detection range in ppm (MH-Z19B only). The wire
// format places the range in payload bytes 1..4, which differs from the
// datasheet but is what the hardware accepts.
type SetDetectionRange struct {
	Range uint32
}

func (c SetDetectionRange) wire() (command, error) {
	if c.Range < 2000 || c.Range > 10000 {
		return command{}, fmt.Errorf("%w: range %d ppm", ErrInvalidParameter, c.Range)
	}
	return command{
		op: opSetRange,
		payload: [5]byte{
			0,
			byte(c.Range >> 24),
			byte(c.Range >> 16),
			byte(c.Range >> 8),
			byte(c.Range),
		},
	}, nil
}

// SetAutoCalibration enables or disables automatic baseline correction (ABC).
type SetAutoCalibration struct {
	Enabled bool
}

func (c SetAutoCalibration) wire() (command, error) {
	var b byte
	if c.Enabled {
		b = 0xA0
	}
	return command{op: opAutoCalibration, payload: [5]byte{b}}, nil
}

// ReadRawCO2 requests the unclamped CO2 concentration. Experimental: not
// every sensor variant documents this opcode.
type ReadRawCO2 struct{}

func (ReadRawCO2) wire() (command, error) {
	return command{op: opReadRaw, experimental: true}, nil
}

// ReadTemperature requests the sensor's internal temperature, which rides in
// byte 4 of the concentration reply. Experimental: the field is undocumented
// and coarse (whole degrees).
type ReadTemperature struct{}

func (ReadTemperature) wire() (command, error) {
	return command{op: opReadCO2, experimental: true}, nil
}

// GetDetectionRange queries the configured detection range. Experimental.
type GetDetectionRange struct{}

func (GetDetectionRange) wire() (command, error) {
	return command{op: opGetRange, experimental: true}, nil
}

// GetAnalogBounds queries the concentration bounds used for the analog
// output. Experimental.
type GetAnalogBounds struct{}

func (GetAnalogBounds) wire() (command, error) {
	return command{op: opGetAnalogBounds, experimental: true}, nil
}

// GetFirmwareVersion queries the firmware version. Experimental.
type GetFirmwareVersion struct{}

func (GetFirmwareVersion) wire() (command, error) {
	return command{op: opGetFirmware, experimental: true}, nil
}

// Reset restarts the sensor MCU. The sensor does not answer, so the exchange
// completes once the frame has been written. Experimental.
type Reset struct{}

func (Reset) wire() (command, error) {
	return command{op: opReset, experimental: true, noReply: true}, nil
}
