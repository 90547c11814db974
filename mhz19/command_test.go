// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mhz19

import (
	"errors"
	"testing"
)

func TestCommandSpecs(t *testing.T) {
	tests := []struct {
		name         string
		c            Command
		op           byte
		payload      [5]byte
		experimental bool
		noReply      bool
	}{
		{name: "read co2", c: ReadCO2{}, op: 0x86},
		{name: "calibrate zero", c: CalibrateZeroPoint{}, op: 0x87},
		{
			name:    "calibrate span 2000",
			c:       CalibrateSpanPoint{Span: 2000},
			op:      0x88,
			payload: [5]byte{0x07, 0xD0},
		},
		{
			name:    "set range 5000",
			c:       SetDetectionRange{Range: 5000},
			op:      0x99,
			payload: [5]byte{0x00, 0x00, 0x00, 0x13, 0x88},
		},
		{
			name:    "abc on",
			c:       SetAutoCalibration{Enabled: true},
			op:      0x79,
			payload: [5]byte{0xA0},
		},
		{name: "abc off", c: SetAutoCalibration{}, op: 0x79},
		{name: "read raw", c: ReadRawCO2{}, op: 0x85, experimental: true},
		{name: "read temperature", c: ReadTemperature{}, op: 0x86, experimental: true},
		{name: "get range", c: GetDetectionRange{}, op: 0x9B, experimental: true},
		{name: "analog bounds", c: GetAnalogBounds{}, op: 0xA5, experimental: true},
		{name: "firmware version", c: GetFirmwareVersion{}, op: 0xA0, experimental: true},
		{name: "reset", c: Reset{}, op: 0x8D, experimental: true, noReply: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tt.c.wire()
			if err != nil {
				t.Fatal(err)
			}
			if cmd.op != tt.op {
				t.Fatalf("opcode 0x%02X, want 0x%02X", cmd.op, tt.op)
			}
			if cmd.payload != tt.payload {
				t.Fatalf("payload % X, want % X", cmd.payload[:], tt.payload[:])
			}
			if cmd.experimental != tt.experimental {
				t.Fatalf("experimental = %t, want %t", cmd.experimental, tt.experimental)
			}
			if cmd.noReply != tt.noReply {
				t.Fatalf("noReply = %t, want %t", cmd.noReply, tt.noReply)
			}
		})
	}
}

func TestCommandParameterValidation(t *testing.T) {
	tests := []struct {
		name string
		c    Command
	}{
		{"span below 1000", CalibrateSpanPoint{Span: 999}},
		{"span zero", CalibrateSpanPoint{}},
		{"span above 10000", CalibrateSpanPoint{Span: 10001}},
		{"range below 2000", SetDetectionRange{Range: 1999}},
		{"range zero", SetDetectionRange{}},
		{"range above 10000", SetDetectionRange{Range: 10001}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.c.wire(); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
