// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mhz19

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/winsen-go/devices/uartio"
)

var (
	// ErrInvalidParameter is returned when a caller-supplied value is out of
	// range. Nothing is written to the transport.
	ErrInvalidParameter = errors.New("mhz19: parameter out of range")
	// ErrUnsupportedCommand is returned when an experimental command is used
	// without Opts.Experimental. Nothing is written to the transport.
	ErrUnsupportedCommand = errors.New("mhz19: experimental commands not enabled")
	// ErrTransactionInProgress is returned by Begin while a previous
	// transaction on the same device has not finished.
	ErrTransactionInProgress = errors.New("mhz19: transaction already in progress")
)

// PPM=Parts Per Million. Units of measure for CO2 concentration.
type PPM int

func (p PPM) String() string {
	return fmt.Sprintf("%d PPM", int(p))
}

// Env is one sensor reading. Temperature is only populated when experimental
// commands are enabled; pressure and humidity are always 0 since the sensor
// does not measure them.
type Env struct {
	physic.Env
	CO2 PPM
}

func (e *Env) String() string {
	return fmt.Sprintf("CO2: %s Temperature: %s", e.CO2.String(), e.Temperature.String())
}

// Opts holds the configuration options for the device.
type Opts struct {
	// Address is the sensor address, byte 1 of every command frame. The
	// default 0x01 addresses a single-sensor bus.
	Address byte
	// Experimental enables the commands that are not uniformly supported
	// across the MH-Z19/MH-Z19B/MH-Z14 variants. Sending them to a variant
	// that rejects them can produce unpredictable replies, so they are off
	// by default.
	Experimental bool
	// PollInterval is how long the blocking methods wait between transport
	// polls. Default is 2ms. At 9600 baud a full exchange takes ~19ms.
	PollInterval time.Duration
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	Address:      DefaultAddress,
	PollInterval: 2 * time.Millisecond,
}

// Dev represents an MH-Z19/MH-Z19B/MH-Z14 sensor on a serial link.
type Dev struct {
	t    uartio.ByteIO
	opts Opts
	mu   sync.Mutex
	// txn is the transaction currently holding the transport, if any.
	txn    *Transaction
	chHalt chan bool
}

// New returns an object that communicates with an MH-Z19 family sensor over
// the given transport. The Opts can be nil.
func New(t uartio.ByteIO, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, errors.New("mhz19: nil transport")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Address == 0 {
		o.Address = DefaultAddress
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultOpts.PollInterval
	}
	return &Dev{t: t, opts: o}, nil
}

// Begin validates c and starts one request/response exchange. The caller
// drives the returned transaction with Poll on its own schedule; this is the
// non-blocking surface for cooperative loops. At most one transaction may be
// in flight per device: Begin fails with ErrTransactionInProgress until the
// previous one finishes or is cancelled.
func (d *Dev) Begin(c Command) (*Transaction, error) {
	cmd, err := c.wire()
	if err != nil {
		return nil, err
	}
	if cmd.experimental && !d.opts.Experimental {
		return nil, fmt.Errorf("%w: opcode 0x%02X", ErrUnsupportedCommand, cmd.op)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	// release() clears txn under d.mu on every terminal transition, so a
	// non-nil txn is in flight. Begin must not inspect the transaction's own
	// state: Poll mutates it without holding d.mu.
	if d.txn != nil {
		return nil, ErrTransactionInProgress
	}
	x := newTransaction(d, d.opts.Address, cmd)
	d.txn = x
	return x, nil
}

func (d *Dev) releaseTxn(x *Transaction) {
	d.mu.Lock()
	if d.txn == x {
		d.txn = nil
	}
	d.mu.Unlock()
}

// command runs one exchange to completion. The context carries the caller's
// deadline; the driver itself has no clock and would poll forever. All
// blocking methods funnel through here.
func (d *Dev) command(ctx context.Context, c Command) ([6]byte, error) {
	var zero [6]byte
	x, err := d.Begin(c)
	if err != nil {
		return zero, err
	}
	for {
		err := x.Poll()
		if err == nil {
			return x.Response()
		}
		if !errors.Is(err, uartio.ErrNotReady) {
			return zero, err
		}
		select {
		case <-ctx.Done():
			x.Cancel()
			return zero, ctx.Err()
		case <-time.After(d.opts.PollInterval):
		}
	}
}

// ReadCO2 returns the filtered CO2 concentration.
func (d *Dev) ReadCO2(ctx context.Context) (PPM, error) {
	data, err := d.command(ctx, ReadCO2{})
	if err != nil {
		return 0, err
	}
	return PPM(beUint16(data[0], data[1])), nil
}

// CalibrateZeroPoint triggers zero point calibration. See CalibrateZeroPoint
// (the command type) for the preconditions.
func (d *Dev) CalibrateZeroPoint(ctx context.Context) error {
	_, err := d.command(ctx, CalibrateZeroPoint{})
	return err
}

// CalibrateSpanPoint triggers span point calibration against span ppm.
func (d *Dev) CalibrateSpanPoint(ctx context.Context, span uint16) error {
	_, err := d.command(ctx, CalibrateSpanPoint{Span: span})
	return err
}

// SetDetectionRange sets the detection range in ppm (MH-Z19B only).
func (d *Dev) SetDetectionRange(ctx context.Context, rng uint32) error {
	_, err := d.command(ctx, SetDetectionRange{Range: rng})
	return err
}

// SetAutoCalibration enables or disables automatic baseline correction.
func (d *Dev) SetAutoCalibration(ctx context.Context, enabled bool) error {
	_, err := d.command(ctx, SetAutoCalibration{Enabled: enabled})
	return err
}

// ReadRawCO2 returns the unclamped CO2 concentration. Experimental.
func (d *Dev) ReadRawCO2(ctx context.Context) (PPM, error) {
	data, err := d.command(ctx, ReadRawCO2{})
	if err != nil {
		return 0, err
	}
	return PPM(beUint16(data[2], data[3])), nil
}

// ReadTemperature returns the sensor's internal temperature. Experimental;
// the resolution is one degree.
func (d *Dev) ReadTemperature(ctx context.Context) (physic.Temperature, error) {
	data, err := d.command(ctx, ReadTemperature{})
	if err != nil {
		return 0, err
	}
	deg := int(data[2]) - 40
	return physic.ZeroCelsius + physic.Temperature(deg)*physic.Celsius, nil
}

// DetectionRange returns the configured detection range in ppm. Experimental.
func (d *Dev) DetectionRange(ctx context.Context) (uint32, error) {
	data, err := d.command(ctx, GetDetectionRange{})
	if err != nil {
		return 0, err
	}
	return uint32(beUint16(data[0], data[1]))<<16 | uint32(beUint16(data[2], data[3])), nil
}

// AnalogBounds returns the concentration bounds used for the analog output.
// Experimental.
func (d *Dev) AnalogBounds(ctx context.Context) (high, low PPM, err error) {
	data, err := d.command(ctx, GetAnalogBounds{})
	if err != nil {
		return 0, 0, err
	}
	return PPM(beUint16(data[0], data[1])), PPM(beUint16(data[2], data[3])), nil
}

// FirmwareVersion returns the firmware version string. Experimental.
func (d *Dev) FirmwareVersion(ctx context.Context) (string, error) {
	data, err := d.command(ctx, GetFirmwareVersion{})
	if err != nil {
		return "", err
	}
	return string(data[0:4]), nil
}

// Reset restarts the sensor MCU. Experimental. The sensor sends no reply;
// the call returns once the frame has been written.
func (d *Dev) Reset(ctx context.Context) error {
	_, err := d.command(ctx, Reset{})
	return err
}

// Probe reports whether a sensor is answering on the transport. The MH-Z19B
// needs two attempts to get past its bootloader prompt and its first replies
// can be corrupt, so protocol errors on the early attempts are ignored;
// transport errors are returned as-is.
func (d *Dev) Probe(ctx context.Context) (bool, error) {
	for i := 0; i < 2; i++ {
		_, err := d.command(ctx, ReadCO2{})
		if err == nil {
			return true, nil
		}
		if !isProtocolErr(err) {
			return false, err
		}
	}
	_, err := d.command(ctx, ReadCO2{})
	if err == nil {
		return true, nil
	}
	if isProtocolErr(err) {
		return false, nil
	}
	return false, err
}

func isProtocolErr(err error) bool {
	return errors.Is(err, ErrInvalidStartByte) ||
		errors.Is(err, ErrChecksumMismatch) ||
		errors.Is(err, ErrUnexpectedReply)
}

// Sense reads the sensor once into e. CO2 is always populated; Temperature is
// populated only when experimental commands are enabled.
func (d *Dev) Sense(ctx context.Context, e *Env) error {
	e.Temperature = 0
	e.Pressure = 0
	e.Humidity = 0
	e.CO2 = 0

	ppm, err := d.ReadCO2(ctx)
	if err != nil {
		return err
	}
	e.CO2 = ppm
	if d.opts.Experimental {
		t, err := d.ReadTemperature(ctx)
		if err != nil {
			return err
		}
		e.Temperature = t
	}
	return nil
}

// SenseContinuous reads the sensor on the specified interval and writes
// readings to the returned channel until the context ends or Halt is called.
func (d *Dev) SenseContinuous(ctx context.Context, interval time.Duration) (<-chan Env, error) {
	d.mu.Lock()
	if d.chHalt != nil {
		d.mu.Unlock()
		return nil, errors.New("mhz19: SenseContinuous() running already")
	}
	ch := make(chan bool)
	d.chHalt = ch
	d.mu.Unlock()

	channelSize := 16
	channel := make(chan Env, channelSize)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(channel)
		defer func() {
			d.mu.Lock()
			if d.chHalt == ch {
				d.chHalt = nil
			}
			d.mu.Unlock()
		}()
		for {
			select {
			case <-ch:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				e := Env{}
				err := d.Sense(ctx, &e)
				if err == nil && len(channel) < channelSize {
					channel <- e
				}
			}
		}
	}()
	return channel, nil
}

// Halt stops a running SenseContinuous. The device itself keeps measuring;
// there is no standby command in this family. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.chHalt != nil {
		close(d.chHalt)
		d.chHalt = nil
	}
	return nil
}

// Precision returns the sensor's resolution: 1 PPM for CO2 and one degree for
// the experimental temperature reading.
func (d *Dev) Precision(e *Env) {
	e.CO2 = 1
	e.Temperature = physic.Celsius
	e.Pressure = 0
	e.Humidity = 0
}

func (d *Dev) String() string {
	return fmt.Sprintf("mhz19: address 0x%02X", d.opts.Address)
}
