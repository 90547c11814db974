// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mhz19 controls the Winsen MH-Z19, MH-Z19B and MH-Z14 infrared CO2
// sensors over their 9600 baud serial interface.
//
// The sensors speak fixed 9-byte command/response frames. The driver is built
// around a polled, non-blocking transaction over a uartio.ByteIO transport:
// Dev.Begin starts an exchange that the caller advances with Poll from a
// cooperative loop, while the per-command methods (ReadCO2, CalibrateZeroPoint,
// ...) drive the same machinery under a context deadline. The driver never
// retries on its own; retry and timeout policy belong to the caller.
//
// Commands that are not uniformly supported across the sensor variants are
// disabled unless Opts.Experimental is set.
//
// **Datasheets:**
//
// MH-Z19: https://www.winsen-sensor.com/d/files/PDF/Infrared%20Gas%20Sensor/NDIR%20CO2%20SENSOR/MH-Z19%20CO2%20Ver1.0.pdf
//
// MH-Z19B: https://www.winsen-sensor.com/d/files/infrared-gas-sensor/mh-z19b-co2-ver1_0.pdf
//
// MH-Z14: https://www.winsen-sensor.com/d/files/infrared-gas-sensor/mh-z14a_co2-manual-v1_01.pdf
package mhz19
