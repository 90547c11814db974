// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mhz19_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/winsen-go/devices/mhz19"
	"github.com/winsen-go/devices/uartio"
)

func Example() {
	// The MH-Z19 family talks 9600 baud 8N1.
	p, err := uartio.Open("/dev/ttyUSB0", 9600)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	d, err := mhz19.New(p, nil) // nil for default options or &mhz19.DefaultOpts
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := d.Probe(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		log.Fatal("no sensor answering")
	}

	ppm, err := d.ReadCO2(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("CO2: %s\n", ppm)
}

// ExampleDev_Begin shows the non-blocking surface for cooperative loops: the
// caller owns the polling schedule and the timeout.
func ExampleDev_Begin() {
	p, err := uartio.Open("/dev/ttyAMA0", 9600)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	d, err := mhz19.New(p, nil)
	if err != nil {
		log.Fatal(err)
	}

	x, err := d.Begin(mhz19.ReadCO2{})
	if err != nil {
		log.Fatal(err)
	}
	deadline := time.Now().Add(time.Second)
	for {
		err = x.Poll()
		if !errors.Is(err, uartio.ErrNotReady) {
			break
		}
		if time.Now().After(deadline) {
			x.Cancel()
			log.Fatal("sensor timed out")
		}
		time.Sleep(2 * time.Millisecond)
	}
	if err != nil {
		log.Fatal(err)
	}
	data, err := x.Response()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("CO2: %d ppm\n", int(data[0])<<8|int(data[1]))
}
