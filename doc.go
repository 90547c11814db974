// Copyright 2026 The Winsen-Go Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for drivers for Winsen gas sensor modules
// and the serial plumbing they share.
package devices
