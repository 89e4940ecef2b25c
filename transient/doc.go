// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the errors a transport or content
// provider can report during a single request send into coarse
// categories. This is handy for bucketing error metrics and deciding
// how loudly to log a failure; it makes no retry decision of its own -
// the sender never retries a failed send, so this package is not a
// Decider/Waiter like its counterpart in a robust HTTP client.
//
// Package transient is extremely lightweight, as it depends only on
// the standard library packages "errors", "io" and "syscall", so it
// doesn't bring any significant dependencies when imported as a
// standalone package.
package transient
