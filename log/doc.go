// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package log provides a minimal structured logging abstraction for
// sender components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. A no-op implementation is provided for
// library consumers who don't want a logging dependency, and a
// zerolog-backed adapter is provided for the demo CLI.
//
// The sender package itself depends only on the Logger interface; it
// never imports zerolog directly, so installing a Logger is entirely
// optional and never pulls in a third-party dependency for a caller
// who doesn't ask for it.
package log
