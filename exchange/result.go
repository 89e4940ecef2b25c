// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package exchange

import "github.com/brisknet/sender/transient"

// A Result is the terminal summary of an Exchange, produced only once
// both its request and response sides have terminated.
type Result struct {
	// Failure is the error that caused the exchange to fail, or nil if
	// both sides completed successfully.
	Failure error

	// Category classifies Failure for metrics/logging purposes. It is
	// transient.Not when Failure is nil.
	Category transient.Category
}

// Succeeded reports whether the exchange completed without error.
func (r *Result) Succeeded() bool {
	return r == nil || r.Failure == nil
}

func newResult(failure error) *Result {
	return &Result{Failure: failure, Category: transient.Categorize(failure)}
}
