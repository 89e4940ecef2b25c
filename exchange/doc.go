// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package exchange defines the request/response pairing the sender
drives to completion, and the narrow interface the sender requires
from an application-supplied Request.

An Exchange is the conjoined request and response in flight for one
logical HTTP round trip. The sender package holds exactly one at a
time; exchange package itself never writes bytes or talks to a
transport - it only tracks the two one-shot completion latches
(RequestComplete, ResponseComplete) and produces a terminal Result
once both sides have terminated.
*/
package exchange
