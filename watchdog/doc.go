// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package watchdog bounds how long a single exchange may run before it
is aborted.

This is deliberately not a retry timeout policy: Watch never starts a
second attempt, it only calls Abort on whatever is passed to it. The
sender has no retry policy of its own to coordinate with; this package
keeps only the "how long is too long for one attempt" half of what a
robust HTTP client's timeout policy usually does, generalized from a
per-retry-attempt value into a single watchdog timer armed for the
lifetime of one exchange.
*/
package watchdog
